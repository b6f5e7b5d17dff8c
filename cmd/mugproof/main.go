// Command mugproof renders print proofs from a saved design without
// opening the designer: a print-resolution PNG, a proof PDF, and the
// JSON design document.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"mug-studio/internal/app"
	"mug-studio/internal/layout"
	"mug-studio/internal/version"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		outDir      = flag.String("out", ".", "output directory")
		specName    = flag.String("spec", "", "product layout override (default: recorded in the design)")
		patternDir  = flag.String("patterns", "patterns", "pattern tile directory")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] design.mugproj\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	designPath := flag.Arg(0)

	var spec layout.Spec
	if *specName != "" {
		spec = layout.GetSpec(*specName)
		if spec == nil {
			log.Fatalf("unknown spec %q; have %v", *specName, layout.ListSpecs())
		}
	}

	state := app.NewState(app.Options{
		Spec:       spec,
		PatternDir: *patternDir,
	})
	if err := state.LoadDesign(designPath); err != nil {
		log.Fatalf("load design: %v", err)
	}
	if *specName != "" {
		state.SwitchSpec(spec)
	}
	if err := state.PreloadImages(); err != nil {
		log.Fatalf("preload images: %v", err)
	}

	base := strings.TrimSuffix(filepath.Base(designPath), filepath.Ext(designPath))
	pngPath := filepath.Join(*outDir, base+".png")
	pdfPath := filepath.Join(*outDir, base+".pdf")
	jsonPath := filepath.Join(*outDir, base+".json")

	if err := state.ExportPNG(pngPath); err != nil {
		log.Fatalf("export png: %v", err)
	}
	if err := state.ExportPDF(pdfPath); err != nil {
		log.Fatalf("export pdf: %v", err)
	}
	if err := state.ExportJSON(jsonPath); err != nil {
		log.Fatalf("export json: %v", err)
	}

	log.Printf("wrote %s, %s, %s", pngPath, pdfPath, jsonPath)
}
