// Package main provides the entry point for the Mug Studio designer.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"mug-studio/internal/app"
	"mug-studio/internal/layout"
	"mug-studio/internal/version"
	"mug-studio/ui/mainwindow"
	"mug-studio/ui/prefs"
)

const defaultPatternDir = "patterns"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s", version.String())

	appPrefs := prefs.Load()

	patternDir := appPrefs.String(prefs.KeyPatternDir)
	if patternDir == "" {
		patternDir = defaultPatternDir
	}

	var spec layout.Spec
	if name := appPrefs.String(prefs.KeyLastSpec); name != "" {
		spec = layout.GetSpec(name)
	}

	state := app.NewState(app.Options{
		Spec:       spec,
		ModelPath:  appPrefs.String(prefs.KeyModelPath),
		PatternDir: patternDir,
	})

	fyneApp := fyneapp.New()
	win := mainwindow.New(fyneApp, state, appPrefs)

	if len(os.Args) > 1 {
		designPath := os.Args[1]
		if err := state.LoadDesign(designPath); err != nil {
			log.Printf("Failed to load design %s: %v", designPath, err)
		}
	}

	setupHotReload(win)

	win.Start()
	win.ShowAndRun()
}

// setupHotReload prompts for a restart when the binary is recompiled
// during development.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}
	log.Printf("Hot reload: watching %s", reloader.ExecPath())

	reloader.OnUpdate(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Build",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win.Window)
	})
	reloader.Start()
}
