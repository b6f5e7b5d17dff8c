package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/jung-kurt/gofpdf"

	"mug-studio/internal/layout"
)

// WritePDF writes a one-page proof: the rendered wrap placed at a fixed
// position with the layout's physical dimensions, plus fixed text
// annotations (product, wrap size, print DPI, date).
func WritePDF(path string, proof image.Image, spec layout.Spec) error {
	wrapW, wrapH := spec.WrapSizeMM()

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Mug Studio Proof - %s", spec.Name()))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Wrap %.0f x %.0f mm at %.0f DPI", wrapW, wrapH, spec.PrintDPI()))
	pdf.Ln(5)
	pdf.Cell(0, 6, time.Now().Format("2006-01-02 15:04"))

	var buf bytes.Buffer
	if err := png.Encode(&buf, proof); err != nil {
		return fmt.Errorf("encode proof image: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("proof", opts, &buf)
	// Image placed at physical wrap size below the annotations
	pdf.ImageOptions("proof", 10, 35, wrapW, wrapH, false, opts, 0, "")

	if pdf.Err() {
		return fmt.Errorf("build pdf: %v", pdf.Error())
	}
	return pdf.OutputFileAndClose(path)
}
