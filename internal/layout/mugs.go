package layout

// Standard sublimation mug wrap templates.
//
// The wrap is the flat print area that gets wrapped around the mug body.
// Sizes follow common blank-supplier templates:
// - 11oz: 200 x 90 mm wrap
// - 15oz: 210 x 115 mm wrap
// - 12oz latte (tapered): 230 x 100 mm wrap
//
// The reference canvas is the on-screen design surface; margins are
// expressed in reference canvas pixels and rescaled with the canvas.

const (
	// 11oz mug wrap dimensions in millimeters
	Mug11ozWrapWidthMM  = 200.0
	Mug11ozWrapHeightMM = 90.0

	// 15oz mug wrap dimensions in millimeters
	Mug15ozWrapWidthMM  = 210.0
	Mug15ozWrapHeightMM = 115.0

	// 12oz latte mug wrap dimensions in millimeters
	LatteWrapWidthMM  = 230.0
	LatteWrapHeightMM = 100.0

	// Shared print target
	DefaultPrintDPI = 300.0
)

// Mug11ozSpec returns the layout for a standard 11oz mug.
func Mug11ozSpec() *BaseSpec {
	return &BaseSpec{
		SpecName:       "11oz Mug",
		WrapWidthMM:    Mug11ozWrapWidthMM,
		WrapHeightMM:   Mug11ozWrapHeightMM,
		CanvasWidthPx:  1000,
		CanvasHeightPx: 450,
		SafeMarginPx:   40,
		BleedMarginPx:  12,
		DPI:            DefaultPrintDPI,
	}
}

// Mug15ozSpec returns the layout for a 15oz mug.
func Mug15ozSpec() *BaseSpec {
	return &BaseSpec{
		SpecName:       "15oz Mug",
		WrapWidthMM:    Mug15ozWrapWidthMM,
		WrapHeightMM:   Mug15ozWrapHeightMM,
		CanvasWidthPx:  1000,
		CanvasHeightPx: 548,
		SafeMarginPx:   40,
		BleedMarginPx:  12,
		DPI:            DefaultPrintDPI,
	}
}

// LatteSpec returns the layout for a 12oz tapered latte mug.
// The taper is handled by the preview projection, not the flat wrap.
func LatteSpec() *BaseSpec {
	return &BaseSpec{
		SpecName:       "12oz Latte",
		WrapWidthMM:    LatteWrapWidthMM,
		WrapHeightMM:   LatteWrapHeightMM,
		CanvasWidthPx:  1000,
		CanvasHeightPx: 435,
		SafeMarginPx:   48,
		BleedMarginPx:  14,
		DPI:            DefaultPrintDPI,
	}
}
