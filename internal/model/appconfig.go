package model

// PageConfig holds the schematic page geometry, all in mm.
type PageConfig struct {
	Width           float64 `json:"width"`            // Page width
	Height          float64 `json:"height"`           // Page height
	Margin          float64 `json:"margin"`           // Left/top start and right wrap margin
	Gutter          float64 `json:"gutter"`           // Horizontal gap between pieces
	RowAdvance      float64 `json:"row_advance"`      // Vertical step when a row wraps
	CalibrationSize float64 `json:"calibration_size"` // Side of the calibration square
	FontSize        float64 `json:"font_size"`        // Label text height
}

// DefaultPageConfig returns an A4 landscape page.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Width:           297,
		Height:          210,
		Margin:          15,
		Gutter:          10,
		RowAdvance:      25,
		CalibrationSize: 10,
		FontSize:        3,
	}
}

// ExportFormats selects which files a build writes.
type ExportFormats struct {
	SCAD     bool `json:"scad"`
	SVG      bool `json:"svg"`
	PNG      bool `json:"png"`
	PDF      bool `json:"pdf"`
	Labels   bool `json:"labels"`
	XLSX     bool `json:"xlsx"`
	DXF      bool `json:"dxf"`
	Manifest bool `json:"manifest"`
}

// AppConfig holds application-wide preferences and build defaults.
type AppConfig struct {
	OutputDir    string        `json:"output_dir"`
	BaseName     string        `json:"base_name"` // File name stem for every export
	Page         PageConfig    `json:"page"`
	Facets       int           `json:"facets"`        // Cylinder edge count in the solid model
	SearchCap    int           `json:"search_cap"`    // Max permutations tried per diameter, 0 = unbounded
	WastePercent float64       `json:"waste_percent"` // Extra wire allowance for purchase estimates
	PixelsPerMM  float64       `json:"pixels_per_mm"` // PNG preview resolution
	Accessories  bool          `json:"accessories"`   // Add panel, capacitor and LED to the solid model
	Formats      ExportFormats `json:"formats"`
}

// DefaultAppConfig returns an AppConfig that reproduces the plain build:
// solid model and schematic only, written to the working directory.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		OutputDir:    ".",
		BaseName:     "biplane",
		Page:         DefaultPageConfig(),
		Facets:       64,
		SearchCap:    2_000_000,
		WastePercent: 10,
		PixelsPerMM:  4,
		Formats: ExportFormats{
			SCAD: true,
			SVG:  true,
		},
	}
}

// Normalize fills zero values with defaults so partially written config
// files still produce a usable build.
func (c *AppConfig) Normalize() {
	def := DefaultAppConfig()
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.BaseName == "" {
		c.BaseName = def.BaseName
	}
	if c.Page.Width <= 0 || c.Page.Height <= 0 {
		c.Page = def.Page
	}
	if c.Page.FontSize <= 0 {
		c.Page.FontSize = def.Page.FontSize
	}
	if c.Facets <= 0 {
		c.Facets = def.Facets
	}
	if c.PixelsPerMM <= 0 {
		c.PixelsPerMM = def.PixelsPerMM
	}
}
