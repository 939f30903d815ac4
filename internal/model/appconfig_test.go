package model

import "testing"

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.Page.Width != 297 || cfg.Page.Height != 210 {
		t.Errorf("expected A4 landscape, got %gx%g", cfg.Page.Width, cfg.Page.Height)
	}
	if cfg.Page.Margin != 15 || cfg.Page.Gutter != 10 || cfg.Page.RowAdvance != 25 {
		t.Errorf("unexpected page spacing %+v", cfg.Page)
	}
	if cfg.Facets != 64 {
		t.Errorf("expected 64 facets, got %d", cfg.Facets)
	}
	if !cfg.Formats.SCAD || !cfg.Formats.SVG {
		t.Error("solid model and schematic should be enabled by default")
	}
	if cfg.Formats.PDF || cfg.Formats.XLSX {
		t.Error("optional exports should be disabled by default")
	}
}

func TestNormalizeFillsZeroValues(t *testing.T) {
	cfg := AppConfig{SearchCap: 10}
	cfg.Normalize()

	def := DefaultAppConfig()
	if cfg.BaseName != def.BaseName {
		t.Errorf("expected base name %q, got %q", def.BaseName, cfg.BaseName)
	}
	if cfg.Page != def.Page {
		t.Errorf("expected default page, got %+v", cfg.Page)
	}
	if cfg.Facets != def.Facets {
		t.Errorf("expected %d facets, got %d", def.Facets, cfg.Facets)
	}
	if cfg.SearchCap != 10 {
		t.Errorf("Normalize should keep explicit values, got %d", cfg.SearchCap)
	}
}
