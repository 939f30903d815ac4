package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/WireBend/internal/model"
)

func TestWriteAndReadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "biplane.json")

	m := Manifest{
		Config:    model.DefaultAppConfig(),
		Inventory: model.DefaultInventory(),
		Pieces:    []model.Piece{model.NewPiece("wing strut", 1.0, 120, 90, 2)},
		Usage:     []UsageEntry{{Diameter: 1.0, TotalLength: 120, OrderedLength: 1200, UsedPercent: 10, Status: "Arrangement found", Spools: 1}},
		Files:     []string{"biplane.scad", "biplane.svg"},
	}
	if err := WriteManifest(path, m); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	read, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if read.Version != ManifestVersion {
		t.Errorf("expected version %s, got %s", ManifestVersion, read.Version)
	}
	if read.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if len(read.Pieces) != 1 || read.Pieces[0].Title != "wing strut" {
		t.Errorf("unexpected pieces %+v", read.Pieces)
	}
	if len(read.Usage) != 1 || read.Usage[0].Status != "Arrangement found" {
		t.Errorf("unexpected usage %+v", read.Usage)
	}
	if len(read.Files) != 2 {
		t.Errorf("expected 2 files, got %d", len(read.Files))
	}
}

func TestReadManifestMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(path, []byte(`{"pieces": []}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadManifest(path); err == nil {
		t.Error("expected error for manifest without version")
	}
}

func TestReadManifestMissingFile(t *testing.T) {
	if _, err := ReadManifest(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
