package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/WireBend/internal/model"
)

// ManifestVersion is written into every manifest.
const ManifestVersion = "1.0.0"

// UsageEntry is the per-diameter outcome recorded in a manifest.
type UsageEntry struct {
	Diameter      float64 `json:"diameter"`
	TotalLength   float64 `json:"total_length"`
	OrderedLength float64 `json:"ordered_length"`
	UsedPercent   float64 `json:"used_percent"`
	Status        string  `json:"status"`
	Spools        int     `json:"spools"`
}

// Manifest records everything one build produced, so a run can be audited
// or its cut list reprinted later.
type Manifest struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Inventory model.Inventory `json:"inventory"`
	Pieces    []model.Piece   `json:"pieces"`
	Usage     []UsageEntry    `json:"usage"`
	Files     []string        `json:"files"`
}

// WriteManifest stamps the manifest with the current version and time and
// writes it to path.
func WriteManifest(path string, m Manifest) error {
	m.Version = ManifestVersion
	m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.Version == "" {
		return Manifest{}, fmt.Errorf("invalid manifest: missing version field")
	}
	return m, nil
}
