package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/WireBend/internal/model"
)

// DefaultInventoryPath returns the default file path for the inventory file.
// This is located at ~/.wirebend/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	if err := ValidateInventory(inv); err != nil {
		return model.Inventory{}, err
	}
	if inv.WarningColor == "" {
		inv.WarningColor = model.DefaultInventory().WarningColor
	}
	return inv, nil
}

// ValidateInventory rejects duplicate diameters and spools without length.
func ValidateInventory(inv model.Inventory) error {
	seen := make(map[float64]bool, len(inv.Spools))
	for _, s := range inv.Spools {
		if s.Diameter <= 0 {
			return fmt.Errorf("invalid inventory: diameter %g mm", s.Diameter)
		}
		if s.UnitLength <= 0 {
			return fmt.Errorf("invalid inventory: %g mm wire has no spool length", s.Diameter)
		}
		if seen[s.Diameter] {
			return fmt.Errorf("invalid inventory: %g mm listed twice", s.Diameter)
		}
		seen[s.Diameter] = true
	}
	return nil
}

// ImportInventory imports spools from a user-specified JSON file, merging
// them into the existing inventory. Diameters already stocked are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}
	if err := ValidateInventory(imported); err != nil {
		return existing, err
	}

	merged := existing
	merged.Spools = append([]model.SpoolSpec(nil), existing.Spools...)
	for _, s := range imported.Spools {
		if merged.Find(s.Diameter) == nil {
			merged.Spools = append(merged.Spools, s)
		}
	}
	return merged, nil
}
