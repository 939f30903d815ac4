// Package importer reads wire cut lists from CSV and Excel files. It detects
// the delimiter, maps columns by header name regardless of case, and falls
// back to positional columns when the file has no header.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CutEntry is one line of a cut list: Quantity pieces of the same length.
type CutEntry struct {
	Label    string
	Diameter float64 // mm
	Length   float64 // mm
	Quantity int
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Entries  []CutEntry
	Errors   []string
	Warnings []string
}

// Diameters returns the diameters of the imported entries in the order they
// first appear.
func (r ImportResult) Diameters() []float64 {
	var out []float64
	seen := make(map[float64]bool)
	for _, e := range r.Entries {
		if !seen[e.Diameter] {
			seen[e.Diameter] = true
			out = append(out, e.Diameter)
		}
	}
	return out
}

// Lengths expands the entries of one diameter into a piece length list.
func (r ImportResult) Lengths(diameter float64) []float64 {
	var out []float64
	for _, e := range r.Entries {
		if e.Diameter != diameter {
			continue
		}
		for i := 0; i < e.Quantity; i++ {
			out = append(out, e.Length)
		}
	}
	return out
}

// ColumnMapping maps column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	Diameter int
	Length   int
	Quantity int
}

// headerAliases maps column roles to their accepted header names (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "title", "piece", "part", "description", "item"},
	"diameter": {"diameter", "dia", "d", "⌀", "wire", "gauge"},
	"length":   {"length", "len", "l", "mm"},
	"quantity": {"quantity", "qty", "count", "num", "pcs", "pieces"},
}

// DetectCSVDelimiter determines the most likely delimiter of CSV data. It
// tries comma, semicolon, tab and pipe; the one giving the most consistent
// column count above one wins.
func DetectCSVDelimiter(data []byte) rune {
	best := ','
	bestScore := 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		cols := len(records[0])
		if cols < 2 {
			continue
		}
		score := 0
		for _, row := range records {
			if len(row) == cols {
				score++
			}
		}
		if weighted := score*10 + cols; weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}
	return best
}

// DetectColumns examines a header row and returns the mapping and true. A
// trailing "(mm)" unit is ignored, so workbooks written by ExportXLSX import
// directly. When no cell is a known header it returns the positional mapping
// Label, Diameter, Length, Quantity and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	m := ColumnMapping{Label: -1, Diameter: -1, Length: -1, Quantity: -1}
	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		normalized = strings.TrimSpace(strings.TrimSuffix(normalized, "(mm)"))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "label":
					setOnce(&m.Label, i)
				case "diameter":
					setOnce(&m.Diameter, i)
				case "length":
					setOnce(&m.Length, i)
				case "quantity":
					setOnce(&m.Quantity, i)
				}
			}
		}
	}
	if !isHeader {
		return ColumnMapping{Label: 0, Diameter: 1, Length: 2, Quantity: 3}, false
	}
	return m, true
}

func setOnce(dst *int, i int) {
	if *dst == -1 {
		*dst = i
	}
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parsePositive(row []string, idx int, name, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "mm"), 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Sprintf("%s: %s must be a positive number", rowLabel, name)
	}
	return v, ""
}

// parseRow extracts a CutEntry from a row. It returns the entry, an error
// message and a warning message.
func parseRow(row []string, m ColumnMapping, rowLabel string, count int) (CutEntry, string, string) {
	e := CutEntry{Label: getCell(row, m.Label), Quantity: 1}
	if e.Label == "" {
		e.Label = fmt.Sprintf("Piece %d", count+1)
	}

	var msg string
	if e.Diameter, msg = parsePositive(row, m.Diameter, "diameter", rowLabel); msg != "" {
		return CutEntry{}, msg, ""
	}
	if e.Length, msg = parsePositive(row, m.Length, "length", rowLabel); msg != "" {
		return CutEntry{}, msg, ""
	}

	var warning string
	if s := getCell(row, m.Quantity); s != "" {
		qty, err := strconv.Atoi(s)
		switch {
		case err != nil:
			return CutEntry{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, s), ""
		case qty <= 0:
			return CutEntry{}, fmt.Sprintf("%s: Quantity must be positive", rowLabel), ""
		}
		e.Quantity = qty
	} else if m.Quantity >= 0 {
		warning = fmt.Sprintf("%s: Missing quantity, assuming 1", rowLabel)
	}
	return e, "", warning
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Import reads a cut list, choosing the Excel reader for .xlsx files and the
// CSV reader otherwise.
func Import(path string) ImportResult {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// ImportCSV imports a cut list from a CSV file with any supported delimiter.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		name := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", name))
	}
	return importReader(bytes.NewReader(data), delimiter, warnings)
}

// ImportCSVFromReader imports a cut list from CSV data with a known delimiter.
func ImportCSVFromReader(r io.Reader, delimiter rune) ImportResult {
	return importReader(r, delimiter, nil)
}

func importReader(r io.Reader, delimiter rune, warnings []string) ImportResult {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", warnings)
}

// ImportExcel imports a cut list from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read Excel data: %v", err)}}
	}
	return importFromRows(rows, "Row", nil)
}

// importFromRows is the import logic shared by the CSV and Excel readers.
func importFromRows(rows [][]string, rowPrefix string, warnings []string) ImportResult {
	result := ImportResult{Warnings: warnings}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
		var missing []string
		if mapping.Diameter == -1 {
			missing = append(missing, "Diameter")
		}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		if _, err := strconv.ParseFloat(getCell(rows[0], 1), 64); err != nil {
			start = 1
			result.Warnings = append(result.Warnings, "Skipping unrecognized header row")
		}
	}

	for i := start; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		entry, errMsg, warning := parseRow(rows[i], mapping, rowLabel, len(result.Entries))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Entries = append(result.Entries, entry)
	}
	return result
}
