package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/WireBend/internal/biplane"
	"github.com/piwi3910/WireBend/internal/engine"
	"github.com/piwi3910/WireBend/internal/export"
	"github.com/piwi3910/WireBend/internal/model"
	"github.com/piwi3910/WireBend/internal/project"
	"github.com/piwi3910/WireBend/internal/report"
	"github.com/piwi3910/WireBend/internal/scene"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// errInfeasible is returned in strict mode when a diameter does not fit.
var errInfeasible = errors.New("wire inventory is not sufficient")

// buildOptions override the saved config for one run.
type buildOptions struct {
	outDir      string
	baseName    string
	formats     []string
	accessories bool
	searchCap   int
	strict      bool
}

func addBuildFlags(c *cobra.Command, b *buildOptions) {
	c.Flags().StringVarP(&b.outDir, "out", "o", "", "output directory (default from config)")
	c.Flags().StringVar(&b.baseName, "base", "", "file name stem for every export (default from config)")
	c.Flags().StringSliceVarP(&b.formats, "formats", "f", nil,
		"exports to write: scad, svg, png, pdf, labels, xlsx, dxf, manifest or all")
	c.Flags().BoolVar(&b.accessories, "accessories", false, "add solar panels, capacitor and LED to the solid model")
	c.Flags().IntVar(&b.searchCap, "search-cap", 0, "max orderings tried per diameter, 0 = unbounded")
	c.Flags().BoolVar(&b.strict, "strict", false, "fail when any diameter does not fit the ordered wire")
}

func newBuildCmd(g *globalOptions) *cobra.Command {
	b := &buildOptions{}
	c := &cobra.Command{
		Use:   "build",
		Short: "Build the biplane and write the selected exports",
		Long: `Build every wire piece of the biplane, lay out the cut templates, check
the pieces against the spool inventory and write the selected exports.

Examples:
  wirebend build
  wirebend build --out out --formats all --accessories`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, g, b)
		},
	}
	addBuildFlags(c, b)
	return c
}

// apply copies the flags the user set onto cfg.
func (b *buildOptions) apply(cmd *cobra.Command, cfg *model.AppConfig) error {
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutputDir = b.outDir
	}
	if flags.Changed("base") {
		cfg.BaseName = b.baseName
	}
	if flags.Changed("formats") {
		formats, err := parseFormats(b.formats)
		if err != nil {
			return err
		}
		cfg.Formats = formats
	}
	if flags.Changed("accessories") {
		cfg.Accessories = b.accessories
	}
	if flags.Changed("search-cap") {
		cfg.SearchCap = b.searchCap
	}
	return nil
}

// parseFormats turns format names into an ExportFormats selection.
func parseFormats(names []string) (model.ExportFormats, error) {
	var f model.ExportFormats
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "scad":
			f.SCAD = true
		case "svg":
			f.SVG = true
		case "png":
			f.PNG = true
		case "pdf":
			f.PDF = true
		case "labels":
			f.Labels = true
		case "xlsx":
			f.XLSX = true
		case "dxf":
			f.DXF = true
		case "manifest", "json":
			f.Manifest = true
		case "all":
			f = model.ExportFormats{SCAD: true, SVG: true, PNG: true, PDF: true, Labels: true, XLSX: true, DXF: true, Manifest: true}
		default:
			return model.ExportFormats{}, fmt.Errorf("unknown export format %q", n)
		}
	}
	return f, nil
}

func runBuild(cmd *cobra.Command, g *globalOptions, b *buildOptions) error {
	cfg, err := project.LoadAppConfig(g.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", g.configPath, err)
	}
	if err := b.apply(cmd, &cfg); err != nil {
		return err
	}
	inv, err := loadInventory(g)
	if err != nil {
		return err
	}

	result, err := build(cfg, inv)
	if err != nil {
		return err
	}
	if err := report.Render(cmd.OutOrStdout(), result.Reports); err != nil {
		return err
	}
	if b.strict && !report.AllFeasible(result.Reports) {
		return errInfeasible
	}
	return nil
}

// buildResult is what one build produced.
type buildResult struct {
	Scene   *scene.Scene
	Reports []report.DiameterReport
	Files   []string
}

// build runs the whole pipeline: model, validation, spool assignment and
// exports.
func build(cfg model.AppConfig, inv model.Inventory) (buildResult, error) {
	cfg.Normalize()
	sc := scene.New(inv, cfg)
	if err := biplane.Build(sc, biplane.Options{Accessories: cfg.Accessories}); err != nil {
		return buildResult{}, err
	}

	reports := report.Build(sc, engine.New(inv, cfg.SearchCap), cfg.WastePercent)
	for _, r := range reports {
		ev := log.Info().
			Float64("diameter", r.Diameter).
			Float64("total_mm", r.TotalLength).
			Str("status", r.Status.String())
		if r.Status == report.StatusFound {
			sc.AssignSpools(r.Diameter, r.Arrangement.Spools)
			ev = ev.Int("spools", len(r.Arrangement.Spools))
		}
		ev.Msg("arrangement")
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return buildResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	files, err := sc.Export(cfg.OutputDir, cfg.BaseName, cfg.Formats, cfg.PixelsPerMM)
	if err != nil {
		return buildResult{}, err
	}
	extra, err := writeDocuments(sc, reports, cfg)
	files = append(files, extra...)
	if err != nil {
		return buildResult{}, err
	}

	if cfg.Formats.Manifest {
		path := filepath.Join(cfg.OutputDir, cfg.BaseName+".json")
		m := project.Manifest{
			Config:    cfg,
			Inventory: inv,
			Pieces:    sc.Pieces(),
			Usage:     usageEntries(reports),
			Files:     files,
		}
		if err := project.WriteManifest(path, m); err != nil {
			return buildResult{}, err
		}
		log.Info().Str("path", path).Msg("exported")
		files = append(files, path)
	}

	return buildResult{Scene: sc, Reports: reports, Files: files}, nil
}

// writeDocuments writes the printable and tabular exports.
func writeDocuments(sc *scene.Scene, reports []report.DiameterReport, cfg model.AppConfig) ([]string, error) {
	pieces := sc.Pieces()
	docs := []struct {
		enabled bool
		name    string
		write   func(path string) error
	}{
		{cfg.Formats.PDF, cfg.BaseName + ".pdf", func(p string) error {
			return export.ExportPDF(p, sc.Sheet(), pieces, reports)
		}},
		{cfg.Formats.Labels, cfg.BaseName + "-labels.pdf", func(p string) error {
			return export.ExportLabels(p, pieces)
		}},
		{cfg.Formats.XLSX, cfg.BaseName + ".xlsx", func(p string) error {
			return export.ExportXLSX(p, pieces, reports)
		}},
		{cfg.Formats.DXF, cfg.BaseName + ".dxf", func(p string) error {
			return export.ExportDXF(p, sc.Sheet())
		}},
	}

	var written []string
	for _, d := range docs {
		if !d.enabled {
			continue
		}
		path := filepath.Join(cfg.OutputDir, d.name)
		if err := d.write(path); err != nil {
			return written, fmt.Errorf("export %s: %w", d.name, err)
		}
		log.Info().Str("path", path).Msg("exported")
		written = append(written, path)
	}
	return written, nil
}

func usageEntries(reports []report.DiameterReport) []project.UsageEntry {
	out := make([]project.UsageEntry, len(reports))
	for i, r := range reports {
		out[i] = project.UsageEntry{
			Diameter:      r.Diameter,
			TotalLength:   r.TotalLength,
			OrderedLength: r.OrderedLength,
			UsedPercent:   r.UsedPercent,
			Status:        r.Status.String(),
			Spools:        len(r.Arrangement.Spools),
		}
	}
	return out
}

// writeLines prints one line per entry.
func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
