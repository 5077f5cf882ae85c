package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"boundarymap/internal/atlas"
	"boundarymap/internal/config"
	"boundarymap/internal/geom"
	"boundarymap/internal/render"
	"boundarymap/internal/tui"
	"boundarymap/internal/units"
)

const previewWidth = 60

type options struct {
	output      string
	region      string
	scale       float64
	dpi         float64
	margin      string
	styles      string
	interactive bool
	preview     bool
	verbose     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("boundarymap", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.output, "output", "", "output SVG file (default <region-name>.svg)")
	fs.StringVar(&opts.output, "o", "", "shorthand for --output")
	fs.StringVar(&opts.region, "region-name", "", "region to compare with the reference region; lists regions when empty")
	fs.StringVar(&opts.region, "r", "", "shorthand for --region-name")
	fs.Float64Var(&opts.scale, "scale", atlas.DefaultScale, "map scale")
	fs.Float64Var(&opts.scale, "s", atlas.DefaultScale, "shorthand for --scale")
	fs.Float64Var(&opts.dpi, "dpi", 100, "output resolution in dots per inch")
	fs.Float64Var(&opts.dpi, "d", 100, "shorthand for --dpi")
	fs.StringVar(&opts.margin, "margin", "2cm", "page margin, a length such as 2cm or 0.5in")
	fs.StringVar(&opts.styles, "styles", "", "YAML file with per-role style overrides")
	fs.BoolVar(&opts.interactive, "interactive", false, "choose the region from a list when --region-name is empty")
	fs.BoolVar(&opts.interactive, "i", false, "shorthand for --interactive")
	fs.BoolVar(&opts.preview, "preview", false, "print a terminal preview of the map after writing it")
	fs.BoolVar(&opts.verbose, "verbose", false, "log pipeline details")
	fs.BoolVar(&opts.verbose, "v", false, "shorthand for --verbose")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: boundarymap [flags]\n\n")
		fmt.Fprintf(stderr, "Renders the reference region, a neighbouring region and the river\n")
		fmt.Fprintf(stderr, "crossing the reference region as an SVG map.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	err := fs.Parse(args)
	return opts, err
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	cfg, found, err := config.Load()
	if err != nil {
		log.Error("could not read .env file", "err", err.Error())
		return 1
	}
	if !found {
		log.Debug("no .env file found, using environment variables")
	}

	boundaries, err := geom.LoadFeatures(cfg.BoundariesPath)
	if err != nil {
		log.Error("could not load boundaries", "path", cfg.BoundariesPath, "err", err.Error())
		return 1
	}
	names := geom.Names(boundaries, cfg.NameKey)

	if opts.region == "" && opts.interactive {
		opts.region, err = tui.PickRegion(names, cfg.Reference, tea.WithAltScreen(), tea.WithOutput(stderr))
		if errors.Is(err, tui.ErrCancelled) {
			log.Info("no region chosen")
			return 0
		}
		if err != nil {
			log.Error("region picker failed", "err", err.Error())
			return 1
		}
	}
	if opts.region == "" {
		fmt.Fprintln(stdout, strings.Join(names, ", "))
		return 0
	}
	if opts.output == "" {
		opts.output = opts.region + ".svg"
	}

	reg := units.NewRegistry()
	req, err := buildRequest(reg, cfg, opts)
	if err != nil {
		log.Error("invalid arguments", "err", err.Error())
		return 1
	}

	styles := render.DefaultStyles()
	if opts.styles != "" {
		styles, err = render.LoadStylesFile(opts.styles)
		if err != nil {
			log.Error("could not load styles", "path", opts.styles, "err", err.Error())
			return 1
		}
	}

	rivers, err := geom.LoadFeatures(cfg.RiversPath)
	if err != nil {
		log.Error("could not load rivers", "path", cfg.RiversPath, "err", err.Error())
		return 1
	}

	doc, err := atlas.Assemble(reg, boundaries, rivers, req)
	if err != nil {
		var lerr *atlas.LookupError
		if errors.As(err, &lerr) {
			log.Error("unknown region", "region", lerr.Name, "matches", lerr.Matches, "available", strings.Join(lerr.Available, ", "))
			return 1
		}
		log.Error("could not assemble map", "err", err.Error())
		return 1
	}

	if err := render.WriteFile(opts.output, doc, styles); err != nil {
		log.Error("could not write map", "path", opts.output, "err", err.Error())
		return 1
	}
	log.Info("wrote map", "path", opts.output, "width_px", doc.Width, "height_px", doc.Height)

	if opts.preview {
		fmt.Fprintln(stdout, tui.Preview(doc, opts.region, previewWidth))
	}
	return 0
}

func buildRequest(reg *units.Registry, cfg config.Config, opts options) (atlas.Request, error) {
	dpi, err := reg.Quantity(opts.dpi, "dpi")
	if err != nil {
		return atlas.Request{}, err
	}
	margin, err := reg.ParseQuantity(opts.margin)
	if err != nil {
		return atlas.Request{}, fmt.Errorf("margin: %w", err)
	}
	if err := units.RequireDimension(margin, units.Length); err != nil {
		return atlas.Request{}, fmt.Errorf("margin: %w", err)
	}
	return atlas.Request{
		Reference:  cfg.Reference,
		Comparison: opts.region,
		NameKey:    cfg.NameKey,
		Scale:      opts.scale,
		DPI:        dpi,
		Margin:     margin,
	}, nil
}
