package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"levelgen.dev/internal/catalog"
	"levelgen.dev/internal/generation"
	"levelgen.dev/internal/models"
	"levelgen.dev/internal/render"
	"levelgen.dev/internal/services"
)

func main() {
	catalogName := flag.String("catalog", "basic", "built-in catalog: "+fmt.Sprint(catalog.Names()))
	catalogFile := flag.String("catalog-file", "", "catalog file (.json, .yaml); overrides -catalog")
	target := flag.Int("target", 15, "exact number of modules per layout")
	seed := flag.Int64("seed", 0, "fixed seed for the first run; 0 draws random seeds")
	attempts := flag.Int("attempts", generation.DefaultMaxAttempts, "attempts per layout before giving up")
	broadPhase := flag.String("broad-phase", "linear", "overlap index: linear or grid")
	outDir := flag.String("out", "", "directory to write layouts to; empty prints nothing but the summary")
	format := flag.String("format", "json", "output format: json or yaml")
	ascii := flag.Bool("ascii", false, "print an ASCII rendering of each layout")
	route := flag.Bool("route", false, "mark the walk from the root to the last module in the ASCII rendering")
	runs := flag.Int("runs", 1, "number of layouts to generate; fixed seeds increment per run")
	verbose := flag.Bool("verbose", false, "log every placement and rollback")
	flag.Parse()

	if *format != "json" && *format != "yaml" {
		fmt.Fprintf(os.Stderr, "Unknown format %q\n", *format)
		os.Exit(2)
	}
	mode, err := generation.ParseBroadPhase(*broadPhase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	// Resolve catalog
	var cat *generation.Catalog
	name := *catalogName
	if *catalogFile != "" {
		var def *catalog.Definition
		cat, def, err = catalog.Load(*catalogFile)
		if err == nil {
			name = def.Name
		}
	} else {
		cat, _, err = catalog.Builtin(name)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := log.New(os.Stderr, "", 0)
	failed := 0

	for i := 0; i < *runs; i++ {
		opts := []generation.Option{
			generation.WithTarget(*target),
			generation.WithMaxAttempts(*attempts),
			generation.WithBroadPhase(mode, 0),
			generation.WithObserver(generation.LogObserver(logger, *verbose)),
		}
		var requested *int64
		if *seed != 0 {
			s := *seed + int64(i)
			requested = &s
			opts = append(opts, generation.WithSeed(s))
		}

		fmt.Printf("Generating layout %d/%d from %s (target %d)...\n", i+1, *runs, name, *target)

		res, err := generation.GenerateMap(ctx, cat, opts...)
		if res == nil || errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
			failed++
			continue
		}
		if err := generation.Validate(res, *target, generation.DefaultShrink); err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR: layout failed validation: %v\n", err)
			failed++
			continue
		}

		layout := services.NewLayout(name, *target, requested, res)
		if *ascii {
			rasterizer := render.NewRasterizer()
			rasterizer.ShowRoute = *route
			layout.ASCII = rasterizer.Render(res.Modules).String()
			fmt.Print(layout.ASCII)
		}

		if *outDir != "" {
			filename := fmt.Sprintf("%s_%d.%s", name, res.Seed, *format)
			if err := writeLayout(filepath.Join(*outDir, filename), layout, *format); err != nil {
				fmt.Fprintf(os.Stderr, "  ERROR writing file: %v\n", err)
				failed++
				continue
			}
			fmt.Printf("  Created %s ", filename)
		} else {
			fmt.Print("  ")
		}
		fmt.Printf("(%d modules, seed %d, %d attempts)\n", len(layout.Modules), res.Seed, res.Attempts)
	}

	if failed > 0 {
		fmt.Printf("Done with %d of %d layouts failed\n", failed, *runs)
		os.Exit(1)
	}
	fmt.Println("Done!")
}

// writeLayout encodes a layout as json or yaml
func writeLayout(path string, layout *models.Layout, format string) error {
	var data []byte
	var err error
	if format == "yaml" {
		data, err = yaml.Marshal(layout)
	} else {
		data, err = json.MarshalIndent(layout, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
