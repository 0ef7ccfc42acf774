package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"levelgen.dev/internal/catalog"
	"levelgen.dev/internal/generation"
	"levelgen.dev/internal/preview"
)

func main() {
	catalogName := flag.String("catalog", "basic", "built-in catalog: "+fmt.Sprint(catalog.Names()))
	catalogFile := flag.String("catalog-file", "", "catalog file (.json, .yaml); overrides -catalog")
	target := flag.Int("target", 15, "exact number of modules")
	seed := flag.Int64("seed", 0, "first seed; 0 picks one at random")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 800, "window height")
	flag.Parse()

	var (
		cat *generation.Catalog
		def *catalog.Definition
		err error
	)
	if *catalogFile != "" {
		cat, def, err = catalog.Load(*catalogFile)
	} else {
		cat, def, err = catalog.Builtin(*catalogName)
	}
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	if *seed == 0 {
		*seed = rand.Int64N(100000)
	}

	ebiten.SetWindowTitle("Level Layout Viewer - " + def.Name)
	ebiten.SetWindowSize(*width, *height)
	if err := ebiten.RunGame(preview.NewViewer(cat, def.Name, *target, *seed, *width, *height)); err != nil {
		log.Fatal(err)
	}
}
