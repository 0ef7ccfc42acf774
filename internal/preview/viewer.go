package preview

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"levelgen.dev/internal/generation"
)

var (
	colBackground = color.RGBA{R: 12, G: 14, B: 16, A: 255}
	colRoom       = color.RGBA{R: 46, G: 58, B: 70, A: 255}
	colRoot       = color.RGBA{R: 70, G: 96, B: 62, A: 255}
	colWall       = color.RGBA{R: 140, G: 160, B: 180, A: 255}
	colConnected  = color.RGBA{R: 90, G: 200, B: 120, A: 255}
	colOpen       = color.RGBA{R: 230, G: 80, B: 70, A: 255}
	colExit       = color.RGBA{R: 240, G: 200, B: 60, A: 255}
	colPanel      = color.RGBA{R: 10, G: 12, B: 10, A: 220}
)

const panSpeed = 6.0 // pixels per frame

// Viewer is an ebiten game that shows one layout at a time
type Viewer struct {
	catalog *generation.Catalog
	name    string
	target  int
	seed    int64

	result *generation.Result
	err    error
	camera *Camera
	fitted bool
	status string

	width, height int
	prevKeys      map[ebiten.Key]bool
}

// NewViewer generates the first layout and returns a viewer for it
func NewViewer(cat *generation.Catalog, name string, target int, seed int64, width, height int) *Viewer {
	v := &Viewer{
		catalog:  cat,
		name:     name,
		target:   target,
		seed:     seed,
		camera:   NewCamera(32),
		width:    width,
		height:   height,
		prevKeys: make(map[ebiten.Key]bool),
	}
	v.regenerate()
	return v
}

// regenerate builds the layout for the current seed
func (v *Viewer) regenerate() {
	v.result, v.err = generation.GenerateMap(context.Background(), v.catalog,
		generation.WithTarget(v.target), generation.WithSeed(v.seed))
	v.fitted = false
	if v.err != nil {
		v.status = v.err.Error()
		return
	}
	v.status = fmt.Sprintf("%d modules in %d attempts", len(v.result.Modules), v.result.Attempts)
}

// pressed reports a key going down this frame
func (v *Viewer) pressed(current map[ebiten.Key]bool, k ebiten.Key) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !v.prevKeys[k]
}

func (v *Viewer) Update() error {
	currentKeys := make(map[ebiten.Key]bool)

	// R: next seed, Shift+R: previous seed
	if v.pressed(currentKeys, ebiten.KeyR) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			v.seed--
		} else {
			v.seed++
		}
		v.regenerate()
	}

	// C: copy the seed
	if v.pressed(currentKeys, ebiten.KeyC) {
		if err := clipboard.WriteAll(strconv.FormatInt(v.seed, 10)); err != nil {
			v.status = "clipboard: " + err.Error()
		} else {
			v.status = fmt.Sprintf("copied seed %d", v.seed)
		}
	}

	// F: refit the camera
	if v.pressed(currentKeys, ebiten.KeyF) {
		v.fitted = false
	}

	// Camera pan: WASD or arrow keys.
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.camera.Pan(0, -panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.camera.Pan(0, panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.camera.Pan(-panSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.camera.Pan(panSpeed, 0)
	}

	// Camera zoom: mouse wheel.
	if _, wy := ebiten.Wheel(); wy != 0 {
		v.camera.ZoomBy(math.Pow(1.12, wy))
	}

	v.prevKeys = currentKeys
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)

	if v.result != nil && v.result.Success {
		if !v.fitted {
			v.camera.Fit(v.result.Modules, v.width, v.height)
			v.fitted = true
		}
		for i, m := range v.result.Modules {
			v.drawModule(screen, m, i == 0)
		}
	}

	vector.FillRect(screen, 0, 0, float32(v.width), 34, colPanel, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  target %d  seed %d  |  %s", v.name, v.target, v.seed, v.status), 8, 2)
	ebitenutil.DebugPrintAt(screen, "WASD pan  wheel zoom  R/Shift+R seed  C copy seed  F fit", 8, 16)
}

func (v *Viewer) drawModule(screen *ebiten.Image, m *generation.ModuleInstance, root bool) {
	box := m.Box()
	x0, y0 := v.camera.WorldToScreen(generation.Vec2{X: box.Min().X, Y: box.Max().Y}, v.width, v.height)
	x1, y1 := v.camera.WorldToScreen(generation.Vec2{X: box.Max().X, Y: box.Min().Y}, v.width, v.height)

	fill := colRoom
	if root {
		fill = colRoot
	}
	vector.FillRect(screen, x0, y0, x1-x0, y1-y0, fill, false)
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1.5, colWall, false)

	size := float32(0.15 * v.camera.scale())
	for _, d := range m.Doors {
		c := colOpen
		switch {
		case d.EntranceExit:
			c = colExit
		case d.Connected:
			c = colConnected
		}
		dx, dy := v.camera.WorldToScreen(d.Position, v.width, v.height)
		vector.FillRect(screen, dx-size/2, dy-size/2, size, size, c, false)
	}

	if (x1 - x0) > 60 {
		ebitenutil.DebugPrintAt(screen, m.Template.Name(), int(x0)+4, int(y0)+4)
	}
}

func (v *Viewer) Layout(_, _ int) (int, int) {
	return v.width, v.height
}
