package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/plife/internal/metrics"
	"github.com/san-kum/plife/internal/particle"
	"github.com/san-kum/plife/internal/sim"
	"github.com/san-kum/plife/internal/viewport"
)

var (
	ColBg      = rl.Black
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const (
	maxTelemetry = 200
	panSpeed     = 8.0
)

type Options struct {
	Width, Height int
	Scale         float64
	Title         string
	ShowHUD       bool
}

func DefaultOptions() Options {
	return Options{
		Width:   viewport.DefaultWidth,
		Height:  viewport.DefaultHeight,
		Scale:   viewport.DefaultScale,
		Title:   "Colored Particles",
		ShowHUD: true,
	}
}

type App struct {
	Sim       *sim.Simulator
	Name      string
	Palette   particle.Palette
	Layout    viewport.Layout
	Dt        float64
	Running   bool
	Err       error
	Telemetry []float64
	ShowHUD   bool

	initialDt     float64
	initialLayout viewport.Layout
}

func NewApp(s *sim.Simulator, pal particle.Palette, layout viewport.Layout, dt float64, name string) *App {
	return &App{
		Sim:           s,
		Name:          name,
		Palette:       pal,
		Layout:        layout,
		Dt:            dt,
		Running:       true,
		Telemetry:     make([]float64, 0, maxTelemetry),
		ShowHUD:       true,
		initialDt:     dt,
		initialLayout: layout,
	}
}

// Run opens a window and steps s once per frame until the window is closed.
// w and h are the emission region, used to centre the initial view.
func Run(s *sim.Simulator, pal particle.Palette, w, h uint32, dt float64, name string, opts Options) {
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	app := NewApp(s, pal, viewport.CenteredLayout(opts.Width, opts.Height, w, h, opts.Scale), dt, name)
	app.ShowHUD = opts.ShowHUD
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) && a.Err == nil {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.Dt *= 2
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.Dt /= 2
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.Layout = a.initialLayout
	}

	if rl.IsKeyDown(rl.KeyLeft) {
		a.Layout = a.Layout.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		a.Layout = a.Layout.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.Layout = a.Layout.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.Layout = a.Layout.Pan(0, -panSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		factor := 1.1
		if wheel < 0 {
			factor = 1 / 1.1
		}
		a.Layout = a.Layout.Zoom(factor, float64(mouse.X), float64(mouse.Y))
	}

	if !a.Running {
		return
	}
	if err := a.Sim.Tick(a.Dt); err != nil {
		a.Err = err
		a.Running = false
		return
	}
	a.Telemetry = append(a.Telemetry, metrics.Kinetic(a.Sim.Population()))
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) reset() {
	a.Sim.Reset()
	a.Dt = a.initialDt
	a.Err = nil
	a.Running = true
	a.Telemetry = a.Telemetry[:0]
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawParticles()
	if a.ShowHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) drawParticles() {
	pop := a.Sim.Population()
	for i := range pop {
		if !pop[i].Pos.IsFinite() {
			continue
		}
		x, y, size := a.Layout.Rect(pop[i].Pos)
		rl.DrawRectangle(x, y, size, size, a.Palette.Color(pop[i].Type))
	}
}

func (a *App) DrawHUD() {
	rl.DrawText("plife", 20, 20, 24, ColSelect)
	rl.DrawText(fmt.Sprintf(":: %s", a.Name), 100, 24, 16, ColText)

	status, col := "RUNNING", ColSelect
	switch {
	case a.Err != nil:
		status, col = "FAILED", rl.Red
	case !a.Running:
		status, col = "PAUSED", ColTextDim
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	rl.DrawText(status, w-120, 20, 16, col)

	pop := a.Sim.Population()
	counts := pop.CountByType()
	y := int32(56)
	for _, t := range particle.Types() {
		rl.DrawRectangle(20, y+2, 10, 10, a.Palette.Color(t))
		rl.DrawText(fmt.Sprintf("%s %d", t, counts[t]), 38, y, 14, ColText)
		y += 20
	}
	rl.DrawText(fmt.Sprintf("t %.2f  dt %.4f  ticks %d", a.Sim.Time(), a.Dt, a.Sim.Steps()), 20, y, 14, ColText)
	if a.Err != nil {
		rl.DrawText(a.Err.Error(), 20, y+20, 14, rl.Red)
	}

	a.DrawTelemetry(20, h-100, 300, 50)

	rl.DrawText("[SPACE] PAUSE  [R] RESET  [+/-] DT  [ARROWS/WHEEL] VIEW  [C] CENTER  [H] HUD  [ESC] QUIT", 20, h-30, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), w-80, h-30, 14, ColTextDim)
}

func (a *App) DrawTelemetry(x, y, width, height int32) {
	if len(a.Telemetry) < 2 {
		return
	}

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(x) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(y+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("KE: %.2e", a.Telemetry[len(a.Telemetry)-1]), x+width+10, y+height-10, 14, ColText)
}
