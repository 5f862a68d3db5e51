package gui

import (
	"fmt"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orbitbox/internal/audio"
	"github.com/san-kum/orbitbox/internal/compute"
	"github.com/san-kum/orbitbox/internal/config"
	"github.com/san-kum/orbitbox/internal/core"
)

// Theme Colors (Deep Space Minimalist)
var (
	ColBg      = rl.NewColor(8, 8, 14, 255)      // Near Black, blue tinted
	ColStar    = rl.NewColor(255, 240, 200, 255) // Warm White core
	ColGlow    = rl.NewColor(255, 200, 120, 255) // Amber halo
	ColAccent  = rl.NewColor(180, 180, 200, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 150, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 70, 255)    // Dark Gray (Subtle)
	ColFlash   = rl.NewColor(255, 230, 180, 255) // Collision burst
)

// bodySprite holds the per-body render state the simulation itself does
// not track. Entries are released through Simulation.OnRemove.
type bodySprite struct {
	Tint  rl.Color
	Phase float64
}

type bgStar struct {
	Pos    rl.Vector2
	Bright float32
	Phase  float64
}

type App struct {
	Sim     *core.Simulation
	Cfg     *config.Config
	Spawner *core.AutoSpawner
	Time    float64
	Running bool
	Quit    bool

	Camera rl.Camera2D
	Font   rl.Font

	// Spawn gesture
	Dragging  bool
	DragStart rl.Vector2

	// Visual Polish
	ParticleTex rl.Texture2D
	Stars       []bgStar
	sprites     map[uint64]*bodySprite

	// Collision flash bookkeeping (renderer side, the sim only exposes
	// the current effect state)
	effectWas bool
	effectAge float64
	effectX   float64
	effectY   float64

	// Audio
	Audio *audio.Engine

	// Compute
	UseCompute bool
	GLBackend  *compute.OpenGLBackend
}

// initWindow initializes the Raylib window with size 1280×720 and title "orbitbox",
// sets the target FPS to 60, and disables the default exit key.
func initWindow() {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(1280, 720, "orbitbox")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads the Liberation Mono font from the system path and enables bilinear texture filtering.
// It returns the loaded rl.Font ready for use in rendering.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp creates and initializes an App around a fresh simulation built from cfg.
// Window and GL context must already exist when useGPU is requested.
func NewApp(cfg *config.Config, useGPU bool) *App {
	sim := core.New(cfg.Tuning(), cfg.Seed)

	eng := audio.NewEngine()
	if cfg.Audio {
		if err := eng.Start(); err != nil {
			fmt.Printf("Audio Init Error: %v\n", err)
		}
	}

	app := &App{
		Sim:     sim,
		Cfg:     cfg,
		Running: true,
		Camera: rl.Camera2D{
			Offset: rl.NewVector2(640, 360),
			Target: rl.NewVector2(0, 0),
			Zoom:   4.0,
		},
		Font:    loadFont(),
		sprites: make(map[uint64]*bodySprite),
		Audio:   eng,
	}
	sim.OnRemove = func(id uint64) {
		delete(app.sprites, id)
	}

	if cfg.SpawnRate > 0 {
		app.Spawner = core.NewAutoSpawner(cfg.SpawnRate, cfg.Seed+1)
	}

	// Glow Texture
	img := rl.GenImageGradientRadial(64, 64, 0.0, rl.White, rl.NewColor(0, 0, 0, 0))
	app.ParticleTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	// Starfield (screen space, drawn behind the camera pass)
	rng := rand.New(rand.NewSource(cfg.Seed))
	app.Stars = make([]bgStar, 180)
	for i := range app.Stars {
		app.Stars[i] = bgStar{
			Pos:    rl.NewVector2(rng.Float32()*1280, rng.Float32()*720),
			Bright: 0.2 + rng.Float32()*0.6,
			Phase:  rng.Float64() * 6.28,
		}
	}

	if useGPU {
		app.GLBackend = compute.NewOpenGLBackend(cfg.Sandbox.MaxBodies)
		if err := app.GLBackend.Init(); err != nil {
			fmt.Printf("Compute Init Error: %v\n", err)
		} else {
			sim.Backend = app.GLBackend
			app.UseCompute = true
		}
	}

	return app
}

// Run opens the window, builds the sandbox from cfg, and blocks in the
// update-draw loop until the window is closed.
func Run(cfg *config.Config, useGPU bool) {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(cfg, useGPU)
	defer app.Close()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.Quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) Close() {
	if a.UseCompute {
		a.GLBackend.Cleanup()
	}
	a.Audio.Stop()
	rl.UnloadTexture(a.ParticleTex)
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.Quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}

	// Keep the camera anchored to the actual window size
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	a.Camera.Offset = rl.NewVector2(w/2, h/2)

	// Zoom
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		a.Camera.Zoom *= 1.0 + wheel*0.1
		if a.Camera.Zoom < 1.0 {
			a.Camera.Zoom = 1.0
		}
		if a.Camera.Zoom > 12.0 {
			a.Camera.Zoom = 12.0
		}
	}

	// Pan
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.Camera.Target.X -= delta.X / a.Camera.Zoom
		a.Camera.Target.Y -= delta.Y / a.Camera.Zoom
	}

	// Spawn gesture: press anchors the body position, the release drag
	// vector becomes its launch velocity.
	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.Dragging = true
		a.DragStart = mouse
	}
	if a.Dragging && rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.Dragging = false
		world := rl.GetScreenToWorld2D(a.DragStart, a.Camera)
		dx := float64(mouse.X-a.DragStart.X) / float64(a.Camera.Zoom)
		dy := float64(mouse.Y-a.DragStart.Y) / float64(a.Camera.Zoom)
		vx, vy := a.Sim.SpawnVelocity(dx, dy)
		a.Sim.AddBody(float64(world.X), -float64(world.Y), vx, vy)
		a.Audio.Trigger(audio.CueSpawn)
	}

	if a.Running {
		dt := a.Sim.Tuning().Dt
		if a.Spawner != nil {
			if n := a.Spawner.Tick(a.Sim, dt); n > 0 {
				a.Audio.Trigger(audio.CueSpawn)
			}
		}
		a.Sim.Step()

		maxX, maxY := a.viewBounds(w, h)
		a.Sim.RemoveOutOfRange(maxX, maxY)
		a.Time += dt
	}

	// Collision flash + cue, fired once per idle-to-active transition
	active := a.Sim.EffectActive()
	if active {
		x, y := a.Sim.EffectAt()
		if !a.effectWas || x != a.effectX || y != a.effectY {
			a.effectAge = 0
			a.effectX, a.effectY = x, y
		}
		if !a.effectWas {
			a.Audio.Trigger(audio.CueCollision)
		}
		if a.Running {
			a.effectAge += a.Sim.Tuning().Dt
		}
	}
	a.effectWas = active

	a.Audio.UpdateEnergy(a.Sim.KineticEnergy())
}

// viewBounds returns the simulation-space culling rectangle: the camera
// extents grown by the tuned margin.
func (a *App) viewBounds(w, h float32) (maxX, maxY float64) {
	halfW := float64(w/2) / float64(a.Camera.Zoom)
	halfH := float64(h/2) / float64(a.Camera.Zoom)
	margin := a.Sim.Tuning().BoundsMargin
	maxX = float64(abs32(a.Camera.Target.X)) + halfW + margin
	maxY = float64(abs32(a.Camera.Target.Y)) + halfH + margin
	return maxX, maxY
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (a *App) reset() {
	a.Sim = core.New(a.Cfg.Tuning(), a.Cfg.Seed)
	a.Sim.OnRemove = func(id uint64) {
		delete(a.sprites, id)
	}
	if a.UseCompute {
		a.Sim.Backend = a.GLBackend
	}
	a.sprites = make(map[uint64]*bodySprite)
	a.Time = 0
	a.effectWas = false
	a.Running = true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawStarfield()

	rl.BeginMode2D(a.Camera)
	a.drawTrails()
	a.drawCentral()
	a.drawBodies()
	a.drawEffect()
	rl.EndMode2D()

	a.drawDragArrow()
	a.DrawHUD()

	rl.EndDrawing()
}
