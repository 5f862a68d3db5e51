package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orbitbox/internal/core"
)

// simToWorld maps simulation coordinates (y up) into the camera's world
// space (y down).
func simToWorld(x, y float64) rl.Vector2 {
	return rl.NewVector2(float32(x), float32(-y))
}

func (a *App) drawStarfield() {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	for _, s := range a.Stars {
		twinkle := 0.5 + 0.5*math.Sin(a.Time*1.7+s.Phase)
		alpha := s.Bright * (0.4 + 0.6*float32(twinkle))
		x := float32(math.Mod(float64(s.Pos.X), float64(w)))
		y := float32(math.Mod(float64(s.Pos.Y), float64(h)))
		rl.DrawPixelV(rl.NewVector2(x, y), rl.ColorAlpha(ColAccent, alpha))
	}
}

// drawCentral renders the fixed star: a flickering core, an amber halo,
// and slowly rotating rays. The flicker is pure decoration, the physics
// mass never changes.
func (a *App) drawCentral() {
	radius := float32(a.Sim.Central().CollisionRadius())
	flicker := 1.0 + 0.06*math.Sin(a.Time*9.0) + 0.03*math.Sin(a.Time*23.0)

	a.drawGlow(rl.NewVector2(0, 0), radius*5.0, rl.ColorAlpha(ColGlow, 0.35))
	a.drawGlow(rl.NewVector2(0, 0), radius*2.2*float32(flicker), rl.ColorAlpha(ColStar, 0.8))
	rl.DrawCircleV(rl.NewVector2(0, 0), radius*float32(flicker)*0.6, ColStar)

	for i := 0; i < 5; i++ {
		ang := a.Time*0.3 + float64(i)*2*math.Pi/5
		tip := rl.NewVector2(
			float32(math.Cos(ang))*radius*4.0,
			float32(math.Sin(ang))*radius*4.0,
		)
		rl.DrawLineEx(rl.NewVector2(0, 0), tip, 0.4, rl.ColorAlpha(ColGlow, 0.2))
	}
}

func (a *App) drawBodies() {
	for _, b := range a.Sim.Bodies() {
		sp := a.sprite(b)
		pos := simToWorld(b.X, b.Y)

		pulse := 1.0 + 0.15*math.Sin(a.Time*6.0+sp.Phase)
		a.drawGlow(pos, 4.0*float32(pulse), rl.ColorAlpha(sp.Tint, 0.5))
		rl.DrawCircleV(pos, 1.1, sp.Tint)
	}
}

// sprite returns the render state for a body, creating it on first sight.
// Removal cleanup happens in the Simulation.OnRemove hook.
func (a *App) sprite(b core.BodySnapshot) *bodySprite {
	if sp, ok := a.sprites[b.ID]; ok {
		return sp
	}
	sp := &bodySprite{
		Tint: rl.NewColor(
			uint8(b.Color[0]*255),
			uint8(b.Color[1]*255),
			uint8(b.Color[2]*255),
			255,
		),
		Phase: float64(b.ID%628) / 100.0,
	}
	a.sprites[b.ID] = sp
	return sp
}

func (a *App) drawTrails() {
	for _, b := range a.Sim.Bodies() {
		sp := a.sprite(b)
		trail := b.Trail
		for i := 0; i < len(trail)-1; i++ {
			// trail[0] is the newest sample, fade toward the tail
			fade := 1.0 - float32(i)/float32(len(trail))
			col := rl.ColorAlpha(sp.Tint, 0.45*fade)
			p0 := simToWorld(trail[i].X, trail[i].Y)
			p1 := simToWorld(trail[i+1].X, trail[i+1].Y)
			rl.DrawLineEx(p0, p1, 0.5, col)
		}
	}
}

func (a *App) drawEffect() {
	if !a.Sim.EffectActive() {
		return
	}
	dur := a.Sim.Tuning().EffectDuration.Seconds()
	frac := a.effectAge / dur
	if frac > 1 {
		frac = 1
	}

	pos := simToWorld(a.effectX, a.effectY)
	alpha := float32(1.0 - frac)
	ring := float32(a.Sim.Central().CollisionRadius()) * (1.0 + float32(frac)*6.0)

	a.drawGlow(pos, ring*1.5, rl.ColorAlpha(ColFlash, 0.5*alpha))
	rl.DrawCircleLinesV(pos, ring, rl.ColorAlpha(ColFlash, alpha))
	rl.DrawCircleLinesV(pos, ring*0.6, rl.ColorAlpha(ColSelect, alpha*0.7))
}

// drawGlow blits the radial gradient texture centered on pos at the given
// world radius.
func (a *App) drawGlow(pos rl.Vector2, radius float32, tint rl.Color) {
	size := float32(a.ParticleTex.Width)
	scale := radius * 2 / size
	origin := rl.NewVector2(pos.X-radius, pos.Y-radius)
	rl.DrawTextureEx(a.ParticleTex, origin, 0, scale, tint)
}

func (a *App) drawDragArrow() {
	if !a.Dragging {
		return
	}
	mouse := rl.GetMousePosition()
	rl.DrawLineEx(a.DragStart, mouse, 2, ColAccent)
	rl.DrawCircleV(a.DragStart, 4, ColSelect)

	// arrowhead at the release end
	dx := mouse.X - a.DragStart.X
	dy := mouse.Y - a.DragStart.Y
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length < 4 {
		return
	}
	ang := math.Atan2(float64(dy), float64(dx))
	for _, off := range []float64{0.6, -0.6} {
		back := rl.NewVector2(
			mouse.X-12*float32(math.Cos(ang+off)),
			mouse.Y-12*float32(math.Sin(ang+off)),
		)
		rl.DrawLineEx(mouse, back, 2, ColAccent)
	}
}

func (a *App) DrawHUD() {
	h := rl.GetScreenHeight()

	a.drawText("orbitbox", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %d / %d bodies", a.Sim.Count(), a.Sim.Tuning().MaxBodies), 160, 34, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, rl.GetScreenWidth()-130, 30, 16, col)

	backend := "CPU"
	if a.UseCompute {
		backend = "GPU"
	}
	a.drawText(fmt.Sprintf("impacts %d  escapes %d  evicted %d  [%s]",
		a.Sim.Collisions(), a.Sim.Escapes(), a.Sim.Evictions(), backend), 30, 58, 14, ColText)

	a.drawText("[DRAG] LAUNCH  [SPACE] PAUSE  [R] RESET  [WHEEL] ZOOM  [Q] QUIT", 30, h-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), rl.GetScreenWidth()-110, h-40, 14, ColTextDim)

	a.drawSpectrum()
}

// drawSpectrum renders the audio engine's 16 band meter in the lower left.
func (a *App) drawSpectrum() {
	if !a.Audio.Active {
		a.drawText("AUDIO [OFF]", 30, rl.GetScreenHeight()-70, 14, ColTextDim)
		return
	}
	baseY := int32(rl.GetScreenHeight() - 70)
	for i, level := range a.Audio.Spectrum() {
		bh := int32(level * 28)
		if bh > 28 {
			bh = 28
		}
		rl.DrawRectangle(int32(30+i*8), baseY-bh, 6, bh, rl.ColorAlpha(ColAccent, 0.7))
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
