package platformer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/assets"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Renderer is the drawing surface a frame is described to. Coordinates
// are view units: world positions already shifted by the camera.
type Renderer interface {
	DrawImage(sprite *assets.Sprite, dst core.Box, flip bool)
	FillRect(dst core.Box, c core.Color)
	FillEllipse(cx, cy, rx, ry float64, c core.Color)
	DrawText(text string, x, y float64, size int)
	// MeasureText returns the width of text in view units.
	MeasureText(text string, size int) float64
}

// Sprite names the renderer asks the asset bundle for.
const (
	SpriteIdle      = "player_idle"
	SpriteJump      = "player_jump"
	SpritePlatform  = "platform"
	SpriteCoin      = "coin"
	SpriteEnemy     = "enemy"
	SpriteEnemyDead = "enemy_dead"
	SpriteCloud     = "cloud"
)

// SpriteNames lists every sprite a frame may use.
func SpriteNames() []string {
	return []string{
		SpriteIdle, walkSprite(0), walkSprite(1), walkSprite(2), SpriteJump,
		SpritePlatform, SpriteCoin, SpriteEnemy, SpriteEnemyDead, SpriteCloud,
	}
}

func walkSprite(frame int) string {
	return fmt.Sprintf("player_walk%d", frame+1)
}

// Font sizes passed to DrawText.
const (
	hudFontSize     = 12
	titleFontSize   = 30
	overlayFontSize = 20
)

// Fallback band drawn when a level has no clouds at all.
var fallbackClouds = []struct{ x, y, rx, ry float64 }{
	{120, 60, 70, 26}, {330, 90, 90, 30}, {560, 50, 80, 28},
	{760, 100, 100, 32}, {930, 70, 60, 22}, {450, 140, 70, 24},
}

// DrawFrame describes the current session state to r. A nil bundle, or a
// bundle missing sprites, falls back to primitive shapes.
func DrawFrame(r Renderer, s *Session, b *assets.Bundle) {
	cfg := s.Config()
	cam := s.Camera

	drawClouds(r, s, b, cam*cfg.Camera.Parallax)

	platform := b.Get(SpritePlatform)
	for _, p := range s.Platforms {
		dst := p.Translate(-cam, 0)
		if platform != nil {
			r.DrawImage(platform, dst, false)
		} else {
			r.FillRect(dst, core.ColorBrown)
		}
	}

	coin := b.Get(SpriteCoin)
	for i := range s.Coins {
		c := &s.Coins[i]
		if c.Collected {
			continue
		}
		dst := c.Box().Translate(-cam, 0)
		if coin != nil {
			r.DrawImage(coin, dst, false)
		} else {
			cx, cy := dst.Center()
			r.FillEllipse(cx, cy, c.Size/2, c.Size/2, core.ColorYellow)
		}
	}

	enemy, dead := b.Get(SpriteEnemy), b.Get(SpriteEnemyDead)
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if e.Removed {
			continue
		}
		dst := e.Box().Translate(-cam, 0)
		switch {
		case !e.Alive:
			// Without its sprite a corpse is simply not drawn.
			if dead != nil {
				r.DrawImage(dead, dst, false)
			}
		case enemy != nil:
			r.DrawImage(enemy, dst, e.Dir > 0)
		default:
			r.FillRect(dst, core.ColorGray)
		}
	}

	drawPlayer(r, s, b, cam)
	drawHUD(r, s)
}

func drawClouds(r Renderer, s *Session, b *assets.Bundle, offset float64) {
	cfg := s.Config()
	if len(s.Clouds) == 0 {
		for _, c := range fallbackClouds {
			r.FillEllipse(c.x, c.y, c.rx, c.ry, core.ColorWhite)
		}
		return
	}

	sprite := b.Get(SpriteCloud)
	for _, c := range s.Clouds {
		dst := c.Box().Translate(-offset, 0)
		if dst.Right() < 0 || dst.X > cfg.World.ViewWidth {
			continue
		}
		if sprite != nil {
			r.DrawImage(sprite, dst, false)
		} else {
			cx, cy := dst.Center()
			r.FillEllipse(cx, cy, dst.W/2, dst.H/2, core.ColorWhite)
		}
	}
}

func drawPlayer(r Renderer, s *Session, b *assets.Bundle, cam float64) {
	p := &s.Player
	cfg := s.Config()

	// Blink while invincible: hidden on every other window.
	if p.IsInvincible(s.Now) && int(math.Floor(s.Now/cfg.Player.BlinkMs))%2 == 0 {
		return
	}

	name := SpriteIdle
	switch {
	case !p.Grounded:
		name = SpriteJump
	case p.Moving():
		name = walkSprite(p.Frame)
	}

	dst := p.Box().Translate(-cam, 0)
	if sprite := b.Get(name); sprite != nil {
		r.DrawImage(sprite, dst, p.Facing < 0)
		return
	}
	r.FillRect(dst, core.ColorRed)
}

func drawHUD(r Renderer, s *Session) {
	cfg := s.Config()
	level := s.Level()

	r.DrawText(fmt.Sprintf("Score: %d", s.Score), 20, 30, hudFontSize)
	r.DrawText(fmt.Sprintf("Lives: %d", s.Lives), 20, 60, hudFontSize)
	title := fmt.Sprintf("Level %d: %s", level.Number, level.Name)
	r.DrawText(title, cfg.World.ViewWidth-20-r.MeasureText(title, hudFontSize), 30, hudFontSize)

	centered := func(text string, y float64, size int) {
		r.DrawText(text, (cfg.World.ViewWidth-r.MeasureText(text, size))/2, y, size)
	}
	mid := cfg.World.ViewHeight / 2

	switch {
	case s.Won:
		centered("You Win!", mid-20, titleFontSize)
		centered(fmt.Sprintf("Final score: %d", s.Score), mid+20, overlayFontSize)
		centered("Press R to Replay", mid+60, overlayFontSize)
	case s.Complete:
		centered(fmt.Sprintf("Level %d Complete!", level.Number), mid-20, titleFontSize)
		centered("Press N for Next Level or R to Replay", mid+20, overlayFontSize)
	case s.Paused:
		centered("PAUSED", mid, titleFontSize)
		centered("Press P to resume", mid+40, overlayFontSize)
	}
}

// ScreenRenderer projects view units onto a terminal character grid.
type ScreenRenderer struct {
	dst    *core.Screen
	scaleX float64
	scaleY float64
}

// NewScreenRenderer fits a viewW x viewH view onto dst.
func NewScreenRenderer(dst *core.Screen, viewW, viewH float64) *ScreenRenderer {
	return &ScreenRenderer{
		dst:    dst,
		scaleX: float64(dst.Width()) / viewW,
		scaleY: float64(dst.Height()) / viewH,
	}
}

// cells returns the half-open cell range covered by b. Any visible box
// covers at least one cell.
func (sr *ScreenRenderer) cells(b core.Box) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(b.X * sr.scaleX))
	y0 = int(math.Floor(b.Y * sr.scaleY))
	x1 = int(math.Ceil(b.Right() * sr.scaleX))
	y1 = int(math.Ceil(b.Bottom() * sr.scaleY))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

// DrawImage implements Renderer.
func (sr *ScreenRenderer) DrawImage(sprite *assets.Sprite, dst core.Box, flip bool) {
	x0, y0, x1, y1 := sr.cells(dst)
	w, h := float64(x1-x0), float64(y1-y0)
	for y := max(y0, 0); y < min(y1, sr.dst.Height()); y++ {
		for x := max(x0, 0); x < min(x1, sr.dst.Width()); x++ {
			u := (float64(x-x0) + 0.5) / w
			v := (float64(y-y0) + 0.5) / h
			if ch := sprite.Sample(u, v, flip); ch != ' ' {
				sr.dst.SetCell(x, y, ch, sprite.Color)
			}
		}
	}
}

// FillRect implements Renderer.
func (sr *ScreenRenderer) FillRect(dst core.Box, c core.Color) {
	x0, y0, x1, y1 := sr.cells(dst)
	sr.dst.FillRect(core.NewRect(x0, y0, x1-x0, y1-y0), '█', c)
}

// FillEllipse implements Renderer.
func (sr *ScreenRenderer) FillEllipse(cx, cy, rx, ry float64, c core.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	x0, y0, x1, y1 := sr.cells(core.NewBox(cx-rx, cy-ry, rx*2, ry*2))
	for y := max(y0, 0); y < min(y1, sr.dst.Height()); y++ {
		for x := max(x0, 0); x < min(x1, sr.dst.Width()); x++ {
			px := (float64(x) + 0.5) / sr.scaleX
			py := (float64(y) + 0.5) / sr.scaleY
			dx, dy := (px-cx)/rx, (py-cy)/ry
			if dx*dx+dy*dy <= 1 {
				sr.dst.SetCell(x, y, '█', c)
			}
		}
	}
	// Shapes smaller than a cell still mark their center.
	if x1-x0 == 1 || y1-y0 == 1 {
		sr.dst.SetCell(int(cx*sr.scaleX), int(cy*sr.scaleY), '●', c)
	}
}

// DrawText implements Renderer. The terminal has a single font size, so
// size is ignored; y is the text baseline.
func (sr *ScreenRenderer) DrawText(text string, x, y float64, size int) {
	row := int(math.Ceil(y*sr.scaleY)) - 1
	row = core.Clamp(row, 0, max(sr.dst.Height()-1, 0))
	sr.dst.DrawTextColor(int(math.Round(x*sr.scaleX)), row, text, core.ColorBrightWhite)
}

// MeasureText implements Renderer.
func (sr *ScreenRenderer) MeasureText(text string, size int) float64 {
	return float64(len([]rune(text))) / sr.scaleX
}
