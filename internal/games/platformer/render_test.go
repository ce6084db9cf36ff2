package platformer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/assets"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

type drawCall struct {
	kind   string
	sprite string
	dst    core.Box
	color  core.Color
	text   string
}

type recordingRenderer struct {
	calls []drawCall
}

func (r *recordingRenderer) DrawImage(sprite *assets.Sprite, dst core.Box, flip bool) {
	r.calls = append(r.calls, drawCall{kind: "image", sprite: sprite.Name, dst: dst})
}

func (r *recordingRenderer) FillRect(dst core.Box, c core.Color) {
	r.calls = append(r.calls, drawCall{kind: "rect", dst: dst, color: c})
}

func (r *recordingRenderer) FillEllipse(cx, cy, rx, ry float64, c core.Color) {
	r.calls = append(r.calls, drawCall{kind: "ellipse", dst: core.NewBox(cx-rx, cy-ry, 2*rx, 2*ry), color: c})
}

func (r *recordingRenderer) DrawText(text string, x, y float64, size int) {
	r.calls = append(r.calls, drawCall{kind: "text", text: text, dst: core.NewBox(x, y, 0, 0)})
}

func (r *recordingRenderer) MeasureText(text string, size int) float64 {
	return float64(len(text) * size / 2)
}

func (r *recordingRenderer) count(kind string, c core.Color) int {
	n := 0
	for _, call := range r.calls {
		if call.kind == kind && call.color == c {
			n++
		}
	}
	return n
}

func (r *recordingRenderer) sprites(name string) int {
	n := 0
	for _, call := range r.calls {
		if call.kind == "image" && call.sprite == name {
			n++
		}
	}
	return n
}

func (r *recordingRenderer) hasText(sub string) bool {
	for _, call := range r.calls {
		if call.kind == "text" && strings.Contains(call.text, sub) {
			return true
		}
	}
	return false
}

func cloudsInView(s *Session) int {
	cfg := s.Config()
	n := 0
	for _, c := range s.Clouds {
		b := c.Box().Translate(-s.Camera*cfg.Camera.Parallax, 0)
		if b.Right() >= 0 && b.X <= cfg.World.ViewWidth {
			n++
		}
	}
	return n
}

func embeddedBundle(t *testing.T) *assets.Bundle {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	b := assets.LoadBundle(ctx, assets.Embedded(), SpriteNames(), time.Second, nil)
	require.Empty(t, b.Failed())
	return b
}

func TestDrawFrameFallbackShapes(t *testing.T) {
	s, _ := newTestSession(t, flatLevels(
		[]EnemySpawn{{X: 300, Y: 448, Speed: 0}, {X: 600, Y: 448, Speed: 0}},
		[]CoinSpawn{{X: 400, Y: 300}, {X: 500, Y: 300}},
	))
	s.Coins[1].Collected = true
	s.Enemies[1].Kill(0)

	r := &recordingRenderer{}
	DrawFrame(r, s, nil)

	assert.Equal(t, 1, r.count("rect", core.ColorBrown), "platform")
	assert.Equal(t, 1, r.count("ellipse", core.ColorYellow), "collected coins are hidden")
	assert.Equal(t, 1, r.count("rect", core.ColorGray), "dead enemies need their sprite")
	assert.Equal(t, 1, r.count("rect", core.ColorRed), "player")
	assert.Equal(t, cloudsInView(s), r.count("ellipse", core.ColorWhite))

	assert.True(t, r.hasText("Score: 0"))
	assert.True(t, r.hasText("Lives: 3"))
	assert.True(t, r.hasText("Level 1: Flat"))
}

func TestDrawFrameUsesSprites(t *testing.T) {
	s, _ := newTestSession(t, flatLevels(
		[]EnemySpawn{{X: 300, Y: 448, Speed: 0}, {X: 600, Y: 448, Speed: 0}},
		[]CoinSpawn{{X: 400, Y: 300}},
	))
	s.Enemies[1].Kill(0)

	r := &recordingRenderer{}
	DrawFrame(r, s, embeddedBundle(t))

	assert.Equal(t, 1, r.sprites(SpritePlatform))
	assert.Equal(t, 1, r.sprites(SpriteCoin))
	assert.Equal(t, 1, r.sprites(SpriteEnemy))
	assert.Equal(t, 1, r.sprites(SpriteEnemyDead))
	assert.Equal(t, 1, r.sprites(SpriteJump), "airborne player at the start")
	assert.Zero(t, r.count("rect", core.ColorRed))
}

func TestDrawFrameCameraOffset(t *testing.T) {
	s, _ := newTestSession(t, flatLevels(nil, nil))
	settle(t, s)
	s.Player.X = 1000
	s.Update(Input{}, frameMs)

	r := &recordingRenderer{}
	DrawFrame(r, s, nil)

	for _, call := range r.calls {
		if call.kind == "rect" && call.color == core.ColorRed {
			assert.Equal(t, 150.0, call.dst.X, "player sits at the camera lead")
		}
		if call.kind == "rect" && call.color == core.ColorBrown {
			assert.Equal(t, -850.0, call.dst.X)
		}
	}
}

func TestDrawFramePlayerBlinks(t *testing.T) {
	s, _ := newTestSession(t, flatLevels(nil, nil))
	s.Player.MakeInvincible(0, 1500)

	visible := 0
	for _, now := range []float64{50, 150, 250, 350} {
		s.Now = now
		r := &recordingRenderer{}
		DrawFrame(r, s, nil)
		visible += r.count("rect", core.ColorRed)
	}
	assert.Equal(t, 2, visible, "hidden on every other blink window")

	s.Now = 2000
	r := &recordingRenderer{}
	DrawFrame(r, s, nil)
	assert.Equal(t, 1, r.count("rect", core.ColorRed))
}

func TestDrawFrameOverlays(t *testing.T) {
	s, _ := newTestSession(t, flatLevels(nil, nil))
	settle(t, s)

	s.Complete = true
	r := &recordingRenderer{}
	DrawFrame(r, s, nil)
	assert.True(t, r.hasText("Level 1 Complete!"))

	s.Won = true
	r = &recordingRenderer{}
	DrawFrame(r, s, nil)
	assert.True(t, r.hasText("You Win!"))
	assert.False(t, r.hasText("Complete!"))

	s.Complete, s.Won, s.Paused = false, false, true
	r = &recordingRenderer{}
	DrawFrame(r, s, nil)
	assert.True(t, r.hasText("PAUSED"))
}

func TestDrawFrameFallbackCloudsWhenNoneGenerated(t *testing.T) {
	s, _ := newTestSession(t, flatLevels(nil, nil))
	s.Clouds = nil

	r := &recordingRenderer{}
	DrawFrame(r, s, nil)
	assert.Equal(t, len(fallbackClouds), r.count("ellipse", core.ColorWhite))
}

func TestScreenRendererProjects(t *testing.T) {
	screen := core.NewScreen(64, 24)
	sr := NewScreenRenderer(screen, 1024, 576)

	sr.FillRect(core.NewBox(0, 480, 1024, 96), core.ColorBrown)
	assert.Equal(t, '█', screen.Get(0, 23))
	assert.Equal(t, '█', screen.Get(63, 20))
	assert.Equal(t, ' ', screen.Get(0, 19))

	// Off-screen shapes are clipped.
	sr.FillRect(core.NewBox(-500, -500, 100, 100), core.ColorRed)
	sr.FillEllipse(5000, 5000, 10, 10, core.ColorRed)

	sr.FillEllipse(512, 100, 2, 2, core.ColorYellow)
	assert.Equal(t, '●', screen.Get(32, 4), "sub-cell shapes mark their center")

	sr.DrawText("Score: 5", 20, 30, hudFontSize)
	assert.Contains(t, screen.Row(1), "Score: 5")
	assert.InDelta(t, 8*16.0, sr.MeasureText("Score: 5", hudFontSize), 1e-9)
}

func TestScreenRendererDrawImage(t *testing.T) {
	sprite, err := assets.ParseSprite([]byte("name: block\ncolor: red\nrows:\n  - \"ab\"\n  - \"cd\"\n"))
	require.NoError(t, err)

	screen := core.NewScreen(64, 24)
	sr := NewScreenRenderer(screen, 64, 24)

	sr.DrawImage(sprite, core.NewBox(2, 2, 4, 4), false)
	assert.Equal(t, 'a', screen.Get(2, 2))
	assert.Equal(t, 'b', screen.Get(5, 2))
	assert.Equal(t, 'd', screen.Get(5, 5))
	assert.Equal(t, core.ColorRed, screen.GetCell(2, 2).Color)
}

func TestGameRenderTooSmall(t *testing.T) {
	g := New(WithConfig(config.DefaultPlatformerConfig()))
	rc := core.DefaultConfig()
	rc.ScreenW, rc.ScreenH = 20, 6
	g.Reset(rc)

	screen := core.NewScreen(20, 6)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Terminal too small")
}
