// Package platformer implements a side-scrolling platform game: a player
// runs and jumps across fixed levels, collects coins, stomps patrolling
// enemies and reaches the end of each level.
//
// The simulation runs in world units of a 1024x576 view and is projected
// onto the terminal grid only when rendering.
package platformer

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/assets"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// GameID is the registry and score-storage identifier.
const GameID = "platformer"

// Minimum terminal size the playfield is readable at.
const (
	minScreenW = 40
	minScreenH = 12
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// startLevel stores the zero-based level to begin on, set via CLI or menu
var startLevel int

// defaultAssets and defaultAudio are attached to games created by the registry.
var (
	defaultAssets *assets.Bundle
	defaultAudio  AudioSink
	defaultLogger *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select the
// configured values unchanged.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = config.DifficultyFixed
	}
	difficultyPreset = p
}

// SetStartLevel sets the level (1-indexed) new games begin on.
func SetStartLevel(level int) {
	startLevel = max(level-1, 0)
}

// SetDefaults sets the sprite bundle, audio sink and logger used by games
// the registry creates. Nil values keep primitive shapes, silence and no logs.
func SetDefaults(bundle *assets.Bundle, audio AudioSink, logger *log.Logger) {
	defaultAssets = bundle
	defaultAudio = audio
	defaultLogger = logger
}

// Option configures a Game.
type Option func(*Game)

// WithAssets sets the sprite bundle.
func WithAssets(b *assets.Bundle) Option {
	return func(g *Game) { g.bundle = b }
}

// WithAudio sets the audio sink.
func WithAudio(a AudioSink) Option {
	return func(g *Game) { g.audio = a }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithConfig uses cfg instead of loading configuration from disk.
func WithConfig(cfg config.PlatformerConfig) Option {
	return func(g *Game) { g.fixedCfg = &cfg }
}

// WithLevels replaces the built-in level list.
func WithLevels(levels []LevelDefinition) Option {
	return func(g *Game) { g.levels = levels }
}

// WithStartLevel begins on the given zero-based level.
func WithStartLevel(index int) Option {
	return func(g *Game) { g.startLevel = index }
}

// Game adapts a Session to the arcade platform.
type Game struct {
	session  *Session
	runtime  core.RuntimeConfig
	fixedCfg *config.PlatformerConfig
	levels   []LevelDefinition
	bundle   *assets.Bundle
	audio    AudioSink
	logger   *log.Logger

	startLevel int
}

// New creates a platformer game. Package defaults set through SetDefaults
// and SetStartLevel apply first; options override them.
func New(opts ...Option) *Game {
	g := &Game{
		bundle:     defaultAssets,
		audio:      defaultAudio,
		logger:     defaultLogger,
		startLevel: startLevel,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Platformer"
}

// Reset starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	g.session = NewSession(g.loadConfig(), g.levels, runtime.Seed, g.audio, g.logger)
	if g.startLevel > 0 {
		g.session.SelectLevel(g.startLevel)
	}
}

func (g *Game) loadConfig() config.PlatformerConfig {
	if g.fixedCfg != nil {
		return *g.fixedCfg
	}

	cfg, err := config.LoadPlatformer(configPath)
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("using default config", "err", err)
		}
		cfg = config.DefaultPlatformerConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyPlatformerPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		g.Reset(g.runtime)
	}

	events := g.session.Update(InputFromFrame(in), g.runtime.FrameMillis())
	return core.StepResult{State: g.State(), Events: events}
}

// InputFromFrame maps platform actions onto game input.
func InputFromFrame(in core.InputFrame) Input {
	return Input{
		Controls: Controls{
			Left:  in.Has(core.ActionLeft),
			Right: in.Has(core.ActionRight),
			Jump:  in.Has(core.ActionJump),
		},
		Replay:  in.Has(core.ActionRestart),
		Advance: in.Has(core.ActionNext),
		Pause:   in.Has(core.ActionPause),
	}
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	if g.session == nil {
		return
	}
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	cfg := g.session.Config()
	DrawFrame(NewScreenRenderer(dst, cfg.World.ViewWidth, cfg.World.ViewHeight), g.session, g.bundle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score,
		Lives:    g.session.Lives,
		Level:    g.session.Level().Number,
		GameOver: g.session.Won,
		Paused:   g.session.Paused,
	}
}

// Session exposes the running session, nil before Reset.
func (g *Game) Session() *Session {
	return g.session
}

// Snapshot returns the current session snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{}
	}
	return g.session.Snapshot()
}

// LevelNames lists the built-in levels for pickers, in play order.
func LevelNames() []string {
	levels := Levels()
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.Name
	}
	return names
}

// Register game on package init
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
