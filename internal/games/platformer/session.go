package platformer

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// AudioSink receives fire-and-forget sound cues. Implementations must not
// block and must swallow their own playback failures.
type AudioSink interface {
	Jump()
	Coin()
	Win()
	StartTheme()
	StopTheme()
}

type silentSink struct{}

func (silentSink) Jump()       {}
func (silentSink) Coin()       {}
func (silentSink) Win()        {}
func (silentSink) StartTheme() {}
func (silentSink) StopTheme()  {}

// Input is one frame of player intent.
// Replay and Advance are edge events and only act on a completed level.
type Input struct {
	Controls
	Replay  bool
	Advance bool
	Pause   bool // Toggle
}

// Session owns every piece of mutable game state. One Update call is one
// frame; nothing else mutates it.
type Session struct {
	cfg    config.PlatformerConfig
	levels []LevelDefinition
	rng    *rand.Rand
	audio  AudioSink
	logger *log.Logger

	LevelIndex int
	Score      int
	Lives      int
	Camera     float64

	Complete  bool // Current level finished, waiting for replay/advance
	Won       bool // Final level finished
	winPlayed bool
	Paused    bool

	Now        float64 // Session clock in milliseconds
	Tick       int     // Frames since the session started
	LevelTicks int     // Frames spent in the current level attempt

	Player     Player
	Platforms  []core.Box
	Coins      []Coin
	Enemies    []Enemy
	Clouds     []Cloud
	WorldWidth float64
}

// NewSession creates a session on level 1 with a full reset applied.
// Nil audio or logger disable those outputs.
func NewSession(cfg config.PlatformerConfig, levels []LevelDefinition, seed int64, audio AudioSink, logger *log.Logger) *Session {
	if audio == nil {
		audio = silentSink{}
	}
	if len(levels) == 0 {
		levels = Levels()
	}
	s := &Session{
		cfg:    cfg,
		levels: levels,
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // decorative layout only
		audio:  audio,
		logger: logger,
		Player: NewPlayer(cfg),
	}
	s.Reset(true)
	return s
}

// Level returns the active level definition.
func (s *Session) Level() LevelDefinition {
	return s.levels[s.LevelIndex]
}

// LevelCount returns the number of levels in play order.
func (s *Session) LevelCount() int {
	return len(s.levels)
}

// IsFinalLevel reports whether no level follows the active one.
func (s *Session) IsFinalLevel() bool {
	return s.LevelIndex == len(s.levels)-1
}

// Config returns the parameters the session runs with.
func (s *Session) Config() config.PlatformerConfig {
	return s.cfg
}

// Reset rebuilds the active level and puts the player at the start.
// A full reset also restores score and lives.
func (s *Session) Reset(full bool) {
	if full {
		s.Score = 0
		s.Lives = s.cfg.Session.Lives
	}

	s.load(true)
	s.Complete = false
	s.Won = false
	s.winPlayed = false
	s.LevelTicks = 0

	if s.Level().Theme {
		s.audio.StartTheme()
	} else {
		s.audio.StopTheme()
	}

	s.debug("level reset", "level", s.Level().Number, "full", full, "score", s.Score, "lives", s.Lives)
}

// SelectLevel starts a fresh run on the given zero-based level.
// Out-of-range indexes are ignored.
func (s *Session) SelectLevel(index int) {
	if index < 0 || index >= len(s.levels) {
		return
	}
	s.LevelIndex = index
	s.Reset(true)
}

// Replay restarts the active level with a full reset.
func (s *Session) Replay() {
	s.Reset(true)
}

// Advance moves to the next level keeping score and lives.
// Returns false on the final level.
func (s *Session) Advance() bool {
	if s.IsFinalLevel() {
		return false
	}
	s.LevelIndex++
	s.Reset(false)
	return true
}

// load rebuilds level entities and places the player at the start.
func (s *Session) load(regenerateClouds bool) {
	def := s.Level()

	s.Platforms = append(s.Platforms[:0], def.Platforms...)

	s.Coins = s.Coins[:0]
	for _, c := range def.Coins {
		s.Coins = append(s.Coins, Coin{X: c.X, Y: c.Y, Size: s.cfg.Coin.Size})
	}

	s.Enemies = s.Enemies[:0]
	for _, spawn := range def.Enemies {
		s.Enemies = append(s.Enemies, NewEnemy(spawn, s.cfg.Enemy))
	}

	s.WorldWidth = def.WorldWidth(s.cfg.World.WidthPadding)
	if regenerateClouds {
		s.Clouds = GenerateClouds(s.rng, s.Platforms, s.WorldWidth, s.cfg.Clouds)
	}

	s.Player.Respawn(s.cfg.Player.StartX, s.cfg.Player.StartY)
	s.Camera = 0
}

// respawn puts the player back at the level start after losing a life,
// with a fresh invincibility window.
func (s *Session) respawn() {
	s.load(false)
	s.Player.MakeInvincible(s.Now, s.cfg.Player.InvincibleMs)
}

// loseLife takes one life and either respawns the player or, on the last
// life, ends the run with a full reset. Returns the RunOver event if the
// run ended.
func (s *Session) loseLife(cause string) []core.Event {
	s.Lives--
	s.debug("life lost", "cause", cause, "lives", s.Lives)

	if s.Lives <= 0 {
		ev := core.Event{Kind: core.EventRunOver, Score: s.Score, Level: s.Level().Number, Tick: s.LevelTicks}
		s.info("run over", "score", s.Score, "level", ev.Level)
		s.Reset(true)
		return []core.Event{ev}
	}

	s.respawn()
	return nil
}

// Update advances the session by one frame of dt milliseconds.
func (s *Session) Update(in Input, dt float64) []core.Event {
	// The clock is sampled once; every timer in this frame compares against it.
	s.Now += dt
	s.Tick++

	if in.Pause {
		s.Paused = !s.Paused
	}
	if s.Paused {
		return nil
	}

	// A completed level is frozen until the player picks a transition.
	if s.Complete {
		if in.Advance && s.Advance() {
			return nil
		}
		if in.Replay {
			s.Replay()
		}
		return nil
	}

	events := s.simulate(in)
	s.checkInvariants()
	return events
}

func (s *Session) simulate(in Input) []core.Event {
	s.LevelTicks++
	now := s.Now
	p := &s.Player

	if Integrate(p, in.Controls, s.cfg, now) {
		s.audio.Jump()
	}
	ResolvePlatforms(p, s.Platforms)
	Animate(p, s.cfg, now)
	s.Camera = max(0, p.X-s.cfg.Camera.Lead)

	for i := range s.Enemies {
		e := &s.Enemies[i]
		UpdateEnemy(e, now, s.cfg.Enemy.RemoveAfterMs)

		switch Classify(e, p, s.cfg.Enemy.StompTolerance) {
		case ContactStomp:
			e.Kill(now)
			p.VY = s.cfg.Enemy.StompBounce
			s.Score += s.cfg.Enemy.StompScore
		case ContactHit:
			if p.IsInvincible(now) {
				continue
			}
			// Losing a life rebuilds the level, so the rest of this frame
			// would act on fresh entities.
			return s.loseLife("enemy")
		}
	}

	for i := range s.Coins {
		if CollectCoin(&s.Coins[i], p) {
			s.Score += s.cfg.Coin.Score
			s.audio.Coin()
		}
	}

	if p.X > s.Level().Threshold {
		return s.completeLevel()
	}

	if p.Y+p.H >= s.cfg.World.Floor {
		return s.loseLife("fall")
	}

	return nil
}

func (s *Session) completeLevel() []core.Event {
	s.Complete = true
	s.audio.StopTheme()
	if !s.winPlayed {
		s.audio.Win()
		s.winPlayed = true
	}

	number := s.Level().Number
	events := []core.Event{{Kind: core.EventLevelComplete, Score: s.Score, Level: number, Tick: s.LevelTicks}}
	if s.IsFinalLevel() {
		s.Won = true
		events = append(events, core.Event{Kind: core.EventGameWon, Score: s.Score, Level: number, Tick: s.LevelTicks})
	}
	s.info("level complete", "level", number, "score", s.Score, "ticks", s.LevelTicks)
	return events
}

// checkInvariants repairs states that should be unreachable.
func (s *Session) checkInvariants() {
	if s.Lives >= 0 && s.Score >= 0 {
		return
	}
	if s.logger != nil {
		s.logger.Warn("invariant violated, resetting", "lives", s.Lives, "score", s.Score)
	}
	s.Lives = max(s.Lives, 0)
	s.Score = max(s.Score, 0)
	s.Reset(true)
}

func (s *Session) debug(msg string, kv ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, kv...)
	}
}

func (s *Session) info(msg string, kv ...any) {
	if s.logger != nil {
		s.logger.Info(msg, kv...)
	}
}
