package platformer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

const frameMs = 1000.0 / 60

type recordingSink struct {
	jumps, coins, wins int
	starts, stops      int
}

func (r *recordingSink) Jump()       { r.jumps++ }
func (r *recordingSink) Coin()       { r.coins++ }
func (r *recordingSink) Win()        { r.wins++ }
func (r *recordingSink) StartTheme() { r.starts++ }
func (r *recordingSink) StopTheme()  { r.stops++ }

// flatLevels returns two levels on a long flat ground. Enemies and coins
// go on the first.
func flatLevels(enemies []EnemySpawn, coins []CoinSpawn) []LevelDefinition {
	ground := func() []core.Box { return []core.Box{core.NewBox(0, 480, 3000, 100)} }
	return []LevelDefinition{
		{Number: 1, Name: "Flat", Platforms: ground(), Enemies: enemies, Coins: coins, Threshold: 2500, Theme: true},
		{Number: 2, Name: "Flat Again", Platforms: ground(), Threshold: 2500},
	}
}

func newTestSession(t *testing.T, levels []LevelDefinition) (*Session, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	s := NewSession(config.DefaultPlatformerConfig(), levels, 1, sink, nil)
	return s, sink
}

// settle runs idle frames until the player stands on the ground.
func settle(t *testing.T, s *Session) {
	t.Helper()
	for n := 0; n < 120; n++ {
		s.Update(Input{}, frameMs)
		if s.Player.Grounded {
			return
		}
	}
	t.Fatal("player never landed")
}

func TestNewSessionStartsFresh(t *testing.T) {
	s, sink := newTestSession(t, nil)

	assert.Equal(t, 0, s.LevelIndex)
	assert.Equal(t, 3, s.Lives)
	assert.Zero(t, s.Score)
	assert.Equal(t, 2, s.LevelCount())
	assert.Len(t, s.Coins, len(Levels()[0].Coins))
	assert.Len(t, s.Enemies, len(Levels()[0].Enemies))
	assert.Equal(t, 1, sink.starts, "level one plays the theme")
	assert.Equal(t, 100.0, s.Player.X)
	assert.Equal(t, 100.0, s.Player.Y)
}

func TestSessionLandsOnFirstPlatform(t *testing.T) {
	s, _ := newTestSession(t, nil)
	settle(t, s)
	assert.Equal(t, 448.0, s.Player.Y)
	assert.Equal(t, 3, s.Lives)
}

func TestSessionStompScenario(t *testing.T) {
	s, _ := newTestSession(t, flatLevels([]EnemySpawn{{X: 300, Y: 448, Speed: 0}}, nil))

	s.Player.X = 300
	s.Player.Y = 448 - 32 - 2
	s.Player.VY = 4

	s.Update(Input{}, frameMs)

	assert.False(t, s.Enemies[0].Alive)
	assert.Equal(t, 200, s.Score)
	assert.Equal(t, -10.0, s.Player.VY)
	assert.Equal(t, 3, s.Lives)
}

func TestSessionCorpseRemovedAfterTimeout(t *testing.T) {
	s, _ := newTestSession(t, flatLevels([]EnemySpawn{{X: 300, Y: 448, Speed: 0}}, nil))
	s.Enemies[0].Kill(s.Now)

	s.Update(Input{}, 500)
	s.Update(Input{}, 500)
	require.Equal(t, 1000.0, s.Now)
	assert.False(t, s.Enemies[0].Removed, "exactly the timeout is not enough")

	s.Update(Input{}, 1)
	assert.True(t, s.Enemies[0].Removed)
}

func TestSessionHitCostsLife(t *testing.T) {
	s, _ := newTestSession(t, flatLevels([]EnemySpawn{{X: 300, Y: 448, Speed: 0}}, nil))
	s.Score = 300

	s.Player.X = 290
	s.Player.Y = 448
	s.Player.Grounded = true

	events := s.Update(Input{}, frameMs)

	assert.Empty(t, events)
	assert.Equal(t, 2, s.Lives)
	assert.Equal(t, 300, s.Score, "a hit keeps the score")
	assert.Equal(t, 100.0, s.Player.X, "respawned at the start")
	assert.True(t, s.Player.IsInvincible(s.Now))
	assert.InDelta(t, s.Now+1500, s.Player.InvincibleUntil, 1e-9)
}

func TestSessionInvincibleIgnoresHit(t *testing.T) {
	s, _ := newTestSession(t, flatLevels([]EnemySpawn{{X: 300, Y: 448, Speed: 0}}, nil))

	s.Player.X = 290
	s.Player.Y = 448
	s.Player.Grounded = true
	s.Player.MakeInvincible(s.Now, 10000)

	s.Update(Input{}, frameMs)
	assert.Equal(t, 3, s.Lives)
	assert.True(t, s.Enemies[0].Alive)
}

func TestSessionLastLifeResets(t *testing.T) {
	s, _ := newTestSession(t, flatLevels(
		[]EnemySpawn{{X: 300, Y: 448, Speed: 0}},
		[]CoinSpawn{{X: 1000, Y: 440}},
	))
	s.Lives = 1
	s.Score = 500
	s.Coins[0].Collected = true

	s.Player.X = 290
	s.Player.Y = 448
	s.Player.Grounded = true

	events := s.Update(Input{}, frameMs)

	require.Len(t, events, 1)
	assert.Equal(t, core.EventRunOver, events[0].Kind)
	assert.Equal(t, 500, events[0].Score)
	assert.Equal(t, 1, events[0].Level)

	assert.Equal(t, 3, s.Lives)
	assert.Zero(t, s.Score)
	assert.False(t, s.Coins[0].Collected)
	assert.True(t, s.Enemies[0].Alive)
	assert.False(t, s.Player.IsInvincible(s.Now))
}

func TestSessionFallCostsLife(t *testing.T) {
	levels := []LevelDefinition{{Number: 1, Name: "Gap", Platforms: []core.Box{core.NewBox(0, 480, 400, 100)}, Threshold: 2500}}
	s, _ := newTestSession(t, levels)

	s.Player.X = 1500
	s.Player.Y = 544

	s.Update(Input{}, frameMs)
	assert.Equal(t, 2, s.Lives)
	assert.Equal(t, 100.0, s.Player.X)
	assert.True(t, s.Player.IsInvincible(s.Now))

	// Falling ignores invincibility.
	s.Player.X = 1500
	s.Player.Y = 544
	s.Update(Input{}, frameMs)
	assert.Equal(t, 1, s.Lives)
}

func TestSessionCollectsCoin(t *testing.T) {
	s, sink := newTestSession(t, flatLevels(nil, []CoinSpawn{{X: 100, Y: 440}}))
	settle(t, s)

	assert.Equal(t, 100, s.Score)
	assert.True(t, s.Coins[0].Collected)
	assert.Equal(t, 1, sink.coins)

	for n := 0; n < 10; n++ {
		s.Update(Input{}, frameMs)
	}
	assert.Equal(t, 100, s.Score)
	assert.Equal(t, 1, sink.coins)
}

func TestSessionJumpCue(t *testing.T) {
	s, sink := newTestSession(t, flatLevels(nil, nil))
	settle(t, s)

	s.Update(Input{Controls: Controls{Jump: true}}, frameMs)
	assert.Equal(t, 1, sink.jumps)
	assert.Less(t, s.Player.VY, 0.0)

	s.Update(Input{Controls: Controls{Jump: true}}, frameMs)
	assert.Equal(t, 1, sink.jumps, "no jump in mid-air")
}

func TestSessionCameraFollowsPlayer(t *testing.T) {
	s, _ := newTestSession(t, flatLevels(nil, nil))
	settle(t, s)
	assert.Zero(t, s.Camera)

	s.Player.X = 1000
	s.Update(Input{}, frameMs)
	assert.Equal(t, 850.0, s.Camera)

	s.Player.X = 20
	s.Update(Input{}, frameMs)
	assert.Zero(t, s.Camera, "camera never goes negative")
}

func TestSessionLevelCompleteAndAdvance(t *testing.T) {
	s, sink := newTestSession(t, flatLevels(nil, nil))
	settle(t, s)
	s.Score = 700
	s.Lives = 2

	s.Player.X = 2501
	events := s.Update(Input{}, frameMs)

	require.Len(t, events, 1)
	assert.Equal(t, core.EventLevelComplete, events[0].Kind)
	assert.Equal(t, 1, events[0].Level)
	assert.True(t, s.Complete)
	assert.False(t, s.Won)
	assert.Equal(t, 1, sink.wins)

	// Frozen until a transition is chosen.
	x := s.Player.X
	for n := 0; n < 5; n++ {
		assert.Empty(t, s.Update(Input{Controls: Controls{Right: true}}, frameMs))
	}
	assert.Equal(t, x, s.Player.X)
	assert.Equal(t, 1, sink.wins, "win cue plays once")

	s.Update(Input{Advance: true}, frameMs)
	assert.Equal(t, 1, s.LevelIndex)
	assert.False(t, s.Complete)
	assert.Equal(t, 700, s.Score, "advancing keeps the score")
	assert.Equal(t, 2, s.Lives, "advancing keeps lives")
	assert.Equal(t, 100.0, s.Player.X)
}

func TestSessionFinalLevelWins(t *testing.T) {
	s, sink := newTestSession(t, flatLevels(nil, nil))
	s.SelectLevel(1)
	settle(t, s)
	s.Score = 900

	s.Player.X = 2501
	events := s.Update(Input{}, frameMs)

	require.Len(t, events, 2)
	assert.Equal(t, core.EventLevelComplete, events[0].Kind)
	assert.Equal(t, core.EventGameWon, events[1].Kind)
	assert.Equal(t, 900, events[1].Score)
	assert.True(t, s.Won)
	assert.Equal(t, 1, sink.wins)

	assert.False(t, s.Advance())
	s.Update(Input{Advance: true}, frameMs)
	assert.True(t, s.Complete, "nothing to advance to")

	s.Update(Input{Replay: true}, frameMs)
	assert.False(t, s.Complete)
	assert.False(t, s.Won)
	assert.Equal(t, 1, s.LevelIndex, "replay stays on the level")
	assert.Zero(t, s.Score)
	assert.Equal(t, 3, s.Lives)
}

func TestSessionTransitionsIgnoredWhilePlaying(t *testing.T) {
	s, _ := newTestSession(t, flatLevels(nil, nil))
	settle(t, s)
	s.Score = 100

	s.Update(Input{Advance: true, Replay: true}, frameMs)
	assert.Equal(t, 0, s.LevelIndex)
	assert.Equal(t, 100, s.Score)
}

func TestSessionThemeFollowsLevel(t *testing.T) {
	s, sink := newTestSession(t, flatLevels(nil, nil))
	require.Equal(t, 1, sink.starts)

	s.SelectLevel(1)
	assert.Equal(t, 1, sink.stops, "second level is silent")

	s.SelectLevel(0)
	assert.Equal(t, 2, sink.starts)

	s.SelectLevel(5)
	assert.Equal(t, 0, s.LevelIndex, "out of range is ignored")
}

func TestSessionPauseFreezes(t *testing.T) {
	s, _ := newTestSession(t, flatLevels(nil, nil))
	settle(t, s)

	s.Update(Input{Pause: true}, frameMs)
	require.True(t, s.Paused)

	x := s.Player.X
	ticks := s.LevelTicks
	for n := 0; n < 10; n++ {
		s.Update(Input{Controls: Controls{Right: true}}, frameMs)
	}
	assert.Equal(t, x, s.Player.X)
	assert.Equal(t, ticks, s.LevelTicks)

	s.Update(Input{Pause: true, Controls: Controls{Right: true}}, frameMs)
	assert.False(t, s.Paused)
	assert.Greater(t, s.Player.X, x)
}

func TestSessionRepairsInvariants(t *testing.T) {
	s, _ := newTestSession(t, flatLevels(nil, nil))
	settle(t, s)

	s.Lives = -1
	s.Score = 50
	s.Update(Input{}, frameMs)

	assert.Equal(t, 3, s.Lives)
	assert.Zero(t, s.Score)
}

func TestGameDeterminism(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	runtime := core.DefaultConfig()
	runtime.Seed = 12345

	script := func(i int) core.InputFrame {
		in := core.NewInputFrame()
		if i%90 < 70 {
			in.Set(core.ActionRight)
		}
		if i%45 == 0 {
			in.Set(core.ActionJump)
		}
		return in
	}

	run := func(seed int64) uint64 {
		g := New(WithConfig(cfg))
		rc := runtime
		rc.Seed = seed
		g.Reset(rc)
		for i := 0; i < 600; i++ {
			g.Step(script(i))
		}
		snap := g.Snapshot()
		return snap.Hash()
	}

	first := run(12345)
	assert.Equal(t, first, run(12345))
	assert.NotEqual(t, first, run(54321), "cloud layout depends on the seed")
}

func TestSnapshotRoundTrip(t *testing.T) {
	s, _ := newTestSession(t, nil)
	settle(t, s)

	snap := s.Snapshot()
	data, err := snap.Encode()
	require.NoError(t, err)

	got, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snap.Hash(), got.Hash())
	assert.Equal(t, s.Player.Y, got.Player.Y)
	assert.Len(t, got.Clouds, len(s.Clouds))

	_, err = DecodeSnapshot([]byte{0xc1})
	assert.Error(t, err)
}

func TestGameRegistered(t *testing.T) {
	require.True(t, registry.Exists(GameID))

	g, err := registry.Create(GameID)
	require.NoError(t, err)
	assert.Equal(t, "Platformer", g.Title())
}

func TestGameStepReportsState(t *testing.T) {
	g := New(WithConfig(config.DefaultPlatformerConfig()), WithStartLevel(1))
	g.Reset(core.DefaultConfig())

	res := g.Step(core.NewInputFrame())
	assert.Equal(t, 2, res.State.Level)
	assert.Equal(t, 3, res.State.Lives)
	assert.False(t, res.State.GameOver)

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	res = g.Step(in)
	assert.True(t, res.State.Paused)
}

func TestInputFromFrame(t *testing.T) {
	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	in.Set(core.ActionJump)
	in.Set(core.ActionNext)

	got := InputFromFrame(in)
	assert.Equal(t, Input{Controls: Controls{Left: true, Jump: true}, Advance: true}, got)
}
