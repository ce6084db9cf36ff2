package platformer

import (
	"fmt"
	"hash/fnv"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is the observable session state, used for determinism tests and
// the headless sim output.
type Snapshot struct {
	Tick       uint64  `msgpack:"tick" yaml:"tick"`
	Now        float64 `msgpack:"now" yaml:"now_ms"`
	Level      int     `msgpack:"level" yaml:"level"`
	LevelTicks int     `msgpack:"level_ticks" yaml:"level_ticks"`
	Score      int     `msgpack:"score" yaml:"score"`
	Lives      int     `msgpack:"lives" yaml:"lives"`
	Camera     float64 `msgpack:"camera" yaml:"camera"`
	Complete   bool    `msgpack:"complete" yaml:"complete"`
	Won        bool    `msgpack:"won" yaml:"won"`
	Paused     bool    `msgpack:"paused" yaml:"paused"`

	Player PlayerSnapshot  `msgpack:"player" yaml:"player"`
	Coins  []bool          `msgpack:"coins" yaml:"coins_collected,flow"`
	Enemy  []EnemySnapshot `msgpack:"enemies" yaml:"enemies"`
	Clouds []CloudSnapshot `msgpack:"clouds" yaml:"clouds"`
}

// PlayerSnapshot is the player part of a Snapshot.
type PlayerSnapshot struct {
	X               float64 `msgpack:"x" yaml:"x"`
	Y               float64 `msgpack:"y" yaml:"y"`
	VX              float64 `msgpack:"vx" yaml:"vx"`
	VY              float64 `msgpack:"vy" yaml:"vy"`
	Grounded        bool    `msgpack:"grounded" yaml:"grounded"`
	Facing          int     `msgpack:"facing" yaml:"facing"`
	InvincibleUntil float64 `msgpack:"invincible_until" yaml:"invincible_until"`
}

// EnemySnapshot is one enemy of a Snapshot.
type EnemySnapshot struct {
	X       float64 `msgpack:"x" yaml:"x"`
	Dir     int     `msgpack:"dir" yaml:"dir"`
	Alive   bool    `msgpack:"alive" yaml:"alive"`
	Removed bool    `msgpack:"removed" yaml:"removed"`
	DeadAt  float64 `msgpack:"dead_at" yaml:"dead_at"`
}

// CloudSnapshot is one cloud of a Snapshot.
type CloudSnapshot struct {
	X float64 `msgpack:"x" yaml:"x"`
	Y float64 `msgpack:"y" yaml:"y"`
	W float64 `msgpack:"w" yaml:"w"`
	H float64 `msgpack:"h" yaml:"h"`
}

// Snapshot captures the session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       uint64(s.Tick), //#nosec G115 -- tick count is always positive
		Now:        s.Now,
		Level:      s.Level().Number,
		LevelTicks: s.LevelTicks,
		Score:      s.Score,
		Lives:      s.Lives,
		Camera:     s.Camera,
		Complete:   s.Complete,
		Won:        s.Won,
		Paused:     s.Paused,
		Player: PlayerSnapshot{
			X:               s.Player.X,
			Y:               s.Player.Y,
			VX:              s.Player.VX,
			VY:              s.Player.VY,
			Grounded:        s.Player.Grounded,
			Facing:          s.Player.Facing,
			InvincibleUntil: s.Player.InvincibleUntil,
		},
		Coins:  make([]bool, len(s.Coins)),
		Enemy:  make([]EnemySnapshot, len(s.Enemies)),
		Clouds: make([]CloudSnapshot, len(s.Clouds)),
	}

	for i, c := range s.Coins {
		snap.Coins[i] = c.Collected
	}
	for i, e := range s.Enemies {
		snap.Enemy[i] = EnemySnapshot{X: e.X, Dir: e.Dir, Alive: e.Alive, Removed: e.Removed, DeadAt: e.DeadAt}
	}
	for i, c := range s.Clouds {
		snap.Clouds[i] = CloudSnapshot{X: c.X, Y: c.Y, W: c.W, H: c.H}
	}
	return snap
}

// Encode serializes the snapshot as MessagePack.
func (snap *Snapshot) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("platformer: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a MessagePack snapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("platformer: decode snapshot: %w", err)
	}
	return snap, nil
}

// Hash returns an FNV-1a hash of the encoded snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	data, err := snap.Encode()
	if err != nil {
		return 0
	}
	h := fnv.New64a()
	h.Write(data)
	return h.Sum64()
}
