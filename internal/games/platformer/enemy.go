package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Enemy is a patrolling walker. Lifecycle: alive, then dead (after a stomp),
// then removed once the corpse timer runs out.
type Enemy struct {
	X, Y        float64
	W, H        float64
	Speed       float64
	Dir         int // -1 left, +1 right
	OriginX     float64
	PatrolRange float64

	Alive   bool
	Removed bool
	DeadAt  float64 // Clock value of the stomp
}

// Contact classifies an enemy touching the player.
type Contact int

const (
	ContactNone Contact = iota
	ContactStomp
	ContactHit
)

// String returns a lowercase name for the contact.
func (c Contact) String() string {
	switch c {
	case ContactStomp:
		return "stomp"
	case ContactHit:
		return "hit"
	default:
		return "none"
	}
}

// NewEnemy creates a live enemy from its spawn, walking left.
func NewEnemy(spawn EnemySpawn, cfg config.PlatformerEnemy) Enemy {
	patrol := spawn.PatrolRange
	if patrol <= 0 {
		patrol = cfg.PatrolRange
	}
	return Enemy{
		X:           spawn.X,
		Y:           spawn.Y,
		W:           cfg.Width,
		H:           cfg.Height,
		Speed:       spawn.Speed * cfg.SpeedScale,
		Dir:         -1,
		OriginX:     spawn.X,
		PatrolRange: patrol,
		Alive:       true,
	}
}

// Box returns the enemy's bounding box.
func (e *Enemy) Box() core.Box {
	return core.NewBox(e.X, e.Y, e.W, e.H)
}

// Kill marks the enemy dead at time now.
func (e *Enemy) Kill(now float64) {
	if !e.Alive {
		return
	}
	e.Alive = false
	e.DeadAt = now
}

// UpdateEnemy patrols a live enemy or ages a dead one toward removal.
func UpdateEnemy(e *Enemy, now, removeAfter float64) {
	if e.Removed {
		return
	}
	if !e.Alive {
		if now-e.DeadAt > removeAfter {
			e.Removed = true
		}
		return
	}

	e.X += e.Speed * float64(e.Dir)
	half := e.PatrolRange / 2
	if e.X < e.OriginX-half {
		e.Dir = 1
	}
	if e.X > e.OriginX+half {
		e.Dir = -1
	}
}

// Classify decides how a live enemy and the player interact this frame.
// A stomp needs the player falling with its feet less than tolerance below
// the enemy's top edge.
func Classify(e *Enemy, p *Player, tolerance float64) Contact {
	if !e.Alive || e.Removed {
		return ContactNone
	}
	if !p.Box().Overlaps(e.Box()) {
		return ContactNone
	}
	if p.VY > 0 && p.Y+p.H-e.Y < tolerance {
		return ContactStomp
	}
	return ContactHit
}
