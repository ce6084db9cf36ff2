package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Controls is the per-frame input the physics step consumes.
type Controls struct {
	Left  bool
	Right bool
	Jump  bool // Request; honored only when grounded
}

// Player is the single controllable body of a session.
// Times (LastFrameAt, InvincibleUntil) are session clock milliseconds.
type Player struct {
	X, Y   float64
	VX, VY float64
	W, H   float64
	Speed  float64

	Grounded bool
	Facing   int // +1 right, -1 left

	Frame       int     // Walk animation frame
	LastFrameAt float64 // Clock value of the last frame advance

	InvincibleUntil float64 // 0 means vulnerable
}

// NewPlayer creates a player at the configured start position.
func NewPlayer(cfg config.PlatformerConfig) Player {
	p := Player{
		W:     cfg.Player.Width,
		H:     cfg.Player.Height,
		Speed: cfg.Physics.MoveSpeed,
	}
	p.Respawn(cfg.Player.StartX, cfg.Player.StartY)
	return p
}

// Box returns the player's bounding box.
func (p *Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// Respawn moves the player to (x, y) and clears motion, animation and
// invincibility.
func (p *Player) Respawn(x, y float64) {
	p.X, p.Y = x, y
	p.VX, p.VY = 0, 0
	p.Grounded = false
	p.Facing = 1
	p.Frame = 0
	p.LastFrameAt = 0
	p.InvincibleUntil = 0
}

// IsInvincible reports whether damage is ignored at time now.
func (p *Player) IsInvincible(now float64) bool {
	return p.InvincibleUntil != 0 && now < p.InvincibleUntil
}

// MakeInvincible opens a damage-immunity window of d milliseconds.
func (p *Player) MakeInvincible(now, d float64) {
	p.InvincibleUntil = now + d
}

// Moving reports whether the player walks this frame.
func (p *Player) Moving() bool {
	return p.VX != 0
}

// Integrate advances the player one frame and reports whether a jump started.
//
// The jump request is checked against the grounded flag left by the previous
// frame's collision pass, before gravity and the floor clamp recompute it.
func Integrate(p *Player, in Controls, cfg config.PlatformerConfig, now float64) (jumped bool) {
	p.VX = 0
	if in.Left {
		p.VX = -p.Speed
		p.Facing = -1
	}
	if in.Right {
		p.VX = p.Speed
		p.Facing = 1
	}

	if in.Jump && p.Grounded {
		p.VY = cfg.Physics.JumpImpulse
		p.Grounded = false
		jumped = true
	}

	p.VY += cfg.Physics.Gravity
	p.X += p.VX
	p.Y += p.VY

	floor := cfg.World.Floor
	if p.Y+p.H > floor {
		p.Y = floor - p.H
		p.VY = 0
		p.Grounded = true
	} else {
		p.Grounded = false
	}

	if p.InvincibleUntil != 0 && now > p.InvincibleUntil {
		p.InvincibleUntil = 0
	}

	return jumped
}

// Animate advances the walk cycle while the player moves on the ground and
// rewinds it when idle.
func Animate(p *Player, cfg config.PlatformerConfig, now float64) {
	if !p.Grounded {
		return
	}
	if !p.Moving() {
		p.Frame = 0
		return
	}
	if now-p.LastFrameAt > cfg.Player.FrameIntervalMs {
		p.Frame = (p.Frame + 1) % cfg.Player.WalkFrames
		p.LastFrameAt = now
	}
}
