package platformer

import "github.com/vovakirdan/tui-platformer/internal/core"

// Axis names the direction a collision was resolved along.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

// ResolvePlatform separates the player from one platform along the axis of
// smaller penetration. Equal penetrations resolve vertically, so a player
// hitting a corner exactly lands on it rather than sliding off.
func ResolvePlatform(p *Player, platform core.Box) Axis {
	body := p.Box()
	if !body.Overlaps(platform) {
		return AxisNone
	}

	overlapX, overlapY := body.Penetration(platform)
	if overlapX < overlapY {
		if p.X < platform.X {
			p.X = platform.X - p.W
		} else {
			p.X = platform.Right()
		}
		p.VX = 0
		return AxisX
	}

	if p.Y < platform.Y {
		p.Y = platform.Y - p.H
		p.VY = 0
		p.Grounded = true
	} else {
		p.Y = platform.Bottom()
		if p.VY < 0 {
			p.VY = 0
		}
	}
	return AxisY
}

// ResolvePlatforms runs ResolvePlatform against every platform in order.
func ResolvePlatforms(p *Player, platforms []core.Box) {
	for _, platform := range platforms {
		ResolvePlatform(p, platform)
	}
}
