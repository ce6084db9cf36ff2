package platformer

import "github.com/vovakirdan/tui-platformer/internal/core"

// Coin is a one-shot pickup.
type Coin struct {
	X, Y      float64
	Size      float64
	Collected bool
}

// Box returns the coin's bounding box.
func (c *Coin) Box() core.Box {
	return core.NewBox(c.X, c.Y, c.Size, c.Size)
}

// CollectCoin marks the coin collected if the player touches it and reports
// whether that happened on this call.
func CollectCoin(c *Coin, p *Player) bool {
	if c.Collected {
		return false
	}
	if !p.Box().Overlaps(c.Box()) {
		return false
	}
	c.Collected = true
	return true
}
