package platformer

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Cloud is a decorative background rectangle.
type Cloud struct {
	X, Y  float64
	W, H  float64
	Scale float64
}

// Box returns the cloud's bounding box.
func (c Cloud) Box() core.Box {
	return core.NewBox(c.X, c.Y, c.W, c.H)
}

// GenerateClouds scatters up to cfg.Count clouds across the world by
// rejection sampling. A candidate is rejected if it touches any platform
// grown by PlatformMargin, or if the candidate grown by (SpacingX, SpacingY)
// touches a cloud already placed. When the main budget of
// Count*AttemptsPerCloud draws runs out, a fallback pass of
// FallbackAttempts draws keeps only the platform rule.
//
// The result is fully determined by rng's state.
func GenerateClouds(rng *rand.Rand, platforms []core.Box, worldWidth float64, cfg config.PlatformerClouds) []Cloud {
	clouds := make([]Cloud, 0, cfg.Count)
	spanX := math.Max(cfg.MinWorldWidth, worldWidth)

	grown := make([]core.Box, len(platforms))
	for i, p := range platforms {
		grown[i] = p.Expand(cfg.PlatformMargin, cfg.PlatformMargin)
	}

	candidate := func() Cloud {
		scale := cfg.MinScale + rng.Float64()*(cfg.MaxScale-cfg.MinScale)
		return Cloud{
			X:     math.Floor(rng.Float64() * spanX),
			Y:     math.Floor(cfg.MinY + rng.Float64()*(cfg.MaxY-cfg.MinY)),
			W:     cfg.BaseWidth * scale,
			H:     cfg.BaseHeight * scale,
			Scale: scale,
		}
	}
	clearOfPlatforms := func(c Cloud) bool {
		box := c.Box()
		for _, g := range grown {
			if box.Overlaps(g) {
				return false
			}
		}
		return true
	}
	clearOfClouds := func(c Cloud) bool {
		box := c.Box().Expand(cfg.SpacingX, cfg.SpacingY)
		for _, o := range clouds {
			if box.Overlaps(o.Box()) {
				return false
			}
		}
		return true
	}

	maxAttempts := cfg.Count * cfg.AttemptsPerCloud
	for attempts := 0; len(clouds) < cfg.Count && attempts < maxAttempts; attempts++ {
		c := candidate()
		if !clearOfPlatforms(c) || !clearOfClouds(c) {
			continue
		}
		clouds = append(clouds, c)
	}

	for attempts := 0; len(clouds) < cfg.Count && attempts < cfg.FallbackAttempts; attempts++ {
		c := candidate()
		if !clearOfPlatforms(c) {
			continue
		}
		clouds = append(clouds, c)
	}

	return clouds
}
