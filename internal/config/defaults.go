package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			Gravity:     0.8,
			JumpImpulse: -18,
			MoveSpeed:   5,
		},
		World: PlatformerWorld{
			ViewWidth:    1024,
			ViewHeight:   576,
			Floor:        576,
			WidthPadding: 800,
		},
		Player: PlatformerPlayer{
			StartX:          100,
			StartY:          100,
			Width:           32,
			Height:          32,
			FrameIntervalMs: 120,
			WalkFrames:      3,
			InvincibleMs:    1500,
			BlinkMs:         100,
		},
		Enemy: PlatformerEnemy{
			Width:          32,
			Height:         32,
			PatrolRange:    120,
			SpeedScale:     1.0,
			StompTolerance: 12,
			StompBounce:    -10,
			StompScore:     200,
			RemoveAfterMs:  1000,
		},
		Coin: PlatformerCoin{
			Size:  24,
			Score: 100,
		},
		Session: PlatformerSession{
			Lives: 3,
		},
		Camera: PlatformerCamera{
			Lead:     150,
			Parallax: 0.25,
		},
		Clouds: PlatformerClouds{
			Count:            12,
			MinY:             10,
			MaxY:             180,
			PlatformMargin:   50,
			SpacingX:         60,
			SpacingY:         30,
			MinScale:         0.9,
			MaxScale:         1.4,
			BaseWidth:        300,
			BaseHeight:       120,
			AttemptsPerCloud: 25,
			FallbackAttempts: 200,
			MinWorldWidth:    800,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "platformer":
		return defaultPlatformerYAML
	default:
		return nil
	}
}
