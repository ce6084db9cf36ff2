// Package config provides YAML-based game configuration loading and
// difficulty presets for the platformer.
package config

// PlatformerConfig contains all tunable parameters of the platformer.
// Distances are world units of the 1024x576 viewport, velocities are
// units per frame and durations are milliseconds.
type PlatformerConfig struct {
	Physics PlatformerPhysics `yaml:"physics"`
	World   PlatformerWorld   `yaml:"world"`
	Player  PlatformerPlayer  `yaml:"player"`
	Enemy   PlatformerEnemy   `yaml:"enemy"`
	Coin    PlatformerCoin    `yaml:"coin"`
	Session PlatformerSession `yaml:"session"`
	Camera  PlatformerCamera  `yaml:"camera"`
	Clouds  PlatformerClouds  `yaml:"clouds"`
}

// PlatformerPhysics defines per-frame integration parameters.
type PlatformerPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"` // Applied to vy, negative is up
	MoveSpeed   float64 `yaml:"move_speed"`
}

// PlatformerWorld defines viewport and floor geometry.
type PlatformerWorld struct {
	ViewWidth    float64 `yaml:"view_width"`
	ViewHeight   float64 `yaml:"view_height"`
	Floor        float64 `yaml:"floor"`         // Y of the world floor
	WidthPadding float64 `yaml:"width_padding"` // Added past the rightmost platform
}

// PlatformerPlayer defines the player body and timers.
type PlatformerPlayer struct {
	StartX          float64 `yaml:"start_x"`
	StartY          float64 `yaml:"start_y"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	FrameIntervalMs float64 `yaml:"frame_interval_ms"` // Walk animation step
	WalkFrames      int     `yaml:"walk_frames"`
	InvincibleMs    float64 `yaml:"invincible_ms"`
	BlinkMs         float64 `yaml:"blink_ms"`
}

// PlatformerEnemy defines enemy body and interaction parameters.
type PlatformerEnemy struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	PatrolRange    float64 `yaml:"patrol_range"`
	SpeedScale     float64 `yaml:"speed_scale"`     // Multiplies every spawn speed
	StompTolerance float64 `yaml:"stomp_tolerance"` // Max bottom-minus-top depth for a stomp
	StompBounce    float64 `yaml:"stomp_bounce"`    // Player vy after a stomp
	StompScore     int     `yaml:"stomp_score"`
	RemoveAfterMs  float64 `yaml:"remove_after_ms"`
}

// PlatformerCoin defines pickup parameters.
type PlatformerCoin struct {
	Size  float64 `yaml:"size"`
	Score int     `yaml:"score"`
}

// PlatformerSession defines run-level parameters.
type PlatformerSession struct {
	Lives int `yaml:"lives"`
}

// PlatformerCamera defines camera follow parameters.
type PlatformerCamera struct {
	Lead     float64 `yaml:"lead"`     // Player stays this far from the left edge
	Parallax float64 `yaml:"parallax"` // Cloud layer scroll factor
}

// PlatformerClouds defines the decorative cloud layout.
type PlatformerClouds struct {
	Count            int     `yaml:"count"`
	MinY             float64 `yaml:"min_y"`
	MaxY             float64 `yaml:"max_y"`
	PlatformMargin   float64 `yaml:"platform_margin"`
	SpacingX         float64 `yaml:"spacing_x"`
	SpacingY         float64 `yaml:"spacing_y"`
	MinScale         float64 `yaml:"min_scale"`
	MaxScale         float64 `yaml:"max_scale"`
	BaseWidth        float64 `yaml:"base_width"`
	BaseHeight       float64 `yaml:"base_height"`
	AttemptsPerCloud int     `yaml:"attempts_per_cloud"`
	FallbackAttempts int     `yaml:"fallback_attempts"`
	MinWorldWidth    float64 `yaml:"min_world_width"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
// Unknown values report false.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return DifficultyNormal, false
	}
}

// IsFixedPreset returns true if the preset keeps configured values untouched.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
