package platformer

import "github.com/vovakirdan/tui-platformer/internal/core"

// CoinSpawn is a coin's top-left corner.
type CoinSpawn struct {
	X, Y float64
}

// EnemySpawn places an enemy. PatrolRange 0 uses the configured default.
type EnemySpawn struct {
	X, Y        float64
	Speed       float64
	PatrolRange float64
}

// LevelDefinition is the static layout of one level.
type LevelDefinition struct {
	Number    int
	Name      string
	Platforms []core.Box
	Coins     []CoinSpawn
	Enemies   []EnemySpawn
	Threshold float64 // Player x beyond which the level is complete
	Theme     bool    // Whether the looping theme plays
}

// WorldWidth returns the rightmost platform edge plus padding, or a fixed
// fallback when the level has no platforms.
func (d LevelDefinition) WorldWidth(padding float64) float64 {
	if len(d.Platforms) == 0 {
		return 5200
	}
	right := d.Platforms[0].Right()
	for _, p := range d.Platforms[1:] {
		right = max(right, p.Right())
	}
	return right + padding
}

func boxes(defs [][4]float64) []core.Box {
	out := make([]core.Box, len(defs))
	for i, d := range defs {
		out[i] = core.NewBox(d[0], d[1], d[2], d[3])
	}
	return out
}

func coinsAt(defs [][2]float64) []CoinSpawn {
	out := make([]CoinSpawn, len(defs))
	for i, d := range defs {
		out[i] = CoinSpawn{X: d[0], Y: d[1]}
	}
	return out
}

// Levels returns fresh copies of the built-in level layouts, in play order.
func Levels() []LevelDefinition {
	return []LevelDefinition{levelOne(), levelTwo()}
}

func levelOne() LevelDefinition {
	return LevelDefinition{
		Number: 1,
		Name:   "Green Hills",
		Platforms: boxes([][4]float64{
			// ground run, with gaps
			{-1, 480, 300, 100}, {300, 480, 300, 100}, {596, 480, 300, 100},
			{1000, 480, 300, 100}, {1300, 480, 300, 100}, {1600, 480, 300, 100},
			{2000, 480, 300, 100}, {2300, 480, 300, 100}, {2600, 480, 300, 100},
			{2900, 480, 300, 100}, {3400, 480, 300, 100}, {3700, 480, 300, 100},
			{4000, 480, 300, 100}, {4400, 480, 300, 100}, {4700, 480, 300, 100},
			{5000, 480, 300, 100},
			// ledges
			{200, 300, 300, 50}, {550, 200, 300, 50}, {850, 120, 150, 40},
			{1100, 200, 100, 40}, {1200, 300, 200, 40}, {2500, 250, 200, 40},
			{2100, 230, 150, 40}, {1700, 360, 200, 40}, {2300, 310, 160, 40},
			{2700, 400, 90, 30}, {3000, 230, 130, 40}, {3500, 350, 100, 40},
			{3900, 170, 70, 30}, {4400, 330, 130, 50}, {4400, 230, 160, 40},
			{4700, 350, 250, 60}, {3300, 350, 160, 40}, {3600, 170, 170, 50},
			{4000, 330, 140, 40},
		}),
		Coins: coinsAt([][2]float64{
			{120, 440}, {420, 440}, {680, 440}, {1100, 160}, {1250, 260},
			{2500, 200}, {2320, 270}, {3000, 190}, {3600, 120},
		}),
		Enemies: []EnemySpawn{
			{X: 520, Y: 452, Speed: 1.0},
			{X: 1800, Y: 332, Speed: 1.2},
			{X: 2800, Y: 450, Speed: 0.9},
			{X: 3400, Y: 322, Speed: 1.1},
		},
		Threshold: 5000,
		Theme:     true,
	}
}

func levelTwo() LevelDefinition {
	return LevelDefinition{
		Number: 2,
		Name:   "Sky Steps",
		Platforms: boxes([][4]float64{
			{0, 480, 400, 100}, {500, 380, 200, 40}, {800, 300, 200, 40},
			{1200, 250, 200, 40}, {1600, 350, 250, 50}, {2000, 250, 150, 40},
			{2300, 400, 200, 50}, {2700, 320, 200, 40}, {3100, 200, 200, 40},
			{3500, 120, 200, 40}, {3900, 250, 250, 50}, {4400, 400, 300, 60},
			{4900, 280, 200, 40},
		}),
		Coins: coinsAt([][2]float64{
			{150, 420}, {550, 340}, {850, 260}, {1250, 160}, {1650, 300},
			{2050, 200}, {2350, 350}, {2750, 270}, {3150, 150}, {3550, 80},
			{3950, 200}, {4450, 350}, {4950, 230},
		}),
		Enemies: []EnemySpawn{
			{X: 600, Y: 352, Speed: 1.2},
			{X: 1300, Y: 222, Speed: 1.4},
			{X: 1700, Y: 322, Speed: 1.0},
			{X: 2400, Y: 372, Speed: 1.3},
			{X: 2800, Y: 292, Speed: 0.8},
			{X: 3600, Y: 92, Speed: 1.1},
			{X: 4100, Y: 222, Speed: 1.0},
		},
		Threshold: 5200,
		Theme:     false,
	}
}
