// platformer is a side-scrolling platform game played in the terminal.
//
// Usage:
//
//	platformer play           - Play from the first (or --level) level
//	platformer menu           - Start menu with level picker and scores
//	platformer serve          - Start SSH server for remote play
//	platformer scores         - Show high scores and best level clears
//	platformer list           - List games and levels
//	platformer sim            - Run a scripted game headlessly
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible cloud layouts
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--config <path>      - Custom platformer YAML config
//	--difficulty <name>  - easy, normal, hard or fixed
//	--assets <dir>       - Directory of sprite files overriding the built-in set
//	--log <path>         - Write logs to a file
//	--mute               - Disable sound
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/assets"
	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

// assetTimeout bounds sprite loading at startup.
const assetTimeout = 2 * time.Second

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagAssets     string
	flagLogPath    string
	flagVerbose    bool
	flagMute       bool
	flagVolume     float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Platformer - run, jump and stomp through your terminal",
	Long: `Platformer is a side-scrolling platform game for the terminal.
Collect coins, stomp enemies and reach the end of each level.

Available commands:
  play     - Play directly
  menu     - Start menu with level picker
  serve    - Start SSH server for remote play
  scores   - View high scores and best clears
  list     - Show games and levels
  sim      - Run a scripted game without a terminal

Examples:
  platformer play
  platformer play --level 2 --difficulty hard
  platformer menu
  platformer serve --ssh :2222
  platformer sim --ticks 1200 --seed 7`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Directory of sprite YAML files overriding the built-in set")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log debug messages")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")
	rootCmd.PersistentFlags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger returns the logger selected by --log, or nil when logging is
// off. The terminal belongs to the game, so logs never go to stdout.
func newLogger() (*log.Logger, func(), error) {
	if flagLogPath == "" {
		return nil, func() {}, nil
	}

	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { f.Close() }, nil
}

// loadAssets loads every sprite the game draws. Missing or broken sprites
// are logged and drawn as plain shapes.
func loadAssets(logger *log.Logger) *assets.Bundle {
	var provider assets.Provider = assets.Embedded()
	if flagAssets != "" {
		p, err := assets.WithOverrideDir(flagAssets)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v; using built-in sprites\n", err)
		} else {
			provider = p
		}
	}
	return assets.LoadBundle(context.Background(), provider, platformer.SpriteNames(), assetTimeout, logger)
}

// newAudio opens the speaker unless muted. The returned sink is always
// usable; if the device cannot be opened it stays silent.
func newAudio(logger *log.Logger) (platformer.AudioSink, func()) {
	if flagMute {
		return audio.Nop{}, func() {}
	}
	sink := audio.NewSink(flagVolume, logger)
	//nolint:errcheck // Initialize logs its own failure and leaves the sink silent
	sink.Initialize()
	return sink, sink.Close
}

// setupGame applies the global flags to games created afterwards and
// returns the logger they use. Call the returned function on exit.
func setupGame(withAudio bool) (*log.Logger, func(), error) {
	logger, closeLog, err := newLogger()
	if err != nil {
		return nil, nil, err
	}

	platformer.SetConfigPath(flagConfig)
	platformer.SetDifficultyPreset(flagDifficulty)

	var sink platformer.AudioSink = audio.Nop{}
	closeAudio := func() {}
	if withAudio {
		sink, closeAudio = newAudio(logger)
	}

	bundle := loadAssets(logger)
	if failed := bundle.Failed(); len(failed) > 0 && logger == nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load sprites %v\n", failed)
	}
	platformer.SetDefaults(bundle, sink, logger)

	return logger, func() {
		closeAudio()
		closeLog()
	}, nil
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
