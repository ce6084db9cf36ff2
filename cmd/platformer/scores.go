package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and best level clears",
	Long: `Display the top 10 finished runs and the fastest clear of each level.

Examples:
  platformer scores
  platformer scores --db ./scores.db
  platformer scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all recorded scores and clears")
}

func runScores(_ *cobra.Command, _ []string) {
	gameID := platformer.GameID

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Println("All scores cleared.")
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("High Scores - Platformer")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'platformer play' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "Rank", "Score", "Level", "Date")
		fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "----", "-----", "-----", "----")
		for i, entry := range scores {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10d  %-5d  %s\n", i+1, entry.Score, entry.Level, dateStr)
		}
	}

	clears, err := store.BestLevelClears(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving level clears: %v\n", err)
		return
	}
	if len(clears) == 0 {
		return
	}

	names := platformer.LevelNames()
	fps := max(flagFPS, 1)

	fmt.Println()
	fmt.Println("Best Clears")
	fmt.Println()
	fmt.Printf("  %-20s  %-8s  %s\n", "Level", "Time", "Score")
	fmt.Printf("  %-20s  %-8s  %s\n", "-----", "----", "-----")
	for _, c := range clears {
		name := fmt.Sprintf("%d", c.Level)
		if c.Level >= 1 && c.Level <= len(names) {
			name = fmt.Sprintf("%d. %s", c.Level, names[c.Level-1])
		}
		elapsed := time.Duration(c.Ticks) * time.Second / time.Duration(fps)
		fmt.Printf("  %-20s  %-8s  %d\n", name, fmt.Sprintf("%.2fs", elapsed.Seconds()), c.Score)
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
}
