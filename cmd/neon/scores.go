package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neonmask/neon-ascent/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run ranking",
	Long: `Display the top runs on record.

Examples:
  neon scores
  neon scores --limit 20`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 12, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) {
	// A missing or corrupt database is an empty ranking, not a failure.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Println("No runs recorded yet.")
		return
	}
	defer store.Close()

	entries, err := store.TopRuns(flagScoresLimit)
	if err != nil || len(entries) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'neon play' to set the first score!")
		return
	}

	fmt.Println("Neon Ascent - Top Runs")
	fmt.Println()
	fmt.Printf("  %-4s  %-14s  %-9s  %-7s  %-9s  %s\n", "Rank", "Name", "Score", "Dist", "End", "Date")
	fmt.Printf("  %-4s  %-14s  %-9s  %-7s  %-9s  %s\n", "----", "----", "-----", "----", "---", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-14s  %-9d  %-6dm  %-9s  %s\n",
			i+1, e.Name, e.Score, e.Distance, e.EndReason, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, err := store.HighScore()
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
}
