// neon is a procedurally generated neon platformer for the terminal.
//
// Usage:
//
//	neon play                - Start a run
//	neon scores              - Show the run ranking
//	neon serve               - Start SSH server for remote play
//	neon simulate            - Run a headless scripted simulation
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Level seed: a number, or any string (hashed)
//	--db <path>     - Set database path (default: ~/.neon/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Importing the game package registers it with the registry.
	"github.com/neonmask/neon-ascent/internal/games/neon"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neon",
	Short: "Neon Ascent - endless neon platforming in your terminal",
	Long: `Neon Ascent is a terminal platformer: run right through an endless
procedurally generated neon world, chain crystal pickups into combos,
and climb the ranking.

Available commands:
  play      - Start a run
  scores    - View the run ranking
  serve     - Start SSH server for remote play
  simulate  - Headless scripted simulation for tuning and replays

Examples:
  neon play
  neon play --seed 42 --difficulty hard
  neon scores
  neon serve --ssh :2222
  neon simulate --ticks 3600 --seed my-level`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().StringVar(&flagSeed, "seed", "", "Level seed: a number or any string (empty = time-based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.neon/scores.db", "Path to run database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
}

// resolveSeed parses the --seed flag. An empty flag means a time-based
// seed (chosen later); anything else must parse, and a bad seed is a
// hard error before the run starts.
func resolveSeed() int64 {
	if flagSeed == "" {
		return 0
	}
	seed, err := neon.ParseSeed(flagSeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return seed
}
