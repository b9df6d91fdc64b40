package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/neonmask/neon-ascent/internal/config"
	"github.com/neonmask/neon-ascent/internal/core"
	"github.com/neonmask/neon-ascent/internal/games/neon"
	"github.com/neonmask/neon-ascent/internal/platform/tui"
	"github.com/neonmask/neon-ascent/internal/registry"
	"github.com/neonmask/neon-ascent/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a new run.

Controls:
  A/Left, D/Right - Move
  Space/W/Up      - Jump (double-tap mid-air with the ⇈ power-up)
  X               - Dash (with the » power-up)
  P               - Pause
  Esc             - Abandon the run
  R               - Restart (after the run ends)
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  neon play
  neon play --seed 42
  neon play --seed my-favorite-level --difficulty hard
  neon play --config ./my-neon.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, args []string) {
	seed := resolveSeed()

	// Get terminal size early
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	neon.SetConfigPath(flagConfig)
	neon.SetDifficultyPreset(config.DifficultyPreset(flagDifficulty))

	game, err := registry.Create(neon.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open run storage; the game works without a ranking.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(game, store, cfg, localUsername())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// localUsername prefills the ranking name entry for local play.
func localUsername() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
