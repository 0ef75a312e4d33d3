package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stepcoins/internal/goals"
	"github.com/vovakirdan/stepcoins/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the coin game",
	Long: `Start the coin game directly, skipping the dashboard.

The game is locked until today's steps match yesterday's.

Controls:
  ←/a, →/d  Tilt the bag
  ↓/s       Level the bag
  p         Pause
  r         Restart after game over
  q         Quit

Examples:
  stepcoins play
  stepcoins play --walk-rate 3
  stepcoins play --seed 12345 --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	env, err := newEnv(cmd.Context(), envOptions{tui: true, sensor: true, audio: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	today, yesterday := env.dayTotals()
	if !goals.CanPlay(today, yesterday) {
		env.fail("Goal not met: %s steps today, %s yesterday. Keep walking to unlock the game.\n",
			goals.FormatSteps(today), goals.FormatSteps(yesterday))
	}

	if err := tui.Run(env.deps); err != nil {
		env.fail("Error running game: %v\n", err)
	}
	env.Close()
}
