package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stepcoins/internal/config"
	"github.com/vovakirdan/stepcoins/internal/goals"
	"github.com/vovakirdan/stepcoins/internal/kv"
	"github.com/vovakirdan/stepcoins/internal/sensor"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print today's steps and goal",
	Long: `Print the dashboard as plain text: today's and yesterday's steps,
progress toward the daily goal, and whether the game is unlocked.

Examples:
  stepcoins status`,
	Args: cobra.NoArgs,
	Run:  runStatus,
}

// currentActivity is what the pedometer would report right now.
func currentActivity(cfg config.CoinsConfig) sensor.ActivityKind {
	if flagNoSensor {
		return sensor.ActivityUnknown
	}
	return sensor.NewWalker(0, walkRate(cfg), nil).Activity()
}

func runStatus(cmd *cobra.Command, _ []string) {
	env, err := newEnv(cmd.Context(), envOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer env.Close()

	today, yesterday := env.dayTotals()
	tracker := goals.NewTracker(env.deps.KV)
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	fmt.Println("Step Coins")
	fmt.Println()
	fmt.Printf("  Steps today:  %s\n", goals.FormatSteps(today))
	fmt.Printf("  Yesterday:    %s\n", goals.FormatSteps(yesterday))
	fmt.Printf("  Activity:     %s\n", currentActivity(env.deps.Coins).Label())
	fmt.Printf("  Balance:      %s steps\n", goals.FormatSteps(today-env.deps.KV.Get(kv.KeyConsumedSteps)))
	fmt.Println()
	fmt.Printf("  %s\n", bar.ViewAs(tracker.Progress(today)))
	fmt.Printf("  %s\n", tracker.RemainingText(today))
	fmt.Println()

	if goals.CanPlay(today, yesterday) {
		fmt.Println("Goal met! Run 'stepcoins play' to spend your steps.")
	} else {
		fmt.Println("Goal not met. The game is locked.")
	}
}
