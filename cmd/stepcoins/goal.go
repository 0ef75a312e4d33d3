package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stepcoins/internal/goals"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show or set the daily step goal",
}

var goalSetCmd = &cobra.Command{
	Use:   "set <steps>",
	Short: "Set the daily step goal",
	Long: `Set the daily step goal. The goal must be a positive whole number
greater than the steps already walked today.

Examples:
  stepcoins goal set 10000`,
	Args: cobra.ExactArgs(1),
	Run:  runGoalSet,
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the daily step goal",
	Args:  cobra.NoArgs,
	Run:   runGoalShow,
}

func init() {
	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalShowCmd)
}

func runGoalSet(cmd *cobra.Command, args []string) {
	goal, err := goals.ParseGoal(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Please enter a valid number.")
		os.Exit(1)
	}

	env, err := newEnv(cmd.Context(), envOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	today, _ := env.dayTotals()
	tracker := goals.NewTracker(env.deps.KV)
	if err := tracker.SetDailyGoal(goal, today); err != nil {
		if errors.Is(err, goals.ErrGoalTooLow) {
			env.fail("Daily goal must be greater than today's steps (%s).\n", goals.FormatSteps(today))
		}
		env.fail("Error: %v\n", err)
	}

	fmt.Printf("Daily goal set to %s steps.\n", goals.FormatSteps(goal))
	fmt.Println(tracker.RemainingText(today))
	env.Close()
}

func runGoalShow(cmd *cobra.Command, _ []string) {
	env, err := newEnv(cmd.Context(), envOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer env.Close()

	tracker := goals.NewTracker(env.deps.KV)
	today, _ := env.dayTotals()
	if tracker.Goal() <= 0 {
		fmt.Println(goals.NoGoalText)
		return
	}
	fmt.Printf("Daily goal: %s steps\n", goals.FormatSteps(tracker.Goal()))
	fmt.Println(tracker.RemainingText(today))
}
