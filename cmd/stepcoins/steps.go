package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stepcoins/internal/goals"
	"github.com/vovakirdan/stepcoins/internal/kv"
	"github.com/vovakirdan/stepcoins/internal/storage"
)

var (
	flagStepsDate string
	flagStepsDays int
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Log and show walked steps",
}

var stepsAddCmd = &cobra.Command{
	Use:   "add <steps>",
	Short: "Add steps walked without a pedometer",
	Long: `Add steps to a day's total. Today's total also feeds the game's
step balance.

Examples:
  stepcoins steps add 2500
  stepcoins steps add 4000 --date 2026-10-17`,
	Args: cobra.ExactArgs(1),
	Run:  runStepsAdd,
}

var stepsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the daily step log",
	Args:  cobra.NoArgs,
	Run:   runStepsShow,
}

func init() {
	stepsAddCmd.Flags().StringVar(&flagStepsDate, "date", "", "Day to log (YYYY-MM-DD, default today)")
	stepsShowCmd.Flags().IntVar(&flagStepsDays, "days", 7, "Number of days to show")

	stepsCmd.AddCommand(stepsAddCmd)
	stepsCmd.AddCommand(stepsShowCmd)
}

// parseDay reads a YYYY-MM-DD date in local time; empty means today.
func parseDay(text string) (time.Time, error) {
	if text == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation(time.DateOnly, text, time.Local)
}

func runStepsAdd(cmd *cobra.Command, args []string) {
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		fmt.Fprintf(os.Stderr, "Error: steps must be a positive whole number, got %q\n", args[0])
		os.Exit(1)
	}
	day, err := parseDay(flagStepsDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid --date %q (want YYYY-MM-DD)\n", flagStepsDate)
		os.Exit(1)
	}

	env, err := newEnv(cmd.Context(), envOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if env.store == nil {
		env.fail("Error: the step log needs a database (see --db)\n")
	}

	current, err := env.store.DailySteps(storage.DefaultUser, day)
	if err != nil {
		env.fail("Error reading steps: %v\n", err)
	}
	total := current + n
	if err := env.store.RecordDailySteps(storage.DefaultUser, day, total); err != nil {
		env.fail("Error recording steps: %v\n", err)
	}
	if storage.DayKey(day) == storage.DayKey(time.Now()) {
		env.deps.KV.Set(kv.KeyStepsToday, total)
	}

	fmt.Printf("%s: %s steps\n", storage.DayKey(day), goals.FormatSteps(total))
	env.Close()
}

func runStepsShow(cmd *cobra.Command, _ []string) {
	env, err := newEnv(cmd.Context(), envOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer env.Close()

	if env.store == nil {
		fmt.Println("No step log without a database.")
		return
	}
	days, err := env.store.StepHistory(storage.DefaultUser, flagStepsDays)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving steps: %v\n", err)
		return
	}

	fmt.Println("Step Log")
	fmt.Println()
	if len(days) == 0 {
		fmt.Println("No steps recorded yet.")
		return
	}

	fmt.Printf("  %-10s  %s\n", "Day", "Steps")
	fmt.Printf("  %-10s  %s\n", "---", "-----")
	for _, d := range days {
		fmt.Printf("  %-10s  %s\n", d.Day, goals.FormatSteps(d.Steps))
	}
}
