package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stepcoins/internal/platform/tui"
	"github.com/vovakirdan/stepcoins/internal/storage"
)

var (
	flagHistoryPlain bool
	flagHistoryLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished game sessions",
	Long: `Show past game sessions with score, coins caught, steps spent and
coins missed.

Examples:
  stepcoins history
  stepcoins history --plain --limit 20`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print a plain table instead of the interactive view")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to print with --plain")
}

func runHistory(cmd *cobra.Command, _ []string) {
	env, err := newEnv(cmd.Context(), envOptions{tui: !flagHistoryPlain})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if env.store == nil {
		env.fail("Error: history needs a database (see --db)\n")
	}
	defer env.Close()

	if !flagHistoryPlain {
		width, height := terminalSize()
		if err := tui.RunHistory(env.store, storage.DefaultUser, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running history: %v\n", err)
		}
		return
	}

	sessions, err := env.store.RecentSessions(storage.DefaultUser, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		return
	}

	fmt.Println("Game History")
	fmt.Println()
	if len(sessions) == 0 {
		fmt.Println("No games played yet.")
		fmt.Println()
		fmt.Println("Play 'stepcoins play' to spend your first steps!")
		return
	}

	fmt.Printf("  %-16s  %-6s  %-6s  %-6s  %-6s  %s\n", "Date", "Score", "Coins", "Steps", "Missed", "Time")
	fmt.Printf("  %-16s  %-6s  %-6s  %-6s  %-6s  %s\n", "----", "-----", "-----", "-----", "------", "----")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-6d  %-6d  %-6d  %-6d  %s\n",
			s.CreatedAt.Format("2006-01-02 15:04"), s.Score, s.Collected, s.Spent, s.Misses, s.Duration.Round(time.Second))
	}

	fmt.Println()
	if best, err := env.store.BestScore(storage.DefaultUser); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}
