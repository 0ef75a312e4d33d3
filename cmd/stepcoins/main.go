// stepcoins is a step-counting companion with a coin game you pay for by
// walking.
//
// Usage:
//
//	stepcoins                 - Dashboard: steps, goal, play, history
//	stepcoins play            - Play the coin game (if today's walking unlocked it)
//	stepcoins status          - Print today's steps, goal and activity
//	stepcoins goal set <n>    - Set the daily step goal
//	stepcoins goal show       - Show the daily step goal
//	stepcoins steps add <n>   - Log steps walked without a pedometer
//	stepcoins steps show      - Show the step log
//	stepcoins history         - Show finished game sessions
//	stepcoins serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.stepcoins/stepcoins.db)
//	--config <path>       - Game config file (.yaml or .toml)
//	--log-level <level>   - debug, info, warn or error
//	--walk-rate <steps/s> - Simulated walking pace, negative uses the config
//	--mute                - Disable sound
//	--no-sensor           - Run without a pedometer
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stepcoins/internal/platform/tui"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagWalkRate float64
	flagMute     bool
	flagNoSensor bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stepcoins",
	Short: "Step Coins - walk to earn steps, spend them on falling coins",
	Long: `Step Coins counts your steps and turns them into currency for a
terminal coin game. Tilt the bag to catch falling coins; every coin costs
10 steps. Miss five coins and the game is over.

The game unlocks once today's steps match yesterday's.

Examples:
  stepcoins
  stepcoins goal set 8000
  stepcoins steps add 2500
  stepcoins play
  stepcoins serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runDashboard,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stepcoins/stepcoins.db", "Path to database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Float64Var(&flagWalkRate, "walk-rate", -1, "Simulated walking pace in steps/s (negative = from config)")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")
	rootCmd.PersistentFlags().BoolVar(&flagNoSensor, "no-sensor", false, "Run without a pedometer; steps come only from 'steps add'")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	env, err := newEnv(cmd.Context(), envOptions{tui: true, sensor: true, audio: true})
	if err != nil {
		return err
	}
	defer env.Close()

	return tui.RunApp(env.deps)
}
