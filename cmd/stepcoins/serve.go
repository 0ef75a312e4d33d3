package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stepcoins/internal/config"
	"github.com/vovakirdan/stepcoins/internal/platform/tui"
	"github.com/vovakirdan/stepcoins/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Step Coins SSH server",
	Long: `Start an SSH server that lets users connect to their dashboard and
play.

Each SSH user gets their own steps, goal, balance and history, stored
under their user name in the server's database. Every session walks with
a simulated pedometer (see --walk-rate).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.stepcoins/host_key

Examples:
  stepcoins serve                           # Listen on :23235 with auto-generated key
  stepcoins serve --ssh :2222               # Listen on port 2222
  stepcoins serve --host-key ./my_host_key  # Use specific host key
  stepcoins serve --db ./steps.db           # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	coinsCfg, err := config.LoadCoins(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Sessions fall back to memory
		logger.Warn("could not open database", "error", err)
		store = nil
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.WalkRate = walkRate(coinsCfg)

	server, err := tui.NewSSHServer(cfg, coinsCfg, store, logger)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Step Coins SSH server starting on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portFromAddr(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	err = server.ListenAndServe()
	if store != nil {
		store.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portFromAddr extracts the port from an address like ":23235" or "0.0.0.0:23235".
func portFromAddr(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}
