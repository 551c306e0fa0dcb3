package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pose-catcher/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catcher SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session steered with the keyboard.
All players share one leaderboard, kept in memory until the server stops.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.catcher/host_key

Examples:
  catcher serve                           # Listen on :23234 with auto-generated key
  catcher serve --ssh :2222               # Listen on port 2222
  catcher serve --host-key ./my_host_key  # Use specific host key
  catcher serve --difficulty hard         # Every player gets the hard preset

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := newLogger("catcher-ssh")

	game, err := loadConfig(logger)
	if err != nil {
		fatal("%v", err)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Game = game
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fatal("creating server: %v", err)
	}

	fmt.Printf("Starting catcher SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(cmd.Context()); err != nil {
		fatal("server: %v", err)
	}
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
