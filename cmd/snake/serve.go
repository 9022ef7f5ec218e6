package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/metrics"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagVariant     string
	flagPromEnable  bool
	flagPromListen  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. Scores are stored per-server
(all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve                            # Listen on :23234 with auto-generated key
  snake serve --ssh :2222                # Listen on port 2222
  snake serve --variant snake_wrap       # Serve the wrapping board
  snake serve --prometheus               # Export metrics on :9090/metrics

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagVariant, "variant", defaultVariant, "Variant every session plays")
	serveCmd.Flags().BoolVar(&flagPromEnable, "prometheus", false, "Enable prometheus metrics")
	serveCmd.Flags().StringVar(&flagPromListen, "prometheus-listen", ":9090", "Prometheus http endpoint")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr, "snake-ssh")
	if err != nil {
		exitf("Error: %v\n", err)
	}
	defer closeLog()

	if err := configureGame(logger); err != nil {
		exitf("Error: %v\n", err)
	}
	if !registry.Exists(flagVariant) {
		exitf("Error: unknown variant %q\n", flagVariant)
	}

	var rec *metrics.Recorder
	if flagPromEnable {
		rec = metrics.New(prometheus.DefaultRegisterer)
		metrics.Serve(flagPromListen, prometheus.DefaultGatherer, logger)
	} else {
		logger.Info("prometheus exporter not enabled")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		GameID:      flagVariant,
		TickRate:    flagFPS,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg, store, rec, logger)
	if err != nil {
		exitf("Error creating server: %v\n", err)
	}

	fmt.Printf("Starting snake SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		exitf("Server error: %v\n", err)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}
