package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/ienet/internal/broker"
	"github.com/udisondev/ienet/internal/config"
	"github.com/udisondev/ienet/internal/lobby"
)

const ConfigPath = "config/lobbyserver.yaml"

var bindAddr string

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	root := &cobra.Command{
		Use:           "lobbyserver",
		Short:         "ienet — community-operated EarthNet lobby server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
	root.Flags().StringVarP(&bindAddr, "bind", "b", "", "listen address as addr:port (overrides config)")

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("IENET_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadLobbyServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if bindAddr != "" {
		host, port, err := net.SplitHostPort(bindAddr)
		if err != nil {
			return fmt.Errorf("parsing --bind: %w", err)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("parsing --bind port: %w", err)
		}
		cfg.BindAddress = host
		cfg.Port = p
	}

	// Configure slog; the LOG_LEVEL environment variable wins over config.
	level := cfg.LogLevel
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	})))

	slog.Info("ienet lobby server starting", "bind", cfg.Addr(), "log_level", level)

	br := broker.New(cfg)
	srv, err := lobby.NewServer(cfg, br.Events())
	if err != nil {
		return fmt.Errorf("creating lobby server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return br.Run(gctx)
	})
	g.Go(func() error {
		return srv.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("ienet lobby server stopped")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
