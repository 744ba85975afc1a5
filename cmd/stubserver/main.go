package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/mcoot/gameapi-e2e/internal/dependencies/clock"
	"github.com/mcoot/gameapi-e2e/internal/dependencies/random"
	"github.com/mcoot/gameapi-e2e/internal/stub"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	stubCfg := stub.DefaultConfig()
	if raw := os.Getenv("STUB_PLATFORMS"); raw != "" {
		platforms, err := parsePlatforms(raw)
		if err != nil {
			logger.Error("invalid STUB_PLATFORMS", slog.String("error", err.Error()))
			os.Exit(1)
		}
		stubCfg.Platforms = platforms
	}

	service := stub.NewService(stub.NewStore(), clock.New(), random.New(), stubCfg, logger)

	routerCfg := stub.RouterConfig{
		Logger:  logger,
		Service: service,
	}
	if key := os.Getenv("STUB_API_KEY"); key != "" {
		hash, err := stub.HashAPIKey(key, 0)
		if err != nil {
			logger.Error("failed to hash API key", slog.String("error", err.Error()))
			os.Exit(1)
		}
		routerCfg.APIKeyHash = hash
	}

	serverConfig := stub.DefaultServerConfig()
	if addr := os.Getenv("STUB_ADDR"); addr != "" {
		serverConfig.Addr = addr
	}
	server := stub.NewServer(stub.NewRouter(routerCfg), serverConfig, logger)
	if err := server.Listen(); err != nil {
		logger.Error("failed to listen", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("stub backend started",
		slog.String("addr", server.Addr()),
		slog.Any("platforms", stubCfg.Platforms),
		slog.Bool("api_key", routerCfg.APIKeyHash != nil),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}

// parsePlatforms reads a comma-separated list of platform ids
func parsePlatforms(raw string) ([]int, error) {
	var platforms []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		platforms = append(platforms, n)
	}
	return platforms, nil
}
