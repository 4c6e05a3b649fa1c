package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"progress-report-bot/src/analysis"
	"progress-report-bot/src/config"
	"progress-report-bot/src/data_source/stats"
	"progress-report-bot/src/dispatcher"
	"progress-report-bot/src/gateway/discord"
	"progress-report-bot/src/interfaces"
	"progress-report-bot/src/logger"
	"progress-report-bot/src/network"
	"progress-report-bot/src/observability"
	"progress-report-bot/src/server"
)

const shutdownTimeout = 10 * time.Second

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file (empty to use env only)")
	flag.Parse()

	// 1. Load config: defaults, YAML, .env, environment
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)
	appLogger.Info("Config: token=%s client=%s guild=%s channel=%s port=%d mode=%s",
		presence(cfg.Discord.Token), cfg.Discord.ApplicationID, cfg.Discord.GuildID,
		cfg.Discord.ChannelID, cfg.Port, cfg.RenderMode())

	// 2. Setup Components
	metrics := observability.NewMetrics("progress_bot")

	var networkManager interfaces.INetworkManager = network.NewNetworkManager(cfg.MConfig, appLogger.Named("network"))
	var source interfaces.IStatsSource = stats.NewStatsSource(cfg.MConfig, networkManager, appLogger.Named("stats"))

	deriver, err := analysis.NewMetricDeriver(cfg.RenderMode(), appLogger.Named("analysis"))
	if err != nil {
		appLogger.Critical("Failed to init metric deriver: %v", err)
	}

	gate := dispatcher.NewProcessingGate()
	disp := dispatcher.NewDispatcher(cfg.MConfig, source, deriver, gate, metrics, appLogger.Named("dispatcher"))

	bot, err := discord.NewBot(cfg.MConfig, func(ctx context.Context, it interfaces.IInteraction) {
		disp.Handle(ctx, it)
	}, appLogger.Named("discord"))
	if err != nil {
		appLogger.Critical("Failed to init discord bot: %v", err)
	}

	srv := server.NewOpsServer(cfg.MConfig, gate, metrics.Handler(), appLogger.Named("server"))

	// 3. Start ops server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	// 4. Connect to the gateway
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := bot.Start(ctx); err != nil {
		appLogger.Critical("Failed to start bot: %v", err)
	}

	appLogger.Info("Bot is running in %s mode. Press Ctrl+C to exit.", cfg.RenderMode())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	// 5. Shutdown
	appLogger.Info("Shutting down...")
	cancel()

	if err := bot.Stop(); err != nil {
		appLogger.Warning("Failed to close discord session: %v", err)
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Stop(shutdownCtx); err != nil {
		appLogger.Warning("Server shutdown: %v", err)
	}
}

// -----------------------------------------------------------------------------

// presence reports whether a secret is set without printing it.
func presence(secret string) string {
	if secret == "" {
		return "missing"
	}
	return "set"
}
