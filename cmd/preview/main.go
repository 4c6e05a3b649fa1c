package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"progress-report-bot/src/config"
	"progress-report-bot/src/logger"
)

// preview runs one command through the full pipeline and prints the reply
// to stdout, without connecting to Discord.
func main() {
	// 1. Parse command line flags
	command := flag.String("command", "daily", "command to run (daily, weekly, season)")
	id := flag.String("id", "", "subject id")
	baseURL := flag.String("base-url", "", "stats API base url (overrides API_BASE_URL)")
	mode := flag.String("mode", "", "render mode: combined or delta (overrides RENDER_MODE)")
	logLevel := flag.String("log-level", "WARNING", "log level")
	flag.Parse()

	// 2. Load config from the environment only
	conf, err := loadConfig(*baseURL, *mode)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// 3. Setup Logger
	appLogger := logger.NewLoggerWithWriter(os.Stderr, *logLevel, "preview")

	// 4. Setup Components
	disp, err := setupPipeline(conf.MConfig, conf.RenderMode(), appLogger)
	if err != nil {
		appLogger.Critical("Failed to setup pipeline: %v", err)
	}

	// 5. Run
	it := newConsoleInteraction(*command, *id, conf.Discord.ChannelID, conf.Discord.Footer, os.Stdout)
	state := disp.Handle(context.Background(), it)
	appLogger.Info("Reply finished in state %s", state)
}

// -----------------------------------------------------------------------------

func loadConfig(baseURL, mode string) (*config.Config, error) {
	conf := &config.Config{MConfig: config.Defaults()}
	if err := conf.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if baseURL != "" {
		conf.StatsAPI.BaseURL = baseURL
	}
	if mode != "" {
		conf.StatsAPI.RenderMode = mode
	}

	// Nothing is sent to Discord, so credentials are not required.
	conf.Discord.Token = "preview"
	conf.Discord.ChannelID = "console"

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}
