package main

import (
	"progress-report-bot/src/analysis"
	"progress-report-bot/src/data_source/stats"
	"progress-report-bot/src/dispatcher"
	"progress-report-bot/src/logger"
	"progress-report-bot/src/models"
	"progress-report-bot/src/network"
	"progress-report-bot/src/observability"
)

// setupPipeline wires the same components the bot uses.
func setupPipeline(cfg *models.MConfig, mode models.MRenderMode, appLogger *logger.Logger) (*dispatcher.Dispatcher, error) {
	networkManager := network.NewNetworkManager(cfg, appLogger.Named("network"))
	source := stats.NewStatsSource(cfg, networkManager, appLogger.Named("stats"))

	deriver, err := analysis.NewMetricDeriver(mode, appLogger.Named("analysis"))
	if err != nil {
		return nil, err
	}

	return dispatcher.NewDispatcher(
		cfg,
		source,
		deriver,
		dispatcher.NewProcessingGate(),
		observability.NewMetrics("preview"),
		appLogger.Named("dispatcher"),
	), nil
}
