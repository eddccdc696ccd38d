//go:build wireinject
// +build wireinject

package di

import (
	"chatstat/internal"
	"chatstat/internal/charts"
	"chatstat/internal/controllers"
	"chatstat/internal/prompt"
	"chatstat/internal/providers"
	"chatstat/internal/services"
	"chatstat/internal/statistic"
	"chatstat/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		statistic.NewZstdCompressor,
		statistic.NewStatsFile,
		statistic.NewNamesFile,
		statistic.NewExportReader,
		services.NewIdentityResolver,
		services.NewIngestService,
		services.NewAnalysisService,
		charts.NewRenderer,
		prompt.NewStdPeriodPrompt,
		statistic.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
