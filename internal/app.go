package internal

import (
	"chatstat/internal/charts"
	"chatstat/internal/controllers"
	"chatstat/internal/models"
	"chatstat/internal/prompt"
	"chatstat/internal/providers"
	"chatstat/internal/services"
	"chatstat/internal/statistic/interfaces"
	"chatstat/internal/structures"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App is the pipeline with one entry point per command. Ingestion and
// analysis never share state other than the files they read and write.
type App struct {
	conf             *structures.Config
	logger           providers.Logger
	ingest           services.IngestServiceInterface
	analysis         services.AnalysisServiceInterface
	renderer         charts.RendererInterface
	prompt           prompt.PeriodPromptInterface
	scheduler        interfaces.SchedulerInterface
	router           providers.RouterProviderInterface
	metrics          providers.MetricsProviderInterface
	healthController *controllers.HealthController
	compressor       interfaces.CompressorInterface
	out              io.Writer
}

func NewApp(conf *structures.Config, logger providers.Logger, ingest services.IngestServiceInterface, analysis services.AnalysisServiceInterface, renderer charts.RendererInterface, periodPrompt prompt.PeriodPromptInterface, scheduler interfaces.SchedulerInterface, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface, healthController *controllers.HealthController, compressor interfaces.CompressorInterface) *App {
	return &App{
		conf:             conf,
		logger:           logger,
		ingest:           ingest,
		analysis:         analysis,
		renderer:         renderer,
		prompt:           periodPrompt,
		scheduler:        scheduler,
		router:           router,
		metrics:          metrics,
		healthController: healthController,
		compressor:       compressor,
		out:              os.Stdout,
	}
}

func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Close releases the compressor and flushes the logger.
func (a *App) Close() {
	a.compressor.Close()
	a.logger.Close()
}

// Ingest rebuilds the stats and names files from the export.
func (a *App) Ingest() (*services.IngestReport, error) {
	a.logger.Infof(providers.TypeApp, "Starting ingestion of %s", a.conf.Sources.ExportPath)
	report, err := a.ingest.Ingest()
	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Ingestion failed: %s", err)
		return nil, err
	}
	fmt.Fprintf(a.out, "Done: %d messages counted, %d skipped, %d days, %d participants\n",
		report.Counted, report.SkippedTotal(), report.Days, report.Participants)
	return report, nil
}

func (a *App) Periods() (*services.PeriodsResponse, error) {
	if err := a.analysis.Load(); err != nil {
		return nil, err
	}
	return a.analysis.Periods(), nil
}

// Month charts one month. A nil period is asked for interactively.
// The returned path is empty when there was nothing to draw.
func (a *App) Month(period *models.Period) (string, error) {
	if err := a.analysis.Load(); err != nil {
		return "", err
	}

	if period == nil {
		available := services.ListAvailablePeriods(a.analysis.Table())
		if len(available) == 0 {
			fmt.Fprintln(a.out, "No data available")
			return "", nil
		}
		chosen, err := a.prompt.ChooseMonth(available)
		if err != nil {
			return "", err
		}
		period = &chosen
	}

	m, err := a.analysis.Month(period.Year, period.Month)
	if err != nil {
		return "", err
	}
	return a.draw(m)
}

// Year charts the months of one year. A zero year is asked for interactively.
func (a *App) Year(year int) (string, error) {
	if err := a.analysis.Load(); err != nil {
		return "", err
	}

	if year == 0 {
		available := services.ListAvailableYears(a.analysis.Table())
		if len(available) == 0 {
			fmt.Fprintln(a.out, "No data available")
			return "", nil
		}
		chosen, err := a.prompt.ChooseYear(available)
		if err != nil {
			return "", err
		}
		year = chosen
	}

	m, err := a.analysis.Year(year)
	if err != nil {
		return "", err
	}
	return a.draw(m)
}

func (a *App) draw(m *models.Matrix) (string, error) {
	path, err := a.renderer.WriteFile(m)
	if errors.Is(err, charts.ErrEmptyChart) {
		fmt.Fprintf(a.out, "No data for %s\n", m.Period)
		return "", nil
	}
	if err != nil {
		return "", err
	}
	a.logger.Infof(providers.TypeQuery, "Chart for %s written to %s", m.Period, path)
	fmt.Fprintf(a.out, "Chart written to %s\n", path)
	return path, nil
}

// Handler builds the HTTP surface of serve mode.
func (a *App) Handler() http.Handler {
	apiMux := http.NewServeMux()
	for _, route := range a.router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthController.Health)
	if a.conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", providers.MetricsMiddleware(a.metrics, a.router, apiMux))
	return mux
}

// Serve loads the table, answers queries over HTTP and optionally re-ingests
// on a schedule until SIGINT or SIGTERM.
func (a *App) Serve() error {
	err := a.analysis.Load()
	if errors.Is(err, models.ErrStatsNotFound) && a.conf.Schedule.Interval > 0 {
		a.logger.Warnf(providers.TypeApp, "No stats yet, ingesting before start: %s", err)
		err = a.scheduler.RunOnce()
	}
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         a.conf.WebServer.Host + ":" + strconv.Itoa(a.conf.WebServer.Port),
		Handler:      a.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.scheduler.Init()
	defer a.scheduler.Stop()

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
