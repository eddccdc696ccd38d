package internal

import (
	"bytes"
	"chatstat/internal/charts"
	"chatstat/internal/controllers"
	"chatstat/internal/models"
	"chatstat/internal/providers"
	"chatstat/internal/services"
	"chatstat/internal/statistic"
	"chatstat/internal/structures"
	"chatstat/internal/testutil"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExport = `{"name":"Team","type":"private_group","id":1,"messages":[
 {"id":1,"type":"message","date":"2024-03-01T10:00:00","from":"Alice","from_id":"user42"},
 {"id":2,"type":"message","date":"2024-03-01T18:30:00","from":"Alice","from_id":"user42"},
 {"id":3,"type":"message","date":"2024-03-01T12:00:00","from":"News","from_id":"channel99"},
 {"id":4,"type":"service","date":"2024-03-01T09:00:00","actor":"Alice","actor_id":"user42"},
 {"id":5,"type":"message","date":"2024-04-10T08:00:00","from":"Bob","from_id":"user7"}
]}`

type scriptedPrompt struct {
	month models.Period
	year  int
	err   error
	asked int
}

func (p *scriptedPrompt) ChooseMonth(_ []models.Period) (models.Period, error) {
	p.asked++
	return p.month, p.err
}

func (p *scriptedPrompt) ChooseYear(_ []int) (int, error) {
	p.asked++
	return p.year, p.err
}

type noopScheduler struct{ runs int }

func (s *noopScheduler) Init() {}
func (s *noopScheduler) Stop() {}

func (s *noopScheduler) RunOnce() error {
	s.runs++
	return nil
}

type appFixture struct {
	app        *App
	conf       *structures.Config
	prompt     *scriptedPrompt
	compressor *testutil.MockCompressor
	out        *bytes.Buffer
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "result.json")
	require.NoError(t, os.WriteFile(exportPath, []byte(testExport), 0644))

	conf := &structures.Config{
		Sources: structures.Sources{
			ExportPath: exportPath,
			NamesPath:  filepath.Join(dir, "names.txt"),
			StatsPath:  filepath.Join(dir, "message_stats.txt"),
		},
		Chart: structures.ChartConfig{OutputDir: filepath.Join(dir, "charts"), Width: 800, Height: 400},
	}

	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	compressor := &testutil.MockCompressor{}
	stats := statistic.NewStatsFile(compressor, logger)
	identity := services.NewIdentityResolver(conf, statistic.NewNamesFile(compressor, logger), logger)
	ingest := services.NewIngestService(conf, logger, metrics, statistic.NewExportReader(compressor, logger), stats, identity)
	analysis := services.NewAnalysisService(conf, logger, metrics, stats, identity)
	renderer := charts.NewRenderer(conf)
	cache := testutil.NewMockCache()
	router := InitRoutes(controllers.NewApiController(logger, analysis, renderer, cache))

	f := &appFixture{conf: conf, prompt: &scriptedPrompt{}, compressor: compressor, out: &bytes.Buffer{}}
	f.app = NewApp(conf, logger, ingest, analysis, renderer, f.prompt, &noopScheduler{}, router, metrics, controllers.NewHealthController(analysis), compressor)
	f.app.SetOutput(f.out)
	return f
}

func TestApp_IngestWritesFiles(t *testing.T) {
	f := newAppFixture(t)

	report, err := f.app.Ingest()
	require.NoError(t, err)
	assert.Equal(t, 3, report.Counted)

	stats, err := os.ReadFile(f.conf.Sources.StatsPath)
	require.NoError(t, err)
	assert.Equal(t, "Дата: 2024-03-01\n  42:2\n\nДата: 2024-04-10\n  7:1\n\n", string(stats))

	names, err := os.ReadFile(f.conf.Sources.NamesPath)
	require.NoError(t, err)
	assert.Equal(t, "7:Bob\n42:Alice\n", string(names))

	assert.Contains(t, f.out.String(), "Done: 3 messages counted, 2 skipped, 2 days, 2 participants")
}

func TestApp_MonthBeforeIngest(t *testing.T) {
	f := newAppFixture(t)

	_, err := f.app.Month(&models.Period{Year: 2024, Month: 3})
	assert.True(t, errors.Is(err, models.ErrStatsNotFound))
}

func TestApp_MonthExplicit(t *testing.T) {
	f := newAppFixture(t)
	_, err := f.app.Ingest()
	require.NoError(t, err)

	period := models.MonthPeriod(2024, 3)
	path, err := f.app.Month(&period)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.conf.Chart.OutputDir, "month-2024-03.html"), path)
	assert.FileExists(t, path)
	assert.Equal(t, 0, f.prompt.asked)
}

func TestApp_MonthPrompted(t *testing.T) {
	f := newAppFixture(t)
	_, err := f.app.Ingest()
	require.NoError(t, err)
	f.prompt.month = models.MonthPeriod(2024, 4)

	path, err := f.app.Month(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, f.prompt.asked)
	assert.Contains(t, path, "month-2024-04.html")
}

func TestApp_MonthNoData(t *testing.T) {
	f := newAppFixture(t)
	_, err := f.app.Ingest()
	require.NoError(t, err)

	period := models.MonthPeriod(2024, 5)
	_, err = f.app.Month(&period)
	assert.ErrorIs(t, err, models.ErrNoDataForPeriod)
}

func TestApp_YearAndPeriods(t *testing.T) {
	f := newAppFixture(t)
	_, err := f.app.Ingest()
	require.NoError(t, err)

	periods, err := f.app.Periods()
	require.NoError(t, err)
	assert.Equal(t, []models.Period{models.MonthPeriod(2024, 3), models.MonthPeriod(2024, 4)}, periods.Months)

	path, err := f.app.Year(2024)
	require.NoError(t, err)
	assert.Contains(t, path, "year-2024.html")

	f.prompt.year = 2024
	_, err = f.app.Year(0)
	require.NoError(t, err)
	assert.Equal(t, 1, f.prompt.asked)
}

func TestApp_EmptyStatsFile(t *testing.T) {
	f := newAppFixture(t)
	require.NoError(t, os.WriteFile(f.conf.Sources.StatsPath, nil, 0644))

	path, err := f.app.Month(nil)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Contains(t, f.out.String(), "No data available")
	assert.Equal(t, 0, f.prompt.asked)
}

func TestApp_Handler(t *testing.T) {
	f := newAppFixture(t)
	_, err := f.app.Ingest()
	require.NoError(t, err)
	require.NoError(t, f.app.analysis.Load())

	handler := f.app.Handler()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/month?year=2024&month=3", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"period":{"year":2024,"month":3},"labels":["2024-03-01"],"users":["Alice"],"values":[[2]]}`, rr.Body.String())

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	metrics := f.app.metrics.(*testutil.MockMetrics)
	assert.Equal(t, 1, metrics.Requests["/month"])
	assert.Equal(t, 1, metrics.Requests["other"])
}

var _ providers.MetricsProviderInterface = (*testutil.MockMetrics)(nil)

func TestApp_CloseReleasesCompressor(t *testing.T) {
	f := newAppFixture(t)

	f.app.Close()

	assert.True(t, f.compressor.Closed)
}
