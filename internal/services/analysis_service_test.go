package services

import (
	"chatstat/internal/models"
	"chatstat/internal/testutil"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalysis(counts []models.DailyCount, names models.NameTable) (*AnalysisService, *mockStatsStore, *testutil.MockMetrics) {
	conf := testConfig()
	logger := &testutil.MockLogger{}
	stats := &mockStatsStore{counts: counts}
	namesStore := &testutil.MockNamesStore{Files: map[string]models.NameTable{testNamesPath: names}}
	metrics := &testutil.MockMetrics{}
	identity := NewIdentityResolver(conf, namesStore, logger)
	s := NewAnalysisService(conf, logger, metrics, stats, identity).(*AnalysisService)
	return s, stats, metrics
}

func TestAnalysisService_Load(t *testing.T) {
	s, _, metrics := newTestAnalysis([]models.DailyCount{
		{Date: testutil.Date(2024, 3, 1), ID: 42, Count: 2},
		{Date: testutil.Date(2024, 3, 1), ID: 7, Count: 1},
	}, models.NameTable{42: "Alice"})

	assert.True(t, s.LoadedAt().IsZero())
	require.NoError(t, s.Load())

	assert.Equal(t, models.StatsTable{
		{Date: testutil.Date(2024, 3, 1), User: "Alice", Count: 2},
		{Date: testutil.Date(2024, 3, 1), User: "User_7", Count: 1},
	}, s.Table())
	assert.False(t, s.LoadedAt().IsZero())
	assert.Equal(t, 2, metrics.Rows)
}

func TestAnalysisService_LoadMissingStats(t *testing.T) {
	s, stats, _ := newTestAnalysis(nil, nil)
	stats.loadErr = models.ErrStatsNotFound

	err := s.Load()
	assert.True(t, errors.Is(err, models.ErrStatsNotFound))
	assert.Nil(t, s.Table())
}

func TestAnalysisService_Queries(t *testing.T) {
	s, _, _ := newTestAnalysis([]models.DailyCount{
		{Date: testutil.Date(2024, 1, 5), ID: 1, Count: 3},
		{Date: testutil.Date(2024, 2, 5), ID: 1, Count: 1},
		{Date: testutil.Date(2024, 2, 6), ID: 2, Count: 2},
	}, models.NameTable{1: "Alice", 2: "Bob"})
	require.NoError(t, s.Load())

	periods := s.Periods()
	assert.Equal(t, []models.Period{models.MonthPeriod(2024, 1), models.MonthPeriod(2024, 2)}, periods.Months)
	assert.Equal(t, []int{2024}, periods.Years)

	month, err := s.Month(2024, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-05", "2024-02-06"}, month.Labels)
	assert.Equal(t, [][]int{{1, 0}, {0, 2}}, month.Values)

	year, err := s.Year(2024)
	require.NoError(t, err)
	assert.Equal(t, allMonths, year.Labels)
	assert.Equal(t, []int{3, 0}, year.Values[0])
	assert.Equal(t, []int{1, 2}, year.Values[1])
	assert.Equal(t, []int{0, 0}, year.Values[2])

	_, err = s.Month(2024, 3)
	assert.ErrorIs(t, err, models.ErrNoDataForPeriod)
	_, err = s.Year(2023)
	assert.ErrorIs(t, err, models.ErrNoDataForPeriod)
}
