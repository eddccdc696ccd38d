package services

import (
	"chatstat/internal/models"
	"chatstat/internal/providers"
	"chatstat/internal/statistic/interfaces"
	"chatstat/internal/structures"
	"fmt"
	"sync"
	"time"
)

type AnalysisServiceInterface interface {
	Load() error
	Table() models.StatsTable
	LoadedAt() time.Time
	Periods() *PeriodsResponse
	Month(year, month int) (*models.Matrix, error)
	Year(year int) (*models.Matrix, error)
}

type PeriodsResponse struct {
	Months []models.Period `json:"months"`
	Years  []int           `json:"years"`
}

// AnalysisService holds the materialized stats table. Load may be called
// again to pick up a newly written stats file.
type AnalysisService struct {
	config   *structures.Config
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	stats    interfaces.StatsStoreInterface
	identity IdentityResolverInterface

	mu       sync.RWMutex
	table    models.StatsTable
	loadedAt time.Time
}

func (s *AnalysisService) Load() error {
	counts, err := s.stats.Load(s.config.Sources.StatsPath)
	if err != nil {
		return err
	}
	names, err := s.identity.LoadNames()
	if err != nil {
		return fmt.Errorf("load names: %w", err)
	}
	table := models.NewStatsTable(counts, names)

	s.mu.Lock()
	s.table = table
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.metrics.SetRowsTotal(len(table))
	s.logger.Infof(providers.TypeQuery, "Loaded %d rows from %s", len(table), s.config.Sources.StatsPath)
	return nil
}

func (s *AnalysisService) Table() models.StatsTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

func (s *AnalysisService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func (s *AnalysisService) Periods() *PeriodsResponse {
	table := s.Table()
	return &PeriodsResponse{
		Months: ListAvailablePeriods(table),
		Years:  ListAvailableYears(table),
	}
}

func (s *AnalysisService) Month(year, month int) (*models.Matrix, error) {
	rows, err := SelectMonth(s.Table(), year, month)
	if err != nil {
		s.logger.Debugf(providers.TypeQuery, "Month query rejected: %s", err)
		return nil, err
	}
	return DailyMatrix(rows, models.MonthPeriod(year, month)), nil
}

func (s *AnalysisService) Year(year int) (*models.Matrix, error) {
	table := s.Table()
	if err := ValidatePeriod(table, models.YearPeriod(year)); err != nil {
		s.logger.Debugf(providers.TypeQuery, "Year query rejected: %s", err)
		return nil, err
	}
	return AggregateByMonth(table, year), nil
}

func NewAnalysisService(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, stats interfaces.StatsStoreInterface, identity IdentityResolverInterface) AnalysisServiceInterface {
	return &AnalysisService{
		config:   config,
		logger:   logger,
		metrics:  metrics,
		stats:    stats,
		identity: identity,
	}
}
