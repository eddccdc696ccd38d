package statistic

import (
	"chatstat/internal/providers"
	"chatstat/internal/services"
	"chatstat/internal/statistic/interfaces"
	"chatstat/internal/structures"
	"sync"
	"time"
)

// Scheduler re-runs ingestion on a fixed interval while serving and swaps the
// freshly written table into the analysis service.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	ingest   services.IngestServiceInterface
	analysis services.AnalysisServiceInterface
	cache    providers.CacheProviderInterface

	opsMu sync.Mutex
	stop  chan struct{}
	wg    sync.WaitGroup
}

func (s *Scheduler) Init() {
	interval := s.config.Schedule.Interval
	if interval <= 0 {
		s.logger.Infof(providers.TypeApp, "Periodic re-ingestion disabled")
		return
	}

	s.stop = make(chan struct{})
	ticker := time.NewTicker(interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				if err := s.RunOnce(); err != nil {
					s.logger.Errorf(providers.TypeIngest, "Scheduled re-ingestion failed: %s", err)
				}
			}
		}
	}()
	s.logger.Infof(providers.TypeApp, "Re-ingesting every %s", interval)
}

func (s *Scheduler) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	s.wg.Wait()
	s.stop = nil
}

// RunOnce ingests the export and reloads the table. Responses cached for the
// old table are keyed by its load time and are dropped here to free memory.
func (s *Scheduler) RunOnce() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeIngest, "Re-ingesting %s", s.config.Sources.ExportPath)
	if _, err := s.ingest.Ingest(); err != nil {
		return err
	}
	if err := s.analysis.Load(); err != nil {
		return err
	}
	s.cache.Clear()
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, ingest services.IngestServiceInterface, analysis services.AnalysisServiceInterface, cache providers.CacheProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		ingest:   ingest,
		analysis: analysis,
		cache:    cache,
	}
}
