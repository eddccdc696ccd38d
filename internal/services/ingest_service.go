package services

import (
	"chatstat/internal/models"
	"chatstat/internal/providers"
	"chatstat/internal/statistic/interfaces"
	"chatstat/internal/structures"
	"fmt"
	"time"
)

type IngestServiceInterface interface {
	Ingest() (*IngestReport, error)
}

type IngestReport struct {
	Records      int                `json:"records"`
	Counted      int                `json:"counted"`
	Skipped      map[SkipReason]int `json:"skipped"`
	Days         int                `json:"days"`
	Participants int                `json:"participants"`
	NewNames     int                `json:"new_names"`
	Duration     time.Duration      `json:"duration"`
}

func (r *IngestReport) SkippedTotal() int {
	total := 0
	for _, n := range r.Skipped {
		total += n
	}
	return total
}

// IngestService recomputes the whole stats table from the export and
// overwrites the stats and names files. Prior stats are never read back.
type IngestService struct {
	config   *structures.Config
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	reader   interfaces.ExportReaderInterface
	stats    interfaces.StatsStoreInterface
	identity IdentityResolverInterface
}

func (s *IngestService) Ingest() (*IngestReport, error) {
	start := time.Now()

	names, err := s.identity.LoadNames()
	if err != nil {
		return nil, fmt.Errorf("load names: %w", err)
	}

	export, err := s.reader.Read(s.config.Sources.ExportPath)
	if err != nil {
		return nil, err
	}

	counts, seen, report := Aggregate(export)
	for reason, n := range report.Skipped {
		s.logger.Debugf(providers.TypeIngest, "Skipped %d records: %s", n, reason)
	}

	_, added, err := s.identity.MergeAndPersist(names, seen)
	if err != nil {
		return nil, fmt.Errorf("save names: %w", err)
	}
	report.NewNames = added

	if err := s.stats.Save(s.config.Sources.StatsPath, counts.Finalize()); err != nil {
		return nil, fmt.Errorf("save stats: %w", err)
	}

	report.Duration = time.Since(start)
	s.metrics.ObserveIngestDuration(report.Duration)
	skipped := make(map[string]int, len(report.Skipped))
	for reason, n := range report.Skipped {
		skipped[string(reason)] = n
	}
	s.metrics.AddMessages(report.Counted, skipped)

	s.logger.Infof(providers.TypeIngest, "Ingested %d of %d records: %d days, %d participants, %d new names",
		report.Counted, report.Records, report.Days, report.Participants, report.NewNames)
	return report, nil
}

// Aggregate counts the qualifying messages of export per day and participant
// and collects the first display name seen for each participant.
func Aggregate(export *models.Export) (*models.DailyCounts, models.NameTable, *IngestReport) {
	counts := models.NewDailyCounts()
	seen := make(models.NameTable)
	report := &IngestReport{Skipped: make(map[SkipReason]int)}

	for i := range export.Messages {
		report.Records++
		raw, err := export.Message(i)
		if err != nil {
			report.Skipped[SkipMalformed]++
			continue
		}
		msg, reason, ok := Normalize(raw)
		if !ok {
			report.Skipped[reason]++
			continue
		}
		counts.Add(msg.Date, msg.ID)
		if _, known := seen[msg.ID]; !known && msg.Name != "" {
			seen[msg.ID] = msg.Name
		}
	}

	report.Counted = counts.Total()
	report.Days = counts.Len()
	report.Participants = counts.Participants()
	return counts, seen, report
}

func NewIngestService(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, reader interfaces.ExportReaderInterface, stats interfaces.StatsStoreInterface, identity IdentityResolverInterface) IngestServiceInterface {
	return &IngestService{
		config:   config,
		logger:   logger,
		metrics:  metrics,
		reader:   reader,
		stats:    stats,
		identity: identity,
	}
}
