package interfaces

import "chatstat/internal/models"

type StatsStoreInterface interface {
	Save(path string, blocks []models.DayBlock) error
	Load(path string) ([]models.DailyCount, error)
}

type NamesStoreInterface interface {
	Load(path string) (models.NameTable, error)
	Save(path string, names models.NameTable) error
}

type ExportReaderInterface interface {
	Read(path string) (*models.Export, error)
}
