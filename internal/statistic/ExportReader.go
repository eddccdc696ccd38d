package statistic

import (
	"chatstat/internal/models"
	"chatstat/internal/providers"
	"chatstat/internal/statistic/interfaces"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

type ExportReader struct {
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewExportReader(compressor interfaces.CompressorInterface, logger providers.Logger) interfaces.ExportReaderInterface {
	return &ExportReader{
		compressor: compressor,
		logger:     logger,
	}
}

func (e *ExportReader) Read(fileName string) (*models.Export, error) {
	data, err := readText(e.compressor, fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrExportNotFound, fileName)
		}
		return nil, err
	}

	var export models.Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("unable to decode export %s: %w", fileName, err)
	}
	e.logger.Debugf(providers.TypeIngest, "Export %q loaded: %d records", export.Name, len(export.Messages))
	return &export, nil
}
