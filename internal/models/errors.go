package models

import "errors"

var (
	ErrStatsNotFound   = errors.New("stats file not found")
	ErrExportNotFound  = errors.New("export file not found")
	ErrNoDataForPeriod = errors.New("no data for period")
)
