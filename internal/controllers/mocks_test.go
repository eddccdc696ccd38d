package controllers

import (
	"chatstat/internal/models"
	"chatstat/internal/services"
	"time"
)

type mockAnalysis struct {
	table    models.StatsTable
	loadedAt time.Time
	calls    int
}

func (m *mockAnalysis) Load() error              { return nil }
func (m *mockAnalysis) Table() models.StatsTable { return m.table }
func (m *mockAnalysis) LoadedAt() time.Time      { return m.loadedAt }

func (m *mockAnalysis) Periods() *services.PeriodsResponse {
	m.calls++
	return &services.PeriodsResponse{
		Months: services.ListAvailablePeriods(m.table),
		Years:  services.ListAvailableYears(m.table),
	}
}

func (m *mockAnalysis) Month(year, month int) (*models.Matrix, error) {
	m.calls++
	rows, err := services.SelectMonth(m.table, year, month)
	if err != nil {
		return nil, err
	}
	return services.DailyMatrix(rows, models.MonthPeriod(year, month)), nil
}

func (m *mockAnalysis) Year(year int) (*models.Matrix, error) {
	m.calls++
	if err := services.ValidatePeriod(m.table, models.YearPeriod(year)); err != nil {
		return nil, err
	}
	return services.AggregateByMonth(m.table, year), nil
}
