package services

import (
	"chatstat/internal/models"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

type mockExportReader struct {
	export *models.Export
	err    error
	reads  int
}

func (m *mockExportReader) Read(_ string) (*models.Export, error) {
	m.reads++
	return m.export, m.err
}

// mockStatsStore keeps the last saved blocks and serves them back as rows.
type mockStatsStore struct {
	blocks  []models.DayBlock
	counts  []models.DailyCount
	saves   int
	loadErr error
	saveErr error
}

func (m *mockStatsStore) Save(_ string, blocks []models.DayBlock) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.blocks = blocks
	m.counts = nil
	for _, b := range blocks {
		for _, c := range b.Counts {
			m.counts = append(m.counts, models.DailyCount{Date: b.Date, ID: c.ID, Count: c.Count})
		}
	}
	return nil
}

func (m *mockStatsStore) Load(_ string) ([]models.DailyCount, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.counts, nil
}

// exportOf builds an export from raw JSON message objects.
func exportOf(messages ...string) *models.Export {
	doc := fmt.Sprintf(`{"name":"chat","type":"private_group","id":1,"messages":[%s]}`, strings.Join(messages, ","))
	var export models.Export
	if err := json.Unmarshal([]byte(doc), &export); err != nil {
		panic(err)
	}
	return &export
}
