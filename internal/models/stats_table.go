package models

import "time"

// DailyCount is one persisted (date, id, count) triple.
type DailyCount struct {
	Date  time.Time
	ID    ParticipantID
	Count int
}

// StatsRow is a DailyCount with the id replaced by a display name.
type StatsRow struct {
	Date  time.Time `json:"date"`
	User  string    `json:"user"`
	Count int       `json:"count"`
}

type StatsTable []StatsRow

// NewStatsTable resolves ids to names, keeping the row order of counts.
func NewStatsTable(counts []DailyCount, names NameTable) StatsTable {
	table := make(StatsTable, 0, len(counts))
	for _, c := range counts {
		table = append(table, StatsRow{
			Date:  c.Date,
			User:  names.Resolve(c.ID),
			Count: c.Count,
		})
	}
	return table
}

func (t StatsTable) Total() int {
	total := 0
	for _, row := range t {
		total += row.Count
	}
	return total
}
