package models

import (
	"sort"
	"time"
)

const DateLayout = "2006-01-02"

// IDCount is one participant's message count for a day.
type IDCount struct {
	ID    ParticipantID
	Count int
}

// DayBlock is one finalized day of the aggregate.
type DayBlock struct {
	Date   time.Time
	Counts []IDCount
}

type dayCounts struct {
	order  []ParticipantID
	counts map[ParticipantID]int
}

// DailyCounts accumulates date -> participant -> count. Participants keep the
// order in which they were first seen on each day; days are finalized in
// ascending order.
type DailyCounts struct {
	days  map[time.Time]*dayCounts
	total int
}

func NewDailyCounts() *DailyCounts {
	return &DailyCounts{days: make(map[time.Time]*dayCounts)}
}

// Add counts one message for id on date. The time of day is ignored.
func (d *DailyCounts) Add(date time.Time, id ParticipantID) {
	d.AddN(date, id, 1)
}

// AddN adds n (>0) messages for id on date.
func (d *DailyCounts) AddN(date time.Time, id ParticipantID, n int) {
	if n <= 0 {
		return
	}
	key := TruncateDay(date)
	day, ok := d.days[key]
	if !ok {
		day = &dayCounts{counts: make(map[ParticipantID]int)}
		d.days[key] = day
	}
	if _, seen := day.counts[id]; !seen {
		day.order = append(day.order, id)
	}
	day.counts[id] += n
	d.total += n
}

func (d *DailyCounts) Get(date time.Time, id ParticipantID) int {
	day, ok := d.days[TruncateDay(date)]
	if !ok {
		return 0
	}
	return day.counts[id]
}

// Len returns the number of distinct days.
func (d *DailyCounts) Len() int {
	return len(d.days)
}

// Total returns the sum of all counts.
func (d *DailyCounts) Total() int {
	return d.total
}

// Participants returns the number of distinct participant ids across all days.
func (d *DailyCounts) Participants() int {
	ids := make(map[ParticipantID]struct{})
	for _, day := range d.days {
		for _, id := range day.order {
			ids[id] = struct{}{}
		}
	}
	return len(ids)
}

func (d *DailyCounts) Finalize() []DayBlock {
	dates := make([]time.Time, 0, len(d.days))
	for date := range d.days {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	blocks := make([]DayBlock, 0, len(dates))
	for _, date := range dates {
		day := d.days[date]
		counts := make([]IDCount, 0, len(day.order))
		for _, id := range day.order {
			counts = append(counts, IDCount{ID: id, Count: day.counts[id]})
		}
		blocks = append(blocks, DayBlock{Date: date, Counts: counts})
	}
	return blocks
}

// TruncateDay drops the time of day and location, keeping the calendar date.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
