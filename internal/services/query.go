package services

import (
	"chatstat/internal/models"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
)

// FilterByMonth returns the rows dated in the given year and month.
func FilterByMonth(table models.StatsTable, year, month int) models.StatsTable {
	return filterPeriod(table, models.MonthPeriod(year, month))
}

func FilterByYear(table models.StatsTable, year int) models.StatsTable {
	return filterPeriod(table, models.YearPeriod(year))
}

func filterPeriod(table models.StatsTable, p models.Period) models.StatsTable {
	return lo.Filter(table, func(row models.StatsRow, _ int) bool {
		return p.Contains(row.Date)
	})
}

// ListAvailablePeriods returns the distinct months present in table, ascending.
func ListAvailablePeriods(table models.StatsTable) []models.Period {
	periods := lo.Uniq(lo.Map(table, func(row models.StatsRow, _ int) models.Period {
		return models.MonthPeriod(row.Date.Year(), int(row.Date.Month()))
	}))
	sort.Slice(periods, func(i, j int) bool { return periods[i].Less(periods[j]) })
	return periods
}

// ListAvailableYears returns the distinct years present in table, ascending.
func ListAvailableYears(table models.StatsTable) []int {
	years := lo.Uniq(lo.Map(table, func(row models.StatsRow, _ int) int {
		return row.Date.Year()
	}))
	sort.Ints(years)
	return years
}

// ValidatePeriod fails with ErrNoDataForPeriod when p has no rows in table.
func ValidatePeriod(table models.StatsTable, p models.Period) error {
	var ok bool
	if p.IsMonth() {
		ok = lo.Contains(ListAvailablePeriods(table), p)
	} else {
		ok = lo.Contains(ListAvailableYears(table), p.Year)
	}
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrNoDataForPeriod, p)
	}
	return nil
}

// SelectMonth validates the period and returns its rows.
func SelectMonth(table models.StatsTable, year, month int) (models.StatsTable, error) {
	if err := ValidatePeriod(table, models.MonthPeriod(year, month)); err != nil {
		return nil, err
	}
	return FilterByMonth(table, year, month), nil
}

// DailyMatrix pivots rows into date x user sums. Rows are the dates present,
// columns the users present, both sorted.
func DailyMatrix(rows models.StatsTable, p models.Period) *models.Matrix {
	return pivot(rows, p, func(date time.Time) (string, int) {
		return date.Format(models.DateLayout), int(date.Unix() / 86400)
	})
}

// AggregateByMonth groups the rows of year by month, summing counts per user.
// All twelve months are rows; months without data hold zeros.
func AggregateByMonth(table models.StatsTable, year int) *models.Matrix {
	months := make([]rowKey, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, rowKey{label: MonthAbbr(m), order: int(m)})
	}
	return pivot(FilterByYear(table, year), models.YearPeriod(year), func(date time.Time) (string, int) {
		return MonthAbbr(date.Month()), int(date.Month())
	}, months...)
}

func MonthAbbr(m time.Month) string {
	return m.String()[:3]
}

type rowKey struct {
	label string
	order int
}

// pivot sums counts into a label x user grid. key maps a date to its row
// label and an ordering key; fixed rows are present even without data.
func pivot(rows models.StatsTable, p models.Period, key func(time.Time) (string, int), fixed ...rowKey) *models.Matrix {
	sums := make(map[rowKey]map[string]int, len(fixed))
	for _, k := range fixed {
		sums[k] = make(map[string]int)
	}
	for _, row := range rows {
		label, order := key(row.Date)
		k := rowKey{label: label, order: order}
		if sums[k] == nil {
			sums[k] = make(map[string]int)
		}
		sums[k][row.User] += row.Count
	}

	keys := lo.Keys(sums)
	sort.Slice(keys, func(i, j int) bool { return keys[i].order < keys[j].order })

	users := lo.Uniq(lo.Map(rows, func(row models.StatsRow, _ int) string { return row.User }))
	sort.Strings(users)

	m := &models.Matrix{
		Period: p,
		Labels: make([]string, len(keys)),
		Users:  users,
		Values: make([][]int, len(keys)),
	}
	for i, k := range keys {
		m.Labels[i] = k.label
		m.Values[i] = make([]int, len(users))
		for j, user := range users {
			m.Values[i][j] = sums[k][user]
		}
	}
	return m
}
