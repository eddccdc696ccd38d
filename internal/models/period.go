package models

import (
	"fmt"
	"time"
)

// Period is a year (Month == 0) or a year+month filter key.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month,omitempty"`
}

func MonthPeriod(year, month int) Period {
	return Period{Year: year, Month: month}
}

func YearPeriod(year int) Period {
	return Period{Year: year}
}

func (p Period) IsMonth() bool {
	return p.Month != 0
}

func (p Period) Contains(date time.Time) bool {
	if date.Year() != p.Year {
		return false
	}
	return !p.IsMonth() || int(date.Month()) == p.Month
}

func (p Period) Less(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

func (p Period) String() string {
	if p.IsMonth() {
		return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
	}
	return fmt.Sprintf("%04d", p.Year)
}
