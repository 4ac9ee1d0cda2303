// Package calendar builds month grids for date picking.
package calendar

import (
	"fmt"
	"time"
)

// Cell is one slot of a month grid. Padding cells before day 1 have Day 0.
type Cell struct {
	Day  int
	Date time.Time
}

// Empty reports whether c is padding.
func (c Cell) Empty() bool {
	return c.Day == 0
}

// Select returns the date formatted with layout, or false for padding.
func (c Cell) Select(layout string) (string, bool) {
	if c.Empty() {
		return "", false
	}
	return c.Date.Format(layout), true
}

// Month is the grid for one month. Month is zero-based (0 = January).
type Month struct {
	Year  int
	Month int
	Cells []Cell
	loc   *time.Location
}

// DaysInMonth returns the number of days in the zero-based month, taken
// as day 0 of the following month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of day 1 of the zero-based month.
func FirstWeekday(year, month int) time.Weekday {
	return time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// Build returns the grid for the zero-based month in time.Local.
func Build(year, month int) Month {
	return BuildIn(year, month, time.Local)
}

// BuildIn returns the grid with cell dates at midnight in loc. Out of range
// months are normalised first.
func BuildIn(year, month int, loc *time.Location) Month {
	if loc == nil {
		loc = time.Local
	}
	year, month = Shift(year, month, 0)

	lead := int(FirstWeekday(year, month))
	days := DaysInMonth(year, month)
	cells := make([]Cell, lead, lead+days)
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{
			Day:  d,
			Date: time.Date(year, time.Month(month+1), d, 0, 0, 0, 0, loc),
		})
	}
	return Month{Year: year, Month: month, Cells: cells, loc: loc}
}

// Shift moves a zero-based month by offset months, rolling the year.
func Shift(year, month, offset int) (int, int) {
	total := year*12 + month + offset
	y, m := total/12, total%12
	if m < 0 {
		m += 12
		y--
	}
	return y, m
}

// Next returns the following month's grid.
func (m Month) Next() Month {
	y, mo := Shift(m.Year, m.Month, 1)
	return BuildIn(y, mo, m.loc)
}

// Prev returns the preceding month's grid.
func (m Month) Prev() Month {
	y, mo := Shift(m.Year, m.Month, -1)
	return BuildIn(y, mo, m.loc)
}

// Weeks splits the cells into rows of seven, padding the last row.
func (m Month) Weeks() [][]Cell {
	var weeks [][]Cell
	for i := 0; i < len(m.Cells); i += 7 {
		row := make([]Cell, 7)
		copy(row, m.Cells[i:min(i+7, len(m.Cells))])
		weeks = append(weeks, row)
	}
	return weeks
}

// Title renders e.g. "January 2024".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", time.Month(m.Month+1), m.Year)
}

// Contains reports whether t falls within the month in m's location.
func (m Month) Contains(t time.Time) bool {
	t = t.In(m.loc)
	return t.Year() == m.Year && int(t.Month())-1 == m.Month
}
