package request

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/bg"
)

// newBusinessCalendar builds the working-day calendar: weekends off plus
// the Bulgarian public holidays.
func newBusinessCalendar() *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(bg.Holidays...)
	return c
}

// WorkingDays counts business days in [start, end). A request from Monday
// to Wednesday spans two working days: the end date is the first day back.
func WorkingDays(c *cal.BusinessCalendar, start, end time.Time) int {
	days := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if c.IsWorkday(d) {
			days++
		}
	}
	return days
}

// TotalDays counts calendar days in [start, end).
func TotalDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
