package request_test

import (
	"testing"

	"go-workforce/internal/request"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/bg"
	"github.com/stretchr/testify/assert"
)

func testCalendar() *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(bg.Holidays...)
	return c
}

func TestWorkingDays(t *testing.T) {
	c := testCalendar()

	t.Run("weekdays only", func(t *testing.T) {
		// Monday through Wednesday: the end date is the first day back
		got := request.WorkingDays(c, date(2022, 12, 12), date(2022, 12, 14))
		assert.Equal(t, 2, got)
	})

	t.Run("weekend does not count", func(t *testing.T) {
		// Friday to Tuesday spans a full weekend
		got := request.WorkingDays(c, date(2022, 12, 9), date(2022, 12, 13))
		assert.Equal(t, 2, got)
	})

	t.Run("public holidays do not count", func(t *testing.T) {
		// Christmas Eve through the 26th of December 2024 fall on Tuesday
		// to Thursday, all public holidays in Bulgaria
		got := request.WorkingDays(c, date(2024, 12, 23), date(2024, 12, 28))
		assert.Equal(t, 2, got)
	})

	t.Run("empty interval", func(t *testing.T) {
		got := request.WorkingDays(c, date(2022, 12, 12), date(2022, 12, 12))
		assert.Equal(t, 0, got)
	})
}

func TestTotalDays(t *testing.T) {
	assert.Equal(t, 1, request.TotalDays(date(2022, 12, 12), date(2022, 12, 13)))
	assert.Equal(t, 7, request.TotalDays(date(2022, 12, 12), date(2022, 12, 19)))
	assert.Equal(t, 0, request.TotalDays(date(2022, 12, 12), date(2022, 12, 12)))
}
