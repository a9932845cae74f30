package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeeklyHours(t *testing.T) {
	w := WeeklyHours{}
	w.register("2024-W02")
	w.add("2024-W01", 1.005)
	w.add("2024-W01", 2)
	w.add("2024-W03", 0)
	w.add("2024-W03", -1)

	assert.Equal(t, []WeekID{"2024-W01", "2024-W02"}, w.Weeks())
	assert.InDelta(t, 3.005, w.Total(), 1e-9)
	assert.Equal(t, WeeklyHours{"2024-W01": 3.01, "2024-W02": 0}, w.Rounded())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 8.33, Round2(8.333333))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 7.0, Round2(7))
	assert.Equal(t, "7.00", FormatHours(7))
	assert.Equal(t, "10.75", FormatHours(10.75))
}
