package schedule

import (
	"sort"

	"github.com/shopspring/decimal"
)

// WeeklyHours maps ISO weeks to accumulated work hours. A week is present as
// soon as one of its dates is confirmed, even if no work is found for it.
type WeeklyHours map[WeekID]float64

func (w WeeklyHours) register(week WeekID) {
	if _, ok := w[week]; !ok {
		w[week] = 0
	}
}

func (w WeeklyHours) add(week WeekID, hours float64) {
	if hours <= 0 {
		return
	}
	w[week] += hours
}

// Weeks returns the week identifiers in ascending order.
func (w WeeklyHours) Weeks() []WeekID {
	weeks := make([]WeekID, 0, len(w))
	for k := range w {
		weeks = append(weeks, k)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i] < weeks[j] })
	return weeks
}

// Total sums all weeks.
func (w WeeklyHours) Total() float64 {
	var total float64
	for _, h := range w {
		total += h
	}
	return total
}

// Rounded returns a copy with every total rounded to two decimals. Rounding
// happens only here, at reporting time.
func (w WeeklyHours) Rounded() WeeklyHours {
	out := make(WeeklyHours, len(w))
	for k, v := range w {
		out[k] = Round2(v)
	}
	return out
}

// Round2 rounds hours half away from zero to two decimals.
func Round2(hours float64) float64 {
	f, _ := decimal.NewFromFloat(hours).Round(2).Float64()
	return f
}

// FormatHours renders hours with exactly two decimals.
func FormatHours(hours float64) string {
	return decimal.NewFromFloat(hours).StringFixed(2)
}
