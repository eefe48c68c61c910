package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr(t time.Time) *time.Time { return &t }

func TestTotalTimeSumsValidIntervals(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	intervals := []Interval{
		{StartedAt: ptr(start), CompletedAt: ptr(start.Add(20 * time.Minute))},
		{StartedAt: ptr(start), CompletedAt: ptr(start.Add(40 * time.Minute))},
	}

	assert.Equal(t, time.Hour, TotalTime(intervals))
}

func TestTotalTimeSkipsInvalidIntervals(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	intervals := []Interval{
		{StartedAt: ptr(start), CompletedAt: ptr(start.Add(30 * time.Minute))},
		{StartedAt: ptr(start), CompletedAt: nil},
		{StartedAt: nil, CompletedAt: ptr(start)},
		{StartedAt: ptr(start), CompletedAt: ptr(start)},                     // zero span
		{StartedAt: ptr(start), CompletedAt: ptr(start.Add(-10 * time.Minute))}, // clock went backwards
	}

	assert.Equal(t, 30*time.Minute, TotalTime(intervals))
}

func TestTotalTimeEmpty(t *testing.T) {
	assert.Equal(t, time.Duration(0), TotalTime(nil))
}

func TestWeeklySummaryBuckets(t *testing.T) {
	completions := []time.Time{
		at(0, 9), at(0, 15), // two today (Wednesday)
		at(2, 11),     // Monday
		at(6, 20),     // Thursday last week, still inside the window
		at(7, 10),     // outside the 7-day window
	}

	summary := WeeklySummary(completions, saoPaulo, now)

	assert.Len(t, summary, 7)
	assert.Equal(t, []DaySummary{
		{Label: "Qui", Count: 1},
		{Label: "Sex", Count: 0},
		{Label: "Sáb", Count: 0},
		{Label: "Dom", Count: 0},
		{Label: "Seg", Count: 1},
		{Label: "Ter", Count: 0},
		{Label: "Qua", Count: 2},
	}, summary)
}

func TestWeeklySummaryEmpty(t *testing.T) {
	summary := WeeklySummary(nil, saoPaulo, now)

	assert.Len(t, summary, 7)
	for _, day := range summary {
		assert.Zero(t, day.Count)
	}
	// oldest first, ending on today's weekday
	assert.Equal(t, "Qua", summary[6].Label)
}
