package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var saoPaulo, _ = time.LoadLocation("America/Sao_Paulo")

// now is a fixed Wednesday afternoon in Sao Paulo.
var now = time.Date(2025, 3, 12, 15, 30, 0, 0, saoPaulo)

func at(daysAgo int, hour int) time.Time {
	return time.Date(2025, 3, 12-daysAgo, hour, 0, 0, 0, saoPaulo)
}

func TestStreakEmpty(t *testing.T) {
	result := Streak(nil, saoPaulo, now)
	assert.Equal(t, 0, result.Streak)
	assert.False(t, result.CompletedToday)
}

func TestStreakConsecutiveDays(t *testing.T) {
	completions := []time.Time{at(0, 10), at(1, 18), at(2, 9)}

	result := Streak(completions, saoPaulo, now)
	assert.Equal(t, 3, result.Streak)
	assert.True(t, result.CompletedToday)
}

func TestStreakSurvivesMissingToday(t *testing.T) {
	// nothing today yet, active yesterday and the day before
	completions := []time.Time{at(1, 20), at(2, 8)}

	result := Streak(completions, saoPaulo, now)
	assert.Equal(t, 2, result.Streak)
	assert.False(t, result.CompletedToday)
}

func TestStreakBrokenByGap(t *testing.T) {
	// active today and yesterday, then a 2-day hole before an older cluster
	completions := []time.Time{at(0, 10), at(1, 10), at(4, 10), at(5, 10), at(6, 10)}

	result := Streak(completions, saoPaulo, now)
	assert.Equal(t, 2, result.Streak)
	assert.True(t, result.CompletedToday)
}

func TestStreakZeroWhenLastActivityTooOld(t *testing.T) {
	completions := []time.Time{at(3, 10), at(4, 10)}

	result := Streak(completions, saoPaulo, now)
	assert.Equal(t, 0, result.Streak)
	assert.False(t, result.CompletedToday)
}

func TestStreakCollapsesSameDay(t *testing.T) {
	completions := []time.Time{at(0, 8), at(0, 12), at(0, 22), at(1, 9), at(1, 10)}

	result := Streak(completions, saoPaulo, now)
	assert.Equal(t, 2, result.Streak)
	assert.True(t, result.CompletedToday)
}

func TestStreakNormalizesTimezone(t *testing.T) {
	// 01:00 UTC on the 12th is still the evening of the 11th in Sao Paulo
	completions := []time.Time{
		time.Date(2025, 3, 12, 1, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 13, 0, 0, 0, saoPaulo),
	}

	result := Streak(completions, saoPaulo, now)
	assert.Equal(t, 2, result.Streak)
	assert.False(t, result.CompletedToday)
}
