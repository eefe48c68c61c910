package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActivityXPWithinGrace(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	for _, seconds := range []int{0, 1, 15, 29, 30} {
		xp, err := ActivityXP(start, start.Add(time.Duration(seconds)*time.Second))
		assert.NoError(t, err)
		assert.Equal(t, 100, xp, "elapsed %ds should earn full XP", seconds)
	}
}

func TestActivityXPPenalty(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		elapsed  time.Duration
		expected int
	}{
		{31 * time.Second, 99},
		{45 * time.Second, 85},
		{60 * time.Second, 70},                    // 30s over grace
		{90*time.Second + 500*time.Millisecond, 40}, // fractional seconds floor
		{120 * time.Second, 10},
		{150 * time.Second, 10}, // clamped at the floor
		{24 * time.Hour, 10},
	}

	for _, tc := range cases {
		xp, err := ActivityXP(start, start.Add(tc.elapsed))
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, xp, "elapsed %v", tc.elapsed)
	}
}

func TestActivityXPStrictlyDecreasing(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	prev := 100
	for s := 31; s <= 120; s++ {
		xp, err := ActivityXP(start, start.Add(time.Duration(s)*time.Second))
		assert.NoError(t, err)
		assert.Equal(t, prev-1, xp)
		assert.GreaterOrEqual(t, xp, MinXP)
		assert.LessOrEqual(t, xp, BaseXP)
		prev = xp
	}
}

func TestActivityXPInvalidInterval(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	_, err := ActivityXP(start, start.Add(-time.Second))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// zero elapsed is valid, not an error
	xp, err := ActivityXP(start, start)
	assert.NoError(t, err)
	assert.Equal(t, 100, xp)
}
