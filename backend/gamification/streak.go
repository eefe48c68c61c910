package gamification

import (
	"math"
	"sort"
	"time"
)

// StreakResult describes a learner's run of consecutive active days.
type StreakResult struct {
	Streak         int  `json:"streak"`
	CompletedToday bool `json:"completed_today"`
}

// Streak counts consecutive calendar days with at least one completion,
// walking backwards from today in the given timezone. Several completions on
// the same day count once. A day without activity breaks the run, except that
// "today" itself may still be empty (the learner has until midnight).
func Streak(completions []time.Time, loc *time.Location, now time.Time) StreakResult {
	if len(completions) == 0 {
		return StreakResult{}
	}

	seen := make(map[string]bool, len(completions))
	days := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		d := dayOf(c, loc)
		key := d.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := dayOf(now, loc)
	result := StreakResult{CompletedToday: days[0].Equal(today)}

	anchor := today
	for _, day := range days {
		diff := daysBetween(day, anchor)
		if diff > 1 {
			break
		}
		result.Streak++
		anchor = day
	}
	return result
}

// dayOf truncates an instant to midnight of its calendar day in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// daysBetween returns how many calendar days earlier is relative to later.
// Rounding absorbs the 23h/25h days around DST transitions.
func daysBetween(earlier, later time.Time) int {
	return int(math.Round(later.Sub(earlier).Hours() / 24))
}
