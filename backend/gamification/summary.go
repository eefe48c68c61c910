package gamification

import "time"

// Interval is one completed progress record reduced to its two timestamps.
// Either side may be nil when the record predates the current lifecycle rules.
type Interval struct {
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// TotalTime sums the elapsed time of valid intervals. Records missing a
// timestamp or with a non-positive span are skipped rather than clamped.
func TotalTime(intervals []Interval) time.Duration {
	var total time.Duration
	for _, iv := range intervals {
		if iv.StartedAt == nil || iv.CompletedAt == nil {
			continue
		}
		if d := iv.CompletedAt.Sub(*iv.StartedAt); d > 0 {
			total += d
		}
	}
	return total
}

// DaySummary is one bar of the weekly activity chart.
type DaySummary struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

var weekdayLabels = map[time.Weekday]string{
	time.Sunday:    "Dom",
	time.Monday:    "Seg",
	time.Tuesday:   "Ter",
	time.Wednesday: "Qua",
	time.Thursday:  "Qui",
	time.Friday:    "Sex",
	time.Saturday:  "Sáb",
}

// WeeklySummary buckets completions into the trailing 7 calendar days in loc,
// today included, oldest day first.
func WeeklySummary(completions []time.Time, loc *time.Location, now time.Time) []DaySummary {
	today := dayOf(now, loc)

	counts := make(map[string]int, len(completions))
	for _, c := range completions {
		counts[dayOf(c, loc).Format("2006-01-02")]++
	}

	summary := make([]DaySummary, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		summary = append(summary, DaySummary{
			Label: weekdayLabels[day.Weekday()],
			Count: counts[day.Format("2006-01-02")],
		})
	}
	return summary
}
