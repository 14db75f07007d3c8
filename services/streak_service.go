package services

import (
	"sort"
	"time"
)

type StreakResult struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// NormalizeDates truncates every timestamp to local midnight, drops
// duplicates and returns the days sorted ascending.
func NormalizeDates(dates []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := dayStartLocal(d)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// CalculateStreaks derives (current, longest) from a user's workout days.
// Pure: same input, same output, no clock access — "today" comes in as an
// argument so the handler and the tests share one code path.
func CalculateStreaks(dates []time.Time, today time.Time) StreakResult {
	days := NormalizeDates(dates)
	if len(days) == 0 {
		return StreakResult{}
	}
	today = dayStartLocal(today)

	// Current streak: walk backward from today. A workout today counts,
	// but its absence alone does not break a run ending yesterday.
	current := 0
	cursor := today.AddDate(0, 0, -1)
	for i := len(days) - 1; i >= 0; i-- {
		if days[i].Equal(today) {
			current++
			continue
		}
		if days[i].After(cursor) {
			// future-dated rows; nothing to count them against
			continue
		}
		if days[i].Equal(cursor) {
			current++
			cursor = cursor.AddDate(0, 0, -1)
			continue
		}
		// first gap ends the streak
		break
	}

	// Longest streak: one ascending scan tracking the consecutive run.
	longest := 0
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}

	return StreakResult{CurrentStreak: current, LongestStreak: longest}
}
