package services

import (
	"math/rand"
	"testing"
	"time"
)

func day(today time.Time, offset int) time.Time {
	return today.AddDate(0, 0, offset)
}

func TestCalculateStreaks_Empty(t *testing.T) {
	today := dayStartLocal(time.Now())
	got := CalculateStreaks(nil, today)
	if got.CurrentStreak != 0 || got.LongestStreak != 0 {
		t.Errorf("empty input = %+v, want {0 0}", got)
	}
}

func TestCalculateStreaks_Current(t *testing.T) {
	today := dayStartLocal(time.Date(2026, 8, 28, 14, 30, 0, 0, time.Local))

	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"today and two before", []int{0, -1, -2}, 3},
		{"yesterday and before, nothing today", []int{-1, -2}, 2},
		{"gap at yesterday", []int{-2}, 0},
		{"only today", []int{0}, 1},
		{"today with gap behind", []int{0, -2, -3}, 1},
		{"long run ending yesterday", []int{-1, -2, -3, -4, -5}, 5},
		{"gap splits history", []int{0, -1, -4, -5}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dates []time.Time
			for _, o := range tt.offsets {
				dates = append(dates, day(today, o))
			}
			got := CalculateStreaks(dates, today)
			if got.CurrentStreak != tt.want {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.want)
			}
		})
	}
}

func TestCalculateStreaks_Longest(t *testing.T) {
	today := dayStartLocal(time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local))

	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"single day", []int{-10}, 1},
		{"old run longer than current", []int{0, -1, -10, -11, -12, -13}, 4},
		{"runs either side of a gap", []int{-1, -2, -3, -7, -8}, 3},
		{"everything consecutive", []int{0, -1, -2, -3}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dates []time.Time
			for _, o := range tt.offsets {
				dates = append(dates, day(today, o))
			}
			got := CalculateStreaks(dates, today)
			if got.LongestStreak != tt.want {
				t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, tt.want)
			}
		})
	}
}

func TestCalculateStreaks_DuplicatesAndOrder(t *testing.T) {
	today := dayStartLocal(time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local))

	clean := []time.Time{day(today, 0), day(today, -1), day(today, -2)}
	// same days, shuffled, duplicated, with stray times of day
	messy := []time.Time{
		day(today, -2).Add(23 * time.Hour),
		day(today, 0),
		day(today, -1),
		day(today, 0).Add(6 * time.Hour),
		day(today, -2),
		day(today, -1),
	}

	want := CalculateStreaks(clean, today)
	got := CalculateStreaks(messy, today)
	if got != want {
		t.Errorf("messy input = %+v, clean input = %+v; want equal", got, want)
	}
	if got.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got.CurrentStreak)
	}
}

// oracleStreaks is a deliberately naive reference: membership map plus a
// day-by-day walk. The production walk must agree with it on arbitrary
// inputs, in particular never double counting a seeded today entry.
func oracleStreaks(dates []time.Time, today time.Time) StreakResult {
	days := map[time.Time]bool{}
	for _, d := range dates {
		days[dayStartLocal(d)] = true
	}
	today = dayStartLocal(today)

	current := 0
	if days[today] {
		current = 1
	}
	for c := today.AddDate(0, 0, -1); days[c]; c = c.AddDate(0, 0, -1) {
		current++
	}

	longest := 0
	for d := range days {
		if days[d.AddDate(0, 0, -1)] {
			continue // not the start of a run
		}
		run := 0
		for c := d; days[c]; c = c.AddDate(0, 0, 1) {
			run++
		}
		if run > longest {
			longest = run
		}
	}

	return StreakResult{CurrentStreak: current, LongestStreak: longest}
}

func TestCalculateStreaks_RandomizedAgainstOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	today := dayStartLocal(time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local))

	for trial := 0; trial < 500; trial++ {
		n := rng.Intn(40)
		dates := make([]time.Time, 0, n)
		for i := 0; i < n; i++ {
			// offsets in [-25, 0], dense enough to form runs and duplicates
			dates = append(dates, day(today, -rng.Intn(26)))
		}

		got := CalculateStreaks(dates, today)
		want := oracleStreaks(dates, today)
		if got != want {
			t.Fatalf("trial %d: CalculateStreaks = %+v, oracle = %+v, dates = %v",
				trial, got, want, dates)
		}
		if got.LongestStreak < got.CurrentStreak {
			t.Fatalf("trial %d: longest %d < current %d", trial, got.LongestStreak, got.CurrentStreak)
		}
	}
}

func TestNormalizeDates(t *testing.T) {
	today := dayStartLocal(time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local))
	in := []time.Time{
		day(today, -1).Add(8 * time.Hour),
		day(today, -3),
		day(today, -1),
		day(today, -3).Add(22 * time.Hour),
	}

	got := NormalizeDates(in)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (%v)", len(got), got)
	}
	if !got[0].Equal(day(today, -3)) || !got[1].Equal(day(today, -1)) {
		t.Errorf("NormalizeDates = %v, want [today-3 today-1] at midnight", got)
	}
}
