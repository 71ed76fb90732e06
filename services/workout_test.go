package services

import (
	"testing"
	"time"
)

func day(offset int) time.Time {
	base := time.Date(2026, time.March, 10, 7, 30, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestNextStreak(t *testing.T) {
	yesterday := day(-1)
	lastWeek := day(-7)
	today := day(0)

	cases := []struct {
		name        string
		last        *time.Time
		current     int
		longest     int
		wantCurrent int
		wantLongest int
	}{
		{name: "first ever workout", last: nil, current: 0, longest: 0, wantCurrent: 1, wantLongest: 1},
		{name: "consecutive day extends", last: &yesterday, current: 3, longest: 5, wantCurrent: 4, wantLongest: 5},
		{name: "extension sets new longest", last: &yesterday, current: 5, longest: 5, wantCurrent: 6, wantLongest: 6},
		{name: "same day keeps streak", last: &today, current: 3, longest: 5, wantCurrent: 3, wantLongest: 5},
		{name: "gap restarts at one", last: &lastWeek, current: 9, longest: 9, wantCurrent: 1, wantLongest: 9},
		{name: "zero current restarts regardless of last", last: &yesterday, current: 0, longest: 4, wantCurrent: 1, wantLongest: 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			current, longest := nextStreak(c.last, today, c.current, c.longest)
			if current != c.wantCurrent || longest != c.wantLongest {
				t.Errorf("nextStreak = (%d, %d), want (%d, %d)", current, longest, c.wantCurrent, c.wantLongest)
			}
		})
	}
}

func TestNextStreak_SameDayLateNight(t *testing.T) {
	// A workout at 23:59 followed by one at 00:01 the next day is a
	// consecutive-day extension, not a same-day repeat.
	last := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)
	now := time.Date(2026, time.March, 11, 0, 1, 0, 0, time.UTC)

	current, longest := nextStreak(&last, now, 2, 2)
	if current != 3 || longest != 3 {
		t.Errorf("nextStreak = (%d, %d), want (3, 3)", current, longest)
	}
}
