package contrib

import "time"

// StreakPolicy controls how streaks are measured. Upstream renditions of this
// logic disagreed on both knobs, so they are configuration instead of
// hard-coded assumptions.
type StreakPolicy struct {
	// Lookback bounds the backward walk of Current so it terminates even on
	// a pathologically sparse map.
	Lookback int
	// ForgiveToday keeps a zero-count "today" from breaking the current
	// streak; the day may simply not be over yet.
	ForgiveToday bool
}

func DefaultStreakPolicy() StreakPolicy {
	return StreakPolicy{Lookback: 365, ForgiveToday: true}
}

// Current walks backward day by day from today and counts consecutive days
// with at least one contribution. Any zero-count day strictly before today
// ends the walk.
func (p StreakPolicy) Current(m ContributionMap, today time.Time) int {
	streak := 0
	for i := 0; i < p.Lookback; i++ {
		date := today.AddDate(0, 0, -i).Format(DateFormat)
		if m[date] > 0 {
			streak++
		} else if i > 0 || !p.ForgiveToday {
			break
		}
	}
	return streak
}

// Max returns the longest run of consecutive calendar days with at least one
// contribution anywhere in the map. Gaps of any size reset the run.
func (p StreakPolicy) Max(m ContributionMap) int {
	maxStreak := 0
	streak := 0

	var prev time.Time
	for _, date := range m.Dates() {
		if m[date] <= 0 {
			continue
		}
		current, err := time.Parse(DateFormat, date)
		if err != nil {
			continue
		}

		if !prev.IsZero() && current.Sub(prev) == 24*time.Hour {
			streak++
		} else {
			streak = 1
		}
		if streak > maxStreak {
			maxStreak = streak
		}
		prev = current
	}

	return maxStreak
}

// CurrentStreak computes the current streak under the default policy.
func CurrentStreak(m ContributionMap, today time.Time) int {
	return DefaultStreakPolicy().Current(m, today)
}

// MaxStreak computes the longest streak under the default policy.
func MaxStreak(m ContributionMap) int {
	return DefaultStreakPolicy().Max(m)
}
