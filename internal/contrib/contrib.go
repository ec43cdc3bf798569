package contrib

import "sort"

// ContributionMap maps a calendar day (YYYY-MM-DD) to its contribution count.
// A missing key means zero. Counts are never negative; the aggregator is the
// sole producer of valid maps.
type ContributionMap map[string]int

// Total sums the counts of every day in the map.
func (m ContributionMap) Total() int {
	total := 0
	for _, count := range m {
		total += count
	}
	return total
}

// ActiveDays counts days with at least one contribution.
func (m ContributionMap) ActiveDays() int {
	days := 0
	for _, count := range m {
		if count > 0 {
			days++
		}
	}
	return days
}

// Dates returns all day keys sorted ascending. ISO day keys sort
// lexicographically in calendar order.
func (m ContributionMap) Dates() []string {
	dates := make([]string, 0, len(m))
	for date := range m {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Max returns the busiest day and its count, or ("", 0) for an empty map.
func (m ContributionMap) Max() (string, int) {
	bestDate := ""
	bestCount := 0
	for _, date := range m.Dates() {
		if m[date] > bestCount {
			bestDate = date
			bestCount = m[date]
		}
	}
	return bestDate, bestCount
}
