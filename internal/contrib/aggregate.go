package contrib

// Aggregate merges record sequences from any number of sources into a single
// ContributionMap. Counts for the same day are summed across sources, so a
// provider's own calendar and an independently scanned commit log both count.
// Malformed records are skipped; upstream data quality is not this package's
// problem and must never abort the whole aggregation.
func Aggregate(sources ...[]Record) ContributionMap {
	m := make(ContributionMap)
	for _, records := range sources {
		for _, rec := range records {
			date, count, err := rec.DayCount()
			if err != nil {
				continue
			}
			m[date] += count
		}
	}
	return m
}
