package report

import (
	"context"
	"fmt"
	"time"

	"github.com/Afrawles/contribstats/internal/contrib"
)

type Generator struct {
	Sources []contrib.ActivitySource
	Policy  contrib.StreakPolicy
}

func NewGenerator(sources ...contrib.ActivitySource) *Generator {
	return &Generator{
		Sources: sources,
		Policy:  contrib.DefaultStreakPolicy(),
	}
}

// Generate fetches records from all sources and merges them into one map.
// The by-source totals come back alongside it for the report breakdown.
func (g *Generator) Generate(ctx context.Context, start, end time.Time) (contrib.ContributionMap, map[string]int, error) {
	var sets [][]contrib.Record
	bySource := make(map[string]int)
	errors := make(map[string]error)

	for _, src := range g.Sources {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		if err := src.HealthCheck(); err != nil {
			errors[src.Name()] = fmt.Errorf("health check failed: %w", err)
			fmt.Printf("%s is unavailable: %v\n", src.Name(), err)
			continue
		}

		records, err := src.FetchRecords(ctx, start, end)
		if err != nil {
			errors[src.Name()] = err
			fmt.Printf("Error fetching from %s: %v\n", src.Name(), err)
			continue
		}

		fmt.Printf("Fetched %d records from %s\n", len(records), src.Name())
		sets = append(sets, records)
		bySource[src.Name()] += countRecords(records)
	}

	merged := contrib.Aggregate(sets...)

	if merged.Total() == 0 && len(errors) > 0 {
		return nil, nil, fmt.Errorf("failed to fetch from all sources: %v", errors)
	}

	return merged, bySource, nil
}

func countRecords(records []contrib.Record) int {
	total := 0
	for _, rec := range records {
		if _, count, err := rec.DayCount(); err == nil {
			total += count
		}
	}
	return total
}

// Summary is the machine-readable report record.
type Summary struct {
	TotalContributions  int                     `json:"total_contributions"`
	BySource            map[string]int          `json:"by_source"`
	ActiveDays          int                     `json:"active_days"`
	CurrentStreak       int                     `json:"current_streak"`
	MaxStreak           int                     `json:"max_streak"`
	BusiestDay          string                  `json:"busiest_day,omitempty"`
	BusiestCount        int                     `json:"busiest_count"`
	ContributionsByDate contrib.ContributionMap `json:"contributions_by_date"`
	GeneratedAt         time.Time               `json:"generated_at"`
}

// Summarize derives the streak statistics and headline numbers for a map,
// anchored to the caller's "today".
func (g *Generator) Summarize(m contrib.ContributionMap, bySource map[string]int, today time.Time) Summary {
	busiestDay, busiestCount := m.Max()

	return Summary{
		TotalContributions:  m.Total(),
		BySource:            bySource,
		ActiveDays:          m.ActiveDays(),
		CurrentStreak:       g.Policy.Current(m, today),
		MaxStreak:           g.Policy.Max(m),
		BusiestDay:          busiestDay,
		BusiestCount:        busiestCount,
		ContributionsByDate: m,
		GeneratedAt:         time.Now().UTC(),
	}
}
