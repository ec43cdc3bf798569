package contrib

import (
	"context"
	"fmt"
	"time"
)

// DateFormat is the canonical day key used across the whole pipeline.
const DateFormat = "2006-01-02"

// Record is a single raw unit of activity. Every record resolves to exactly
// one calendar day and a non-negative increment.
type Record interface {
	DayCount() (date string, count int, err error)
}

// DayBucket is a pre-aggregated day, e.g. one cell of the provider's own
// contribution calendar.
type DayBucket struct {
	Date  string
	Count int
}

func (b DayBucket) DayCount() (string, int, error) {
	t, err := time.Parse(DateFormat, b.Date)
	if err != nil {
		return "", 0, fmt.Errorf("invalid day bucket date %q: %w", b.Date, err)
	}
	if b.Count < 0 {
		return "", 0, fmt.Errorf("negative count %d for %s", b.Count, b.Date)
	}
	return t.Format(DateFormat), b.Count, nil
}

// Event is an individual occurrence (one commit) that counts 1 toward its
// calendar day.
type Event struct {
	Timestamp time.Time
	Repo      string
	SHA       string
}

func (e Event) DayCount() (string, int, error) {
	if e.Timestamp.IsZero() {
		return "", 0, fmt.Errorf("event %s has no timestamp", e.SHA)
	}
	return e.Timestamp.Format(DateFormat), 1, nil
}

type ActivitySource interface {
	Name() string
	FetchRecords(ctx context.Context, start, end time.Time) ([]Record, error)
	HealthCheck() error
}
