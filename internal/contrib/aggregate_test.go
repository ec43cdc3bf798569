package contrib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_MergesCalendarAndEvents(t *testing.T) {
	t.Parallel()

	calendar := []Record{
		DayBucket{Date: "2024-06-10", Count: 2},
	}
	commits := []Record{
		Event{Timestamp: time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC), SHA: "aaa"},
		Event{Timestamp: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), SHA: "bbb"},
	}

	m := Aggregate(calendar, commits)
	assert.Equal(t, ContributionMap{"2024-06-10": 4}, m)
}

func TestAggregate_SkipsMalformedRecords(t *testing.T) {
	t.Parallel()

	records := []Record{
		DayBucket{Date: "not-a-date", Count: 3},
		DayBucket{Date: "2024-06-09", Count: -1},
		DayBucket{Date: "2024-06-09", Count: 5},
		Event{SHA: "no-timestamp"},
		Event{Timestamp: time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC)},
	}

	m := Aggregate(records)
	assert.Equal(t, ContributionMap{"2024-06-09": 6}, m)
}

func TestAggregate_DoublingSourcesDoublesCounts(t *testing.T) {
	t.Parallel()

	source := []Record{
		DayBucket{Date: "2024-06-01", Count: 3},
		Event{Timestamp: time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)},
	}

	once := Aggregate(source)
	twice := Aggregate(source, source)

	require.Len(t, twice, len(once))
	for date, count := range once {
		assert.Equal(t, 2*count, twice[date])
	}
}

func TestAggregate_NoSources(t *testing.T) {
	t.Parallel()

	m := Aggregate()
	assert.Empty(t, m)
	assert.Equal(t, 0, m.Total())
}

func TestDayBucket_DayCount(t *testing.T) {
	t.Parallel()

	date, count, err := DayBucket{Date: "2024-02-29", Count: 7}.DayCount()
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", date)
	assert.Equal(t, 7, count)

	_, _, err = DayBucket{Date: "2023-02-29", Count: 1}.DayCount()
	assert.Error(t, err)
}

func TestContributionMap_Helpers(t *testing.T) {
	t.Parallel()

	m := ContributionMap{
		"2024-06-03": 4,
		"2024-06-01": 1,
		"2024-06-02": 0,
	}

	assert.Equal(t, 5, m.Total())
	assert.Equal(t, 2, m.ActiveDays())
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03"}, m.Dates())

	date, count := m.Max()
	assert.Equal(t, "2024-06-03", date)
	assert.Equal(t, 4, count)
}
