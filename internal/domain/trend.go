package domain

import "time"

// UncategorizedKey is the reserved series key for time not attributed to any
// category or cluster, including inferred unrecorded time.
const UncategorizedKey = "uncategorized"

// TrendGranularity selects the bucket size of a trend series.
type TrendGranularity string

const (
	TrendDaily  TrendGranularity = "DAY"
	TrendWeekly TrendGranularity = "WEEK"
)

func (g TrendGranularity) String() string { return string(g) }

func (g TrendGranularity) IsValid() bool {
	switch g {
	case TrendDaily, TrendWeekly:
		return true
	}
	return false
}

// TrendKey identifies one series in a trend with its display metadata.
// Order controls display position; UncategorizedKey always sorts last.
type TrendKey struct {
	Key   string // category id, cluster id, or UncategorizedKey
	Name  string
	Color string
	Order int
}

// TrendBucket is one calendar day (or week start) with accumulated hours per
// series key, rounded to one decimal.
type TrendBucket struct {
	Date  time.Time
	Hours map[string]float64
}

// TrendSeries is a calendar-aligned time-allocation series. For every fully
// elapsed day the values of a bucket sum to 24.0 hours: unrecorded time is
// inferred into UncategorizedKey.
type TrendSeries struct {
	Granularity TrendGranularity
	Buckets     []TrendBucket
	Keys        []TrendKey
}
