package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

const (
	dayCapacityMinutes  = 24 * 60
	weekCapacityMinutes = 7 * dayCapacityMinutes

	// Display rank for series keys without a configured order;
	// UncategorizedKey is always forced last regardless of order.
	defaultSeriesOrder = 1 << 30

	defaultSeriesColor = "#94A3B8"
	uncategorizedName  = "Uncategorized"
	uncategorizedColor = "#CBD5E1"
)

// trendEntry is one processed entry reduced to what bucketing needs.
type trendEntry struct {
	start   time.Time
	minutes int
	key     string
}

// AggregateByCategory builds a calendar-aligned time-allocation series keyed
// by category id. Entries without a category land in UncategorizedKey, as
// does inferred unrecorded time.
func (s *Service) AggregateByCategory(entries []domain.TimeEntry, categories []domain.Category, rng domain.DateRange, gran domain.TrendGranularity) (domain.TrendSeries, error) {
	if err := rng.Validate(); err != nil {
		return domain.TrendSeries{}, err
	}
	if !gran.IsValid() {
		return domain.TrendSeries{}, domain.NewValidationError("granularity", "must be DAY or WEEK")
	}

	keys := make([]domain.TrendKey, 0, len(categories)+1)
	for _, c := range categories {
		keys = append(keys, domain.TrendKey{
			Key:   c.ID.String(),
			Name:  c.Name,
			Color: s.seriesColor(c.ID.String()),
			Order: c.Order,
		})
	}

	known := keySet(keys)
	var reduced []trendEntry
	for i := range entries {
		e := &entries[i]
		if !e.Eligible() {
			continue
		}
		key := domain.UncategorizedKey
		if e.CategoryID != nil {
			if k := e.CategoryID.String(); known[k] {
				key = k
			}
		}
		reduced = append(reduced, trendEntry{start: e.StartTime, minutes: e.DurationMinutes(), key: key})
	}

	return s.aggregate(reduced, keys, rng, gran), nil
}

// AggregateByCluster builds the same series keyed by cluster id, resolving
// each entry through its goal's cluster membership. Orphan entries count as
// uncategorized recorded time.
func (s *Service) AggregateByCluster(entries []domain.TimeEntry, clusters []domain.GoalCluster, rng domain.DateRange, gran domain.TrendGranularity) (domain.TrendSeries, error) {
	if err := rng.Validate(); err != nil {
		return domain.TrendSeries{}, err
	}
	if !gran.IsValid() {
		return domain.TrendSeries{}, domain.NewValidationError("granularity", "must be DAY or WEEK")
	}

	keys := make([]domain.TrendKey, 0, len(clusters)+1)
	goalToCluster := map[string]string{}
	for i, c := range clusters {
		key := c.ID.String()
		keys = append(keys, domain.TrendKey{
			Key:   key,
			Name:  c.Name,
			Color: s.seriesColor(key),
			Order: i, // clusters arrive pre-sorted by engagement
		})
		for _, gid := range c.GoalIDs {
			goalToCluster[gid.String()] = key
		}
	}

	var reduced []trendEntry
	for i := range entries {
		e := &entries[i]
		if !e.Eligible() {
			continue
		}
		key := domain.UncategorizedKey
		if e.GoalID != nil {
			if k, ok := goalToCluster[e.GoalID.String()]; ok {
				key = k
			}
		}
		reduced = append(reduced, trendEntry{start: e.StartTime, minutes: e.DurationMinutes(), key: key})
	}

	return s.aggregate(reduced, keys, rng, gran), nil
}

// aggregate enumerates every bucket in the range, accumulates recorded
// minutes per series key, infers unrecorded time for non-future buckets, and
// rounds each value to one decimal hour at the very end.
func (s *Service) aggregate(entries []trendEntry, keys []domain.TrendKey, rng domain.DateRange, gran domain.TrendGranularity) domain.TrendSeries {
	loc := s.loc
	now := s.clock.Now()
	today := DateOf(now, loc)

	bucketOf := func(t time.Time) time.Time { return DateOf(t, loc) }
	step := func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	if gran == domain.TrendWeekly {
		bucketOf = func(t time.Time) time.Time { return WeekStart(t, loc) }
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
	}

	// All series keys plus the reserved uncategorized key, forced last.
	keys = append(keys, domain.TrendKey{
		Key:   domain.UncategorizedKey,
		Name:  uncategorizedName,
		Color: uncategorizedColor,
		Order: defaultSeriesOrder,
	})
	sort.SliceStable(keys, func(i, j int) bool {
		ui, uj := keys[i].Key == domain.UncategorizedKey, keys[j].Key == domain.UncategorizedKey
		if ui != uj {
			return uj
		}
		return keys[i].Order < keys[j].Order
	})

	var dates []time.Time
	index := map[time.Time]int{}
	for d, last := bucketOf(rng.Start), bucketOf(rng.End); !d.After(last); d = step(d) {
		index[d] = len(dates)
		dates = append(dates, d)
	}

	recorded := make([]map[string]int, len(dates))
	totals := make([]int, len(dates))
	for i := range recorded {
		recorded[i] = map[string]int{}
		for _, k := range keys {
			recorded[i][k.Key] = 0
		}
	}

	for _, e := range entries {
		i, ok := index[bucketOf(e.start)]
		if !ok {
			continue
		}
		recorded[i][e.key] += e.minutes
		totals[i] += e.minutes
	}

	buckets := make([]domain.TrendBucket, len(dates))
	for i, date := range dates {
		minutes := recorded[i]

		// Infer unrecorded time only for buckets that have started; future
		// buckets keep their recorded-only value.
		if !date.After(today) {
			capacity := dayCapacityMinutes
			if gran == domain.TrendWeekly {
				elapsed := daysBetween(date, today) + 1
				if elapsed > 7 {
					elapsed = 7
				}
				capacity = elapsed * dayCapacityMinutes
				if capacity > weekCapacityMinutes {
					capacity = weekCapacityMinutes
				}
			}
			if gap := capacity - totals[i]; gap > 0 {
				minutes[domain.UncategorizedKey] += gap
			}
		}

		hours := make(map[string]float64, len(minutes))
		for k, m := range minutes {
			hours[k] = roundHours(m)
		}
		buckets[i] = domain.TrendBucket{Date: date, Hours: hours}
	}

	return domain.TrendSeries{Granularity: gran, Buckets: buckets, Keys: keys}
}

// roundHours converts minutes to hours rounded to one decimal. Rounding
// happens once per bucket value so errors never compound.
func roundHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*10) / 10
}

func keySet(keys []domain.TrendKey) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k.Key] = true
	}
	return set
}
