package core

import "sort"

// SeriesPoint is one point of a time series. Category is empty for a single
// aggregate series and set when the series is split by service category.
type SeriesPoint struct {
	Year     int    `json:"year"`
	Category string `json:"category,omitempty"`
	Value    int64  `json:"value"`
}

// TimeSeries groups the filtered records by fiscal year, optionally also by
// service category, and sums the metric. Points are ordered by year
// ascending, then category.
//
// Every year of the active range appears, zero-filled when no record
// matches: charts draw a continuous line and a missing reporting year reads
// as zero rather than being silently skipped. The active range is the
// filter's year range when set, a single-year filter's year, and otherwise
// the table's own first..last fiscal year.
func (t *Table) TimeSeries(f Filter, m Metric, byCategory bool) []SeriesPoint {
	minYear, maxYear, ok := t.activeRange(f)
	if !ok {
		return nil
	}

	if !byCategory {
		byYear := map[int]int64{}
		for _, r := range t.records {
			if f.Matches(r) {
				byYear[r.Year] += m.Value(r)
			}
		}
		out := make([]SeriesPoint, 0, maxYear-minYear+1)
		for y := minYear; y <= maxYear; y++ {
			out = append(out, SeriesPoint{Year: y, Value: byYear[y]})
		}
		return out
	}

	type key struct {
		year     int
		category string
	}
	sums := map[key]int64{}
	catSet := map[string]struct{}{}
	for _, r := range t.records {
		if f.Matches(r) {
			sums[key{r.Year, r.ServiceCategory}] += m.Value(r)
			catSet[r.ServiceCategory] = struct{}{}
		}
	}
	cats := make([]string, 0, len(catSet))
	for c := range catSet {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	out := make([]SeriesPoint, 0, (maxYear-minYear+1)*len(cats))
	for y := minYear; y <= maxYear; y++ {
		for _, c := range cats {
			out = append(out, SeriesPoint{Year: y, Category: c, Value: sums[key{y, c}]})
		}
	}
	return out
}

// activeRange resolves the year span a time series must cover.
func (t *Table) activeRange(f Filter) (min, max int, ok bool) {
	if f.YearRange != nil {
		if f.YearRange.Min > f.YearRange.Max {
			return 0, 0, false
		}
		return f.YearRange.Min, f.YearRange.Max, true
	}
	if f.Year != nil {
		return *f.Year, *f.Year, true
	}
	return t.YearBounds()
}
