// Package http provides the dashboard's HTTP server and handlers.
//
// This file implements parsing of filter parameters shared by the page,
// partial, JSON, and export handlers. Every view accepts the same query
// string shape, so the parsing lives in one place.
package http

import (
	"net/url"
	"strconv"
	"strings"

	"ssbg/internal/core"
)

// ViewParams holds the parsed filter plus the presentation knobs that do not
// affect row selection.
type ViewParams struct {
	Filter     core.Filter
	Metric     core.Metric
	ByCategory bool
	TopN       int
}

// parseFilter extracts the row filter from query parameters.
//
// Recognized parameters: year (single fiscal year), state (full state name),
// category (repeatable), from/to (inclusive fiscal year range). Unparseable
// values are ignored rather than rejected so a stale bookmark still renders.
func parseFilter(query url.Values, table *core.Table) core.Filter {
	var f core.Filter

	if v := strings.TrimSpace(query.Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			f.Year = &y
		}
	}

	f.State = strings.TrimSpace(query.Get("state"))

	for _, c := range query["category"] {
		c = strings.TrimSpace(c)
		if c != "" {
			f.Categories = append(f.Categories, c)
		}
	}

	from := strings.TrimSpace(query.Get("from"))
	to := strings.TrimSpace(query.Get("to"))
	if from != "" || to != "" {
		min, max, ok := table.YearBounds()
		if ok {
			rng := core.YearRange{Min: min, Max: max}
			if v, err := strconv.Atoi(from); err == nil && from != "" {
				rng.Min = v
			}
			if v, err := strconv.Atoi(to); err == nil && to != "" {
				rng.Max = v
			}
			f.YearRange = &rng
		}
	}

	return f
}

// parseViewParams parses the filter along with metric, grouping, and top-N.
func parseViewParams(query url.Values, table *core.Table, defaultMetric core.Metric) ViewParams {
	p := ViewParams{
		Filter: parseFilter(query, table),
		Metric: core.ParseMetric(query.Get("metric"), defaultMetric),
		TopN:   10,
	}

	if v := strings.TrimSpace(query.Get("by_category")); v != "" {
		p.ByCategory = v == "1" || strings.EqualFold(v, "true")
	}
	if v := strings.TrimSpace(query.Get("top")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.TopN = n
		}
	}

	return p
}

// statePathName extracts the state name from a /state/{name} path.
func statePathName(path string) string {
	name := strings.TrimPrefix(path, "/state/")
	name = strings.Trim(name, "/")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return strings.TrimSpace(name)
}
