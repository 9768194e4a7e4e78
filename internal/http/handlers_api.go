package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"ssbg/internal/core"
)

// writeJSON encodes v with a JSON content type. Encoding failures after the
// header is written can only be logged.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "JSON encode error", "error", err, "url", r.URL.Path)
	}
}

// handleTimeSeries serves the chart series: the metric summed per fiscal
// year over the filtered rows, optionally split by service category.
func (s *Server) handleTimeSeries(w http.ResponseWriter, r *http.Request) {
	params := parseViewParams(r.URL.Query(), s.table, core.MetricExpenditures)

	key := params.Filter.Key() + "|series|" + string(params.Metric)
	if params.ByCategory {
		key += "|by_category"
	}
	points, found := s.seriesCache.Get(key)
	if found {
		slog.DebugContext(r.Context(), "Series cache hit", "filter", key)
	} else {
		points = s.table.TimeSeries(params.Filter, params.Metric, params.ByCategory)
		s.seriesCache.Set(key, points)
	}

	writeJSON(w, r, struct {
		Metric core.Metric        `json:"metric"`
		Points []core.SeriesPoint `json:"points"`
	}{Metric: params.Metric, Points: points})
}

// handleMap serves the choropleth dataset: per-state sums of the filtered
// rows keyed by postal abbreviation.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	params := parseViewParams(r.URL.Query(), s.table, core.MetricExpenditures)

	key := params.Filter.Key() + "|map|" + string(params.Metric)
	states, found := s.mapCache.Get(key)
	if found {
		slog.DebugContext(r.Context(), "Map cache hit", "filter", key)
	} else {
		states = s.table.GeographicBreakdown(params.Metric, params.Filter)
		s.mapCache.Set(key, states)
	}

	writeJSON(w, r, struct {
		Metric core.Metric           `json:"metric"`
		States []core.StateAggregate `json:"states"`
	}{Metric: params.Metric, States: states})
}

// handleMeta serves the distinct filter-control values and the fiscal year
// bounds, used by the UI to populate its dropdowns and year slider.
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	distinct := s.table.DistinctValues()
	minYear, maxYear, _ := s.table.YearBounds()

	writeJSON(w, r, struct {
		Years             []int    `json:"years"`
		States            []string `json:"states"`
		ServiceCategories []string `json:"service_categories"`
		MinYear           int      `json:"min_year"`
		MaxYear           int      `json:"max_year"`
		Records           int      `json:"records"`
	}{
		Years:             distinct.Years,
		States:            distinct.States,
		ServiceCategories: distinct.ServiceCategories,
		MinYear:           minYear,
		MaxYear:           maxYear,
		Records:           s.table.Len(),
	})
}
