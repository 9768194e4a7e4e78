package http

import (
	"log/slog"
	"net/http"

	"ssbg/internal/core"
)

// pageData is the payload for the full national and state pages.
type pageData struct {
	Title     string
	StateName string
	Query     string

	Years      []int
	States     []string
	Categories []string
	Filter     core.Filter
	// SelectedYear is the single-year filter for the template's year
	// dropdown, 0 when no year is selected.
	SelectedYear int

	Cards []card
	Top   topCategoriesData
	// CatRows is the per-category breakdown shown on state pages.
	CatRows []categoryRow
	Table   dataTableData
}

func (s *Server) handleNational(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	params := parseViewParams(r.URL.Query(), s.table, core.MetricExpenditures)
	data := s.buildPageData(r, params, "")
	data.Title = "SSBG Expenditures Dashboard"

	if err := s.templates.ExecuteTemplate(w, "national.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Page template execution failed", "error", err, "template", "national.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	name := statePathName(r.URL.Path)
	if name == "" || !core.KnownState(name) {
		http.NotFound(w, r)
		return
	}

	params := parseViewParams(r.URL.Query(), s.table, core.MetricExpenditures)
	params.Filter.State = name
	data := s.buildPageData(r, params, name)
	data.Title = name + " SSBG Expenditures"

	if err := s.templates.ExecuteTemplate(w, "state.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Page template execution failed", "error", err, "template", "state.html", "state", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// buildPageData assembles the shared page payload: filter options from the
// dataset's distinct values, summary cards, the top-categories ranking, and
// the filtered data table.
func (s *Server) buildPageData(r *http.Request, params ViewParams, stateName string) pageData {
	distinct := s.table.DistinctValues()

	data := pageData{
		StateName:  stateName,
		Query:      r.URL.RawQuery,
		Years:      distinct.Years,
		States:     distinct.States,
		Categories: distinct.ServiceCategories,
		Filter:     params.Filter,
	}
	if params.Filter.Year != nil {
		data.SelectedYear = *params.Filter.Year
	}

	totals := s.totals(r.Context(), params.Filter)
	if stateName == "" {
		data.Cards = nationalCards(totals, s.table.AllTimeTotals(params.Filter), s.table)
		data.Top = s.buildTopCategories(r.Context(), params)
	} else {
		data.Cards = stateCards(totals)
		data.CatRows = buildStateCategories(s.table, stateName, data.SelectedYear)
	}
	data.Table = buildDataTable(s.table, params.Filter)

	return data
}
