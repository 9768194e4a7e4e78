package http

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"ssbg/internal/core"
)

// card is one summary card: a headline value plus an optional context note.
type card struct {
	Title string
	Value string
	Note  string
}

// topRow is one row of the top-categories ranking with a progress bar width
// scaled against the largest value.
type topRow struct {
	Name         string
	Expenditures string
	Recipients   string
	Width        int
}

type topCategoriesData struct {
	Metric core.Metric
	Rows   []topRow
}

// tableRow is one formatted row of the data table.
type tableRow struct {
	Year            int
	StateName       string
	ServiceCategory string
	SSBG            string
	TANF            string
	TotalSSBG       string
	OtherFunds      string
	TotalExp        string
	Recipients      string
}

type dataTableData struct {
	Rows      []tableRow
	RowCount  int
	Truncated bool
}

// maxTableRows caps the rendered data table; the CSV export has no cap.
const maxTableRows = 250

func (s *Server) handleSummaryCards(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	params := parseViewParams(r.URL.Query(), s.table, core.MetricExpenditures)
	totals := s.totals(r.Context(), params.Filter)

	var cards []card
	if params.Filter.State != "" {
		cards = stateCards(totals)
	} else {
		cards = nationalCards(totals, s.table.AllTimeTotals(params.Filter), s.table)
	}

	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "summary_cards.html", cards); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "summary_cards.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleTopCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	params := parseViewParams(r.URL.Query(), s.table, core.MetricExpenditures)
	data := s.buildTopCategories(r.Context(), params)

	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "top_categories.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "top_categories.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleDataTable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	f := parseFilter(r.URL.Query(), s.table)
	data := buildDataTable(s.table, f)

	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "data_table.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "data_table.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// nationalCards builds the national summary cards. allTime provides the
// "average since first fiscal year" comparisons with the year constraints
// stripped from the filter.
func nationalCards(t, allTime core.Totals, table *core.Table) []card {
	firstYear, _, _ := table.YearBounds()
	since := "FY " + strconv.Itoa(firstYear)

	return []card{
		{
			Title: "Total SSBG Expenditures",
			Value: core.FormatUSD(t.TotalSSBGExpenditures),
			Note:  "Average since " + since + ": " + core.FormatUSD(roundToInt64(allTime.AvgYearlySSBG)) + "/yr",
		},
		{
			Title: "Total Recipients",
			Value: core.FormatCount(t.TotalRecipients),
			Note:  "Average since " + since + ": " + core.FormatCount(roundToInt64(allTime.AvgYearlyRecipients)) + "/yr",
		},
		{
			Title: "SSBG Share of Expenditures",
			Value: core.FormatPercent(t.SSBGShare),
			Note:  "TANF transfers: " + core.FormatPercent(t.TANFShare),
		},
		{
			Title: "Funded Service Categories",
			Value: core.FormatCount(int64(t.FundedCategories)),
			Note:  "",
		},
	}
}

// stateCards builds the cards for a single state's scope.
func stateCards(t core.Totals) []card {
	return []card{
		{
			Title: "Total SSBG Expenditures",
			Value: core.FormatUSD(t.TotalSSBGExpenditures),
			Note:  "All funds: " + core.FormatUSD(t.TotalExpenditures),
		},
		{
			Title: "Total Recipients",
			Value: core.FormatCount(t.TotalRecipients),
			Note:  "Per recipient: " + core.FormatUSD(roundToInt64(t.AvgPerRecipient)),
		},
		{
			Title: "Children Served",
			Value: core.FormatPercent(t.ChildrenShare),
			Note:  "Adults: " + core.FormatPercent(t.AdultsShare),
		},
		{
			Title: "Funded Service Categories",
			Value: core.FormatCount(int64(t.FundedCategories)),
			Note:  "",
		},
	}
}

// buildTopCategories ranks service categories by the requested metric,
// cached by the filter key plus presentation knobs.
func (s *Server) buildTopCategories(ctx context.Context, params ViewParams) topCategoriesData {
	key := params.Filter.Key() + "|top|" + string(params.Metric) + "|" + strconv.Itoa(params.TopN)

	rows, found := s.topCache.Get(key)
	if found {
		slog.DebugContext(ctx, "Top categories cache hit", "filter", key)
	} else {
		rows = s.table.TopCategories(params.Filter, params.Metric, params.TopN)
		s.topCache.Set(key, rows)
	}

	data := topCategoriesData{Metric: params.Metric}
	var maxValue int64
	for _, r := range rows {
		if r.Value > maxValue {
			maxValue = r.Value
		}
	}
	for _, r := range rows {
		width := 0
		if maxValue > 0 && r.Value > 0 {
			width = int((r.Value*100 + maxValue/2) / maxValue)
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.Rows = append(data.Rows, topRow{
			Name:         r.Category,
			Expenditures: core.FormatUSD(r.Expenditures),
			Recipients:   core.FormatCount(r.Recipients),
			Width:        width,
		})
	}
	return data
}

// categoryRow is one row of a state's full category breakdown, with each
// category's share of the state total.
type categoryRow struct {
	Name         string
	Expenditures string
	Recipients   string
	Share        string
	Width        int
}

// buildStateCategories renders a state's complete per-category breakdown.
// year 0 covers all years.
func buildStateCategories(table *core.Table, state string, year int) []categoryRow {
	rows := table.StateCategoryBreakdown(state, year)

	var total, maxValue int64
	for _, r := range rows {
		total += r.Expenditures
		if r.Expenditures > maxValue {
			maxValue = r.Expenditures
		}
	}

	out := make([]categoryRow, 0, len(rows))
	for _, r := range rows {
		share := 0.0
		if total > 0 {
			share = float64(r.Expenditures) / float64(total)
		}
		width := 0
		if maxValue > 0 {
			width = int((r.Expenditures*100 + maxValue/2) / maxValue)
			if width < 2 {
				width = 2
			}
		}
		out = append(out, categoryRow{
			Name:         r.Category,
			Expenditures: core.FormatUSD(r.Expenditures),
			Recipients:   core.FormatCount(r.Recipients),
			Share:        core.FormatPercent(share),
			Width:        width,
		})
	}
	return out
}

// buildDataTable renders the filtered rows, truncated for the HTML view.
func buildDataTable(table *core.Table, f core.Filter) dataTableData {
	records := table.Rows(f)

	data := dataTableData{RowCount: len(records)}
	if len(records) > maxTableRows {
		records = records[:maxTableRows]
		data.Truncated = true
	}
	for _, r := range records {
		data.Rows = append(data.Rows, tableRow{
			Year:            r.Year,
			StateName:       r.StateName,
			ServiceCategory: r.ServiceCategory,
			SSBG:            core.FormatUSD(r.SSBGExpenditures),
			TANF:            core.FormatUSD(r.TANFTransferFunds),
			TotalSSBG:       core.FormatUSD(r.TotalSSBGExpenditures),
			OtherFunds:      core.FormatUSD(r.OtherFedStateLocalFunds),
			TotalExp:        core.FormatUSD(r.TotalExpenditures),
			Recipients:      core.FormatCount(r.TotalRecipients),
		})
	}
	return data
}

func roundToInt64(v float64) int64 {
	return int64(math.Round(v))
}
