package http

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
)

var exportHeader = []string{
	"year", "state_name", "line_num", "service_category",
	"ssbg_expenditures", "tanf_transfer_funds", "total_ssbg_expenditures",
	"other_fed_state_and_local_funds", "total_expenditures",
	"children", "adults_59_and_younger", "adults_60_and_older",
	"adults_unknown", "total_adults", "total_recipients",
}

// handleExportCSV streams the filtered rows as a CSV download. Values are
// written as plain integers, not display-formatted, so the export round-trips
// through the snapshot parser.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	f := parseFilter(r.URL.Query(), s.table)
	records := s.table.Rows(f)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ssbg_export.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		slog.ErrorContext(r.Context(), "CSV export write error", "error", err)
		return
	}
	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Year),
			rec.StateName,
			rec.LineNum,
			rec.ServiceCategory,
			strconv.FormatInt(rec.SSBGExpenditures, 10),
			strconv.FormatInt(rec.TANFTransferFunds, 10),
			strconv.FormatInt(rec.TotalSSBGExpenditures, 10),
			strconv.FormatInt(rec.OtherFedStateLocalFunds, 10),
			strconv.FormatInt(rec.TotalExpenditures, 10),
			strconv.FormatInt(rec.Children, 10),
			strconv.FormatInt(rec.Adults59AndYounger, 10),
			strconv.FormatInt(rec.Adults60AndOlder, 10),
			strconv.FormatInt(rec.AdultsUnknown, 10),
			strconv.FormatInt(rec.TotalAdults, 10),
			strconv.FormatInt(rec.TotalRecipients, 10),
		}
		if err := cw.Write(row); err != nil {
			slog.ErrorContext(r.Context(), "CSV export write error", "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.ErrorContext(r.Context(), "CSV export flush error", "error", err)
	}
}
