package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"ssbg/internal/core"
)

// Column names of the cleaned snapshot.
const (
	colYear            = "year"
	colState           = "state_name"
	colLineNum         = "line_num"
	colServiceCategory = "service_category"
	colSSBG            = "ssbg_expenditures"
	colTANF            = "tanf_transfer_funds"
	colTotalSSBG       = "total_ssbg_expenditures"
	colOtherFunds      = "other_fed_state_and_local_funds"
	colTotalExp        = "total_expenditures"
	colChildren        = "children"
	colAdults59        = "adults_59_and_younger"
	colAdults60        = "adults_60_and_older"
	colAdultsUnknown   = "adults_unknown"
	colTotalAdults     = "total_adults"
	colTotalRecipients = "total_recipients"
)

// requiredColumns must all be present in the header; line_num is optional.
var requiredColumns = []string{
	colYear, colState, colServiceCategory,
	colSSBG, colTANF, colTotalSSBG, colOtherFunds, colTotalExp,
	colChildren, colAdults59, colAdults60, colAdultsUnknown,
	colTotalAdults, colTotalRecipients,
}

// CSVSource loads the dataset from a cleaned CSV snapshot on disk.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a source reading from the given file path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// Load reads and parses the whole snapshot. A missing file or a header
// without the required columns is a structural error; individual numeric
// cells are coerced leniently because the source fiscal years and amounts
// arrive in mixed representations.
func (s *CSVSource) Load(ctx context.Context) ([]core.Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv snapshot: %w", err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse csv snapshot %s: %w", s.Path, err)
	}
	slog.InfoContext(ctx, "Loaded CSV snapshot", "path", s.Path, "records", len(records))
	return records, nil
}

// ParseCSV parses a snapshot from any reader. Exposed separately so the
// importer and tests can parse without touching the filesystem.
func ParseCSV(r io.Reader) ([]core.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, row)
	}
	return ParseRows(header, rows)
}

// ParseRows parses snapshot rows under the given header. The Google Sheets
// source feeds it the same tabular shape the CSV reader produces.
func ParseRows(header []string, rows [][]string) ([]core.Record, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("snapshot missing required column %q", col)
		}
	}

	out := make([]core.Record, 0, len(rows))
	for n, row := range rows {
		line := n + 2 // 1-based, after the header

		field := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		year, err := parseYear(field(colYear))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		rec := core.Record{
			Year:            year,
			StateName:       field(colState),
			LineNum:         field(colLineNum),
			ServiceCategory: field(colServiceCategory),
		}
		for _, cell := range []struct {
			col string
			dst *int64
		}{
			{colSSBG, &rec.SSBGExpenditures},
			{colTANF, &rec.TANFTransferFunds},
			{colTotalSSBG, &rec.TotalSSBGExpenditures},
			{colOtherFunds, &rec.OtherFedStateLocalFunds},
			{colTotalExp, &rec.TotalExpenditures},
			{colChildren, &rec.Children},
			{colAdults59, &rec.Adults59AndYounger},
			{colAdults60, &rec.Adults60AndOlder},
			{colAdultsUnknown, &rec.AdultsUnknown},
			{colTotalAdults, &rec.TotalAdults},
			{colTotalRecipients, &rec.TotalRecipients},
		} {
			v, err := parseAmount(field(cell.col))
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", line, cell.col, err)
			}
			*cell.dst = v
		}

		out = append(out, rec)
	}
	return out, nil
}

// parseYear normalizes mixed-representation fiscal years ("2013", "2013.0",
// "2,013") to an int.
func parseYear(s string) (int, error) {
	v, err := parseAmount(s)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid fiscal year %q", s)
	}
	return int(v), nil
}

// parseAmount coerces a numeric cell: strips "$", commas, and whitespace,
// accepts a float-typed integer like "150.0", and treats blank as zero.
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	// Pandas-exported integers come back as floats ("150.0").
	if fv, err := strconv.ParseFloat(s, 64); err == nil && fv == float64(int64(fv)) {
		return int64(fv), nil
	}
	return 0, fmt.Errorf("invalid numeric value %q", s)
}
