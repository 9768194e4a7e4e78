package core

import "testing"

// rec builds a record with the cross-field totals filled in, mirroring the
// invariants the loader guarantees.
func rec(year int, state, cat string, ssbg, tanf, other, children, a59, a60, aunk int64) Record {
	adults := a59 + a60 + aunk
	return Record{
		Year:                    year,
		StateName:               state,
		ServiceCategory:         cat,
		SSBGExpenditures:        ssbg,
		TANFTransferFunds:       tanf,
		TotalSSBGExpenditures:   ssbg + tanf,
		OtherFedStateLocalFunds: other,
		TotalExpenditures:       ssbg + tanf + other,
		Children:                children,
		Adults59AndYounger:      a59,
		Adults60AndOlder:        a60,
		AdultsUnknown:           aunk,
		TotalAdults:             adults,
		TotalRecipients:         children + adults,
	}
}

func testTable() *Table {
	return NewTable([]Record{
		rec(2020, "Ohio", "Child Care", 60, 40, 25, 6, 2, 1, 1),
		rec(2020, "Ohio", "Food", 50, 0, 10, 3, 1, 0, 1),
		rec(2020, "Texas", "Child Care", 200, 100, 50, 20, 6, 3, 1),
		rec(2021, "Ohio", "Child Care", 80, 20, 30, 8, 2, 2, 0),
		rec(2022, "Texas", "Food", 120, 30, 5, 10, 4, 1, 0),
	})
}

func intp(v int) *int { return &v }

func TestTotalsUnfilteredEqualsWholeTable(t *testing.T) {
	tab := testTable()
	got := tab.Totals(Filter{})

	if got.TotalSSBGExpenditures != 700 {
		t.Fatalf("TotalSSBGExpenditures = %d, want 700", got.TotalSSBGExpenditures)
	}
	if got.SSBGExpenditures != 510 || got.TANFTransferFunds != 190 {
		t.Fatalf("subtotals = %d + %d, want 510 + 190", got.SSBGExpenditures, got.TANFTransferFunds)
	}
	if got.OtherFedStateLocalFunds != 120 || got.TotalExpenditures != 820 {
		t.Fatalf("other/total = %d/%d, want 120/820", got.OtherFedStateLocalFunds, got.TotalExpenditures)
	}
	if got.TotalRecipients != 72 || got.Children != 47 || got.TotalAdults != 25 {
		t.Fatalf("recipients = %d (children %d, adults %d), want 72 (47, 25)", got.TotalRecipients, got.Children, got.TotalAdults)
	}
	if got.FundedCategories != 2 {
		t.Fatalf("FundedCategories = %d, want 2", got.FundedCategories)
	}
}

func TestTotalsFiltered(t *testing.T) {
	tab := testTable()

	cases := []struct {
		name           string
		f              Filter
		wantSSBG       int64
		wantRecipients int64
	}{
		{"year only", Filter{Year: intp(2020)}, 450, 45},
		{"state only", Filter{State: "Ohio"}, 250, 27},
		{"state and year", Filter{State: "Ohio", Year: intp(2020)}, 150, 15},
		{"category", Filter{Categories: []string{"Food"}}, 200, 20},
		{"year range", Filter{YearRange: &YearRange{Min: 2021, Max: 2022}}, 250, 27},
		{"empty categories means all", Filter{Year: intp(2020), Categories: []string{}}, 450, 45},
		{"unknown state matches nothing", Filter{State: "Atlantis"}, 0, 0},
		{"unknown category matches nothing", Filter{Categories: []string{"Dragon Care"}}, 0, 0},
	}
	for _, tc := range cases {
		got := tab.Totals(tc.f)
		if got.TotalSSBGExpenditures != tc.wantSSBG {
			t.Fatalf("%s: TotalSSBGExpenditures = %d, want %d", tc.name, got.TotalSSBGExpenditures, tc.wantSSBG)
		}
		if got.TotalRecipients != tc.wantRecipients {
			t.Fatalf("%s: TotalRecipients = %d, want %d", tc.name, got.TotalRecipients, tc.wantRecipients)
		}
	}
}

func TestTotalsEmptySetIsZeroNotError(t *testing.T) {
	tab := testTable()
	got := tab.Totals(Filter{State: "Atlantis"})
	if got != (Totals{}) {
		t.Fatalf("empty-set totals = %+v, want zero value", got)
	}

	empty := NewTable(nil)
	if got := empty.Totals(Filter{}); got != (Totals{}) {
		t.Fatalf("empty-table totals = %+v, want zero value", got)
	}
}

func TestTotalsRatios(t *testing.T) {
	tab := testTable()
	got := tab.Totals(Filter{State: "Ohio", Year: intp(2020)})

	// 150 dollars over 15 recipients.
	if got.AvgPerRecipient != 10 {
		t.Fatalf("AvgPerRecipient = %v, want 10", got.AvgPerRecipient)
	}
	// 110 of 150 is direct SSBG, 40 of 150 is TANF transfer.
	if got.SSBGShare != 110.0/150.0 {
		t.Fatalf("SSBGShare = %v, want %v", got.SSBGShare, 110.0/150.0)
	}
	if got.TANFShare != 40.0/150.0 {
		t.Fatalf("TANFShare = %v, want %v", got.TANFShare, 40.0/150.0)
	}
	if got.ChildrenShare != 9.0/15.0 || got.AdultsShare != 6.0/15.0 {
		t.Fatalf("shares = %v/%v, want 0.6/0.4", got.ChildrenShare, got.AdultsShare)
	}
}

func TestRatioDenominatorZeroIsZero(t *testing.T) {
	// A record with expenditures but no recipients at all.
	tab := NewTable([]Record{rec(2020, "Ohio", "Admin", 100, 0, 0, 0, 0, 0, 0)})
	got := tab.Totals(Filter{})
	if got.AvgPerRecipient != 0 {
		t.Fatalf("AvgPerRecipient = %v, want 0 for zero recipients", got.AvgPerRecipient)
	}
	if got.ChildrenShare != 0 || got.AdultsShare != 0 {
		t.Fatalf("recipient shares = %v/%v, want 0/0", got.ChildrenShare, got.AdultsShare)
	}

	// And the inverse: recipients but no money.
	tab = NewTable([]Record{rec(2020, "Ohio", "Food", 0, 0, 0, 5, 1, 0, 0)})
	got = tab.Totals(Filter{})
	if got.SSBGShare != 0 || got.TANFShare != 0 {
		t.Fatalf("expenditure shares = %v/%v, want 0/0", got.SSBGShare, got.TANFShare)
	}
}

func TestAvgYearlyIsMeanOfYearlySumsNotRowMean(t *testing.T) {
	// 2020 has three rows summing to 450; 2021 one row of 100; 2022 one of
	// 150. Mean of yearly sums is (450+100+150)/3; the per-row mean would
	// be 700/5 and must not be what we compute.
	tab := testTable()
	got := tab.Totals(Filter{})

	want := 700.0 / 3.0
	if got.AvgYearlySSBG != want {
		t.Fatalf("AvgYearlySSBG = %v, want %v", got.AvgYearlySSBG, want)
	}
	if got.AvgYearlySSBG == 700.0/5.0 {
		t.Fatalf("AvgYearlySSBG is the per-row mean; must average per-year sums")
	}
	if got.AvgYearlyRecipients != 72.0/3.0 {
		t.Fatalf("AvgYearlyRecipients = %v, want 24", got.AvgYearlyRecipients)
	}
}

func TestAllTimeTotalsDropsYearKeepsOtherConstraints(t *testing.T) {
	tab := testTable()
	f := Filter{State: "Ohio", Year: intp(2020), YearRange: &YearRange{Min: 2020, Max: 2020}}

	got := tab.AllTimeTotals(f)
	want := tab.Totals(Filter{State: "Ohio"})
	if got != want {
		t.Fatalf("AllTimeTotals = %+v, want state-scoped totals %+v", got, want)
	}
}

func TestTotalsOhioExample(t *testing.T) {
	// The two-record example: totals and the per-category breakdown must
	// line up with the plain sums.
	tab := NewTable([]Record{
		rec(2020, "Ohio", "Child Care", 100, 0, 0, 10, 0, 0, 0),
		rec(2020, "Ohio", "Food", 50, 0, 0, 5, 0, 0, 0),
	})

	got := tab.Totals(Filter{Year: intp(2020)})
	if got.TotalSSBGExpenditures != 150 || got.TotalRecipients != 15 {
		t.Fatalf("totals = %d/%d, want 150/15", got.TotalSSBGExpenditures, got.TotalRecipients)
	}

	breakdown := tab.StateCategoryBreakdown("Ohio", 2020)
	if len(breakdown) != 2 {
		t.Fatalf("breakdown rows = %d, want 2", len(breakdown))
	}
	if breakdown[0].Category != "Child Care" || breakdown[0].Expenditures != 100 || breakdown[0].Recipients != 10 {
		t.Fatalf("breakdown[0] = %+v, want Child Care/100/10", breakdown[0])
	}
	if breakdown[1].Category != "Food" || breakdown[1].Expenditures != 50 || breakdown[1].Recipients != 5 {
		t.Fatalf("breakdown[1] = %+v, want Food/50/5", breakdown[1])
	}
}
