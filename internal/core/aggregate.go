package core

// Totals is the canonical summary shape for any filter scope, national or
// single-state. It carries the sum of every monetary and recipient column
// plus the derived ratios shown on the summary cards. Ratios with a zero
// denominator are 0, never NaN.
type Totals struct {
	SSBGExpenditures        int64
	TANFTransferFunds       int64
	TotalSSBGExpenditures   int64
	OtherFedStateLocalFunds int64
	TotalExpenditures       int64

	Children           int64
	Adults59AndYounger int64
	Adults60AndOlder   int64
	AdultsUnknown      int64
	TotalAdults        int64
	TotalRecipients    int64

	// Derived ratios.
	AvgPerRecipient float64 // total SSBG dollars per recipient
	SSBGShare       float64 // SSBG-only share of total SSBG expenditures
	TANFShare       float64 // TANF transfer share of total SSBG expenditures
	ChildrenShare   float64 // children share of total recipients
	AdultsShare     float64 // adults share of total recipients

	// FundedCategories counts distinct service categories with nonzero
	// total SSBG expenditures in the filtered set.
	FundedCategories int

	// Mean-of-yearly-sums averages: the metric is summed per fiscal year
	// first, then averaged over the years present. A category with many
	// rows in one year is not overweighted the way a per-row mean would.
	AvgYearlySSBG       float64
	AvgYearlyRecipients float64
}

// Totals computes summary totals over the filtered subset. An empty subset
// yields all zeros.
func (t *Table) Totals(f Filter) Totals {
	var out Totals
	ssbgByYear := map[int]int64{}
	recipientsByYear := map[int]int64{}
	fundedCats := map[string]struct{}{}

	for _, r := range t.records {
		if !f.Matches(r) {
			continue
		}
		out.SSBGExpenditures += r.SSBGExpenditures
		out.TANFTransferFunds += r.TANFTransferFunds
		out.TotalSSBGExpenditures += r.TotalSSBGExpenditures
		out.OtherFedStateLocalFunds += r.OtherFedStateLocalFunds
		out.TotalExpenditures += r.TotalExpenditures

		out.Children += r.Children
		out.Adults59AndYounger += r.Adults59AndYounger
		out.Adults60AndOlder += r.Adults60AndOlder
		out.AdultsUnknown += r.AdultsUnknown
		out.TotalAdults += r.TotalAdults
		out.TotalRecipients += r.TotalRecipients

		ssbgByYear[r.Year] += r.TotalSSBGExpenditures
		recipientsByYear[r.Year] += r.TotalRecipients
		if r.TotalSSBGExpenditures > 0 {
			fundedCats[r.ServiceCategory] = struct{}{}
		}
	}

	out.AvgPerRecipient = safeRatio(float64(out.TotalSSBGExpenditures), float64(out.TotalRecipients))
	out.SSBGShare = safeRatio(float64(out.SSBGExpenditures), float64(out.TotalSSBGExpenditures))
	out.TANFShare = safeRatio(float64(out.TANFTransferFunds), float64(out.TotalSSBGExpenditures))
	out.ChildrenShare = safeRatio(float64(out.Children), float64(out.TotalRecipients))
	out.AdultsShare = safeRatio(float64(out.TotalAdults), float64(out.TotalRecipients))
	out.FundedCategories = len(fundedCats)
	out.AvgYearlySSBG = meanOfYearlySums(ssbgByYear)
	out.AvgYearlyRecipients = meanOfYearlySums(recipientsByYear)
	return out
}

// AllTimeTotals computes totals with the year and year-range constraints
// stripped and all other constraints retained, for "current vs. average
// since FY10" card comparisons.
func (t *Table) AllTimeTotals(f Filter) Totals {
	return t.Totals(f.WithoutYears())
}

// safeRatio divides num by den, defining division by zero as 0.
func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// meanOfYearlySums averages per-year sums over the years present.
func meanOfYearlySums(byYear map[int]int64) float64 {
	if len(byYear) == 0 {
		return 0
	}
	var total int64
	for _, v := range byYear {
		total += v
	}
	return float64(total) / float64(len(byYear))
}
