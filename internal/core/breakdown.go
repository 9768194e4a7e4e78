package core

import "sort"

// StateAggregate is one row of the choropleth dataset: both headline sums
// for a state plus the value of the metric the map is currently coloring by.
type StateAggregate struct {
	StateName             string `json:"state_name"`
	Abbrev                string `json:"abbrev"`
	TotalSSBGExpenditures int64  `json:"total_ssbg_expenditures"`
	TotalRecipients       int64  `json:"total_recipients"`
	Value                 int64  `json:"value"`
}

// GeographicBreakdown groups the filtered records by state and sums both
// headline metrics. Only states with at least one matching record appear;
// rows are sorted by state name for a deterministic order.
func (t *Table) GeographicBreakdown(m Metric, f Filter) []StateAggregate {
	byState := map[string]*StateAggregate{}
	for _, r := range t.records {
		if !f.Matches(r) {
			continue
		}
		agg, ok := byState[r.StateName]
		if !ok {
			agg = &StateAggregate{StateName: r.StateName, Abbrev: StateAbbrev(r.StateName)}
			byState[r.StateName] = agg
		}
		agg.TotalSSBGExpenditures += r.TotalSSBGExpenditures
		agg.TotalRecipients += r.TotalRecipients
		agg.Value += m.Value(r)
	}

	out := make([]StateAggregate, 0, len(byState))
	for _, agg := range byState {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StateName < out[j].StateName })
	return out
}

// CategoryAggregate is one service category's summed expenditures and
// recipients. Value carries the ranked metric in TopCategories results.
type CategoryAggregate struct {
	Category     string `json:"category"`
	Expenditures int64  `json:"expenditures"`
	Recipients   int64  `json:"recipients"`
	Value        int64  `json:"value,omitempty"`
}

// StateCategoryBreakdown groups one state's records by service category and
// sums total SSBG expenditures and recipients. year 0 means all years.
// Categories with zero expenditures are dropped; rows are sorted descending
// by expenditures, ties alphabetical.
func (t *Table) StateCategoryBreakdown(state string, year int) []CategoryAggregate {
	f := Filter{State: state}
	if year != 0 {
		f.Year = &year
	}

	byCat := map[string]*CategoryAggregate{}
	for _, r := range t.records {
		if !f.Matches(r) {
			continue
		}
		agg, ok := byCat[r.ServiceCategory]
		if !ok {
			agg = &CategoryAggregate{Category: r.ServiceCategory}
			byCat[r.ServiceCategory] = agg
		}
		agg.Expenditures += r.TotalSSBGExpenditures
		agg.Recipients += r.TotalRecipients
	}

	out := make([]CategoryAggregate, 0, len(byCat))
	for _, agg := range byCat {
		if agg.Expenditures == 0 {
			continue
		}
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Expenditures != out[j].Expenditures {
			return out[i].Expenditures > out[j].Expenditures
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// TopCategories ranks service categories by the summed metric over the
// filtered set and returns the first n, sorted descending by value with
// ties broken alphabetically ascending on the category name. n <= 0 or
// larger than the category count returns every category.
func (t *Table) TopCategories(f Filter, m Metric, n int) []CategoryAggregate {
	byCat := map[string]*CategoryAggregate{}
	for _, r := range t.records {
		if !f.Matches(r) {
			continue
		}
		agg, ok := byCat[r.ServiceCategory]
		if !ok {
			agg = &CategoryAggregate{Category: r.ServiceCategory}
			byCat[r.ServiceCategory] = agg
		}
		agg.Expenditures += r.TotalSSBGExpenditures
		agg.Recipients += r.TotalRecipients
		agg.Value += m.Value(r)
	}

	out := make([]CategoryAggregate, 0, len(byCat))
	for _, agg := range byCat {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Category < out[j].Category
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
