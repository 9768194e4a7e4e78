// Package core implements the SSBG dataset table and the pure query
// functions the dashboard is built on: filtering, summary totals, time
// series, geographic and per-category breakdowns.
//
// The table is loaded once at process start and never mutated, so every
// query method is safe for concurrent use without locking.
package core

import "sort"

// Table is the immutable in-memory dataset.
type Table struct {
	records []Record
}

// NewTable builds a table from loaded records. The slice is copied; callers
// keep no handle into the table's backing storage.
func NewTable(records []Record) *Table {
	rs := make([]Record, len(records))
	copy(rs, records)
	return &Table{records: rs}
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.records)
}

// Rows returns the records matching the filter, in stable input order.
// The result is a copy; mutating it does not touch the table.
func (t *Table) Rows(f Filter) []Record {
	out := make([]Record, 0, len(t.records))
	for _, r := range t.records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Distinct holds the unique filter-control values present in the dataset.
type Distinct struct {
	Years             []int
	States            []string
	ServiceCategories []string
}

// DistinctValues returns the sorted unique years, states, and service
// categories, used to populate the UI filter controls.
func (t *Table) DistinctValues() Distinct {
	years := map[int]struct{}{}
	states := map[string]struct{}{}
	cats := map[string]struct{}{}
	for _, r := range t.records {
		years[r.Year] = struct{}{}
		states[r.StateName] = struct{}{}
		cats[r.ServiceCategory] = struct{}{}
	}

	d := Distinct{
		Years:             make([]int, 0, len(years)),
		States:            make([]string, 0, len(states)),
		ServiceCategories: make([]string, 0, len(cats)),
	}
	for y := range years {
		d.Years = append(d.Years, y)
	}
	for s := range states {
		d.States = append(d.States, s)
	}
	for c := range cats {
		d.ServiceCategories = append(d.ServiceCategories, c)
	}
	sort.Ints(d.Years)
	sort.Strings(d.States)
	sort.Strings(d.ServiceCategories)
	return d
}

// YearBounds returns the first and last fiscal year in the table. ok is
// false for an empty table.
func (t *Table) YearBounds() (min, max int, ok bool) {
	for i, r := range t.records {
		if i == 0 || r.Year < min {
			min = r.Year
		}
		if i == 0 || r.Year > max {
			max = r.Year
		}
	}
	return min, max, len(t.records) > 0
}
