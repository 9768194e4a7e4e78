package core

import (
	"sort"
	"strconv"
	"strings"
)

// YearRange is an inclusive fiscal-year interval.
type YearRange struct {
	Min int
	Max int
}

// Filter selects a subset of the dataset. Every field is optional; an unset
// field is non-restrictive. An empty Categories slice means all categories,
// matching the UI convention where clearing the selector selects everything.
type Filter struct {
	Year       *int
	State      string
	Categories []string
	YearRange  *YearRange
}

// Matches reports whether the record passes every constraint of the filter.
// Unknown state names or categories simply match nothing.
func (f Filter) Matches(r Record) bool {
	if f.Year != nil && r.Year != *f.Year {
		return false
	}
	if f.State != "" && r.StateName != f.State {
		return false
	}
	if f.YearRange != nil && (r.Year < f.YearRange.Min || r.Year > f.YearRange.Max) {
		return false
	}
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if r.ServiceCategory == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// WithoutYears returns a copy with the year and year-range constraints
// removed, keeping state and category constraints. Used for the "all time"
// comparison totals shown next to single-year figures.
func (f Filter) WithoutYears() Filter {
	f.Year = nil
	f.YearRange = nil
	return f
}

// Key returns a canonical string form of the filter, suitable as a cache key.
// Category order does not affect the key.
func (f Filter) Key() string {
	var b strings.Builder
	if f.Year != nil {
		b.WriteString("y=")
		b.WriteString(strconv.Itoa(*f.Year))
	}
	b.WriteByte('|')
	b.WriteString(f.State)
	b.WriteByte('|')
	if f.YearRange != nil {
		b.WriteString(strconv.Itoa(f.YearRange.Min))
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(f.YearRange.Max))
	}
	b.WriteByte('|')
	if len(f.Categories) > 0 {
		cats := append([]string(nil), f.Categories...)
		sort.Strings(cats)
		b.WriteString(strings.Join(cats, ","))
	}
	return b.String()
}
