package core

import "testing"

func TestTimeSeriesZeroFillsMissingYears(t *testing.T) {
	// Ohio has no 2022 rows; the series must still carry a 2022 point.
	tab := testTable()
	pts := tab.TimeSeries(Filter{State: "Ohio"}, MetricExpenditures, false)

	want := []SeriesPoint{
		{Year: 2020, Value: 150},
		{Year: 2021, Value: 100},
		{Year: 2022, Value: 0},
	}
	if len(pts) != len(want) {
		t.Fatalf("points = %d, want %d: %+v", len(pts), len(want), pts)
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Fatalf("point %d = %+v, want %+v", i, pts[i], want[i])
		}
	}
}

func TestTimeSeriesHonorsYearRange(t *testing.T) {
	tab := testTable()
	f := Filter{YearRange: &YearRange{Min: 2021, Max: 2022}}
	pts := tab.TimeSeries(f, MetricRecipients, false)

	if len(pts) != 2 {
		t.Fatalf("points = %d, want 2", len(pts))
	}
	if pts[0].Year != 2021 || pts[0].Value != 12 {
		t.Fatalf("pts[0] = %+v, want 2021/12", pts[0])
	}
	if pts[1].Year != 2022 || pts[1].Value != 15 {
		t.Fatalf("pts[1] = %+v, want 2022/15", pts[1])
	}
}

func TestTimeSeriesByCategory(t *testing.T) {
	tab := testTable()
	pts := tab.TimeSeries(Filter{}, MetricExpenditures, true)

	// Two categories over 2020..2022, every (year, category) cell present,
	// years ascending and categories alphabetical within a year.
	want := []SeriesPoint{
		{Year: 2020, Category: "Child Care", Value: 400},
		{Year: 2020, Category: "Food", Value: 50},
		{Year: 2021, Category: "Child Care", Value: 100},
		{Year: 2021, Category: "Food", Value: 0},
		{Year: 2022, Category: "Child Care", Value: 0},
		{Year: 2022, Category: "Food", Value: 150},
	}
	if len(pts) != len(want) {
		t.Fatalf("points = %d, want %d: %+v", len(pts), len(want), pts)
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Fatalf("point %d = %+v, want %+v", i, pts[i], want[i])
		}
	}
}

func TestTimeSeriesEmptyTable(t *testing.T) {
	tab := NewTable(nil)
	if pts := tab.TimeSeries(Filter{}, MetricExpenditures, false); pts != nil {
		t.Fatalf("empty table series = %+v, want nil", pts)
	}
}

func TestTimeSeriesInvertedRange(t *testing.T) {
	tab := testTable()
	f := Filter{YearRange: &YearRange{Min: 2022, Max: 2020}}
	if pts := tab.TimeSeries(f, MetricExpenditures, false); pts != nil {
		t.Fatalf("inverted range series = %+v, want nil", pts)
	}
}
