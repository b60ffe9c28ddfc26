package domain

import "testing"

func TestAggregateEmptyInput(t *testing.T) {
	snap := Aggregate(nil, Selection{})
	if snap.Total != 0 {
		t.Errorf("Total = %d, want 0", snap.Total)
	}
	if len(snap.Experience) != 0 {
		t.Errorf("Experience has %d bins, want 0", len(snap.Experience))
	}
	if len(snap.ByCity) != 0 || len(snap.ByState) != 0 || len(snap.ByCompany) != 0 {
		t.Errorf("category counts not empty: %v %v %v", snap.ByCity, snap.ByState, snap.ByCompany)
	}
	if len(snap.SkillPivot) != 0 {
		t.Errorf("SkillPivot has %d rows, want 0", len(snap.SkillPivot))
	}
}

func TestExperienceHistogramBins(t *testing.T) {
	rows := parsed([]Listing{
		{Experience: "0"},
		{Experience: "10"},
		{Experience: "5"},
		{Experience: "junk"}, // ignored
	})

	bins := ExperienceHistogram(rows)
	if len(bins) != 20 {
		t.Fatalf("got %d bins, want 20", len(bins))
	}
	if bins[0].Low != 0 {
		t.Errorf("first bin Low = %v, want 0", bins[0].Low)
	}
	if bins[19].High != 10 {
		t.Errorf("last bin High = %v, want 10", bins[19].High)
	}

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 3 {
		t.Errorf("bin counts sum to %d, want 3", total)
	}

	// Max value lands in the last bin, not out of range.
	if bins[19].Count != 1 {
		t.Errorf("last bin count = %d, want 1 (the max value)", bins[19].Count)
	}
}

func TestExperienceHistogramSingleValue(t *testing.T) {
	rows := parsed([]Listing{{Experience: "3"}, {Experience: "3"}, {Experience: "3-5"}})
	bins := ExperienceHistogram(rows)
	if len(bins) != 1 {
		t.Fatalf("identical values should collapse to 1 bin, got %d", len(bins))
	}
	if bins[0].Low != 3 || bins[0].High != 3 || bins[0].Count != 3 {
		t.Errorf("bin = %+v, want {3 3 3}", bins[0])
	}
}

func TestExperienceHistogramNoParseableValues(t *testing.T) {
	rows := parsed([]Listing{{Experience: ""}, {Experience: "none"}})
	if bins := ExperienceHistogram(rows); len(bins) != 0 {
		t.Errorf("got %d bins, want 0", len(bins))
	}
}

func TestCountByCityOrdering(t *testing.T) {
	rows := []Listing{
		{City: "Sydney"}, {City: "Sydney"}, {City: "Perth"},
		{City: "Melbourne"}, {City: "Melbourne"}, {City: ""},
	}
	got := CountByCity(rows)
	want := []CategoryCount{
		{Label: "Melbourne", Count: 2}, // ties break alphabetically
		{Label: "Sydney", Count: 2},
		{Label: "Perth", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCountByCitySumsToNonBlankRows(t *testing.T) {
	rows := sampleTable()
	total := 0
	for _, c := range CountByCity(rows) {
		total += c.Count
	}
	if total != 4 { // one row has no city
		t.Errorf("counts sum to %d, want 4", total)
	}
}

func TestSkillPivotExplodesAndGroups(t *testing.T) {
	rows := []Listing{
		{City: "Sydney", Skills: "Python, SQL"},
		{City: "Sydney", Skills: "SQL, Java"},
		{City: "Perth", Skills: "Go"},
		{City: "", Skills: "Rust"},     // no city: dropped
		{City: "Hobart", Skills: ""},   // no skills: dropped
		{City: "Sydney", Skills: " , "}, // only empty tokens
	}

	got := SkillPivot(rows)
	want := []SkillCount{
		{City: "Perth", Skill: "Go", Count: 1},
		{City: "Sydney", Skill: "Java", Count: 1},
		{City: "Sydney", Skill: "Python", Count: 1},
		{City: "Sydney", Skill: "SQL", Count: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d pivot rows, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSplitSkillsTrimsAndDropsEmpty(t *testing.T) {
	got := SplitSkills(" Python ,, SQL , ")
	if len(got) != 2 || got[0] != "Python" || got[1] != "SQL" {
		t.Errorf("SplitSkills = %v, want [Python SQL]", got)
	}
}

// End-to-end over a small table: filter then aggregate, checking the
// snapshot reflects only matching rows.
func TestFilterThenAggregate(t *testing.T) {
	base := parsed([]Listing{
		{Title: "A", Company: "X", City: "Sydney", State: "NSW", Experience: "2", Skills: "SQL"},
		{Title: "B", Company: "X", City: "Melbourne", State: "VIC", Experience: "4", Skills: "Go"},
		{Title: "C", Company: "Y", City: "Sydney", State: "NSW", Experience: "6", Skills: "SQL, Go"},
	})

	snap := Aggregate(Filter(base, Selection{States: []string{"NSW"}}), Selection{States: []string{"NSW"}})
	if snap.Total != 2 {
		t.Fatalf("Total = %d, want 2", snap.Total)
	}
	if len(snap.ByCity) != 1 || snap.ByCity[0].Label != "Sydney" || snap.ByCity[0].Count != 2 {
		t.Errorf("ByCity = %+v, want [{Sydney 2}]", snap.ByCity)
	}
	if len(snap.ByCompany) != 2 {
		t.Errorf("ByCompany = %+v, want two companies", snap.ByCompany)
	}

	foundSQL := false
	for _, sc := range snap.SkillPivot {
		if sc.City == "Sydney" && sc.Skill == "SQL" && sc.Count == 2 {
			foundSQL = true
		}
		if sc.City == "Melbourne" {
			t.Errorf("filtered-out city appears in pivot: %+v", sc)
		}
	}
	if !foundSQL {
		t.Errorf("expected (Sydney, SQL, 2) in pivot, got %+v", snap.SkillPivot)
	}
}
