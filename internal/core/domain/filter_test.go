package domain

import "testing"

func sampleTable() []Listing {
	return []Listing{
		{Title: "Data Engineer", Company: "Acme", City: "Sydney", State: "NSW", Experience: "3-5", Skills: "Python, SQL"},
		{Title: "Backend Dev", Company: "Acme", City: "Melbourne", State: "VIC", Experience: "2", Skills: "Go, SQL"},
		{Title: "Analyst", Company: "Beta", City: "Sydney", State: "NSW", Experience: "1", Skills: "SQL"},
		{Title: "SRE", Company: "Gamma", City: "Perth", State: "WA", Experience: "5", Skills: "Go, Linux"},
		{Title: "Intern", Company: "Beta", City: "", State: "NSW", Experience: "", Skills: ""},
	}
}

func parsed(rows []Listing) []Listing {
	for i := range rows {
		rows[i].ParsedExperience = ParseExperience(rows[i].Experience)
	}
	return rows
}

func TestFilterEmptySelectionReturnsFullTable(t *testing.T) {
	base := sampleTable()
	got := Filter(base, Selection{})
	if len(got) != len(base) {
		t.Fatalf("empty selection returned %d rows, want %d", len(got), len(base))
	}
}

func TestFilterByState(t *testing.T) {
	got := Filter(sampleTable(), Selection{States: []string{"NSW"}})
	if len(got) != 3 {
		t.Fatalf("NSW filter returned %d rows, want 3", len(got))
	}
	for _, l := range got {
		if l.State != "NSW" {
			t.Errorf("row %q has state %q", l.Title, l.State)
		}
	}
}

func TestFilterConjunctive(t *testing.T) {
	// NSW has no Perth rows, so the conjunction is empty.
	got := Filter(sampleTable(), Selection{States: []string{"NSW"}, Cities: []string{"Perth"}})
	if len(got) != 0 {
		t.Fatalf("NSW+Perth returned %d rows, want 0", len(got))
	}

	got = Filter(sampleTable(), Selection{States: []string{"NSW"}, Cities: []string{"Sydney"}})
	if len(got) != 2 {
		t.Fatalf("NSW+Sydney returned %d rows, want 2", len(got))
	}
}

func TestFilterUnknownValueMatchesNothing(t *testing.T) {
	got := Filter(sampleTable(), Selection{States: []string{"Atlantis"}})
	if len(got) != 0 {
		t.Fatalf("unknown state returned %d rows, want 0", len(got))
	}
}

func TestFilterIdempotent(t *testing.T) {
	sel := Selection{States: []string{"NSW", "VIC"}}
	once := Filter(sampleTable(), sel)
	twice := Filter(once, sel)
	if len(once) != len(twice) {
		t.Fatalf("second application changed row count: %d vs %d", len(once), len(twice))
	}
}

func TestSelectionKeyCanonical(t *testing.T) {
	a := Selection{States: []string{"VIC", "NSW"}, Cities: []string{"Sydney"}}
	b := Selection{States: []string{"NSW", "VIC"}, Cities: []string{"Sydney"}}
	if a.Key() != b.Key() {
		t.Errorf("keys differ for equivalent selections: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() == (Selection{}).Key() {
		t.Errorf("non-empty selection shares key with empty selection")
	}

	want := "states=NSW,VIC;cities=Sydney"
	if a.Key() != want {
		t.Errorf("Key() = %q, want %q", a.Key(), want)
	}
}
