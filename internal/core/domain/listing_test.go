package domain

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	base := parsed([]Listing{
		{City: "Sydney", State: "NSW", Experience: "2"},
		{City: "Sydney", State: "NSW", Experience: "4"},
		{City: "Perth", State: "WA", Experience: "none"},
		{City: "", State: "", Experience: "6"},
	})

	sum := Summarize(base)
	if sum.TotalJobs != 4 {
		t.Errorf("TotalJobs = %d, want 4", sum.TotalJobs)
	}
	if sum.TopState != "NSW" {
		t.Errorf("TopState = %q, want NSW", sum.TopState)
	}
	if sum.TopCity != "Sydney" {
		t.Errorf("TopCity = %q, want Sydney", sum.TopCity)
	}
	if math.Abs(sum.AvgExperience-4) > 1e-9 { // mean of 2, 4, 6
		t.Errorf("AvgExperience = %v, want 4", sum.AvgExperience)
	}
}

func TestSummarizeModalTieBreaksAlphabetically(t *testing.T) {
	sum := Summarize([]Listing{
		{City: "Perth", State: "WA"},
		{City: "Adelaide", State: "SA"},
	})
	if sum.TopCity != "Adelaide" {
		t.Errorf("TopCity = %q, want Adelaide on tie", sum.TopCity)
	}
	if sum.TopState != "SA" {
		t.Errorf("TopState = %q, want SA on tie", sum.TopState)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	if sum.TotalJobs != 0 || sum.TopState != "" || sum.TopCity != "" || sum.AvgExperience != 0 {
		t.Errorf("empty summary = %+v, want zero value", sum)
	}
}
