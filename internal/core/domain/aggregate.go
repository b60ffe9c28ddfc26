package domain

import (
	"sort"
	"strings"
)

// histogramBins is the fixed bin count for the experience distribution.
const histogramBins = 20

// CategoryCount is one (label, count) pair of a bar chart.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HistogramBin is one equal-width bucket of the experience distribution.
// Low is inclusive; High is exclusive except for the last bin.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// SkillCount is one (city, skill) leaf of the treemap hierarchy.
type SkillCount struct {
	City  string `json:"city"`
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// Snapshot bundles every chart table computed for one selection.
type Snapshot struct {
	Selection  Selection       `json:"selection"`
	Total      int             `json:"total"`
	Experience []HistogramBin  `json:"experience_histogram"`
	ByCity     []CategoryCount `json:"by_city"`
	ByState    []CategoryCount `json:"by_state"`
	ByCompany  []CategoryCount `json:"by_company"`
	SkillPivot []SkillCount    `json:"skill_pivot"`
}

// Aggregate computes all five chart tables over an already-filtered view.
// An empty view produces a snapshot with empty tables, never an error.
func Aggregate(filtered []Listing, sel Selection) Snapshot {
	return Snapshot{
		Selection:  sel,
		Total:      len(filtered),
		Experience: ExperienceHistogram(filtered),
		ByCity:     CountByCity(filtered),
		ByState:    CountByState(filtered),
		ByCompany:  CountByCompany(filtered),
		SkillPivot: SkillPivot(filtered),
	}
}

// ExperienceHistogram buckets the parsed experience values into 20
// equal-width bins spanning the observed min/max of the view. Listings
// without a parseable experience are ignored. When every value is
// identical the result collapses to a single bin.
func ExperienceHistogram(rows []Listing) []HistogramBin {
	var values []float64
	for _, l := range rows {
		if l.ParsedExperience.Valid {
			values = append(values, l.ParsedExperience.Years)
		}
	}
	if len(values) == 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return []HistogramBin{{Low: min, High: max, Count: len(values)}}
	}

	width := (max - min) / histogramBins
	bins := make([]HistogramBin, histogramBins)
	for i := range bins {
		bins[i].Low = min + float64(i)*width
		bins[i].High = min + float64(i+1)*width
	}
	bins[histogramBins-1].High = max

	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= histogramBins {
			idx = histogramBins - 1
		}
		bins[idx].Count++
	}
	return bins
}

// CountByCity counts listings per city, skipping rows without one.
func CountByCity(rows []Listing) []CategoryCount {
	return countBy(rows, func(l Listing) string { return l.City })
}

// CountByState counts listings per state, skipping rows without one.
func CountByState(rows []Listing) []CategoryCount {
	return countBy(rows, func(l Listing) string { return l.State })
}

// CountByCompany counts listings per company, skipping rows without one.
func CountByCompany(rows []Listing) []CategoryCount {
	return countBy(rows, func(l Listing) string { return l.Company })
}

// countBy groups rows by a label and orders the result by descending
// count, ties broken alphabetically, so output is deterministic for a
// given view regardless of input row order.
func countBy(rows []Listing, label func(Listing) string) []CategoryCount {
	counts := make(map[string]int)
	for _, l := range rows {
		if k := label(l); k != "" {
			counts[k]++
		}
	}
	out := make([]CategoryCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, CategoryCount{Label: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// SkillPivot explodes the comma-delimited skills of each row into one
// (city, skill) pair per skill and counts occurrences. Rows missing either
// a city or skills are dropped. Output is ordered by city, then skill.
func SkillPivot(rows []Listing) []SkillCount {
	counts := make(map[[2]string]int)
	for _, l := range rows {
		if l.City == "" || l.Skills == "" {
			continue
		}
		for _, skill := range SplitSkills(l.Skills) {
			counts[[2]string{l.City, skill}]++
		}
	}
	out := make([]SkillCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, SkillCount{City: key[0], Skill: key[1], Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Skill < out[j].Skill
	})
	return out
}

// SplitSkills splits a comma-delimited skills cell into trimmed tokens.
// Empty tokens are discarded. Matching is case-sensitive: "SQL" and "sql"
// are distinct skills.
func SplitSkills(cell string) []string {
	parts := strings.Split(cell, ",")
	out := parts[:0]
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
