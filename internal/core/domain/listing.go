package domain

// Listing is one job advertisement row from the dataset. Rows are
// independent of each other; an empty string marks a missing value.
type Listing struct {
	Title            string     `json:"title"`
	Company          string     `json:"company"`
	City             string     `json:"city,omitempty"`
	State            string     `json:"state,omitempty"`
	Experience       string     `json:"experience,omitempty"` // free text, e.g. "3-5" or "5"
	Skills           string     `json:"skills,omitempty"`     // comma-delimited
	ParsedExperience Experience `json:"parsed_experience"`    // derived once at load time
}

// Summary holds the KPI card values shown above the charts. They are
// computed from the unfiltered base table.
type Summary struct {
	TotalJobs     int     `json:"total_jobs"`
	TopState      string  `json:"top_state"`
	TopCity       string  `json:"top_city"`
	AvgExperience float64 `json:"avg_experience_years"`
}

// Summarize computes the KPI values for a base table. The modal state and
// city ignore missing values; ties break toward the alphabetically smaller
// label. AvgExperience is the mean of the parseable experience values, or 0
// when none parsed.
func Summarize(base []Listing) Summary {
	sum := Summary{TotalJobs: len(base)}

	states := make(map[string]int)
	cities := make(map[string]int)
	var total float64
	var parsed int
	for _, l := range base {
		if l.State != "" {
			states[l.State]++
		}
		if l.City != "" {
			cities[l.City]++
		}
		if l.ParsedExperience.Valid {
			total += l.ParsedExperience.Years
			parsed++
		}
	}

	sum.TopState = modal(states)
	sum.TopCity = modal(cities)
	if parsed > 0 {
		sum.AvgExperience = total / float64(parsed)
	}
	return sum
}

func modal(counts map[string]int) string {
	best := ""
	bestN := 0
	for label, n := range counts {
		if n > bestN || (n == bestN && (best == "" || label < best)) {
			best, bestN = label, n
		}
	}
	return best
}
