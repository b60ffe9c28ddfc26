// Command export renders the dashboard charts for a selection to PNG files
// without running the API server. Useful for reports and CI artifacts.
//
//	export -dataset cleaned_data_1.csv -out ./charts -states NSW,VIC -cities Sydney
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"jobsight/internal/adapters/csvfile"
	"jobsight/internal/adapters/render"
	"jobsight/internal/core/domain"
)

func main() {
	var (
		datasetPath = flag.String("dataset", "cleaned_data_1.csv", "path to the listings CSV")
		outDir      = flag.String("out", "charts", "output directory for PNG files")
		states      = flag.String("states", "", "comma-separated state filter")
		cities      = flag.String("cities", "", "comma-separated city filter")
		topN        = flag.Int("top", 20, "max categories per bar chart")
	)
	flag.Parse()

	store := csvfile.New(*datasetPath)
	listings, err := store.Load(context.Background())
	if err != nil {
		log.Fatalf("load dataset %s: %v", *datasetPath, err)
	}

	sel := domain.Selection{States: splitList(*states), Cities: splitList(*cities)}
	snap := domain.Aggregate(domain.Filter(listings, sel), sel)
	fmt.Printf("dataset: %d rows, selection %q matches %d\n", len(listings), sel.Key(), snap.Total)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	charts := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{"experience", func() ([]byte, error) {
			return render.Histogram(snap.Experience, "Experience Distribution")
		}},
		{"cities", func() ([]byte, error) {
			return render.BarChart(snap.ByCity, "Jobs by City", "City", *topN)
		}},
		{"states", func() ([]byte, error) {
			return render.BarChart(snap.ByState, "Jobs by State", "State", *topN)
		}},
		{"companies", func() ([]byte, error) {
			return render.BarChart(snap.ByCompany, "Jobs by Company", "Company", *topN)
		}},
	}

	for _, ch := range charts {
		png, err := ch.render()
		if err != nil {
			log.Fatalf("render %s: %v", ch.name, err)
		}
		path := filepath.Join(*outDir, ch.name+".png")
		if err := os.WriteFile(path, png, 0o644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		fmt.Println("wrote", path)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
