package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"jobsight/internal/adapters/render"
	"jobsight/internal/core/domain"
	"jobsight/internal/pkg/metrics"
)

// maxBarCategories caps how many categories a PNG bar chart draws; the
// company axis is unreadable beyond this.
const maxBarCategories = 20

// ChartHandler renders one aggregation as a PNG for the current selection.
// The :name param is experience|cities|states|companies, with an optional
// .png suffix.
func ChartHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := strings.TrimSuffix(c.Params("name"), ".png")

		snap, err := deps.Dashboard.Snapshot(c.UserContext(), selectionFromQuery(c))
		if err != nil {
			return errInternal(c, err.Error())
		}

		png, err := renderChart(name, snap)
		if err != nil {
			return errNotFound(c, err.Error())
		}

		metrics.ChartsRendered.WithLabelValues(name).Inc()
		c.Set("Content-Type", "image/png")
		return c.Send(png)
	}
}

func renderChart(name string, snap domain.Snapshot) ([]byte, error) {
	switch name {
	case "experience":
		return render.Histogram(snap.Experience, "Experience Distribution")
	case "cities":
		return render.BarChart(snap.ByCity, "Jobs by City", "City", maxBarCategories)
	case "states":
		return render.BarChart(snap.ByState, "Jobs by State", "State", maxBarCategories)
	case "companies":
		return render.BarChart(snap.ByCompany, "Jobs by Company", "Company", maxBarCategories)
	default:
		return nil, fmt.Errorf("unknown chart: %s", name)
	}
}
