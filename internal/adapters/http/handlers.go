package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"jobsight/internal/core/domain"
	"jobsight/internal/pkg/geospatial"
)

// ListingRow is a base-table row projected to the columns shown in the
// dashboard table.
type ListingRow struct {
	Title      string `json:"title"`
	Company    string `json:"company"`
	City       string `json:"city"`
	State      string `json:"state"`
	Experience string `json:"experience"`
}

// OptionsResponse carries the dropdown option lists.
type OptionsResponse struct {
	States []string `json:"states"`
	Cities []string `json:"cities"`
}

// SkillMapResponse is the static map table plus the bounds the viewport
// should fit. SpanKm is the diagonal of the bounds, which the map view uses
// to pick an initial zoom level.
type SkillMapResponse struct {
	Cities []domain.SkillMapRow `json:"cities"`
	Bounds domain.Bounds        `json:"bounds"`
	SpanKm float64              `json:"span_km"`
}

// queryMulti gathers a multi-valued filter param. Both repeated keys
// (?state=NSW&state=VIC) and comma-separated values (?state=NSW,VIC) are
// accepted.
func queryMulti(c *fiber.Ctx, key string) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, part := range strings.Split(string(raw), ",") {
			if t := strings.TrimSpace(part); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

// selectionFromQuery builds the filter selection from state/city params.
func selectionFromQuery(c *fiber.Ctx) domain.Selection {
	return domain.Selection{
		States: queryMulti(c, "state"),
		Cities: queryMulti(c, "city"),
	}
}

// SummaryHandler returns the KPI card values for the full dataset.
func SummaryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "public, max-age=3600")
		return c.JSON(deps.Dashboard.Summary())
	}
}

// OptionsHandler returns the distinct state and city values that populate
// the filter dropdowns.
func OptionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		states, cities := deps.Dashboard.Options()
		c.Set("Cache-Control", "public, max-age=3600")
		return c.JSON(OptionsResponse{States: states, Cities: cities})
	}
}

// ListingsHandler returns the filtered listing table, projected and
// paginated.
func ListingsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sel := selectionFromQuery(c)
		filtered := deps.Dashboard.Filter(sel)

		rows := make([]ListingRow, len(filtered))
		for i, l := range filtered {
			rows[i] = ListingRow{
				Title:      l.Title,
				Company:    l.Company,
				City:       l.City,
				State:      l.State,
				Experience: l.Experience,
			}
		}

		offset, limit := parsePageParams(c, 10, 200)
		page, pg := pageOf(rows, offset, limit)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// SnapshotHandler returns all five aggregations for the selection in one
// response.
func SnapshotHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := deps.Dashboard.Snapshot(c.UserContext(), selectionFromQuery(c))
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(snap)
	}
}

// AggregateHandler returns a single aggregation table for the selection.
// name is one of experience, cities, states, companies, skills.
func AggregateHandler(deps *Dependencies, name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := deps.Dashboard.Snapshot(c.UserContext(), selectionFromQuery(c))
		if err != nil {
			return errInternal(c, err.Error())
		}
		switch name {
		case "experience":
			return c.JSON(snap.Experience)
		case "cities":
			return c.JSON(snap.ByCity)
		case "states":
			return c.JSON(snap.ByState)
		case "companies":
			return c.JSON(snap.ByCompany)
		case "skills":
			return c.JSON(snap.SkillPivot)
		default:
			return errNotFound(c, "unknown aggregation: "+name)
		}
	}
}

// SkillMapHandler returns the static skill-distribution map. The map is
// built once from the full dataset; filter params are deliberately ignored
// here.
func SkillMapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cities := deps.Dashboard.SkillMap()
		bounds := domain.MapBounds(cities)
		span := 0.0
		if len(cities) > 0 {
			span = geospatial.HaversineKm(bounds.MinLat, bounds.MinLon, bounds.MaxLat, bounds.MaxLon)
		}
		c.Set("Cache-Control", "public, max-age=3600")
		return c.JSON(SkillMapResponse{Cities: cities, Bounds: bounds, SpanKm: span})
	}
}
