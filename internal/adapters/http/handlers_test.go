package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"jobsight/internal/core/domain"
	"jobsight/internal/core/usecases"
)

func testRows() []domain.Listing {
	rows := []domain.Listing{
		{Title: "Data Engineer", Company: "Acme", City: "Sydney", State: "NSW", Experience: "3-5", Skills: "Python, SQL"},
		{Title: "Backend Dev", Company: "Acme", City: "Melbourne", State: "VIC", Experience: "2", Skills: "Go, SQL"},
		{Title: "Analyst", Company: "Beta", City: "Sydney", State: "NSW", Experience: "1", Skills: "SQL"},
		{Title: "SRE", Company: "Gamma", City: "Perth", State: "WA", Experience: "5", Skills: "Go, Linux"},
	}
	for i := range rows {
		rows[i].ParsedExperience = domain.ParseExperience(rows[i].Experience)
	}
	return rows
}

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	deps := &Dependencies{
		Dashboard: usecases.NewDashboardService(testRows(), nil, nil, 300),
	}
	SetupRoutes(app, deps)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string, out interface{}) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	if out != nil {
		body, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(body, out); err != nil {
			t.Fatalf("GET %s: decode %q: %v", path, body, err)
		}
	}
	return resp
}

func TestSummaryEndpoint(t *testing.T) {
	app := testApp(t)

	var sum domain.Summary
	resp := getJSON(t, app, "/v1/summary", &sum)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if sum.TotalJobs != 4 {
		t.Errorf("total_jobs = %d, want 4", sum.TotalJobs)
	}
	if sum.TopCity != "Sydney" {
		t.Errorf("top_city = %q, want Sydney", sum.TopCity)
	}
}

func TestOptionsEndpoint(t *testing.T) {
	app := testApp(t)

	var opts OptionsResponse
	getJSON(t, app, "/v1/options", &opts)
	if len(opts.States) != 3 {
		t.Errorf("states = %v, want 3 values", opts.States)
	}
	if opts.Cities[0] != "Sydney" {
		t.Errorf("cities = %v, want first-seen order starting with Sydney", opts.Cities)
	}
}

func TestListingsFilterAndPagination(t *testing.T) {
	app := testApp(t)

	var page struct {
		Data       []ListingRow `json:"data"`
		Pagination Pagination   `json:"pagination"`
	}

	// Unfiltered
	getJSON(t, app, "/v1/listings", &page)
	if page.Pagination.Total != 4 || len(page.Data) != 4 {
		t.Errorf("unfiltered: total=%d rows=%d, want 4/4", page.Pagination.Total, len(page.Data))
	}

	// State filter
	getJSON(t, app, "/v1/listings?state=NSW", &page)
	if page.Pagination.Total != 2 {
		t.Errorf("NSW total = %d, want 2", page.Pagination.Total)
	}

	// Conjunctive filter with no overlap
	getJSON(t, app, "/v1/listings?state=NSW&city=Perth", &page)
	if page.Pagination.Total != 0 {
		t.Errorf("NSW+Perth total = %d, want 0", page.Pagination.Total)
	}

	// Comma-separated multi-value
	getJSON(t, app, "/v1/listings?city=Sydney,Perth", &page)
	if page.Pagination.Total != 3 {
		t.Errorf("Sydney,Perth total = %d, want 3", page.Pagination.Total)
	}

	// Pagination slices
	resp := getJSON(t, app, "/v1/listings?offset=1&limit=2", &page)
	if len(page.Data) != 2 || page.Pagination.Offset != 1 {
		t.Errorf("page = %+v", page.Pagination)
	}
	if link := resp.Header.Get("Link"); !strings.Contains(link, `rel="next"`) {
		t.Errorf("Link header missing next: %q", link)
	}

	// Offset past the end
	getJSON(t, app, "/v1/listings?offset=100", &page)
	if len(page.Data) != 0 {
		t.Errorf("out-of-range offset returned %d rows", len(page.Data))
	}
}

func TestAggregatesEndpoint(t *testing.T) {
	app := testApp(t)

	var snap domain.Snapshot
	getJSON(t, app, "/v1/aggregates?state=NSW", &snap)
	if snap.Total != 2 {
		t.Errorf("total = %d, want 2", snap.Total)
	}
	if len(snap.ByCity) != 1 || snap.ByCity[0].Label != "Sydney" {
		t.Errorf("by_city = %+v", snap.ByCity)
	}

	// Empty result is a valid snapshot, not an error.
	resp := getJSON(t, app, "/v1/aggregates?state=Atlantis", &snap)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if snap.Total != 0 {
		t.Errorf("total = %d, want 0", snap.Total)
	}
}

func TestAggregateSkillsEndpoint(t *testing.T) {
	app := testApp(t)

	var pivot []domain.SkillCount
	getJSON(t, app, "/v1/aggregates/skills?city=Sydney", &pivot)

	want := map[string]int{"Python": 1, "SQL": 2}
	if len(pivot) != len(want) {
		t.Fatalf("pivot = %+v, want 2 rows", pivot)
	}
	for _, sc := range pivot {
		if sc.City != "Sydney" {
			t.Errorf("unexpected city %q in pivot", sc.City)
		}
		if want[sc.Skill] != sc.Count {
			t.Errorf("skill %q count = %d, want %d", sc.Skill, sc.Count, want[sc.Skill])
		}
	}
}

func TestSkillMapEndpoint(t *testing.T) {
	app := testApp(t)

	var res SkillMapResponse
	getJSON(t, app, "/v1/skill-map", &res)
	if len(res.Cities) != 3 { // Sydney, Melbourne, Perth all have coordinates
		t.Fatalf("cities = %+v, want 3 rows", res.Cities)
	}
	if res.SpanKm <= 0 {
		t.Errorf("span_km = %v, want positive", res.SpanKm)
	}

	// Filters are ignored by design.
	var filtered SkillMapResponse
	getJSON(t, app, "/v1/skill-map?city=Perth", &filtered)
	if len(filtered.Cities) != len(res.Cities) {
		t.Errorf("skill map reacted to filter: %d vs %d rows", len(filtered.Cities), len(res.Cities))
	}
}

func TestChartEndpoint(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest("GET", "/v1/charts/cities.png", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("chart request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) < 8 || string(body[1:4]) != "PNG" {
		t.Errorf("body does not look like a PNG (%d bytes)", len(body))
	}
}

func TestChartUnknownName(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest("GET", "/v1/charts/pie.png", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("chart request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGraphQLSummary(t *testing.T) {
	app := testApp(t)

	body := strings.NewReader(`{"query":"{ summary { total_jobs top_city } aggregates(states: [\"NSW\"]) { total } }"}`)
	req := httptest.NewRequest("POST", "/graphql", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("graphql request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Summary struct {
				TotalJobs int    `json:"total_jobs"`
				TopCity   string `json:"top_city"`
			} `json:"summary"`
			Aggregates struct {
				Total int `json:"total"`
			} `json:"aggregates"`
		} `json:"data"`
		Errors []interface{} `json:"errors"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	if len(result.Errors) > 0 {
		t.Fatalf("graphql errors: %v", result.Errors)
	}
	if result.Data.Summary.TotalJobs != 4 || result.Data.Summary.TopCity != "Sydney" {
		t.Errorf("summary = %+v", result.Data.Summary)
	}
	if result.Data.Aggregates.Total != 2 {
		t.Errorf("aggregates.total = %d, want 2", result.Data.Aggregates.Total)
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := testApp(t)

	var health map[string]interface{}
	resp := getJSON(t, app, "/v1/health", &health)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if health["status"] != "healthy" {
		t.Errorf("status = %v", health["status"])
	}
}

func TestReadyEndpointDegradedDependencies(t *testing.T) {
	app := testApp(t)

	var ready struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	resp := getJSON(t, app, "/v1/ready", &ready)
	// Cache and broker are optional; the loaded dataset is what matters.
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ready.Checks["dataset"] != "ok" {
		t.Errorf("dataset check = %q", ready.Checks["dataset"])
	}
	if ready.Checks["nats"] != "not configured" {
		t.Errorf("nats check = %q", ready.Checks["nats"])
	}
}

func TestDashboardPage(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest("GET", "/", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("page request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	html := string(body)
	if !strings.Contains(html, "Jobsight") {
		t.Errorf("page missing title")
	}
	// Dropdowns are server-rendered from the dataset.
	if !strings.Contains(html, `<option value="NSW">`) {
		t.Errorf("page missing NSW option")
	}
}
