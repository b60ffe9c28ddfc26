package http

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

// dashboardPageData feeds the server-rendered shell. The charts, table and
// map are filled in client-side from the JSON API so the filters stay live.
type dashboardPageData struct {
	Summary interface{}
	States  []string
	Cities  []string
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

// DashboardPageHandler serves the single-page dashboard UI.
func DashboardPageHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		states, cities := deps.Dashboard.Options()
		data := dashboardPageData{
			Summary: deps.Dashboard.Summary(),
			States:  states,
			Cities:  cities,
		}

		var buf bytes.Buffer
		if err := dashboardTmpl.Execute(&buf, data); err != nil {
			return errInternal(c, "failed to render dashboard page")
		}

		c.Set("Content-Type", "text/html; charset=utf-8")
		return c.Send(buf.Bytes())
	}
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Jobsight — Job Listings Dashboard</title>
<style>
  :root {
    --bg: #f4f6f8; --panel: #ffffff; --ink: #1f2d3d; --muted: #7b8794;
    --accent: #2563eb; --border: #e2e8f0;
  }
  * { box-sizing: border-box; }
  body { margin: 0; font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; background: var(--bg); color: var(--ink); }
  header { background: var(--panel); border-bottom: 1px solid var(--border); padding: 14px 24px; display: flex; align-items: baseline; gap: 12px; }
  header h1 { margin: 0; font-size: 20px; }
  header span { color: var(--muted); font-size: 13px; }
  .layout { display: flex; min-height: calc(100vh - 53px); }
  aside { width: 240px; background: var(--panel); border-right: 1px solid var(--border); padding: 18px; }
  aside h2 { font-size: 13px; text-transform: uppercase; letter-spacing: .05em; color: var(--muted); margin: 18px 0 6px; }
  aside select { width: 100%; border: 1px solid var(--border); border-radius: 6px; padding: 4px; font-size: 13px; }
  aside button { width: 100%; margin-top: 14px; padding: 8px; border: 0; border-radius: 6px; background: var(--accent); color: #fff; font-size: 14px; cursor: pointer; }
  aside button.secondary { background: var(--muted); margin-top: 8px; }
  main { flex: 1; padding: 20px 24px; }
  .kpis { display: grid; grid-template-columns: repeat(4, 1fr); gap: 14px; margin-bottom: 20px; }
  .kpi { background: var(--panel); border: 1px solid var(--border); border-radius: 8px; padding: 14px 16px; }
  .kpi .label { font-size: 12px; color: var(--muted); text-transform: uppercase; letter-spacing: .04em; }
  .kpi .value { font-size: 26px; font-weight: 600; margin-top: 4px; }
  .tabs { display: flex; gap: 8px; margin-bottom: 14px; }
  .tabs button { border: 1px solid var(--border); background: var(--panel); padding: 6px 16px; border-radius: 6px; cursor: pointer; font-size: 14px; }
  .tabs button.active { background: var(--accent); color: #fff; border-color: var(--accent); }
  .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 14px; }
  .card { background: var(--panel); border: 1px solid var(--border); border-radius: 8px; padding: 14px; }
  .card h3 { margin: 0 0 10px; font-size: 15px; }
  .card img { width: 100%; height: auto; display: block; }
  table { width: 100%; border-collapse: collapse; font-size: 13px; }
  th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid var(--border); }
  th { color: var(--muted); font-weight: 600; }
  .pager { display: flex; gap: 8px; align-items: center; margin-top: 10px; font-size: 13px; }
  .pager button { border: 1px solid var(--border); background: var(--panel); border-radius: 4px; padding: 4px 10px; cursor: pointer; }
  .pager button:disabled { opacity: .4; cursor: default; }
  #map-tab { display: none; }
  svg text { font-family: inherit; }
</style>
</head>
<body>
<header>
  <h1>Jobsight</h1>
  <span>job listings analytics</span>
</header>
<div class="layout">
  <aside>
    <h2>State</h2>
    <select id="f-states" multiple size="6">
      {{range .States}}<option value="{{.}}">{{.}}</option>
      {{end}}
    </select>
    <h2>City</h2>
    <select id="f-cities" multiple size="8">
      {{range .Cities}}<option value="{{.}}">{{.}}</option>
      {{end}}
    </select>
    <button id="apply">Apply filters</button>
    <button id="clear" class="secondary">Clear</button>
  </aside>
  <main>
    <div class="kpis" id="kpis"></div>
    <div class="tabs">
      <button id="tab-charts" class="active">Charts</button>
      <button id="tab-map">Skill map</button>
    </div>
    <div id="charts-tab">
      <div class="grid">
        <div class="card"><h3>Experience distribution</h3><img id="chart-experience" alt="experience histogram"></div>
        <div class="card"><h3>Jobs by city</h3><img id="chart-cities" alt="jobs by city"></div>
        <div class="card"><h3>Jobs by state</h3><img id="chart-states" alt="jobs by state"></div>
        <div class="card"><h3>Top companies</h3><img id="chart-companies" alt="top companies"></div>
      </div>
      <div class="card" style="margin-top:14px">
        <h3>Listings</h3>
        <table>
          <thead><tr><th>Title</th><th>Company</th><th>City</th><th>State</th><th>Experience</th></tr></thead>
          <tbody id="rows"></tbody>
        </table>
        <div class="pager">
          <button id="prev">Prev</button>
          <span id="page-info"></span>
          <button id="next">Next</button>
        </div>
      </div>
    </div>
    <div id="map-tab">
      <div class="card">
        <h3>Unique skills demanded per city</h3>
        <svg id="skillmap" viewBox="0 0 700 460" width="100%"></svg>
      </div>
    </div>
  </main>
</div>
<script>
const pageSize = 10;
let offset = 0;
let total = 0;

function selection() {
  const pick = id => Array.from(document.getElementById(id).selectedOptions).map(o => o.value);
  const p = new URLSearchParams();
  pick('f-states').forEach(s => p.append('state', s));
  pick('f-cities').forEach(c => p.append('city', c));
  return p;
}

async function loadKPIs() {
  const s = await (await fetch('/v1/summary')).json();
  const avg = s.avg_experience_years == null ? 'n/a' : s.avg_experience_years.toFixed(1) + ' yrs';
  document.getElementById('kpis').innerHTML = [
    ['Total jobs', s.total_jobs],
    ['Top state', s.top_state || 'n/a'],
    ['Top city', s.top_city || 'n/a'],
    ['Avg experience', avg],
  ].map(([l, v]) => '<div class="kpi"><div class="label">' + l + '</div><div class="value">' + v + '</div></div>').join('');
}

function refreshCharts() {
  const q = selection().toString();
  for (const name of ['experience', 'cities', 'states', 'companies']) {
    const img = document.getElementById('chart-' + name);
    img.src = '/v1/charts/' + name + '.png?' + q + '&_=' + Date.now();
  }
}

async function loadRows() {
  const p = selection();
  p.set('offset', offset);
  p.set('limit', pageSize);
  const res = await (await fetch('/v1/listings?' + p.toString())).json();
  total = res.pagination.total;
  const esc = t => String(t).replace(/&/g, '&amp;').replace(/</g, '&lt;');
  document.getElementById('rows').innerHTML = res.data.map(r =>
    '<tr><td>' + esc(r.title) + '</td><td>' + esc(r.company) + '</td><td>' + esc(r.city) +
    '</td><td>' + esc(r.state) + '</td><td>' + esc(r.experience) + '</td></tr>').join('');
  const page = Math.floor(offset / pageSize) + 1;
  const pages = Math.max(1, Math.ceil(total / pageSize));
  document.getElementById('page-info').textContent = 'Page ' + page + ' of ' + pages + ' (' + total + ' rows)';
  document.getElementById('prev').disabled = offset === 0;
  document.getElementById('next').disabled = offset + pageSize >= total;
}

async function loadSkillMap() {
  const res = await (await fetch('/v1/skill-map')).json();
  const svg = document.getElementById('skillmap');
  const rows = res.cities || [];
  if (rows.length === 0) { svg.innerHTML = '<text x="20" y="40">No mapped cities</text>'; return; }
  const b = res.bounds;
  const pad = 60, W = 700, H = 460;
  const sx = lon => b.max_lon === b.min_lon ? W / 2 : pad + (lon - b.min_lon) / (b.max_lon - b.min_lon) * (W - 2 * pad);
  const sy = lat => b.max_lat === b.min_lat ? H / 2 : H - pad - (lat - b.min_lat) / (b.max_lat - b.min_lat) * (H - 2 * pad);
  const maxSkills = Math.max(...rows.map(r => r.unique_skills));
  svg.innerHTML = rows.map(r => {
    const x = sx(r.location.lon), y = sy(r.location.lat);
    const radius = 8 + 22 * (r.unique_skills / maxSkills);
    return '<circle cx="' + x + '" cy="' + y + '" r="' + radius + '" fill="#2563eb" fill-opacity="0.55"></circle>' +
      '<text x="' + x + '" y="' + (y - radius - 6) + '" text-anchor="middle" font-size="13">' + r.city + ' (' + r.unique_skills + ')</text>';
  }).join('');
}

function refresh() { refreshCharts(); loadRows(); }

document.getElementById('apply').onclick = () => { offset = 0; refresh(); };
document.getElementById('clear').onclick = () => {
  for (const id of ['f-states', 'f-cities'])
    Array.from(document.getElementById(id).options).forEach(o => o.selected = false);
  offset = 0;
  refresh();
};
document.getElementById('prev').onclick = () => { offset = Math.max(0, offset - pageSize); loadRows(); };
document.getElementById('next').onclick = () => { if (offset + pageSize < total) { offset += pageSize; loadRows(); } };
document.getElementById('tab-charts').onclick = () => {
  document.getElementById('charts-tab').style.display = '';
  document.getElementById('map-tab').style.display = 'none';
  document.getElementById('tab-charts').classList.add('active');
  document.getElementById('tab-map').classList.remove('active');
};
document.getElementById('tab-map').onclick = () => {
  document.getElementById('charts-tab').style.display = 'none';
  document.getElementById('map-tab').style.display = 'block';
  document.getElementById('tab-map').classList.add('active');
  document.getElementById('tab-charts').classList.remove('active');
};

loadKPIs();
loadSkillMap();
refresh();
</script>
</body>
</html>`
