package domain

import "sort"

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds represents a geographic bounding box, used by the map view to fit
// its viewport around the plotted cities.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// SkillMapRow is one bubble of the skill-distribution map: a city, its
// distinct-skill count across the whole dataset, and its fixed coordinate.
type SkillMapRow struct {
	City         string   `json:"city"`
	UniqueSkills int      `json:"unique_skills"`
	Location     GeoPoint `json:"location"`
}

// cityCoords is the fixed reference table for the map view. It is not
// derived from the dataset; cities outside this table never appear on the
// map (inner-join semantics).
var cityCoords = map[string]GeoPoint{
	"Sydney":    {Lat: -33.8698, Lon: 151.2083},
	"Melbourne": {Lat: -37.8142, Lon: 144.9632},
	"Brisbane":  {Lat: -27.4690, Lon: 153.0235},
	"Perth":     {Lat: -31.9559, Lon: 115.8606},
	"Adelaide":  {Lat: -34.9282, Lon: 138.5999},
	"Canberra":  {Lat: -35.2976, Lon: 149.1013},
}

// CityCoordinate returns the fixed coordinate for one of the mapped cities.
func CityCoordinate(city string) (GeoPoint, bool) {
	p, ok := cityCoords[city]
	return p, ok
}

// BuildSkillMap counts distinct trimmed skills per city across the base
// table and joins the result with the coordinate lookup. Rows missing a
// city or skills are dropped; cities without a known coordinate are
// excluded from the map only, never from the base table. The map is built
// once at load time from the full dataset and does not react to filters.
func BuildSkillMap(base []Listing) []SkillMapRow {
	skills := make(map[string]map[string]struct{})
	for _, l := range base {
		if l.City == "" || l.Skills == "" {
			continue
		}
		set := skills[l.City]
		if set == nil {
			set = make(map[string]struct{})
			skills[l.City] = set
		}
		for _, s := range SplitSkills(l.Skills) {
			set[s] = struct{}{}
		}
	}

	out := make([]SkillMapRow, 0, len(skills))
	for city, set := range skills {
		loc, ok := cityCoords[city]
		if !ok {
			continue
		}
		out = append(out, SkillMapRow{City: city, UniqueSkills: len(set), Location: loc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
	return out
}

// MapBounds returns the bounding box around the map rows' locations.
func MapBounds(rows []SkillMapRow) Bounds {
	if len(rows) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinLat: rows[0].Location.Lat, MaxLat: rows[0].Location.Lat,
		MinLon: rows[0].Location.Lon, MaxLon: rows[0].Location.Lon,
	}
	for _, r := range rows[1:] {
		if r.Location.Lat < b.MinLat {
			b.MinLat = r.Location.Lat
		}
		if r.Location.Lat > b.MaxLat {
			b.MaxLat = r.Location.Lat
		}
		if r.Location.Lon < b.MinLon {
			b.MinLon = r.Location.Lon
		}
		if r.Location.Lon > b.MaxLon {
			b.MaxLon = r.Location.Lon
		}
	}
	return b
}
