package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"jobsight/internal/core/domain"
)

// argStrings reads an optional [String] GraphQL argument.
func argStrings(p graphql.ResolveParams, name string) []string {
	raw, ok := p.Args[name].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// selectionArgs is the shared (states, cities) argument pair of every
// filter-reactive query.
var selectionArgs = graphql.FieldConfigArgument{
	"states": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
	"cities": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
}

func selectionFromArgs(p graphql.ResolveParams) domain.Selection {
	return domain.Selection{
		States: argStrings(p, "states"),
		Cities: argStrings(p, "cities"),
	}
}

// buildSchema creates the GraphQL schema wired to the dashboard service.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	summaryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Summary",
		Fields: graphql.Fields{
			"total_jobs":           &graphql.Field{Type: graphql.Int},
			"top_state":            &graphql.Field{Type: graphql.String},
			"top_city":             &graphql.Field{Type: graphql.String},
			"avg_experience_years": &graphql.Field{Type: graphql.Float},
		},
	})

	optionsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Options",
		Fields: graphql.Fields{
			"states": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"cities": &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	listingType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Listing",
		Fields: graphql.Fields{
			"title":      &graphql.Field{Type: graphql.String},
			"company":    &graphql.Field{Type: graphql.String},
			"city":       &graphql.Field{Type: graphql.String},
			"state":      &graphql.Field{Type: graphql.String},
			"experience": &graphql.Field{Type: graphql.String},
		},
	})

	categoryCountType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CategoryCount",
		Fields: graphql.Fields{
			"label": &graphql.Field{Type: graphql.String},
			"count": &graphql.Field{Type: graphql.Int},
		},
	})

	histogramBinType := graphql.NewObject(graphql.ObjectConfig{
		Name: "HistogramBin",
		Fields: graphql.Fields{
			"low":   &graphql.Field{Type: graphql.Float},
			"high":  &graphql.Field{Type: graphql.Float},
			"count": &graphql.Field{Type: graphql.Int},
		},
	})

	skillCountType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SkillCount",
		Fields: graphql.Fields{
			"city":  &graphql.Field{Type: graphql.String},
			"skill": &graphql.Field{Type: graphql.String},
			"count": &graphql.Field{Type: graphql.Int},
		},
	})

	snapshotType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Snapshot",
		Fields: graphql.Fields{
			"total":                &graphql.Field{Type: graphql.Int},
			"experience_histogram": &graphql.Field{Type: graphql.NewList(histogramBinType)},
			"by_city":              &graphql.Field{Type: graphql.NewList(categoryCountType)},
			"by_state":             &graphql.Field{Type: graphql.NewList(categoryCountType)},
			"by_company":           &graphql.Field{Type: graphql.NewList(categoryCountType)},
			"skill_pivot":          &graphql.Field{Type: graphql.NewList(skillCountType)},
		},
	})

	skillMapRowType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SkillMapRow",
		Fields: graphql.Fields{
			"city":          &graphql.Field{Type: graphql.String},
			"unique_skills": &graphql.Field{Type: graphql.Int},
			"location":      &graphql.Field{Type: geoPointType},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"summary": &graphql.Field{
				Type:        summaryType,
				Description: "KPI card values for the full dataset",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Dashboard.Summary(), nil
				},
			},
			"options": &graphql.Field{
				Type:        optionsType,
				Description: "Distinct state and city values for the filter dropdowns",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					states, cities := deps.Dashboard.Options()
					return OptionsResponse{States: states, Cities: cities}, nil
				},
			},
			"listings": &graphql.Field{
				Type:        graphql.NewList(listingType),
				Description: "Filtered job listings",
				Args: graphql.FieldConfigArgument{
					"states": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"cities": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filtered := deps.Dashboard.Filter(selectionFromArgs(p))
					offset := p.Args["offset"].(int)
					limit := p.Args["limit"].(int)
					if offset < 0 {
						offset = 0
					}
					if limit <= 0 || limit > 200 {
						limit = 10
					}
					page, _ := pageOf(filtered, offset, limit)
					return page, nil
				},
			},
			"aggregates": &graphql.Field{
				Type:        snapshotType,
				Description: "All five chart tables for a selection",
				Args:        selectionArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Dashboard.Snapshot(p.Context, selectionFromArgs(p))
				},
			},
			"skillMap": &graphql.Field{
				Type:        graphql.NewList(skillMapRowType),
				Description: "Static unique-skill counts per mapped city",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Dashboard.SkillMap(), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
