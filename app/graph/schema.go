// Package graph serves a read-only GraphQL view of the catalog, so
// integrators can pull the material → series → product tree in one query.
package graph

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/app/services"
	"github.com/pmin574/pc-diamond-edge/pkg/logger"
	"github.com/pmin574/pc-diamond-edge/pkg/response"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":             &graphql.Field{Type: graphql.Int},
		"name":           &graphql.Field{Type: graphql.String},
		"description":    &graphql.Field{Type: graphql.String},
		"articleNumber":  &graphql.Field{Type: graphql.String},
		"price":          &graphql.Field{Type: graphql.Float},
		"inventoryCount": &graphql.Field{Type: graphql.Int},
		"imageUrl":       &graphql.Field{Type: graphql.String},
	},
})

var seriesType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Series",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"imageUrl":    &graphql.Field{Type: graphql.String},
	},
})

var materialType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Material",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"imageUrl":    &graphql.Field{Type: graphql.String},
	},
})

// NewSchema builds the catalog query schema backed by the storefront
// service, so GraphQL sees exactly what the public REST API sees.
func NewSchema(store *services.StorefrontService) (graphql.Schema, error) {
	seriesType.AddFieldConfig("products", &graphql.Field{
		Type: graphql.NewList(productType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			sr, ok := p.Source.(seriesNode)
			if !ok {
				return nil, nil
			}
			_, products, err := store.Series(sr.ID)
			if err != nil {
				return nil, err
			}
			return toProductNodes(products), nil
		},
	})

	materialType.AddFieldConfig("series", &graphql.Field{
		Type: graphql.NewList(seriesType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			m, ok := p.Source.(materialNode)
			if !ok {
				return nil, nil
			}
			full, err := store.Material(m.ID)
			if err != nil {
				return nil, err
			}
			nodes := make([]seriesNode, 0, len(full.Series))
			for _, sr := range full.Series {
				nodes = append(nodes, seriesNode{
					ID:          sr.ID,
					Name:        sr.Name,
					Description: sr.Description,
					ImageURL:    sr.ImageURL,
				})
			}
			return nodes, nil
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"materials": &graphql.Field{
				Type: graphql.NewList(materialType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					materials, err := store.Materials()
					if err != nil {
						return nil, err
					}
					nodes := make([]materialNode, 0, len(materials))
					for _, m := range materials {
						nodes = append(nodes, materialNode{
							ID:          m.ID,
							Name:        m.Name,
							Description: m.Description,
							ImageURL:    m.ImageURL,
						})
					}
					return nodes, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					product, err := store.Product(uint(id))
					if err != nil {
						return nil, err
					}
					nodes := toProductNodes([]models.Product{product})
					return nodes[0], nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}

// Handler returns the POST /api/graphql handler.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
		})
		if len(result.Errors) > 0 {
			logger.Warn("graphql: query errors", "count", len(result.Errors))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}
