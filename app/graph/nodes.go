package graph

import "github.com/pmin574/pc-diamond-edge/app/models"

// Flat node structs keep resolver sources simple: graphql-go resolves
// struct fields by name, and the nested model relations stay out of it.

type materialNode struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type seriesNode struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type productNode struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	ArticleNumber  string  `json:"articleNumber"`
	Price          float64 `json:"price"`
	InventoryCount int     `json:"inventoryCount"`
	ImageURL       string  `json:"imageUrl"`
}

func toProductNodes(products []models.Product) []productNode {
	nodes := make([]productNode, 0, len(products))
	for _, p := range products {
		nodes = append(nodes, productNode{
			ID:             p.ID,
			Name:           p.Name,
			Description:    p.Description,
			ArticleNumber:  p.ArticleNumber,
			Price:          p.Price,
			InventoryCount: p.InventoryCount,
			ImageURL:       p.ImageURL,
		})
	}
	return nodes
}
