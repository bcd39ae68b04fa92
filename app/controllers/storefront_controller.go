package controllers

import (
	"net/http"

	"github.com/pmin574/pc-diamond-edge/app/services"
	"github.com/pmin574/pc-diamond-edge/pkg/response"
)

// StorefrontController exposes the public catalog: materials, series,
// and active products. No authentication required.
type StorefrontController struct {
	service *services.StorefrontService
}

func NewStorefrontController() *StorefrontController {
	return &StorefrontController{service: services.NewStorefrontService()}
}

// Materials handles GET /api/catalog/materials.
func (c *StorefrontController) Materials(w http.ResponseWriter, r *http.Request) {
	materials, err := c.service.Materials()
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, materials)
}

// Material handles GET /api/catalog/materials/{id}.
func (c *StorefrontController) Material(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	m, err := c.service.Material(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, m)
}

// Series handles GET /api/catalog/series/{id}.
func (c *StorefrontController) Series(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	series, products, err := c.service.Series(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"series":   series,
		"products": products,
	})
}

// Product handles GET /api/catalog/products/{id}.
func (c *StorefrontController) Product(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	p, err := c.service.Product(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, p)
}
