package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/pmin574/pc-diamond-edge/app/services"
	"github.com/pmin574/pc-diamond-edge/pkg/bind"
	"github.com/pmin574/pc-diamond-edge/pkg/response"
	"github.com/pmin574/pc-diamond-edge/pkg/storage"
)

// CatalogController exposes the admin console's catalog CRUD.
type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController() *CatalogController {
	return &CatalogController{service: services.NewCatalogService()}
}

// ------------------- Materials -------------------

// ListMaterials handles GET /api/admin/materials.
func (c *CatalogController) ListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := c.service.Materials()
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, materials)
}

// GetMaterial handles GET /api/admin/materials/{id}.
func (c *CatalogController) GetMaterial(w http.ResponseWriter, r *http.Request) {
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

// CreateMaterial handles POST /api/admin/materials.
func (c *CatalogController) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var in services.MaterialInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	m, err := c.service.CreateMaterial(in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, m)
}

// UpdateMaterial handles PUT /api/admin/materials/{id}.
func (c *CatalogController) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	var in services.MaterialInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	m, err := c.service.UpdateMaterial(id, in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, m)
}

// DeleteMaterial handles DELETE /api/admin/materials/{id}. Removes the
// material, its series, and their products.
func (c *CatalogController) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.service.DeleteMaterial(id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]uint{"deleted": id})
}

// ------------------- Series -------------------

// ListSeries handles GET /api/admin/materials/{id}/series.
func (c *CatalogController) ListSeries(w http.ResponseWriter, r *http.Request) {
	materialID, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	series, err := c.service.SeriesByMaterial(materialID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, series)
}

// GetSeries handles GET /api/admin/series/{id}.
func (c *CatalogController) GetSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	s, err := c.service.Series(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, s)
}

// CreateSeries handles POST /api/admin/series.
func (c *CatalogController) CreateSeries(w http.ResponseWriter, r *http.Request) {
	var in services.SeriesInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	s, err := c.service.CreateSeries(in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, s)
}

// UpdateSeries handles PUT /api/admin/series/{id}.
func (c *CatalogController) UpdateSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	var in services.SeriesInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	s, err := c.service.UpdateSeries(id, in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, s)
}

// DeleteSeries handles DELETE /api/admin/series/{id}. Removes the series
// and its products.
func (c *CatalogController) DeleteSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.service.DeleteSeries(id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]uint{"deleted": id})
}

// ListSeriesProducts handles GET /api/admin/series/{id}/products.
func (c *CatalogController) ListSeriesProducts(w http.ResponseWriter, r *http.Request) {
	seriesID, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	products, err := c.service.ProductsBySeries(seriesID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, products)
}

// ------------------- Products -------------------

// ListProducts handles GET /api/admin/products.
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	products, pagination, err := c.service.Products(page, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Paginated(w, products, pagination)
}

// GetProduct handles GET /api/admin/products/{id}.
func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
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

// CreateProduct handles POST /api/admin/products.
func (c *CatalogController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.service.CreateProduct(in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, p)
}

// UpdateProduct handles PUT /api/admin/products/{id}.
func (c *CatalogController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.service.UpdateProduct(id, in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, p)
}

// ToggleProduct handles PATCH /api/admin/products/{id}/toggle.
func (c *CatalogController) ToggleProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	p, err := c.service.ToggleProductActive(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, p)
}

// DeleteProduct handles DELETE /api/admin/products/{id}.
func (c *CatalogController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.service.DeleteProduct(id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]uint{"deleted": id})
}

// ------------------- Images -------------------

const maxImageBytes = 8 << 20 // 8 MB

// UploadImage handles POST /api/admin/images. Accepts a multipart form
// with an "image" part and returns the stored public URL.
func (c *CatalogController) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.ValidationError(w, map[string]string{"image": "The image field is required."})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		response.ValidationError(w, map[string]string{"image": "Unsupported image type."})
		return
	}

	path := fmt.Sprintf("catalog/%d%s", time.Now().UnixNano(), ext)
	if err := storage.PutStream(path, file); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not store image")
		return
	}

	response.Created(w, map[string]string{
		"path": path,
		"url":  storage.URL(path),
	})
}
