package services

import (
	"errors"
	"fmt"

	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/app/repositories"
	"github.com/pmin574/pc-diamond-edge/pkg/apperr"
	"github.com/pmin574/pc-diamond-edge/pkg/cache"
	"github.com/pmin574/pc-diamond-edge/pkg/metrics"
	"github.com/pmin574/pc-diamond-edge/pkg/orm"
	"github.com/pmin574/pc-diamond-edge/pkg/validate"
	"gorm.io/gorm"
)

// CatalogService implements the admin-side catalog operations: CRUD over
// the material / series / product hierarchy, with cascade deletes.
type CatalogService struct {
	repo *repositories.CatalogRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{repo: repositories.NewCatalogRepository()}
}

// MaterialInput is the payload for creating or updating a material.
type MaterialInput struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description" validate:"nullable,max=5000"`
	ImageURL    string `json:"image_url"   validate:"nullable,url"`
}

// SeriesInput is the payload for creating or updating a series.
type SeriesInput struct {
	MaterialID  uint   `json:"material_id" validate:"required"`
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description" validate:"nullable,max=5000"`
	ImageURL    string `json:"image_url"   validate:"nullable,url"`
}

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	SeriesID       uint           `json:"series_id"       validate:"required"`
	Name           string         `json:"name"            validate:"required,max=255"`
	Description    string         `json:"description"     validate:"nullable,max=5000"`
	ArticleNumber  string         `json:"article_number"  validate:"required,alpha_dash,max=100"`
	Price          float64        `json:"price"           validate:"gte=0"`
	InventoryCount int            `json:"inventory_count" validate:"gte=0"`
	ImageURL       string         `json:"image_url"       validate:"nullable,url"`
	Specifications models.JSONMap `json:"specifications"`
}

// ------------------- Materials -------------------

// Materials returns every material.
func (s *CatalogService) Materials() ([]models.Material, error) {
	materials, err := s.repo.AllMaterials()
	return materials, apperr.Store("list materials", err)
}

// Material returns one material with its series preloaded.
func (s *CatalogService) Material(id uint) (models.Material, error) {
	m, err := s.repo.FindMaterialWithSeries(id)
	return m, apperr.Store("find material", err)
}

// CreateMaterial validates the input and persists a new material.
func (s *CatalogService) CreateMaterial(in MaterialInput) (models.Material, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Material{}, apperr.Validation(errs)
	}

	m := models.Material{
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
	if err := s.repo.CreateMaterial(&m); err != nil {
		return models.Material{}, apperr.Store("create material", err)
	}

	metrics.CatalogMutations.WithLabelValues("material", "create").Inc()
	s.invalidate()
	return m, nil
}

// UpdateMaterial validates the input and updates an existing material.
func (s *CatalogService) UpdateMaterial(id uint, in MaterialInput) (models.Material, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Material{}, apperr.Validation(errs)
	}

	m, err := s.repo.FindMaterial(id)
	if err != nil {
		return models.Material{}, apperr.Store("find material", err)
	}

	m.Name = in.Name
	m.Description = in.Description
	m.ImageURL = in.ImageURL
	if err := s.repo.SaveMaterial(&m); err != nil {
		return models.Material{}, apperr.Store("update material", err)
	}

	metrics.CatalogMutations.WithLabelValues("material", "update").Inc()
	s.invalidate(fmt.Sprintf("catalog:material:%d", id))
	return m, nil
}

// DeleteMaterial removes a material and everything beneath it: all of its
// series and all products in those series, in one transaction.
func (s *CatalogService) DeleteMaterial(id uint) error {
	if _, err := s.repo.FindMaterial(id); err != nil {
		return apperr.Store("find material", err)
	}

	err := orm.Transaction(func(tx *orm.Query) error {
		seriesIDs := tx.Gorm().Model(&models.Series{}).
			Select("id").
			Where("material_id = ?", id)

		// Hard deletes: the rows go away and their article numbers
		// become reusable immediately.
		if err := tx.Unscoped().
			Where("series_id IN (?)", seriesIDs).
			Delete(&models.Product{}); err != nil {
			return err
		}
		if err := tx.Unscoped().
			Where("material_id = ?", id).
			Delete(&models.Series{}); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Material{}, id)
	})
	if err != nil {
		return apperr.Store("delete material", err)
	}

	metrics.CatalogMutations.WithLabelValues("material", "delete").Inc()
	s.invalidate(fmt.Sprintf("catalog:material:%d", id))
	return nil
}

// ------------------- Series -------------------

// Series returns one series with its products preloaded.
func (s *CatalogService) Series(id uint) (models.Series, error) {
	sr, err := s.repo.FindSeriesWithProducts(id)
	return sr, apperr.Store("find series", err)
}

// SeriesByMaterial returns all series under a material.
func (s *CatalogService) SeriesByMaterial(materialID uint) ([]models.Series, error) {
	series, err := s.repo.SeriesByMaterial(materialID)
	return series, apperr.Store("list series", err)
}

// CreateSeries validates the input, verifies the parent material exists,
// and persists a new series.
func (s *CatalogService) CreateSeries(in SeriesInput) (models.Series, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Series{}, apperr.Validation(errs)
	}

	if _, err := s.repo.FindMaterial(in.MaterialID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Series{}, apperr.Reference("material", in.MaterialID)
		}
		return models.Series{}, apperr.Store("find material", err)
	}

	sr := models.Series{
		MaterialID:  in.MaterialID,
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
	if err := s.repo.CreateSeries(&sr); err != nil {
		return models.Series{}, apperr.Store("create series", err)
	}

	metrics.CatalogMutations.WithLabelValues("series", "create").Inc()
	s.invalidate(fmt.Sprintf("catalog:material:%d", in.MaterialID))
	return sr, nil
}

// UpdateSeries validates the input and updates an existing series.
// Moving a series to another material re-checks the new parent.
func (s *CatalogService) UpdateSeries(id uint, in SeriesInput) (models.Series, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Series{}, apperr.Validation(errs)
	}

	sr, err := s.repo.FindSeries(id)
	if err != nil {
		return models.Series{}, apperr.Store("find series", err)
	}

	if in.MaterialID != sr.MaterialID {
		if _, err := s.repo.FindMaterial(in.MaterialID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Series{}, apperr.Reference("material", in.MaterialID)
			}
			return models.Series{}, apperr.Store("find material", err)
		}
	}

	sr.MaterialID = in.MaterialID
	sr.Name = in.Name
	sr.Description = in.Description
	sr.ImageURL = in.ImageURL
	if err := s.repo.SaveSeries(&sr); err != nil {
		return models.Series{}, apperr.Store("update series", err)
	}

	metrics.CatalogMutations.WithLabelValues("series", "update").Inc()
	s.invalidate(fmt.Sprintf("catalog:series:%d", id))
	return sr, nil
}

// DeleteSeries removes a series and all of its products in one transaction.
func (s *CatalogService) DeleteSeries(id uint) error {
	sr, err := s.repo.FindSeries(id)
	if err != nil {
		return apperr.Store("find series", err)
	}

	err = orm.Transaction(func(tx *orm.Query) error {
		if err := tx.Unscoped().
			Where("series_id = ?", id).
			Delete(&models.Product{}); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Series{}, id)
	})
	if err != nil {
		return apperr.Store("delete series", err)
	}

	metrics.CatalogMutations.WithLabelValues("series", "delete").Inc()
	s.invalidate(fmt.Sprintf("catalog:series:%d", id))
	s.invalidate(fmt.Sprintf("catalog:material:%d", sr.MaterialID))
	return nil
}

// ------------------- Products -------------------

// Product returns one product.
func (s *CatalogService) Product(id uint) (models.Product, error) {
	p, err := s.repo.FindProduct(id)
	return p, apperr.Store("find product", err)
}

// Products returns one page of all products.
func (s *CatalogService) Products(page, limit int) ([]models.Product, orm.Pagination, error) {
	products, pagination, err := s.repo.AllProducts(page, limit)
	return products, pagination, apperr.Store("list products", err)
}

// ProductsBySeries returns all products in a series, active or not.
func (s *CatalogService) ProductsBySeries(seriesID uint) ([]models.Product, error) {
	products, err := s.repo.ProductsBySeries(seriesID)
	return products, apperr.Store("list products", err)
}

// CreateProduct validates the input, verifies the parent series exists and
// the article number is unused, and persists a new product. New products
// start active.
func (s *CatalogService) CreateProduct(in ProductInput) (models.Product, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Product{}, apperr.Validation(errs)
	}

	if _, err := s.repo.FindSeries(in.SeriesID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, apperr.Reference("series", in.SeriesID)
		}
		return models.Product{}, apperr.Store("find series", err)
	}

	if _, err := s.repo.FindProductByArticle(in.ArticleNumber); err == nil {
		return models.Product{}, apperr.ValidationField("article_number",
			fmt.Sprintf("The article number %s is already in use.", in.ArticleNumber))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, apperr.Store("check article number", err)
	}

	p := models.Product{
		SeriesID:       in.SeriesID,
		Name:           in.Name,
		Description:    in.Description,
		ArticleNumber:  in.ArticleNumber,
		Price:          in.Price,
		InventoryCount: in.InventoryCount,
		IsActive:       true,
		ImageURL:       in.ImageURL,
		Specifications: in.Specifications,
	}
	if err := s.repo.CreateProduct(&p); err != nil {
		return models.Product{}, apperr.Store("create product", err)
	}

	metrics.CatalogMutations.WithLabelValues("product", "create").Inc()
	s.invalidate(fmt.Sprintf("catalog:series:%d", in.SeriesID))
	return p, nil
}

// UpdateProduct validates the input and updates an existing product.
func (s *CatalogService) UpdateProduct(id uint, in ProductInput) (models.Product, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Product{}, apperr.Validation(errs)
	}

	p, err := s.repo.FindProduct(id)
	if err != nil {
		return models.Product{}, apperr.Store("find product", err)
	}

	if in.SeriesID != p.SeriesID {
		if _, err := s.repo.FindSeries(in.SeriesID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Product{}, apperr.Reference("series", in.SeriesID)
			}
			return models.Product{}, apperr.Store("find series", err)
		}
	}

	if in.ArticleNumber != p.ArticleNumber {
		if _, err := s.repo.FindProductByArticle(in.ArticleNumber); err == nil {
			return models.Product{}, apperr.ValidationField("article_number",
				fmt.Sprintf("The article number %s is already in use.", in.ArticleNumber))
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, apperr.Store("check article number", err)
		}
	}

	p.SeriesID = in.SeriesID
	p.Name = in.Name
	p.Description = in.Description
	p.ArticleNumber = in.ArticleNumber
	p.Price = in.Price
	p.InventoryCount = in.InventoryCount
	p.ImageURL = in.ImageURL
	p.Specifications = in.Specifications
	if err := s.repo.SaveProduct(&p); err != nil {
		return models.Product{}, apperr.Store("update product", err)
	}

	metrics.CatalogMutations.WithLabelValues("product", "update").Inc()
	s.invalidate(fmt.Sprintf("catalog:series:%d", p.SeriesID))
	return p, nil
}

// ToggleProductActive flips a product's storefront visibility. Toggling
// never touches the rest of the record.
func (s *CatalogService) ToggleProductActive(id uint) (models.Product, error) {
	p, err := s.repo.FindProduct(id)
	if err != nil {
		return models.Product{}, apperr.Store("find product", err)
	}

	p.IsActive = !p.IsActive
	if err := s.repo.SaveProduct(&p); err != nil {
		return models.Product{}, apperr.Store("toggle product", err)
	}

	metrics.CatalogMutations.WithLabelValues("product", "toggle").Inc()
	s.invalidate(fmt.Sprintf("catalog:series:%d", p.SeriesID))
	return p, nil
}

// DeleteProduct removes a single product. Order lines keep their snapshot.
func (s *CatalogService) DeleteProduct(id uint) error {
	p, err := s.repo.FindProduct(id)
	if err != nil {
		return apperr.Store("find product", err)
	}

	if err := orm.DB().Unscoped().Delete(&models.Product{}, id); err != nil {
		return apperr.Store("delete product", err)
	}

	metrics.CatalogMutations.WithLabelValues("product", "delete").Inc()
	s.invalidate(fmt.Sprintf("catalog:series:%d", p.SeriesID))
	return nil
}

// invalidate drops the material list cache plus any extra keys.
func (s *CatalogService) invalidate(keys ...string) {
	_ = cache.Del(append([]string{"catalog:materials"}, keys...)...)
}
