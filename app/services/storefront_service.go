package services

import (
	"fmt"
	"time"

	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/app/repositories"
	"github.com/pmin574/pc-diamond-edge/pkg/apperr"
	"github.com/pmin574/pc-diamond-edge/pkg/orm"
	"gorm.io/gorm"
)

// Catalog pages change rarely; five minutes keeps the admin console and
// storefront close enough while shielding the database.
const catalogTTL = 5 * time.Minute

// StorefrontService serves the public, read-only catalog views with
// cache-aside reads. Inactive products never appear here.
type StorefrontService struct {
	repo *repositories.CatalogRepository
}

func NewStorefrontService() *StorefrontService {
	return &StorefrontService{repo: repositories.NewCatalogRepository()}
}

// Materials returns every material for the storefront landing page.
func (s *StorefrontService) Materials() ([]models.Material, error) {
	var materials []models.Material
	err := orm.DB().Model(&models.Material{}).
		Order("name asc").
		Cache("catalog:materials", catalogTTL, &materials)
	return materials, apperr.Store("list materials", err)
}

// Material returns one material with its series for the material page.
func (s *StorefrontService) Material(id uint) (models.Material, error) {
	var m models.Material
	err := orm.DB().Model(&models.Material{}).
		Preload("Series").
		Where("id = ?", id).
		Cache(fmt.Sprintf("catalog:material:%d", id), catalogTTL, &m)
	if err != nil {
		return models.Material{}, apperr.Store("find material", err)
	}
	if m.ID == 0 {
		return models.Material{}, apperr.Store("find material", gorm.ErrRecordNotFound)
	}
	return m, nil
}

// Series returns one series plus its active products for the series page.
func (s *StorefrontService) Series(id uint) (models.Series, []models.Product, error) {
	sr, err := s.repo.FindSeries(id)
	if err != nil {
		return models.Series{}, nil, apperr.Store("find series", err)
	}

	var products []models.Product
	err = orm.DB().Model(&models.Product{}).
		Where("series_id = ? AND is_active = ?", id, true).
		Order("created_at desc").
		Cache(fmt.Sprintf("catalog:series:%d", id), catalogTTL, &products)
	if err != nil {
		return models.Series{}, nil, apperr.Store("list products", err)
	}
	return sr, products, nil
}

// Product returns one active product for the detail page. Inactive
// products are reported as not found.
func (s *StorefrontService) Product(id uint) (models.Product, error) {
	p, err := s.repo.FindProduct(id)
	if err != nil {
		return models.Product{}, apperr.Store("find product", err)
	}
	if !p.IsActive {
		return models.Product{}, apperr.Store("find product", gorm.ErrRecordNotFound)
	}
	return p, nil
}
