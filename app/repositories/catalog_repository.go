package repositories

import (
	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/pkg/orm"
)

// CatalogRepository handles database operations for the material /
// series / product hierarchy.
type CatalogRepository struct{}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// ------------------- Materials -------------------

// AllMaterials returns every material ordered by name.
func (r *CatalogRepository) AllMaterials() ([]models.Material, error) {
	var materials []models.Material
	err := orm.DB().Model(&models.Material{}).Order("name asc").Get(&materials)
	return materials, err
}

// FindMaterial looks up a material by primary key.
func (r *CatalogRepository) FindMaterial(id uint) (models.Material, error) {
	var m models.Material
	err := orm.DB().Model(&models.Material{}).Where("id = ?", id).First(&m)
	return m, err
}

// FindMaterialWithSeries loads a material and its series list.
func (r *CatalogRepository) FindMaterialWithSeries(id uint) (models.Material, error) {
	var m models.Material
	err := orm.DB().Model(&models.Material{}).
		Preload("Series").
		Where("id = ?", id).
		First(&m)
	return m, err
}

// CreateMaterial persists a new material.
func (r *CatalogRepository) CreateMaterial(m *models.Material) error {
	return orm.DB().Create(m)
}

// SaveMaterial persists changes to an existing material.
func (r *CatalogRepository) SaveMaterial(m *models.Material) error {
	return orm.DB().Save(m)
}

// ------------------- Series -------------------

// SeriesByMaterial returns all series under a material.
func (r *CatalogRepository) SeriesByMaterial(materialID uint) ([]models.Series, error) {
	var series []models.Series
	err := orm.DB().Model(&models.Series{}).
		Where("material_id = ?", materialID).
		Order("name asc").
		Get(&series)
	return series, err
}

// FindSeries looks up a series by primary key.
func (r *CatalogRepository) FindSeries(id uint) (models.Series, error) {
	var s models.Series
	err := orm.DB().Model(&models.Series{}).Where("id = ?", id).First(&s)
	return s, err
}

// FindSeriesWithProducts loads a series and its product list.
func (r *CatalogRepository) FindSeriesWithProducts(id uint) (models.Series, error) {
	var s models.Series
	err := orm.DB().Model(&models.Series{}).
		Preload("Products").
		Where("id = ?", id).
		First(&s)
	return s, err
}

// CreateSeries persists a new series.
func (r *CatalogRepository) CreateSeries(s *models.Series) error {
	return orm.DB().Create(s)
}

// SaveSeries persists changes to an existing series.
func (r *CatalogRepository) SaveSeries(s *models.Series) error {
	return orm.DB().Save(s)
}

// ------------------- Products -------------------

// ProductsBySeries returns all products under a series.
func (r *CatalogRepository) ProductsBySeries(seriesID uint) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("series_id = ?", seriesID).
		Order("article_number asc").
		Get(&products)
	return products, err
}

// AllProducts returns one page of products with their series (and its
// material) joined in, for the admin listing.
func (r *CatalogRepository) AllProducts(page, limit int) ([]models.Product, orm.Pagination, error) {
	var products []models.Product
	pagination, err := orm.DB().Model(&models.Product{}).
		Preload("Series").
		Preload("Series.Material").
		Order("created_at desc").
		GetWithPagination(&products, page, limit)
	return products, pagination, err
}

// FindProduct looks up a product by primary key.
func (r *CatalogRepository) FindProduct(id uint) (models.Product, error) {
	var p models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&p)
	return p, err
}

// FindProductByArticle looks up a product by its unique article number.
func (r *CatalogRepository) FindProductByArticle(article string) (models.Product, error) {
	var p models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("article_number = ?", article).
		First(&p)
	return p, err
}

// CreateProduct persists a new product.
func (r *CatalogRepository) CreateProduct(p *models.Product) error {
	return orm.DB().Create(p)
}

// SaveProduct persists changes to an existing product.
func (r *CatalogRepository) SaveProduct(p *models.Product) error {
	return orm.DB().Save(p)
}
