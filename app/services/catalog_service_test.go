package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmin574/pc-diamond-edge/pkg/apperr"
)

func TestCreateMaterialValidation(t *testing.T) {
	setupDB(t)
	catalog := NewCatalogService()

	_, err := catalog.CreateMaterial(MaterialInput{Name: ""})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "name")
}

func TestCreateSeriesRequiresExistingMaterial(t *testing.T) {
	setupDB(t)
	catalog := NewCatalogService()

	_, err := catalog.CreateSeries(SeriesInput{MaterialID: 999, Name: "Orphan"})
	require.Error(t, err)
	assert.True(t, apperr.IsReference(err))
}

func TestCreateProductRequiresExistingSeries(t *testing.T) {
	setupDB(t)
	catalog := NewCatalogService()

	_, err := catalog.CreateProduct(ProductInput{
		SeriesID:      42,
		Name:          "Ghost",
		ArticleNumber: "GH-1",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsReference(err))
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	setupDB(t)
	m, s, _ := seedHierarchy(t)
	_ = m

	catalog := NewCatalogService()
	_, err := catalog.CreateProduct(ProductInput{
		SeriesID:      s.ID,
		Name:          "Bad",
		ArticleNumber: "BAD-1",
		Price:         -1,
	})
	require.Error(t, err)

	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "price")
}

func TestCreateProductRejectsDuplicateArticleNumber(t *testing.T) {
	setupDB(t)
	_, s, _ := seedHierarchy(t)

	catalog := NewCatalogService()
	_, err := catalog.CreateProduct(ProductInput{
		SeriesID:      s.ID,
		Name:          "Duplicate",
		ArticleNumber: "PCD-001",
		Price:         99,
	})
	require.Error(t, err)

	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "article_number")
}

func TestNewProductsStartActive(t *testing.T) {
	setupDB(t)
	_, _, p := seedHierarchy(t)
	assert.True(t, p.IsActive)
}

func TestToggleProductActive(t *testing.T) {
	setupDB(t)
	_, _, p := seedHierarchy(t)

	catalog := NewCatalogService()

	toggled, err := catalog.ToggleProductActive(p.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	// Toggling only flips the flag; nothing else moves.
	assert.Equal(t, p.ArticleNumber, toggled.ArticleNumber)
	assert.Equal(t, p.Price, toggled.Price)

	back, err := catalog.ToggleProductActive(p.ID)
	require.NoError(t, err)
	assert.True(t, back.IsActive)
}

func TestDeleteMaterialCascades(t *testing.T) {
	setupDB(t)
	m, s, p := seedHierarchy(t)

	catalog := NewCatalogService()
	require.NoError(t, catalog.DeleteMaterial(m.ID))

	_, err := catalog.Material(m.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = catalog.Series(s.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = catalog.Product(p.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDeleteSeriesCascadesToProductsOnly(t *testing.T) {
	setupDB(t)
	m, s, p := seedHierarchy(t)

	catalog := NewCatalogService()
	require.NoError(t, catalog.DeleteSeries(s.ID))

	_, err := catalog.Series(s.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = catalog.Product(p.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	// The parent material survives.
	got, err := catalog.Material(m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aluminum", got.Name)
}

func TestDeleteMaterialFreesArticleNumbers(t *testing.T) {
	setupDB(t)
	m, _, p := seedHierarchy(t)

	catalog := NewCatalogService()
	require.NoError(t, catalog.DeleteMaterial(m.ID))

	// The cascade removes rows outright, so a rebuilt catalog can reuse
	// the article numbers of the products it wiped out.
	m2, err := catalog.CreateMaterial(MaterialInput{Name: "Steel"})
	require.NoError(t, err)
	s2, err := catalog.CreateSeries(SeriesInput{MaterialID: m2.ID, Name: "CBN Inserts"})
	require.NoError(t, err)

	recreated, err := catalog.CreateProduct(ProductInput{
		SeriesID:      s2.ID,
		Name:          "CBN Insert 10mm",
		ArticleNumber: p.ArticleNumber,
		Price:         149,
	})
	require.NoError(t, err)
	assert.Equal(t, p.ArticleNumber, recreated.ArticleNumber)
	assert.NotEqual(t, p.ID, recreated.ID)
}

func TestDeleteProductFreesArticleNumber(t *testing.T) {
	setupDB(t)
	_, s, p := seedHierarchy(t)

	catalog := NewCatalogService()
	require.NoError(t, catalog.DeleteProduct(p.ID))

	recreated, err := catalog.CreateProduct(ProductInput{
		SeriesID:      s.ID,
		Name:          p.Name,
		ArticleNumber: p.ArticleNumber,
		Price:         p.Price,
	})
	require.NoError(t, err)
	assert.Equal(t, p.ArticleNumber, recreated.ArticleNumber)
}

func TestDeleteMaterialNotFound(t *testing.T) {
	setupDB(t)
	catalog := NewCatalogService()

	err := catalog.DeleteMaterial(12345)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdateSeriesMoveToMissingMaterial(t *testing.T) {
	setupDB(t)
	_, s, _ := seedHierarchy(t)

	catalog := NewCatalogService()
	_, err := catalog.UpdateSeries(s.ID, SeriesInput{MaterialID: 777, Name: s.Name})
	require.Error(t, err)
	assert.True(t, apperr.IsReference(err))
}

func TestUpdateProductKeepsArticleWhenUnchanged(t *testing.T) {
	setupDB(t)
	_, s, p := seedHierarchy(t)

	catalog := NewCatalogService()
	updated, err := catalog.UpdateProduct(p.ID, ProductInput{
		SeriesID:       s.ID,
		Name:           "PCD End Mill 12mm rev2",
		ArticleNumber:  p.ArticleNumber, // same article, no duplicate error
		Price:          199,
		InventoryCount: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, "PCD End Mill 12mm rev2", updated.Name)
	assert.Equal(t, 199.0, updated.Price)
}
