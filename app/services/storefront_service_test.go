package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmin574/pc-diamond-edge/pkg/apperr"
)

func TestStorefrontHidesInactiveProducts(t *testing.T) {
	setupDB(t)
	_, s, p := seedHierarchy(t)

	store := NewStorefrontService()

	_, products, err := store.Series(s.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)

	_, err = NewCatalogService().ToggleProductActive(p.ID)
	require.NoError(t, err)

	_, products, err = store.Series(s.ID)
	require.NoError(t, err)
	assert.Empty(t, products)

	// The detail page treats an inactive product as missing.
	_, err = store.Product(p.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestStorefrontMaterialTree(t *testing.T) {
	setupDB(t)
	m, s, _ := seedHierarchy(t)

	store := NewStorefrontService()

	materials, err := store.Materials()
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, "Aluminum", materials[0].Name)

	full, err := store.Material(m.ID)
	require.NoError(t, err)
	require.Len(t, full.Series, 1)
	assert.Equal(t, s.ID, full.Series[0].ID)
}

func TestStorefrontMaterialNotFound(t *testing.T) {
	setupDB(t)

	_, err := NewStorefrontService().Material(404)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
