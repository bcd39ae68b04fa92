package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/pkg/database"
)

// setupDB points the global connection at a fresh in-memory SQLite
// database. Each test gets its own named database so connection pooling
// cannot leak rows between tests.
func setupDB(t *testing.T) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.UserRole{},
		&models.Material{}, &models.Series{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
		&models.ContactMessage{},
	))

	database.DB = db
}

// seedHierarchy inserts material → series → product and returns them.
func seedHierarchy(t *testing.T) (models.Material, models.Series, models.Product) {
	t.Helper()

	catalog := NewCatalogService()

	m, err := catalog.CreateMaterial(MaterialInput{Name: "Aluminum"})
	require.NoError(t, err)

	s, err := catalog.CreateSeries(SeriesInput{MaterialID: m.ID, Name: "PCD Milling Cutters"})
	require.NoError(t, err)

	p, err := catalog.CreateProduct(ProductInput{
		SeriesID:       s.ID,
		Name:           "PCD End Mill 12mm",
		ArticleNumber:  "PCD-001",
		Price:          189,
		InventoryCount: 25,
	})
	require.NoError(t, err)

	return m, s, p
}
