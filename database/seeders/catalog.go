package seeders

import (
	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/config"
	"github.com/pmin574/pc-diamond-edge/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("admin", SeedAdmin)
	Register("catalog", SeedCatalog)
}

// SeedAdmin creates the initial admin account when none exists.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD.
func SeedAdmin(db *gorm.DB) error {
	email := config.Get("ADMIN_EMAIL", "admin@diamondedge.example")

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil // already seeded
	}

	hash, err := auth.HashPassword(config.Get("ADMIN_PASSWORD", "change-me-now"))
	if err != nil {
		return err
	}

	admin := models.User{Name: "Administrator", Email: email, Password: hash}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	return db.Create(&models.UserRole{UserID: admin.ID, Role: models.RoleAdmin}).Error
}

// SeedCatalog inserts a small demo catalog when the materials table is
// empty: one material, one series, two products.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Material{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	material := models.Material{
		Name:        "Aluminum",
		Description: "Tooling for aluminum and other non-ferrous alloys.",
	}
	if err := db.Create(&material).Error; err != nil {
		return err
	}

	series := models.Series{
		MaterialID:  material.ID,
		Name:        "PCD Milling Cutters",
		Description: "Polycrystalline diamond end mills for high-speed aluminum machining.",
	}
	if err := db.Create(&series).Error; err != nil {
		return err
	}

	products := []models.Product{
		{
			SeriesID:       series.ID,
			Name:           "PCD End Mill 12mm",
			ArticleNumber:  "PCD-EM-12",
			Price:          189.00,
			InventoryCount: 25,
			IsActive:       true,
			Specifications: models.JSONMap{"diameter": "12mm", "flutes": "2", "shank": "12mm"},
		},
		{
			SeriesID:       series.ID,
			Name:           "PCD End Mill 16mm",
			ArticleNumber:  "PCD-EM-16",
			Price:          239.00,
			InventoryCount: 18,
			IsActive:       true,
			Specifications: models.JSONMap{"diameter": "16mm", "flutes": "3", "shank": "16mm"},
		},
	}
	return db.Create(&products).Error
}
