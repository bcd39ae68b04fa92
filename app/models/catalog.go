package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// Material is the top level of the catalog hierarchy (e.g. "Aluminum").
type Material struct {
	gorm.Model
	Name        string `gorm:"size:255;not null;index" json:"name"`
	Description string `gorm:"type:text"               json:"description"`
	ImageURL    string `gorm:"size:512"                json:"image_url"`

	Series []Series `gorm:"constraint:OnDelete:CASCADE" json:"series,omitempty"`
}

// Series groups products of one tooling line under a material
// (e.g. "PCD Milling Cutters").
type Series struct {
	gorm.Model
	MaterialID  uint   `gorm:"not null;index" json:"material_id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text"         json:"description"`
	ImageURL    string `gorm:"size:512"          json:"image_url"`

	Material *Material `gorm:"constraint:OnDelete:CASCADE" json:"material,omitempty"`
	Products []Product `gorm:"constraint:OnDelete:CASCADE" json:"products,omitempty"`
}

// Product is a single purchasable cutting tool within a series.
type Product struct {
	gorm.Model
	SeriesID       uint    `gorm:"not null;index"          json:"series_id"`
	Name           string  `gorm:"size:255;not null;index" json:"name"`
	Description    string  `gorm:"type:text"               json:"description"`
	ArticleNumber  string  `gorm:"size:100;uniqueIndex;not null" json:"article_number"`
	Price          float64 `gorm:"not null;default:0"      json:"price"`
	InventoryCount int     `gorm:"not null;default:0"      json:"inventory_count"`
	IsActive       bool    `gorm:"not null;default:true"   json:"is_active"`
	ImageURL       string  `gorm:"size:512"                json:"image_url"`
	Specifications JSONMap `gorm:"type:text"               json:"specifications"`

	Series *Series `gorm:"constraint:OnDelete:CASCADE" json:"series,omitempty"`
}

// JSONMap stores free-form key/value specifications (diameter, flute
// count, coating...) as a JSON column.
type JSONMap map[string]string

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = JSONMap{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("models: cannot scan %T into JSONMap", src)
	}
	if len(raw) == 0 {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(raw, m)
}
