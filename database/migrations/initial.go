package migrations

import (
	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260110000000_create_users_tables", &CreateUsersTables{})
	migration.Register("20260110000001_create_catalog_tables", &CreateCatalogTables{})
	migration.Register("20260110000002_create_orders_tables", &CreateOrdersTables{})
	migration.Register("20260110000003_create_contact_messages_table", &CreateContactMessagesTable{})
}

// -------- 0001: users and roles --------

type CreateUsersTables struct{}

func (m *CreateUsersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.UserRole{})
}

func (m *CreateUsersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("user_roles", "users")
}

// -------- 0002: materials, series, products --------

type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Material{}, &models.Series{}, &models.Product{})
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products", "series", "materials")
}

// -------- 0003: orders and order items --------

type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}

// -------- 0004: contact messages --------

type CreateContactMessagesTable struct{}

func (m *CreateContactMessagesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.ContactMessage{})
}

func (m *CreateContactMessagesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("contact_messages")
}
