package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type widgetsTable struct{ ran, rolledBack bool }

func (m *widgetsTable) Up(db *gorm.DB) error {
	m.ran = true
	return db.Exec("CREATE TABLE widgets (id INTEGER PRIMARY KEY)").Error
}

func (m *widgetsTable) Down(db *gorm.DB) error {
	m.rolledBack = true
	return db.Migrator().DropTable("widgets")
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db
}

func resetRegistry() { registry = nil }

func TestRunAndRollback(t *testing.T) {
	resetRegistry()
	t.Cleanup(resetRegistry)

	m := &widgetsTable{}
	Register("20260101000000_create_widgets", m)

	db := testDB(t)
	runner := New(db)

	require.NoError(t, runner.Run())
	assert.True(t, m.ran)
	assert.True(t, db.Migrator().HasTable("widgets"))

	// Second run is a no-op.
	m.ran = false
	require.NoError(t, runner.Run())
	assert.False(t, m.ran)

	require.NoError(t, runner.Rollback())
	assert.True(t, m.rolledBack)
	assert.False(t, db.Migrator().HasTable("widgets"))
}

func TestPendingSortsByName(t *testing.T) {
	resetRegistry()
	t.Cleanup(resetRegistry)

	Register("20260102000000_second", &widgetsTable{})
	Register("20260101000000_first", &widgetsTable{})

	runner := New(testDB(t))
	require.NoError(t, runner.EnsureTable())

	pending, err := runner.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "20260101000000_first", pending[0].name)
	assert.Equal(t, "20260102000000_second", pending[1].name)
}
