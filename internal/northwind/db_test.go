package northwind_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MikeMC777/northwind-report/internal/config"
	nw "github.com/MikeMC777/northwind-report/internal/northwind"
	"github.com/MikeMC777/northwind-report/internal/northwind/northwindtest"
)

var decimalHundred = decimal.NewFromInt(100)

// seedFile writes the fixture snapshot to a SQLite file and returns its path.
func seedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "northwind.db")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, northwindtest.Seed(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	return path
}

func TestOpen_SQLite(t *testing.T) {
	path := seedFile(t)
	cfg := config.Config{Driver: config.DriverSQLite, SQLitePath: path}

	ds, err := nw.Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Same(t, ds.Method, ds.Query, "sqlite serves both forms from one repository")

	n, err := ds.Query.CountOrdersShippedTo(context.Background(), decimalHundred, "USA", "UK")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	require.NoError(t, ds.Close())
	require.NoError(t, ds.Close(), "second Close is a no-op")
}

func TestOpen_SQLiteIsReadOnly(t *testing.T) {
	path := seedFile(t)
	cfg := config.Config{Driver: config.DriverSQLite, SQLitePath: path}

	ds, err := nw.Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ds.Close() })

	repo, ok := ds.Method.(*nw.GormRepo)
	require.True(t, ok)
	err = nw.GormDB(repo).Exec("DELETE FROM orders").Error
	assert.Error(t, err)
}

func TestOpen_SQLitePathWithURIChars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "north?wind#1%.db")
	require.NoError(t, os.Rename(seedFile(t), path))

	ds, err := nw.Open(context.Background(), config.Config{Driver: config.DriverSQLite, SQLitePath: path}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ds.Close() })

	n, err := ds.Query.CountOrdersShippedTo(context.Background(), decimalHundred, "USA", "UK")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestSQLiteURI(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"northwind.db", "file:northwind.db?mode=ro"},
		{"/data/northwind.db", "file:/data/northwind.db?mode=ro"},
		{"/data/north?wind#1%.db", "file:/data/north%3Fwind%231%25.db?mode=ro"},
		{"/data/my northwind.db", "file:/data/my%20northwind.db?mode=ro"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nw.SQLiteURI(tt.path), tt.path)
	}
}

func TestOpen_SQLiteMissingFile(t *testing.T) {
	cfg := config.Config{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "absent.db")}

	_, err := nw.Open(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := nw.Open(context.Background(), config.Config{Driver: "oracle"}, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, nw.ErrUnsupportedDriver)
}
