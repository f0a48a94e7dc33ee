package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MikeMC777/northwind-report/internal/northwind/northwindtest"
)

func seededSQLite(t *testing.T) string {
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

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestRootCmd_PrintsReport(t *testing.T) {
	path := seededSQLite(t)
	chdirTemp(t)
	t.Setenv("NORTHWIND_DRIVER", "sqlite")
	t.Setenv("NORTHWIND_SQLITE_PATH", path)
	t.Setenv("NORTHWIND_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{})
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())

	got := out.String()
	assert.True(t, strings.HasPrefix(got, " \n \n \n \nQUESTION 1.1 - METHOD SYNTAX\n"), got)
	assert.Contains(t, got, "Orders over 100 from uk or usa: 4\n")
	assert.True(t, strings.HasSuffix(got, "QUESTION 1.9 - QUERY SYNTAX\n"))
	assert.NotContains(t, got, `"level"`, "logs must not reach stdout")
}

func TestRootCmd_RejectsArguments(t *testing.T) {
	rootCmd.SetArgs([]string{"extra"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })

	assert.Error(t, rootCmd.Execute())
}

func TestRootCmd_FailsOnUnreachableDataset(t *testing.T) {
	chdirTemp(t)
	t.Setenv("NORTHWIND_DRIVER", "sqlite")
	t.Setenv("NORTHWIND_SQLITE_PATH", filepath.Join(t.TempDir(), "missing.db"))
	t.Setenv("NORTHWIND_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{})
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Empty(t, out.String())
	assert.True(t, errors.As(err, new(loggedError)), "open failure is logged by run: %v", err)
}

func TestReportError_PrintsOnlyUnloggedErrors(t *testing.T) {
	var stderr bytes.Buffer

	reportError(&stderr, loggedError{errors.New("ping sqlite: no such file")})
	assert.Empty(t, stderr.String())

	reportError(&stderr, errors.New(`driver: unknown "oracle"`))
	assert.Equal(t, "northwind-report: driver: unknown \"oracle\"\n", stderr.String())
}
