package northwind

import "gorm.io/gorm"

// GormDB exposes the handle behind a GormRepo to tests.
func GormDB(r *GormRepo) *gorm.DB { return r.db }

var SQLiteURI = sqliteURI
