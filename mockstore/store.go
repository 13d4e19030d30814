// Package mockstore is the local development record store: a generic
// REST-over-JSON collection server in the style of the hosted mock backend.
// It is intentionally dumb. No authentication, no validation, no cascading
// deletes; it stores whatever documents clients send and hands them back.
package mockstore

import (
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Record is one document in one collection. The row id doubles as the
// document's server-assigned "id" field, rendered as a string.
type Record struct {
	gorm.Model
	Collection string `gorm:"index"`
	Doc        datatypes.JSON
}

// Open opens (or creates) the backing sqlite database and migrates the
// schema. Use ":memory:" for tests.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}
	return db, nil
}
