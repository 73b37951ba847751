package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var db *Db

// Db wraps a shared in-memory sqlite connection for integration tests. The
// same connection is reused across scenarios; ClearDB wipes the rows between
// them.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the singleton test database and migrates the given models,
// keyed by table name.
func NewDb(models map[string]any) *Db {
	dbOnce.Do(func() {
		db = open(models)
	})
	return db
}

func open(models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// A single connection keeps every session on the same in-memory schema.
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}

	modelList := make([]any, 0, len(models))
	for _, model := range models {
		modelList = append(modelList, model)
	}
	if err := dbConn.AutoMigrate(modelList...); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	return &Db{
		DbConn: dbConn,
		models: models,
	}
}

// ClearDB removes every row from every migrated table.
func (d *Db) ClearDB() error {
	for _, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear table for model %T: %w", model, err)
		}
	}
	return nil
}

// GetModel returns the migrated model registered for a table name.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
