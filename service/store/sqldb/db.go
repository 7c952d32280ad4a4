// Package sqldb keeps state in a single SQLite file through gorm. It is the
// store for single node deployments that need to survive restarts without a
// mongo replica set.
package sqldb

import (
	"context"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

type txKey struct{}

type DB struct {
	db *gorm.DB
}

var _ domain.Transactor = (*DB)(nil)

// Open opens or creates the database file at path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite has a single writer, one connection keeps transactions from
	// failing with SQLITE_BUSY instead of queueing.
	sqlDB.SetMaxOpenConns(1)

	return &DB{db: db}, nil
}

// Migrate creates or alters the tables of models.
func (d *DB) Migrate(models ...interface{}) error {
	return d.db.AutoMigrate(models...)
}

// Conn returns the transaction bound to c, or a plain session.
func (d *DB) Conn(c ctx.Ctx) *gorm.DB {
	if tx, ok := c.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return d.db.WithContext(c)
}

// Upsert inserts value or overwrites the row with the same primary key.
// Unlike Save it also works when part of a composite key is a zero value.
func (d *DB) Upsert(c ctx.Ctx, value interface{}) error {
	return d.Conn(c).Clauses(clause.OnConflict{UpdateAll: true}).Create(value).Error
}

// RunWithTransaction joins the transaction already bound to c, if any.
func (d *DB) RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	if _, ok := c.Value(txKey{}).(*gorm.DB); ok {
		return fn(c)
	}
	return d.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		return fn(ctx.From(c, context.WithValue(c, txKey{}, tx)))
	})
}

// View runs fn on the shared connection. An open transaction holds that
// connection, so fn waits for it to commit or roll back.
func (d *DB) View(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	return fn(c)
}

func (d *DB) Ping(c ctx.Ctx) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(c)
}

func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
