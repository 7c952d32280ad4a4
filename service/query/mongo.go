// Package query is a thin layer over the mongo driver that speaks in
// domain.Table names and maps driver errors to a small set of sentinels.
package query

import (
	"errors"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

var (
	// ErrNotFound is returned when no document matches
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateKey is returned when a write violates a unique index
	ErrDuplicateKey = errors.New("duplicate key")
)

type findOp struct {
	sort   []string
	offset int
	limit  int
}

// FindOp tunes Find.
type FindOp func(*findOp)

// SortBy orders results by fields, "-field" for descending. Without it mongo
// gives no order guarantee.
func SortBy(fields ...string) FindOp {
	return func(o *findOp) {
		o.sort = append(o.sort, fields...)
	}
}

// Page skips offset documents and returns at most limit, 0 means no limit.
func Page(offset, limit int) FindOp {
	return func(o *findOp) {
		o.offset = offset
		o.limit = limit
	}
}

// Index describes one index of a table. Keys use the same "-field" notation
// as SortBy.
type Index struct {
	Keys   []string
	Unique bool
}

// Mongo is the storage surface the mongo repositories use.
type Mongo interface {
	// Insert returns ErrDuplicateKey if a unique index is violated.
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error
	Find(context ctx.Ctx, table domain.Table, query, results interface{}, ops ...FindOp) error
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (int, error)

	// Upsert replaces the document matching selector, inserting it when
	// nothing matches.
	Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error
	// Patch sets the fields of update on the first document matching
	// selector. Returns ErrNotFound if nothing matches.
	Patch(context ctx.Ctx, table domain.Table, selector, update interface{}) error
	// Remove returns ErrNotFound if nothing matches.
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	// EnsureIndexes creates missing indexes, existing ones are left alone.
	EnsureIndexes(context ctx.Ctx, table domain.Table, indexes ...Index) error
	Ping(context ctx.Ctx) error

	// RunWithTransaction runs `run` inside a session transaction. Calls made
	// with a ctx that already carries a session join that transaction.
	RunWithTransaction(context ctx.Ctx, run func(ctx.Ctx) error) error
	View(context ctx.Ctx, run func(ctx.Ctx) error) error
}
