package domain

import "github.com/x-xyz/marketplace/base/ctx"

// Transactor runs fn as one unit of work. When fn returns an error every
// write made through the ctx handed to fn is discarded.
type Transactor interface {
	RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error
	// View runs fn against committed state only. fn must not write. Inside a
	// unit of work it joins it and sees that unit's own writes.
	View(c ctx.Ctx, fn func(ctx.Ctx) error) error
}
