// Package memory keeps state in process memory and gives it the same unit of
// work semantics the mongo store gets from session transactions.
package memory

import (
	"context"
	"sync"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

// Participant is a piece of in-memory state that can roll back. Snapshot
// returns a func restoring the state as it was when Snapshot was called.
type Participant interface {
	Snapshot() (restore func())
}

type txKey struct{}

// Store serializes units of work over its participants. Writes outside
// RunWithTransaction are applied directly. Reads through View wait for the
// unit of work in flight, so they never see writes that may still roll back.
type Store struct {
	mu           sync.RWMutex
	participants []Participant
}

var _ domain.Transactor = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Register adds participants. Call it before the first transaction.
func (s *Store) Register(ps ...Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants = append(s.participants, ps...)
}

func (s *Store) inTx(c ctx.Ctx) bool {
	owner, ok := c.Value(txKey{}).(*Store)
	return ok && owner == s
}

func (s *Store) RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) (err error) {
	if s.inTx(c) {
		return fn(c)
	}
	if err := c.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	restores := make([]func(), 0, len(s.participants))
	for _, p := range s.participants {
		restores = append(restores, p.Snapshot())
	}
	rollback := func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}

	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()

	if err := fn(ctx.From(c, context.WithValue(c, txKey{}, s))); err != nil {
		rollback()
		c.WithField("err", err).Debug("memory transaction rolled back")
		return err
	}
	return nil
}

func (s *Store) View(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	if s.inTx(c) {
		return fn(c)
	}
	if err := c.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(ctx.From(c, context.WithValue(c, txKey{}, s)))
}

// Ping always succeeds; it mirrors the mongo health check.
func (s *Store) Ping(c ctx.Ctx) error {
	return nil
}
