package usecase

import (
	"sync"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/goroutine"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/listing"
)

type task struct {
	c        ctx.Ctx
	name     string
	readOnly bool
	run      func(ctx.Ctx) error
	done     chan error
}

// sequencer owns the registry state: one goroutine runs every task to
// completion, each inside its own unit of work.
type sequencer struct {
	tx    domain.Transactor
	inbox chan *task

	mu     sync.RWMutex
	closed bool
	quit   chan struct{}
	// dead is closed when the loop itself panics
	dead  chan struct{}
	ended chan *goroutine.PanicEvent
}

func newSequencer(tx domain.Transactor, inboxSize int) *sequencer {
	s := &sequencer{
		tx:    tx,
		inbox: make(chan *task, inboxSize),
		quit:  make(chan struct{}),
		dead:  make(chan struct{}),
	}
	s.ended = goroutine.RecoverableGo(s.loop, goroutine.WithAfterRecovered(func(interface{}, []byte) {
		met.BumpSum("sequencer.panic", 1)
		close(s.dead)
	}))
	return s
}

func (s *sequencer) loop() {
	for {
		select {
		case t := <-s.inbox:
			s.exec(t)
		case <-s.quit:
			// senders are gone once quit is closed, finish what they queued
			for {
				select {
				case t := <-s.inbox:
					s.exec(t)
				default:
					return
				}
			}
		}
	}
}

func (s *sequencer) exec(t *task) {
	if err := t.c.Err(); err != nil {
		t.done <- err
		return
	}

	var err error
	if ev := goroutine.Protect(func() {
		if t.readOnly {
			err = s.tx.View(t.c, t.run)
			return
		}
		err = s.tx.RunWithTransaction(t.c, t.run)
	}); ev != nil {
		t.c.WithFields(log.Fields{
			"task":  t.name,
			"panic": ev.Panic,
		}).Error("task panicked, unit of work discarded")
		err = domain.ErrInternalServerError
	}
	t.done <- err
}

// do queues run and waits for its result. c only bounds the wait for a
// slot; a started task is never interrupted.
func (s *sequencer) do(c ctx.Ctx, name string, run func(ctx.Ctx) error) error {
	return s.submit(&task{c: c, name: name, run: run, done: make(chan error, 1)})
}

// read is do without a unit of work, for tasks that only look.
func (s *sequencer) read(c ctx.Ctx, name string, run func(ctx.Ctx) error) error {
	return s.submit(&task{c: c, name: name, readOnly: true, run: run, done: make(chan error, 1)})
}

func (s *sequencer) submit(t *task) error {
	c := t.c

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return listing.ErrRegistryClosed
	}
	select {
	case s.inbox <- t:
		s.mu.RUnlock()
	case <-c.Done():
		s.mu.RUnlock()
		return c.Err()
	case <-s.dead:
		s.mu.RUnlock()
		return listing.ErrRegistryClosed
	}

	select {
	case err := <-t.done:
		return err
	case <-s.dead:
		select {
		case err := <-t.done:
			return err
		default:
			return domain.ErrInternalServerError
		}
	}
}

func (s *sequencer) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.quit)
	s.mu.Unlock()

	if ev := <-s.ended; ev != nil {
		log.Log().WithField("panic", ev.Panic).Error("listing sequencer ended by panic")
	}
}
