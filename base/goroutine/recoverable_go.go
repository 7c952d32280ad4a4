package goroutine

import (
	"runtime/debug"

	"github.com/x-xyz/marketplace/base/log"
)

type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

type RecoverableGoOptions struct {
	afterRecovered func(panic interface{}, stack []byte)
}

type RecoverableGoOptionsFunc = func(*RecoverableGoOptions)

// WithAfterRecovered runs f after a panic is logged and before it is sent on
// the returned channel.
func WithAfterRecovered(f func(panic interface{}, stack []byte)) RecoverableGoOptionsFunc {
	return func(options *RecoverableGoOptions) {
		options.afterRecovered = f
	}
}

// RecoverableGo runs f in a new goroutine. The returned channel receives the
// panic if f panics, and is closed when f returns normally.
func RecoverableGo(f func(), fns ...RecoverableGoOptionsFunc) chan *PanicEvent {
	opts := RecoverableGoOptions{}
	for _, fn := range fns {
		fn(&opts)
	}

	panicChan := make(chan *PanicEvent, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				stack := debug.Stack()

				log.Log().WithFields(log.Fields{
					"err":   p,
					"stack": string(stack),
				}).Error("panic")

				if opts.afterRecovered != nil {
					opts.afterRecovered(p, stack)
				}

				panicChan <- &PanicEvent{p, stack}
			} else {
				close(panicChan)
			}
		}()

		f()
	}()

	return panicChan
}

// Protect calls f and converts a panic into a PanicEvent, for loops that must
// survive a bad task.
func Protect(f func()) (ev *PanicEvent) {
	defer func() {
		if p := recover(); p != nil {
			stack := debug.Stack()
			log.Log().WithFields(log.Fields{
				"err":   p,
				"stack": string(stack),
			}).Error("panic")
			ev = &PanicEvent{p, stack}
		}
	}()
	f()
	return nil
}
