package goroutine

import (
	"runtime/debug"

	"github.com/x-xyz/escrowapi/base/log"
)

// PanicEvent carries a recovered panic and the stack it was raised on
type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

type options struct {
	name           string
	afterEnded     func()
	afterRecovered func(*PanicEvent)
}

type Option func(*options)

// WithName tags the panic log of the goroutine
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithAfterEnded runs f once the goroutine returns or panics
func WithAfterEnded(f func()) Option {
	return func(o *options) {
		o.afterEnded = f
	}
}

func WithAfterRecovered(f func(*PanicEvent)) Option {
	return func(o *options) {
		o.afterRecovered = f
	}
}

// RecoverableGo runs f on a new goroutine. A panic of f is logged and sent on
// the returned channel, which is closed when the goroutine is done.
func RecoverableGo(f func(), fns ...Option) <-chan *PanicEvent {
	opts := options{name: "goroutine"}
	for _, fn := range fns {
		fn(&opts)
	}

	panicChan := make(chan *PanicEvent, 1)

	go func() {
		defer close(panicChan)
		defer func() {
			if opts.afterEnded != nil {
				opts.afterEnded()
			}

			if p := recover(); p != nil {
				ev := &PanicEvent{p, debug.Stack()}
				log.Log().WithFields(log.Fields{
					"err":   p,
					"name":  opts.name,
					"stack": string(ev.Stack),
				}).Error("panic")

				if opts.afterRecovered != nil {
					opts.afterRecovered(ev)
				}
				panicChan <- ev
			}
		}()

		f()
	}()

	return panicChan
}
