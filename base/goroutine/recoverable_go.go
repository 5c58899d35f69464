package goroutine

import (
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/base/utils"
)

type PanicEvent struct {
	Name  string
	Panic interface{}
	Stack []byte
}

type RecoverableGoOptions struct {
	name           string
	logger         *log.Logger
	beforeStart    *func()
	afterEnded     *func()
	afterRecovered *func(panic interface{}, stack []byte)
}

type RecoverableGoOptionsFunc = func(*RecoverableGoOptions) error

func getRecoverableGoOptions(fns ...RecoverableGoOptionsFunc) RecoverableGoOptions {
	opts := RecoverableGoOptions{}
	for _, fn := range fns {
		fn(&opts)
	}
	return opts
}

// WithName tags logs and panic events of the goroutine
func WithName(name string) RecoverableGoOptionsFunc {
	return func(options *RecoverableGoOptions) error {
		options.name = name
		return nil
	}
}

// WithLogger reports panics through l instead of the global logger
func WithLogger(l log.Logger) RecoverableGoOptionsFunc {
	return func(options *RecoverableGoOptions) error {
		options.logger = &l
		return nil
	}
}

func WithBeforeStart(f func()) RecoverableGoOptionsFunc {
	return func(options *RecoverableGoOptions) error {
		options.beforeStart = &f
		return nil
	}
}

func WithAfterEnded(f func()) RecoverableGoOptionsFunc {
	return func(options *RecoverableGoOptions) error {
		options.afterEnded = &f
		return nil
	}
}

func WithAfterRecovered(f func(panic interface{}, stack []byte)) RecoverableGoOptionsFunc {
	return func(options *RecoverableGoOptions) error {
		options.afterRecovered = &f
		return nil
	}
}

// RecoverableGo runs f in a new goroutine. The returned channel is closed when
// f returns normally, or receives exactly one PanicEvent if f panics.
func RecoverableGo(f func(), fns ...RecoverableGoOptionsFunc) chan *PanicEvent {
	opts := getRecoverableGoOptions(fns...)
	logger := log.Log()
	if opts.logger != nil {
		logger = *opts.logger
	}

	panicChan := make(chan *PanicEvent, 1)

	go func() {
		defer func() {
			if opts.afterEnded != nil {
				(*opts.afterEnded)()
			}

			if p := recover(); p != nil {
				stack := utils.Stack(3)

				logger.WithFields(log.Fields{
					"name":  opts.name,
					"err":   p,
					"stack": string(stack),
				}).Error("panic")

				if opts.afterRecovered != nil {
					(*opts.afterRecovered)(p, stack)
				}

				panicChan <- &PanicEvent{opts.name, p, stack}
			} else {
				close(panicChan)
			}
		}()

		if opts.beforeStart != nil {
			(*opts.beforeStart)()
		}

		f()
	}()

	return panicChan
}
