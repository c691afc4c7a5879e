package board

import (
	"sync/atomic"

	"boardcode-go/errcode"
)

// The process-wide board. Set once during bring-up, read lock-free after.
var current atomic.Pointer[Registry]

// Init publishes r as the process board. It accepts only a Ready registry
// and only once.
func Init(r *Registry) error {
	if r.State() != StateReady {
		return &errcode.NotReadyError{Op: "init"}
	}
	if !current.CompareAndSwap(nil, r) {
		return &errcode.E{C: errcode.AlreadyInitialized, Op: "init", Msg: current.Load().Board()}
	}
	return nil
}

// Current returns the process board, or NotReadyError before Init.
func Current() (*Registry, error) {
	r := current.Load()
	if r == nil {
		return nil, &errcode.NotReadyError{Op: "current"}
	}
	return r, nil
}

// Resolve looks symbol up on the process board.
func Resolve(symbol string) (Resource, error) {
	r := current.Load()
	if r == nil {
		return Resource{}, &errcode.NotReadyError{Op: "resolve"}
	}
	return r.Resolve(symbol)
}

// Symbols lists the process board's symbols.
func Symbols() ([]string, error) {
	r := current.Load()
	if r == nil {
		return nil, &errcode.NotReadyError{Op: "symbols"}
	}
	return r.Symbols()
}
