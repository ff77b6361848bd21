// Package interp runs a content stream against a set of per-operator
// callbacks (a "processor"), maintaining the graphics and text state the
// PDF operators implicitly mutate.
package interp

import "sync/atomic"

// Cookie lets an embedder cancel a run in progress and observe its
// progress, without the interpreter ever blocking: every method is safe to
// call from another goroutine while Run is executing.
//
// The interpreter consults Aborted before each operator, those of nested
// Form XObjects included; an operation already under way (an image
// decode, a glyph render) runs to completion. On abort it unwinds and Run
// returns ErrAborted.
type Cookie struct {
	abort int32

	Progress    int32 // incremented once per operator processed, nested Form XObject operators included
	ProgressMax int32 // optional hint set by the caller, left untouched by the interpreter

	// IncompleteOK tells the interpreter that a truncated or repaired
	// document is an acceptable input: per-operator errors are counted
	// in Incomplete instead of Errors and do not make Run fail even in
	// strict mode.
	IncompleteOK bool

	Errors     int32
	Incomplete int32
}

// Abort requests cancellation. Safe for concurrent use.
func (c *Cookie) Abort() {
	if c == nil {
		return
	}
	atomic.StoreInt32(&c.abort, 1)
}

// Aborted reports whether Abort was called.
func (c *Cookie) Aborted() bool {
	return c != nil && atomic.LoadInt32(&c.abort) != 0
}

func (c *Cookie) tick() {
	if c != nil {
		atomic.AddInt32(&c.Progress, 1)
	}
}

func (c *Cookie) recordError(incomplete bool) {
	if c == nil {
		return
	}
	if incomplete {
		atomic.AddInt32(&c.Incomplete, 1)
	} else {
		atomic.AddInt32(&c.Errors, 1)
	}
}
