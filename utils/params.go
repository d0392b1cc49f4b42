//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"io"
	"os"
)

// DefaultIntegerBits specifies the default integer width in bits.
const DefaultIntegerBits = 64

// Params specify program collection and evaluation parameters.
type Params struct {
	Verbose     bool
	Diagnostics bool

	// IntegerBits specifies the width of integer values in bits.
	// Integer arithmetic wraps around at this width.
	IntegerBits int

	// DiagOut receives diagnostic messages. Nil disables them.
	DiagOut io.Writer

	DumpOut io.WriteCloser
	DotOut  io.WriteCloser
}

// NewParams returns new params object, initialized with the default
// values.
func NewParams() *Params {
	return &Params{
		IntegerBits: DefaultIntegerBits,
		DiagOut:     os.Stderr,
	}
}

// Logger returns a diagnostics logger writing to DiagOut.
func (p *Params) Logger() *Logger {
	if p.DiagOut == nil {
		return NewLogger(io.Discard)
	}
	return NewLogger(p.DiagOut)
}

// Close closes all open resources.
func (p *Params) Close() {
	if p.DumpOut != nil {
		p.DumpOut.Close()
		p.DumpOut = nil
	}
	if p.DotOut != nil {
		p.DotOut.Close()
		p.DotOut = nil
	}
}
