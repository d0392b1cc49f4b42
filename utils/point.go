//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Locator is an interface that implements Location method for
// returning item's source position.
type Locator interface {
	Location() Point
}

// Point specifies a position in the program source.
type Point struct {
	Source string
	Line   int // 1-based
	Col    int // 0-based
}

// Location implements the Locator interface.
func (p Point) Location() Point {
	return p
}

func (p Point) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Source, p.Line, p.Col)
}

// Undefined tests if the source position is undefined.
func (p Point) Undefined() bool {
	return p.Line == 0
}

// Caller returns the source position of the calling function. The
// argument skip is the number of stack frames to ascend, with 0
// identifying the caller of Caller.
func Caller(skip int) Point {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Point{
			Source: "<unknown>",
		}
	}
	return Point{
		Source: filepath.Base(file),
		Line:   line,
	}
}
