//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package client

import (
	"github.com/cockroachdb/errors"
)

// Errors returned by the cluster operations. Use errors.Is to test
// for them; the returned errors wrap these with details.
var (
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission denied")
	ErrExpired    = errors.New("values expired")
	ErrBinding    = errors.New("invalid program bindings")
	ErrInput      = errors.New("invalid program input")
	ErrBusy       = errors.New("cluster busy")
	ErrClosed     = errors.New("cluster closed")
)
