//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package env implements global environment for the nada system.
package env

import (
	"crypto/rand"
	"io"

	"github.com/sirupsen/logrus"
)

// Config defines the global system configuration. It configures
// system operation for all modules. Config must not be modified after
// being passed to any module. It is safe for concurrent use by
// multiple modules as they do not modify it.
type Config struct {
	Rand io.Reader
	Log  *logrus.Logger
}

// GetRandom returns the source of entropy for identifiers and random
// values.
func (config *Config) GetRandom() io.Reader {
	if config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}

// GetLogger returns the runtime event logger.
func (config *Config) GetLogger() *logrus.Logger {
	if config.Log != nil {
		return config.Log
	}
	return logrus.StandardLogger()
}
