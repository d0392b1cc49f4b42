//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package program

import (
	"fmt"
	"sort"
	"sync"

	"github.com/markkurossi/nada"
	"github.com/markkurossi/nada/utils"
)

// MainFunc defines the program entry point. The function builds the
// program's expression graph and returns its outputs. It must not
// have side effects.
type MainFunc func() []*nada.Output

var (
	registryM sync.RWMutex
	registry  = make(map[string]MainFunc)
)

// Register makes the program entry point available by the name. It
// is typically called from the init function of the package defining
// the program. If Register is called twice with the same name or if
// main is nil, it panics.
func Register(name string, main MainFunc) {
	registryM.Lock()
	defer registryM.Unlock()

	if main == nil {
		panic("program: Register main is nil")
	}
	if _, dup := registry[name]; dup {
		panic("program: Register called twice for program " + name)
	}
	registry[name] = main
}

// Lookup returns the entry point of the named program.
func Lookup(name string) (MainFunc, bool) {
	registryM.RLock()
	defer registryM.RUnlock()

	main, ok := registry[name]
	return main, ok
}

// Names returns a sorted list of the registered program names.
func Names() []string {
	registryM.RLock()
	defer registryM.RUnlock()

	var result []string
	for name := range registry {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Load calls the entry point of the named program and collects the
// program from its outputs.
func Load(name string, params *utils.Params) (*Program, error) {
	main, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown program '%s'", name)
	}
	return New(name, main(), params)
}
