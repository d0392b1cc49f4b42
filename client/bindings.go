//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package client

import (
	"github.com/cockroachdb/errors"
	"github.com/markkurossi/nada/program"
)

// ProgramBindings bind program party names to cluster party IDs for
// one computation.
type ProgramBindings struct {
	ProgramID     string
	InputParties  map[string]string
	OutputParties map[string]string
}

// NewProgramBindings creates new bindings for the program.
func NewProgramBindings(programID string) *ProgramBindings {
	return &ProgramBindings{
		ProgramID:     programID,
		InputParties:  make(map[string]string),
		OutputParties: make(map[string]string),
	}
}

// AddInputParty binds the program input party name to the party ID.
func (b *ProgramBindings) AddInputParty(name, partyID string) {
	b.InputParties[name] = partyID
}

// AddOutputParty binds the program output party name to the party
// ID.
func (b *ProgramBindings) AddOutputParty(name, partyID string) {
	b.OutputParties[name] = partyID
}

// Check verifies that the bindings cover all input and output parties
// of the program and do not name unknown parties.
func (b *ProgramBindings) Check(prog *program.Program) error {
	for _, party := range prog.InputParties() {
		if _, ok := b.InputParties[party.Name]; !ok {
			return errors.Wrapf(ErrBinding, "input party %s not bound",
				party.Name)
		}
	}
	for _, party := range prog.OutputParties() {
		if _, ok := b.OutputParties[party.Name]; !ok {
			return errors.Wrapf(ErrBinding, "output party %s not bound",
				party.Name)
		}
	}
	for name := range b.InputParties {
		if prog.Party(name) == nil {
			return errors.Wrapf(ErrBinding, "unknown input party %s", name)
		}
	}
	for name := range b.OutputParties {
		if prog.Party(name) == nil {
			return errors.Wrapf(ErrBinding, "unknown output party %s", name)
		}
	}
	return nil
}
