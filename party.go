//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package nada

import (
	"github.com/markkurossi/nada/utils"
)

// Party defines a named participant in the computation. Parties own
// inputs and receive outputs.
type Party struct {
	Name  string
	Point utils.Point
}

// NewParty creates a new party with the name.
func NewParty(name string) *Party {
	return &Party{
		Name:  name,
		Point: utils.Caller(1),
	}
}

// Location implements the utils.Locator interface.
func (p *Party) Location() utils.Point {
	return p.Point
}

func (p *Party) String() string {
	return p.Name
}

// Input defines a named program input owned by a party.
type Input struct {
	Name  string
	Party *Party
	Point utils.Point
}

// NewInput creates a new input declaration for the party.
func NewInput(name string, party *Party) *Input {
	return &Input{
		Name:  name,
		Party: party,
		Point: utils.Caller(1),
	}
}

// Location implements the utils.Locator interface.
func (i *Input) Location() utils.Point {
	return i.Point
}

func (i *Input) String() string {
	if i.Party == nil {
		return i.Name
	}
	return i.Name + "@" + i.Party.Name
}

// Output declares that a value is disclosed to a party under the
// output name.
type Output struct {
	Name  string
	Party *Party
	Value Value
	Point utils.Point
}

// NewOutput creates a new output declaration.
func NewOutput(value Value, name string, party *Party) *Output {
	return &Output{
		Name:  name,
		Party: party,
		Value: value,
		Point: utils.Caller(1),
	}
}

// Location implements the utils.Locator interface.
func (o *Output) Location() utils.Point {
	return o.Point
}

func (o *Output) String() string {
	var party string
	if o.Party != nil {
		party = o.Party.Name
	}
	return o.Name + "->" + party
}
