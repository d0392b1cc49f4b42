//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package program collects nada programs into validated expression
// graphs and evaluates them.
package program

import (
	"fmt"

	"github.com/markkurossi/nada"
	"github.com/markkurossi/nada/types"
	"github.com/markkurossi/nada/utils"
)

// Input describes a program input and its declared type.
type Input struct {
	*nada.Input
	Type types.Info
}

// Program implements a collected nada program. The program nodes are
// in topological order: every node follows its operands.
type Program struct {
	Name    string
	Params  *utils.Params
	Parties []*nada.Party
	Inputs  []*Input
	Nodes   []*nada.Node
	Outputs []*nada.Output
	ids     map[*nada.Node]int
}

// New collects the program from its outputs. The function walks the
// expression graph from the outputs, assigns node IDs in topological
// order, and validates the program declarations.
func New(name string, outputs []*nada.Output, params *utils.Params) (
	*Program, error) {

	if params == nil {
		params = utils.NewParams()
	}
	c := &collector{
		logger:  params.Logger(),
		parties: make(map[string]*nada.Party),
		inputs:  make(map[string]*Input),
		outputs: make(map[string]*nada.Output),
		prog: &Program{
			Name:   name,
			Params: params,
			ids:    make(map[*nada.Node]int),
		},
	}
	loc := utils.Point{
		Source: name,
	}
	if len(outputs) == 0 {
		return nil, c.logger.Errorf(loc, "program %s has no outputs", name)
	}
	for idx, out := range outputs {
		if out == nil {
			return nil, c.logger.Errorf(loc, "output %d is nil", idx)
		}
		if err := c.output(out); err != nil {
			return nil, err
		}
	}
	if params.Verbose && params.DiagOut != nil {
		fmt.Fprintf(params.DiagOut, "program %s: %s\n", name, c.prog.Stats())
	}
	return c.prog, nil
}

func (p *Program) String() string {
	return fmt.Sprintf("%s: parties=%d inputs=%d nodes=%d outputs=%d",
		p.Name, len(p.Parties), len(p.Inputs), len(p.Nodes), len(p.Outputs))
}

// ID returns the node ID of the program node n. The function returns
// -1 if n is not a node of the program.
func (p *Program) ID(n *nada.Node) int {
	id, ok := p.ids[n]
	if !ok {
		return -1
	}
	return id
}

// Input returns the program input by name.
func (p *Program) Input(name string) *Input {
	for _, in := range p.Inputs {
		if in.Name == name {
			return in
		}
	}
	return nil
}

// Party returns the program party by name.
func (p *Program) Party(name string) *nada.Party {
	for _, party := range p.Parties {
		if party.Name == name {
			return party
		}
	}
	return nil
}

// InputParties returns the parties that own program inputs.
func (p *Program) InputParties() []*nada.Party {
	var result []*nada.Party
	for _, party := range p.Parties {
		for _, in := range p.Inputs {
			if in.Party == party {
				result = append(result, party)
				break
			}
		}
	}
	return result
}

// OutputParties returns the parties that receive program outputs.
func (p *Program) OutputParties() []*nada.Party {
	var result []*nada.Party
	for _, party := range p.Parties {
		for _, out := range p.Outputs {
			if out.Party == party {
				result = append(result, party)
				break
			}
		}
	}
	return result
}

type collector struct {
	logger  *utils.Logger
	prog    *Program
	parties map[string]*nada.Party
	inputs  map[string]*Input
	outputs map[string]*nada.Output
}

func (c *collector) output(out *nada.Output) error {
	if len(out.Name) == 0 {
		return c.logger.Errorf(out.Point, "output has no name")
	}
	prev, ok := c.outputs[out.Name]
	if ok {
		return c.logger.Errorf(out.Point,
			"output %s redeclared; previous declaration at %s",
			out.Name, prev.Point)
	}
	if err := c.party(out.Party, out.Point); err != nil {
		return err
	}
	var n *nada.Node
	if out.Value != nil {
		n = out.Value.Node()
	}
	if n == nil {
		return c.logger.Errorf(out.Point, "output %s has uninitialized value",
			out.Name)
	}
	if err := c.visit(n); err != nil {
		return err
	}
	c.outputs[out.Name] = out
	c.prog.Outputs = append(c.prog.Outputs, out)
	return nil
}

func (c *collector) party(party *nada.Party, loc utils.Point) error {
	if party == nil {
		return c.logger.Errorf(loc, "missing party")
	}
	if len(party.Name) == 0 {
		return c.logger.Errorf(party.Point, "party has no name")
	}
	prev, ok := c.parties[party.Name]
	if ok {
		if prev != party {
			return c.logger.Errorf(party.Point,
				"party %s redeclared; previous declaration at %s",
				party.Name, prev.Point)
		}
		return nil
	}
	c.parties[party.Name] = party
	c.prog.Parties = append(c.prog.Parties, party)
	return nil
}

func (c *collector) visit(n *nada.Node) error {
	if _, ok := c.prog.ids[n]; ok {
		return nil
	}
	for i := 0; i < n.NumArgs(); i++ {
		arg := n.Arg(i)
		if arg == nil {
			return c.logger.Errorf(n.Location(),
				"operand %d of %s is uninitialized", i, n.Op())
		}
		if err := c.visit(arg); err != nil {
			return err
		}
	}
	switch n.Op() {
	case nada.OpInput:
		if err := c.input(n); err != nil {
			return err
		}

	case nada.OpLiteral:
		if n.Literal() == nil {
			return c.logger.Errorf(n.Location(), "literal has no value")
		}
	}
	c.prog.ids[n] = len(c.prog.Nodes)
	c.prog.Nodes = append(c.prog.Nodes, n)
	return nil
}

func (c *collector) input(n *nada.Node) error {
	in := n.Input()
	if in == nil {
		return c.logger.Errorf(n.Location(), "missing input declaration")
	}
	if len(in.Name) == 0 {
		return c.logger.Errorf(in.Point, "input has no name")
	}
	if err := c.party(in.Party, in.Point); err != nil {
		return err
	}
	prev, ok := c.inputs[in.Name]
	if ok {
		if prev.Input != in {
			return c.logger.Errorf(in.Point,
				"input %s redeclared; previous declaration at %s",
				in.Name, prev.Point)
		}
		if !prev.Type.Equal(n.Type()) {
			return c.logger.Errorf(n.Location(),
				"input %s used as %s and %s", in.Name, prev.Type, n.Type())
		}
		return nil
	}
	input := &Input{
		Input: in,
		Type:  n.Type(),
	}
	c.inputs[in.Name] = input
	c.prog.Inputs = append(c.prog.Inputs, input)
	return nil
}
