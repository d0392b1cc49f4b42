//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package nada

import (
	"fmt"
	"math/big"

	"github.com/markkurossi/nada/types"
	"github.com/markkurossi/nada/utils"
)

// Operation specifies expression node operations.
type Operation uint8

// Expression node operations.
const (
	OpInput Operation = iota
	OpLiteral
	OpAdd
	OpSub
	OpMul
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNeq
	OpNot
	OpAnd
	OpOr
	OpIfElse
)

var operations = map[Operation]string{
	OpInput:   "input",
	OpLiteral: "literal",
	OpAdd:     "add",
	OpSub:     "sub",
	OpMul:     "mul",
	OpLt:      "lt",
	OpGt:      "gt",
	OpLe:      "le",
	OpGe:      "ge",
	OpEq:      "eq",
	OpNeq:     "neq",
	OpNot:     "not",
	OpAnd:     "and",
	OpOr:      "or",
	OpIfElse:  "if_else",
}

func (op Operation) String() string {
	name, ok := operations[op]
	if ok {
		return name
	}
	return fmt.Sprintf("{Operation %d}", op)
}

// NumOperations is the number of expression node operations.
const NumOperations = int(OpIfElse) + 1

// Node implements an expression graph node. Nodes are immutable: they
// are created by the DSL constructors and operators and never change
// after that.
type Node struct {
	op      Operation
	typ     types.Info
	args    []*Node
	input   *Input
	literal *big.Int
	point   utils.Point
}

func newNode(point utils.Point, op Operation, typ types.Info,
	args ...*Node) *Node {
	return &Node{
		op:    op,
		typ:   typ,
		args:  args,
		point: point,
	}
}

// Op returns the node operation.
func (n *Node) Op() Operation {
	return n.op
}

// Type returns the node value type.
func (n *Node) Type() types.Info {
	return n.typ
}

// NumArgs returns the number of operands of the node.
func (n *Node) NumArgs() int {
	return len(n.args)
}

// Arg returns the idx'th operand of the node. The result is nil if
// the operand was an uninitialized value.
func (n *Node) Arg(idx int) *Node {
	return n.args[idx]
}

// Input returns the input declaration of an OpInput node.
func (n *Node) Input() *Input {
	return n.input
}

// Literal returns the value of an OpLiteral node.
func (n *Node) Literal() *big.Int {
	if n.literal == nil {
		return nil
	}
	return new(big.Int).Set(n.literal)
}

// Location implements the utils.Locator interface.
func (n *Node) Location() utils.Point {
	return n.point
}

func (n *Node) String() string {
	switch n.op {
	case OpInput:
		if n.input == nil {
			return fmt.Sprintf("%s(<nil>)", n.typ)
		}
		return fmt.Sprintf("%s(%s)", n.typ, n.input.Name)

	case OpLiteral:
		return n.literal.String()

	default:
		return fmt.Sprintf("%s/%d", n.op, len(n.args))
	}
}

// Value defines a handle to an expression graph node.
type Value interface {
	// Node returns the handle's node. The result is nil for
	// uninitialized handles.
	Node() *Node
	// Type returns the static type of the handle.
	Type() types.Info
}

// Integral is a Value holding an integer.
type Integral interface {
	Value
	integral()
}

// binary creates a binary operation node for the calling DSL
// operator.
func binary(op Operation, typ types.Info, a, b Value) *Node {
	return newNode(utils.Caller(2), op, typ, a.Node(), valueNode(b))
}

func valueNode(v Value) *Node {
	if v == nil {
		return nil
	}
	return v.Node()
}
