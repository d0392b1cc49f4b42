//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package program

import (
	"fmt"
	"math/big"

	"github.com/markkurossi/nada"
	"github.com/markkurossi/nada/utils"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// Bits returns the integer width of the program values.
func (p *Program) Bits() int {
	if p.Params == nil || p.Params.IntegerBits <= 1 {
		return utils.DefaultIntegerBits
	}
	return p.Params.IntegerBits
}

// Eval evaluates the program with the input values. The inputs map
// must contain exactly one value for each program input. Integer
// values must be representable as signed integers of the program's
// integer width. Arithmetic wraps around at that width.
//
// Eval is a plaintext reference evaluator: it computes the values the
// parties would reconstruct. It evaluates every node, including both
// branches of every selection.
func (p *Program) Eval(inputs map[string]*big.Int) (Results, error) {
	bits := p.Bits()

	for name := range inputs {
		if p.Input(name) == nil {
			return nil, fmt.Errorf("unknown input '%s'", name)
		}
	}

	values := make([]*big.Int, len(p.Nodes))
	arg := func(n *nada.Node, idx int) *big.Int {
		return values[p.ids[n.Arg(idx)]]
	}

	for id, n := range p.Nodes {
		var r *big.Int

		switch n.Op() {
		case nada.OpInput:
			in := n.Input()
			v, ok := inputs[in.Name]
			if !ok || v == nil {
				return nil, fmt.Errorf("missing input '%s'", in.Name)
			}
			if !InRange(v, bits) {
				return nil, fmt.Errorf("input '%s': value %s overflows %d-bit integer",
					in.Name, v, bits)
			}
			r = new(big.Int).Set(v)

		case nada.OpLiteral:
			r = n.Literal()
			if !InRange(r, bits) {
				return nil, fmt.Errorf("%s: literal %s overflows %d-bit integer",
					n.Location(), r, bits)
			}

		case nada.OpAdd:
			r = Wrap(new(big.Int).Add(arg(n, 0), arg(n, 1)), bits)

		case nada.OpSub:
			r = Wrap(new(big.Int).Sub(arg(n, 0), arg(n, 1)), bits)

		case nada.OpMul:
			r = Wrap(new(big.Int).Mul(arg(n, 0), arg(n, 1)), bits)

		case nada.OpLt:
			r = boolValue(arg(n, 0).Cmp(arg(n, 1)) < 0)

		case nada.OpGt:
			r = boolValue(arg(n, 0).Cmp(arg(n, 1)) > 0)

		case nada.OpLe:
			r = boolValue(arg(n, 0).Cmp(arg(n, 1)) <= 0)

		case nada.OpGe:
			r = boolValue(arg(n, 0).Cmp(arg(n, 1)) >= 0)

		case nada.OpEq:
			r = boolValue(arg(n, 0).Cmp(arg(n, 1)) == 0)

		case nada.OpNeq:
			r = boolValue(arg(n, 0).Cmp(arg(n, 1)) != 0)

		case nada.OpNot:
			r = boolValue(arg(n, 0).Sign() == 0)

		case nada.OpAnd:
			r = boolValue(arg(n, 0).Sign() != 0 && arg(n, 1).Sign() != 0)

		case nada.OpOr:
			r = boolValue(arg(n, 0).Sign() != 0 || arg(n, 1).Sign() != 0)

		case nada.OpIfElse:
			// r = f + c*(t-f)
			c := arg(n, 0)
			t := arg(n, 1)
			f := arg(n, 2)
			r = new(big.Int).Sub(t, f)
			r.Mul(r, c)
			r.Add(r, f)
			r = Wrap(r, bits)

		default:
			return nil, fmt.Errorf("%s: unsupported operation %s",
				n.Location(), n.Op())
		}
		values[id] = r
	}

	var results Results
	for _, out := range p.Outputs {
		n := out.Value.Node()
		results = append(results, Result{
			Name:  out.Name,
			Party: out.Party,
			Type:  n.Type(),
			Value: new(big.Int).Set(values[p.ids[n]]),
		})
	}
	return results, nil
}

// Int64Inputs converts int64 input values into the Eval input map.
func Int64Inputs(values map[string]int64) map[string]*big.Int {
	result := make(map[string]*big.Int, len(values))
	for k, v := range values {
		result[k] = big.NewInt(v)
	}
	return result
}

// InRange tests if v is representable as a signed integer of the
// argument width.
func InRange(v *big.Int, bits int) bool {
	max := new(big.Int).Lsh(bigOne, uint(bits-1))
	min := new(big.Int).Neg(max)
	return v.Cmp(min) >= 0 && v.Cmp(max) < 0
}

// Wrap reduces v to a signed two's complement integer of the argument
// width. The argument v is modified and returned.
func Wrap(v *big.Int, bits int) *big.Int {
	mod := new(big.Int).Lsh(bigOne, uint(bits))
	v.Mod(v, mod)
	if v.Bit(bits-1) == 1 {
		v.Sub(v, mod)
	}
	return v
}

func boolValue(b bool) *big.Int {
	if b {
		return new(big.Int).Set(bigOne)
	}
	return new(big.Int).Set(bigZero)
}
