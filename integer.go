//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package nada

import (
	"math/big"

	"github.com/markkurossi/nada/types"
	"github.com/markkurossi/nada/utils"
)

// SecretInteger is a handle to a secret integer value.
type SecretInteger struct {
	n *Node
}

// NewSecretInteger declares the input as a secret integer.
func NewSecretInteger(input *Input) SecretInteger {
	n := newNode(utils.Caller(1), OpInput, types.SecretInteger)
	n.input = input
	return SecretInteger{
		n: n,
	}
}

// Node implements the Value interface.
func (v SecretInteger) Node() *Node {
	return v.n
}

// Type implements the Value interface.
func (v SecretInteger) Type() types.Info {
	return types.SecretInteger
}

func (v SecretInteger) integral() {}

// Add returns v+o.
func (v SecretInteger) Add(o Integral) SecretInteger {
	return SecretInteger{
		n: binary(OpAdd, types.SecretInteger, v, o),
	}
}

// Sub returns v-o.
func (v SecretInteger) Sub(o Integral) SecretInteger {
	return SecretInteger{
		n: binary(OpSub, types.SecretInteger, v, o),
	}
}

// Mul returns v*o.
func (v SecretInteger) Mul(o Integral) SecretInteger {
	return SecretInteger{
		n: binary(OpMul, types.SecretInteger, v, o),
	}
}

// Lt returns v<o.
func (v SecretInteger) Lt(o Integral) SecretBoolean {
	return SecretBoolean{
		n: binary(OpLt, types.SecretBoolean, v, o),
	}
}

// Gt returns v>o.
func (v SecretInteger) Gt(o Integral) SecretBoolean {
	return SecretBoolean{
		n: binary(OpGt, types.SecretBoolean, v, o),
	}
}

// Le returns v<=o.
func (v SecretInteger) Le(o Integral) SecretBoolean {
	return SecretBoolean{
		n: binary(OpLe, types.SecretBoolean, v, o),
	}
}

// Ge returns v>=o.
func (v SecretInteger) Ge(o Integral) SecretBoolean {
	return SecretBoolean{
		n: binary(OpGe, types.SecretBoolean, v, o),
	}
}

// Eq returns v==o.
func (v SecretInteger) Eq(o Integral) SecretBoolean {
	return SecretBoolean{
		n: binary(OpEq, types.SecretBoolean, v, o),
	}
}

// Neq returns v!=o.
func (v SecretInteger) Neq(o Integral) SecretBoolean {
	return SecretBoolean{
		n: binary(OpNeq, types.SecretBoolean, v, o),
	}
}

// Integer is a handle to a public integer value. Public integers are
// either literals or public program inputs.
type Integer struct {
	n *Node
}

// NewInteger creates a public integer literal.
func NewInteger(v int64) Integer {
	n := newNode(utils.Caller(1), OpLiteral, types.PublicInteger)
	n.literal = big.NewInt(v)
	return Integer{
		n: n,
	}
}

// NewBigInteger creates a public integer literal from the big.Int
// value. The value is copied.
func NewBigInteger(v *big.Int) Integer {
	n := newNode(utils.Caller(1), OpLiteral, types.PublicInteger)
	n.literal = new(big.Int).Set(v)
	return Integer{
		n: n,
	}
}

// NewPublicInteger declares the input as a public integer.
func NewPublicInteger(input *Input) Integer {
	n := newNode(utils.Caller(1), OpInput, types.PublicInteger)
	n.input = input
	return Integer{
		n: n,
	}
}

// Node implements the Value interface.
func (v Integer) Node() *Node {
	return v.n
}

// Type implements the Value interface.
func (v Integer) Type() types.Info {
	return types.PublicInteger
}

func (v Integer) integral() {}

// Add returns v+o.
func (v Integer) Add(o Integer) Integer {
	return Integer{
		n: binary(OpAdd, types.PublicInteger, v, o),
	}
}

// Sub returns v-o.
func (v Integer) Sub(o Integer) Integer {
	return Integer{
		n: binary(OpSub, types.PublicInteger, v, o),
	}
}

// Mul returns v*o.
func (v Integer) Mul(o Integer) Integer {
	return Integer{
		n: binary(OpMul, types.PublicInteger, v, o),
	}
}
