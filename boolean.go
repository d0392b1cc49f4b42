//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package nada

import (
	"github.com/markkurossi/nada/types"
	"github.com/markkurossi/nada/utils"
)

// SecretBoolean is a handle to a secret boolean value. Secret
// booleans are produced by comparing secret integers.
type SecretBoolean struct {
	n *Node
}

// Node implements the Value interface.
func (c SecretBoolean) Node() *Node {
	return c.n
}

// Type implements the Value interface.
func (c SecretBoolean) Type() types.Info {
	return types.SecretBoolean
}

// IfElse selects t if the condition c is true and f otherwise. Both
// branches are always evaluated and the condition is never revealed.
func (c SecretBoolean) IfElse(t, f Integral) SecretInteger {
	return SecretInteger{
		n: newNode(utils.Caller(1), OpIfElse, types.SecretInteger,
			c.n, valueNode(t), valueNode(f)),
	}
}

// Not returns !c.
func (c SecretBoolean) Not() SecretBoolean {
	return SecretBoolean{
		n: newNode(utils.Caller(1), OpNot, types.SecretBoolean, c.n),
	}
}

// And returns c&&o.
func (c SecretBoolean) And(o SecretBoolean) SecretBoolean {
	return SecretBoolean{
		n: binary(OpAnd, types.SecretBoolean, c, o),
	}
}

// Or returns c||o.
func (c SecretBoolean) Or(o SecretBoolean) SecretBoolean {
	return SecretBoolean{
		n: binary(OpOr, types.SecretBoolean, c, o),
	}
}
