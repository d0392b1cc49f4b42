//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package client

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/nada/types"
)

// Value defines a typed value stored in the cluster or given to a
// computation.
type Value struct {
	Type  types.Info
	Value *big.Int
}

// NewSecretInteger creates a secret integer value.
func NewSecretInteger(v int64) Value {
	return Value{
		Type:  types.SecretInteger,
		Value: big.NewInt(v),
	}
}

// NewPublicInteger creates a public integer value.
func NewPublicInteger(v int64) Value {
	return Value{
		Type:  types.PublicInteger,
		Value: big.NewInt(v),
	}
}

// ParseValue parses a value from its string representation. The
// value is either an integer, in which case it is a secret integer,
// or a type and an integer separated by colon, for example
// "PublicInteger:42".
func ParseValue(s string) (Value, error) {
	typ := types.SecretInteger
	val := s

	idx := strings.IndexByte(s, ':')
	if idx >= 0 {
		var err error
		typ, err = types.Parse(s[:idx])
		if err != nil {
			return Value{}, err
		}
		val = s[idx+1:]
	}
	if typ.Type != types.TInt {
		return Value{}, errors.Newf("unsupported value type %s", typ)
	}
	i, ok := new(big.Int).SetString(val, 0)
	if !ok {
		return Value{}, errors.Newf("invalid integer value '%s'", val)
	}
	return Value{
		Type:  typ,
		Value: i,
	}, nil
}

func (v Value) String() string {
	return fmt.Sprintf("%s(%s)", v.Type, v.Value)
}

// Values define named values.
type Values map[string]Value

// Names returns the sorted value names.
func (values Values) Names() []string {
	var names []string
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (values Values) clone() Values {
	result := make(Values, len(values))
	for k, v := range values {
		result[k] = Value{
			Type:  v.Type,
			Value: new(big.Int).Set(v.Value),
		}
	}
	return result
}
