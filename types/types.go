//
// types.go
//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"fmt"
)

// Type specifies a DSL value type.
type Type int8

// Size specify integer widths in bits.
type Size int32

func (t Type) String() string {
	for k, v := range Types {
		if v == t {
			return k
		}
	}
	return fmt.Sprintf("{Type %d}", t)
}

// ShortString returns a short string name for the type.
func (t Type) ShortString() string {
	name, ok := shortTypes[t]
	if ok {
		return name
	}
	return t.String()
}

// DSL types.
const (
	TUndefined Type = iota
	TBool
	TInt
)

// Types define DSL types and their names.
var Types = map[string]Type{
	"<Undefined>": TUndefined,
	"Boolean":     TBool,
	"Integer":     TInt,
}

var shortTypes = map[Type]string{
	TUndefined: "?",
	TBool:      "b",
	TInt:       "i",
}

// Info specifies information about a type.
type Info struct {
	Type   Type
	Secret bool
	// Bits specifies the value width. Zero selects the program's
	// default integer width.
	Bits Size
}

// Undefined defines type info for undefined types.
var Undefined = Info{
	Type: TUndefined,
}

// SecretInteger defines type info for secret integers.
var SecretInteger = Info{
	Type:   TInt,
	Secret: true,
}

// PublicInteger defines type info for public integers.
var PublicInteger = Info{
	Type: TInt,
}

// SecretBoolean defines type info for secret booleans.
var SecretBoolean = Info{
	Type:   TBool,
	Secret: true,
	Bits:   1,
}

// PublicBoolean defines type info for public booleans.
var PublicBoolean = Info{
	Type: TBool,
	Bits: 1,
}

func (i Info) String() string {
	var name string
	if i.Secret {
		name = "Secret" + i.Type.String()
	} else if i.Type == TUndefined {
		name = i.Type.String()
	} else {
		name = "Public" + i.Type.String()
	}
	if i.Bits == 0 || i.Type == TBool {
		return name
	}
	return fmt.Sprintf("%s%d", name, i.Bits)
}

// ShortString returns a short string name for the type info.
func (i Info) ShortString() string {
	var prefix string
	if i.Secret {
		prefix = "s"
	}
	if i.Bits == 0 || i.Type == TBool {
		return prefix + i.Type.ShortString()
	}
	return fmt.Sprintf("%s%s%d", prefix, i.Type.ShortString(), i.Bits)
}

// Undefined tests if type is undefined.
func (i Info) Undefined() bool {
	return i.Type == TUndefined
}

// Equal tests if the argument type is equal to this type info.
func (i Info) Equal(o Info) bool {
	return i.Type == o.Type && i.Secret == o.Secret && i.Bits == o.Bits
}

// Join returns the result type of a binary operation over i and
// o. The result is secret if either operand is secret. The function
// returns false if the operand types are not compatible.
func (i Info) Join(o Info) (Info, bool) {
	if i.Type != o.Type || i.Type == TUndefined {
		return Undefined, false
	}
	result := i
	result.Secret = i.Secret || o.Secret
	if o.Bits > result.Bits {
		result.Bits = o.Bits
	}
	return result, true
}

// Boolean returns the boolean type matching the secrecy of this
// type.
func (i Info) Boolean() Info {
	if i.Secret {
		return SecretBoolean
	}
	return PublicBoolean
}
