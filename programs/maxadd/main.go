//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package maxadd defines a program that adds its first input to the
// maximum of the two other inputs. All inputs and the output belong
// to one party.
package maxadd

import (
	"github.com/markkurossi/nada"
	"github.com/markkurossi/nada/program"
)

// Name is the registered program name.
const Name = "main"

func init() {
	program.Register(Name, Main)
}

// secretMax returns the larger of a and b.
func secretMax(a, b nada.SecretInteger) nada.SecretInteger {
	return a.Lt(b).IfElse(b, a)
}

// Main computes my_output = my_int1 + max(my_int2, my_int3).
func Main() []*nada.Output {
	party1 := nada.NewParty("Party1")

	myInt1 := nada.NewSecretInteger(nada.NewInput("my_int1", party1))
	myInt2 := nada.NewSecretInteger(nada.NewInput("my_int2", party1))
	myInt3 := nada.NewSecretInteger(nada.NewInput("my_int3", party1))

	newInt := myInt1.Add(secretMax(myInt2, myInt3))

	return []*nada.Output{nada.NewOutput(newInt, "my_output", party1)}
}
