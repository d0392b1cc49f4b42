//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package nada implements an embedded DSL for secure multi-party
// computation programs.
//
// A program is a Go function that declares parties and their inputs,
// composes secret values with the DSL operators, and returns a list
// of outputs:
//
//	party1 := nada.NewParty("Party1")
//	a := nada.NewSecretInteger(nada.NewInput("a", party1))
//	b := nada.NewSecretInteger(nada.NewInput("b", party1))
//	max := a.Lt(b).IfElse(b, a)
//	return []*nada.Output{nada.NewOutput(max, "max", party1)}
//
// Values are immutable handles to expression graph nodes. Secret
// values can not be inspected while the program is built, so
// conditionals over them are expressed with the oblivious
// SecretBoolean.IfElse operation instead of Go control flow.
//
// The function itself has no side effects. The host collects the
// expression graph from the returned outputs (see package program).
package nada
