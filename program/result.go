//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package program

import (
	"fmt"
	"io"
	"math/big"

	"github.com/markkurossi/nada"
	"github.com/markkurossi/nada/types"
	"github.com/markkurossi/tabulate"
)

// Result holds the value of a program output.
type Result struct {
	Name  string
	Party *nada.Party
	Type  types.Info
	Value *big.Int
}

// Interface converts the result to Go value: bool for booleans, int64
// for integers that fit into 64 bits, and *big.Int for all other
// integers.
func (r Result) Interface() interface{} {
	switch r.Type.Type {
	case types.TBool:
		return r.Value.Sign() != 0

	case types.TInt:
		if r.Value.IsInt64() {
			return r.Value.Int64()
		}
		return new(big.Int).Set(r.Value)

	default:
		return fmt.Sprintf("%v (%s)", r.Value, r.Type)
	}
}

// Format formats the result value in the base. The base 0 selects
// decimal output.
func (r Result) Format(base int) string {
	if base == 0 {
		base = 10
	}
	switch v := r.Interface().(type) {
	case bool:
		return fmt.Sprintf("%v", v)
	default:
		return r.Value.Text(base)
	}
}

func (r Result) String() string {
	var party string
	if r.Party != nil {
		party = r.Party.Name
	}
	return fmt.Sprintf("%s->%s=%s", r.Name, party, r.Format(10))
}

// Results define program output values.
type Results []Result

// Get returns the result by output name.
func (results Results) Get(name string) (Result, bool) {
	for _, r := range results {
		if r.Name == name {
			return r, true
		}
	}
	return Result{}, false
}

// ForParty returns the results disclosed to the named party.
func (results Results) ForParty(party string) Results {
	var ret Results
	for _, r := range results {
		if r.Party != nil && r.Party.Name == party {
			ret = append(ret, r)
		}
	}
	return ret
}

// Print prints the results as a table. The base specifies the integer
// output base; 0 selects decimal.
func (results Results) Print(out io.Writer, base int) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Output").SetAlign(tabulate.ML)
	tab.Header("Party").SetAlign(tabulate.ML)
	tab.Header("Type").SetAlign(tabulate.ML)
	tab.Header("Value").SetAlign(tabulate.MR)

	for _, r := range results {
		row := tab.Row()
		row.Column(r.Name)
		if r.Party != nil {
			row.Column(r.Party.Name)
		} else {
			row.Column("")
		}
		row.Column(r.Type.String())
		row.Column(r.Format(base))
	}
	tab.Print(out)
}
