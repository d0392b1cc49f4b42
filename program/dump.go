//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package program

import (
	"fmt"
	"io"
	"strings"

	"github.com/markkurossi/nada"
	"github.com/markkurossi/tabulate"
	"github.com/markkurossi/text/superscript"
)

// Stats holds statistics about program operations.
type Stats [nada.NumOperations]int

// Count returns the total number of operations.
func (stats Stats) Count() int {
	var result int
	for _, v := range stats {
		result += v
	}
	return result
}

func (stats Stats) String() string {
	var parts []string
	for op := nada.OpInput; int(op) < nada.NumOperations; op++ {
		if stats[op] == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%d", op, stats[op]))
	}
	return strings.Join(parts, " ")
}

// Print prints the statistics as a table.
func (stats Stats) Print(out io.Writer) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Op").SetAlign(tabulate.ML)
	tab.Header("Count").SetAlign(tabulate.MR)

	for op := nada.OpInput; int(op) < nada.NumOperations; op++ {
		if stats[op] == 0 {
			continue
		}
		row := tab.Row()
		row.Column(op.String())
		row.Column(fmt.Sprintf("%d", stats[op]))
	}
	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d", stats.Count())).SetFormat(tabulate.FmtBold)

	tab.Print(out)
}

// Stats returns the program's operation statistics.
func (p *Program) Stats() Stats {
	var stats Stats
	for _, n := range p.Nodes {
		stats[n.Op()]++
	}
	return stats
}

func (p *Program) nodeName(n *nada.Node) string {
	return "v" + superscript.Itoa(p.ID(n))
}

// Dump prints a listing of the program.
func (p *Program) Dump(out io.Writer) {
	fmt.Fprintf(out, "program %s\n", p)
	for _, in := range p.Inputs {
		fmt.Fprintf(out, "  input\t%s\t%s\t%s\n", in.Name, in.Type, in.Party)
	}
	for _, n := range p.Nodes {
		var args []string
		switch n.Op() {
		case nada.OpInput:
			args = append(args, n.Input().Name)
		case nada.OpLiteral:
			args = append(args, n.Literal().String())
		default:
			for i := 0; i < n.NumArgs(); i++ {
				args = append(args, p.nodeName(n.Arg(i)))
			}
		}
		fmt.Fprintf(out, "  %s\t%s\t%s %s\t%s\n", p.nodeName(n),
			n.Type().ShortString(), n.Op(), strings.Join(args, " "),
			n.Location())
	}
	for _, o := range p.Outputs {
		fmt.Fprintf(out, "  output\t%s\t%s\t%s\n",
			o.Name, p.nodeName(o.Value.Node()), o.Party)
	}
}

// Dot creates graphviz dot output of the program.
func (p *Program) Dot(out io.Writer) {
	fmt.Fprintf(out, "digraph %q\n{\n", p.Name)
	fmt.Fprintf(out, "  overlap=scale;\n")
	fmt.Fprintf(out, "  node\t[fontname=\"Helvetica\"];\n")

	fmt.Fprintf(out, "  {\n    rank=same;\n    node [shape=plaintext];\n")
	for _, n := range p.Nodes {
		if n.Op() == nada.OpInput {
			fmt.Fprintf(out, "    n%d\t[label=\"%s\\n%s\"];\n",
				p.ID(n), n.Input(), n.Type())
		}
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {\n    node [shape=box];\n")
	for _, n := range p.Nodes {
		switch n.Op() {
		case nada.OpInput:
		case nada.OpLiteral:
			fmt.Fprintf(out, "    n%d\t[label=\"%s\",shape=ellipse];\n",
				p.ID(n), n.Literal())
		default:
			fmt.Fprintf(out, "    n%d\t[label=\"%s\"];\n", p.ID(n), n.Op())
		}
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {\n    rank=same;\n    node [shape=doubleoctagon];\n")
	for idx, o := range p.Outputs {
		fmt.Fprintf(out, "    o%d\t[label=\"%s\"];\n", idx, o)
	}
	fmt.Fprintf(out, "  }\n")

	for _, n := range p.Nodes {
		for i := 0; i < n.NumArgs(); i++ {
			fmt.Fprintf(out, "  n%d -> n%d;\n", p.ID(n.Arg(i)), p.ID(n))
		}
	}
	for idx, o := range p.Outputs {
		fmt.Fprintf(out, "  n%d -> o%d;\n", p.ID(o.Value.Node()), idx)
	}
	fmt.Fprintf(out, "}\n")
}
