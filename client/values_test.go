//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package client

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/markkurossi/nada/types"
)

var parseValueTests = []struct {
	input  string
	typ    types.Info
	value  string
	string string
}{
	{"500", types.SecretInteger, "500", "SecretInteger(500)"},
	{"-3", types.SecretInteger, "-3", "SecretInteger(-3)"},
	{"0x10", types.SecretInteger, "16", "SecretInteger(16)"},
	{"PublicInteger:42", types.PublicInteger, "42", "PublicInteger(42)"},
	{"si:7", types.SecretInteger, "7", "SecretInteger(7)"},
}

func TestParseValue(t *testing.T) {
	for _, test := range parseValueTests {
		v, err := ParseValue(test.input)
		if err != nil {
			t.Errorf("ParseValue(%q) failed: %s", test.input, err)
			continue
		}
		if !v.Type.Equal(test.typ) {
			t.Errorf("ParseValue(%q): type %s, expected %s",
				test.input, v.Type, test.typ)
		}
		if v.Value.String() != test.value {
			t.Errorf("ParseValue(%q): value %s, expected %s",
				test.input, v.Value, test.value)
		}
		if v.String() != test.string {
			t.Errorf("ParseValue(%q): %s, expected %s",
				test.input, v, test.string)
		}
	}
}

func TestParseValueErrors(t *testing.T) {
	for _, input := range []string{"", "abc", "1.5", "Foo:1", "SecretBoolean:1"} {
		_, err := ParseValue(input)
		if err == nil {
			t.Errorf("ParseValue(%q) succeeded", input)
		}
	}
}

func TestValuesNames(t *testing.T) {
	values := Values{
		"c": NewSecretInteger(3),
		"a": NewSecretInteger(1),
		"b": NewPublicInteger(2),
	}
	names := strings.Join(values.Names(), ",")
	if names != "a,b,c" {
		t.Errorf("Names: %s", names)
	}
	c := values.clone()
	c["a"].Value.SetInt64(100)
	if values["a"].Value.Int64() != 1 {
		t.Errorf("clone shares values")
	}
}

func TestTiming(t *testing.T) {
	timing := NewTiming()
	var buf bytes.Buffer
	timing.Print(&buf)
	if buf.Len() != 0 {
		t.Errorf("empty timing printed: %s", buf.String())
	}

	sample := timing.Sample("Store", []string{"values"})
	sample.SubSample("program", time.Now())
	sample.AbsSubSample("values", time.Millisecond)
	timing.Sample("Compute", []string{"compute"})

	if timing.Total() < 0 {
		t.Errorf("negative total %s", timing.Total())
	}
	timing.Print(&buf)
	for _, label := range []string{"Store", "program", "Compute", "Total"} {
		if !strings.Contains(buf.String(), label) {
			t.Errorf("report does not contain %s:\n%s", label, buf.String())
		}
	}
}
