//
// Copyright (c) 2021-2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"testing"
)

var parseTests = []struct {
	input string
	info  Info
}{
	{"SecretInteger", SecretInteger},
	{"si", SecretInteger},
	{"Integer", PublicInteger},
	{"PublicInteger", PublicInteger},
	{"i", PublicInteger},
	{"SecretBoolean", SecretBoolean},
	{"sb", SecretBoolean},
	{"Boolean", PublicBoolean},
	{"SecretInteger32", Info{Type: TInt, Secret: true, Bits: 32}},
	{"Integer8", Info{Type: TInt, Bits: 8}},
}

func TestParse(t *testing.T) {
	for _, test := range parseTests {
		info, err := Parse(test.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %s", test.input, err)
			continue
		}
		if !info.Equal(test.info) {
			t.Errorf("Parse(%q)=%v, expected %v", test.input, info, test.info)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, test := range parseTests {
		info, err := Parse(test.info.String())
		if err != nil {
			t.Errorf("Parse(%q) failed: %s", test.info.String(), err)
			continue
		}
		if !info.Equal(test.info) {
			t.Errorf("Parse(%q)=%v", test.info.String(), info)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"", "SecretFloat", "SecretBoolean8", "Integer1", "Integer0",
		"[4]SecretInteger", "secretinteger",
	} {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("Parse(%q) succeeded", input)
		}
	}
}
