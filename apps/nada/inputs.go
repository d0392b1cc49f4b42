//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/nada/client"
	"github.com/markkurossi/nada/program"
	"lukechampine.com/frand"
)

// InputArguments holds the name=value input arguments.
type InputArguments []string

func (i *InputArguments) String() string {
	return fmt.Sprint(*i)
}

// Set implements flag.Value.Set.
func (i *InputArguments) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		*i = append(*i, v)
	}
	return nil
}

// NameList holds comma-separated names.
type NameList []string

func (l *NameList) String() string {
	return strings.Join(*l, ",")
}

// Set implements flag.Value.Set.
func (l *NameList) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		if len(v) > 0 {
			*l = append(*l, v)
		}
	}
	return nil
}

// parseInputs parses the name=value arguments into values.
func parseInputs(args []string) (client.Values, error) {
	values := make(client.Values)
	for _, arg := range args {
		idx := strings.IndexByte(arg, '=')
		if idx <= 0 {
			return nil, errors.Newf("invalid input '%s': expected name=value",
				arg)
		}
		name := strings.TrimSpace(arg[:idx])
		if _, ok := values[name]; ok {
			return nil, errors.Newf("input %s given twice", name)
		}
		v, err := client.ParseValue(strings.TrimSpace(arg[idx+1:]))
		if err != nil {
			return nil, errors.Wrapf(err, "input %s", name)
		}
		values[name] = v
	}
	return values, nil
}

// configInputs converts the inputs of the configuration file into
// input arguments, sorted by name.
func configInputs(m map[string]string) []string {
	var result []string
	for k, v := range m {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

// randomInputs sets random values for all program inputs that do not
// have values.
func randomInputs(prog *program.Program, values client.Values) {
	bits := prog.Bits()
	for _, in := range prog.Inputs {
		if _, ok := values[in.Name]; ok {
			continue
		}
		v := new(big.Int).SetUint64(frand.Uint64n(1 << 62))
		values[in.Name] = client.Value{
			Type:  in.Type,
			Value: program.Wrap(v, bits),
		}
	}
}

// split splits the values into stored values and compute time
// secrets.
func split(values client.Values, store []string) (
	stored, secrets client.Values, err error) {

	stored = make(client.Values)
	secrets = make(client.Values)

	for _, name := range store {
		v, ok := values[name]
		if !ok {
			return nil, nil, errors.Newf("stored input %s has no value", name)
		}
		stored[name] = v
	}
	for name, v := range values {
		if _, ok := stored[name]; !ok {
			secrets[name] = v
		}
	}
	return stored, secrets, nil
}
