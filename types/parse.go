//
// parse.go
//
// Copyright (c) 2021-2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	reSized = regexp.MustCompile(
		`^(Secret|Public)?([[:alpha:]]+)([[:digit:]]*)$`)
)

// Parse parses type definition and returns its type information.
// Accepted forms are the long names (SecretInteger, PublicInteger,
// Integer, SecretBoolean, ...) with an optional integer width suffix
// (SecretInteger32), and the short names (si, i, sb, b).
func Parse(val string) (info Info, err error) {
	switch val {
	case "si":
		return SecretInteger, nil
	case "i":
		return PublicInteger, nil
	case "sb":
		return SecretBoolean, nil
	case "b":
		return PublicBoolean, nil
	}

	m := reSized.FindStringSubmatch(val)
	if m == nil {
		return info, fmt.Errorf("types.Parse: unknown type: %s", val)
	}
	switch m[2] {
	case "Integer":
		info.Type = TInt

	case "Boolean":
		info.Type = TBool
		info.Bits = 1

	default:
		return info, fmt.Errorf("types.Parse: unknown type: %s", val)
	}
	info.Secret = m[1] == "Secret"

	if len(m[3]) > 0 {
		if info.Type == TBool {
			return Undefined,
				fmt.Errorf("types.Parse: sized boolean type: %s", val)
		}
		var bits int64
		bits, err = strconv.ParseInt(m[3], 10, 32)
		if err != nil {
			return
		}
		if bits <= 1 {
			return Undefined,
				fmt.Errorf("types.Parse: invalid integer width: %s", val)
		}
		info.Bits = Size(bits)
	}
	return
}
