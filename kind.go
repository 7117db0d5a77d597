// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jscan

// Kind is the type tag of a JSON value reported by the parser.
type Kind byte

// Constants defining the valid Kind values.
const (
	None   Kind = iota // no value (placeholder, never reported)
	String             // quoted string
	Number             // number
	True               // constant: true
	False              // constant: false
	Null               // constant: null
	Array              // array [ ... ]
	Object             // object { ... }
)

var kindStr = [...]string{
	None:   "none",
	String: "string",
	Number: "number",
	True:   "true",
	False:  "false",
	Null:   "null",
	Array:  "array",
	Object: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[None]
	}
	return kindStr[k]
}

// IsScalar reports whether k denotes a value with literal text and no
// children (string, number, true, false, or null).
func (k Kind) IsScalar() bool { return k >= String && k <= Null }
