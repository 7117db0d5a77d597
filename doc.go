// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package jscan implements a streaming, event-driven JSON scanner.
//
// A Parser consumes one JSON document from an io.Reader in a single pass
// and, without materializing any values, invokes a caller-supplied function
// once per value encountered. Each invocation reports a JSONPath-like
// location for the value, a Kind tag, and the raw lexed text of the value.
//
// # Parsing
//
// Construct a Parser from a reader and a ValueFunc, then call Parse to
// consume a single value, or Next repeatedly to consume a sequence of
// concatenated values:
//
//	p := jscan.New(input, func(path string, kind jscan.Kind, value string) {
//	   log.Printf("%s %v %q", path, kind, value)
//	})
//	if err := p.Parse(); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other
// error indicates an I/O failure or a syntax error in the input; syntax
// errors have concrete type [*SyntaxError].
//
// # Events
//
// Events are delivered synchronously on the parser's own call stack, in
// strict document order. The children of an object or array are reported
// before the composite itself, so the event for the root value is always
// last. Paths are rooted at "$" and extended with ".key" for object members
// and "[index]" for array elements:
//
//	{"a": 1, "b": [2, 3]}
//
// reports $.a, $.b[0], $.b[1], $.b, and finally $.
//
// The scanner is a raw passthrough lexer: string text is reported with its
// escape sequences intact except for the backslash itself, and number text
// is reported verbatim with no semantic validation. Callers that need
// decoded string values can use [Unquote] on quoted input text.
package jscan
