// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package pathq matches the location paths reported by the jscan parser
// against JSONPath-style location expressions.
//
// The grammar is the singular subset of JSONPath that a location can name:
//
//	 expr = root steps
//	 root = "$"
//	steps = step [steps]
//	 step = "." WORD
//	 step = "[" INDEX "]"
//	 step = "[" "'" QTEXT "'" "]"
//	 step = "[" '"' QTEXT '"' "]"
//
//	 WORD = RE `\w+`
//	INDEX = RE `0|[1-9]\d*`
//
// Wildcards, slices, filters, and recursive descent are not supported;
// a query names exact locations only.
//
// Expressions are normalized to the dot-and-bracket form the parser emits,
// so $['a'][0] and $.a[0] name the same location. Because the parser copies
// key bytes into the path verbatim, keys containing path metacharacters
// (".", "[") produce ambiguous locations; queries against such documents
// inherit that ambiguity.
package pathq

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/creachadair/jscan"
	"github.com/creachadair/mds/mapset"
)

// A Query is a compiled set of location expressions.
type Query struct {
	paths mapset.Set[string]
}

// Compile compiles one or more location expressions into a Query.
func Compile(exprs ...string) (*Query, error) {
	paths := mapset.New[string]()
	for _, expr := range exprs {
		norm, err := normalize(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid query %q: %w", expr, err)
		}
		paths.Add(norm)
	}
	return &Query{paths: paths}, nil
}

// Match reports whether path names one of the locations compiled into q.
// Locations reported by the parser are already in canonical form and are
// compared directly; this also covers keys whose bytes the expression
// grammar cannot express. Other spellings are normalized first.
func (q *Query) Match(path string) bool {
	if q.paths.Has(path) {
		return true
	}
	norm, err := normalize(path)
	if err != nil {
		return false
	}
	return q.paths.Has(norm)
}

// Filter returns a ValueFunc that forwards to f only the events whose path
// matches q.
func (q *Query) Filter(f jscan.ValueFunc) jscan.ValueFunc {
	return func(path string, kind jscan.Kind, value string) {
		if q.Match(path) {
			f(path, kind, value)
		}
	}
}

var (
	wordRE  = regexp.MustCompile(`^\w+`)
	indexRE = regexp.MustCompile(`^(0|[1-9]\d*)\]`)
	quoteRE = regexp.MustCompile(`^'([^']*)'\]`)
	dquotRE = regexp.MustCompile(`^"([^"]*)"\]`)
)

// normalize parses expr and re-renders it in the canonical form emitted by
// the parser: "$" followed by ".name" and "[index]" steps.
func normalize(expr string) (string, error) {
	t, ok := strings.CutPrefix(expr, "$")
	if !ok {
		return "", errors.New("missing root marker")
	}
	var buf strings.Builder
	buf.WriteString("$")
	for t != "" {
		if u, ok := strings.CutPrefix(t, "."); ok {
			name := wordRE.FindString(u)
			if name == "" {
				return "", errors.New("invalid member name")
			}
			buf.WriteString(".")
			buf.WriteString(name)
			t = u[len(name):]
			continue
		}
		if u, ok := strings.CutPrefix(t, "["); ok {
			if m := indexRE.FindStringSubmatch(u); m != nil {
				buf.WriteString("[")
				buf.WriteString(m[1])
				buf.WriteString("]")
				t = u[len(m[0]):]
				continue
			}
			m := quoteRE.FindStringSubmatch(u)
			if m == nil {
				m = dquotRE.FindStringSubmatch(u)
			}
			if m == nil {
				return "", errors.New("invalid bracket step")
			}
			buf.WriteString(".")
			buf.WriteString(m[1])
			t = u[len(m[0]):]
			continue
		}
		return "", fmt.Errorf("invalid path step at %q", t)
	}
	return buf.String(), nil
}
