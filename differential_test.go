// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jscan_test

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/creachadair/jscan"
	"github.com/theory/jsonpath"
	"github.com/tidwall/gjson"
)

// Documents for cross-checking against independent JSON implementations.
// Keys are word-safe and strings are escape-free, so the raw text reported
// by the scanner equals the decoded value.
var diffDocs = []string{
	`{"name": "ada", "age": 36, "admin": true, "email": null}`,
	`[1, 2.5, -3e2, "four", false]`,
	`{"a": {"b": {"c": [0, [1, {"d": "deep"}]]}}}`,
	`{"empty": {}, "list": [], "zero": 0, "blank": ""}`,
	`[[["x"], "y"], "z"]`,
}

// TestPathSelection verifies that every scalar event's path, evaluated as a
// JSONPath query over an independently decoded copy of the document,
// selects the value the scanner reported.
func TestPathSelection(t *testing.T) {
	for _, doc := range diffDocs {
		var data any
		if err := json.Unmarshal([]byte(doc), &data); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}

		var rec jscan.Recorder
		if err := jscan.Parse(strings.NewReader(doc), rec.Value); err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		for _, ev := range rec.Events {
			if !ev.Kind.IsScalar() {
				continue
			}
			path, err := jsonpath.Parse(ev.Path)
			if err != nil {
				t.Errorf("Doc: %#q\nPath %q did not parse: %v", doc, ev.Path, err)
				continue
			}
			sel := path.Select(data)
			if len(sel) != 1 {
				t.Errorf("Doc: %#q\nPath %q selected %d values, want 1", doc, ev.Path, len(sel))
				continue
			}
			if !scalarEqual(ev, sel[0]) {
				t.Errorf("Doc: %#q\nPath %q: scanner reported %v %q, selection is %v",
					doc, ev.Path, ev.Kind, ev.Value, sel[0])
			}
		}
	}
}

// TestRawAgreement verifies scalar raw text against gjson extraction.
func TestRawAgreement(t *testing.T) {
	for _, doc := range diffDocs {
		var rec jscan.Recorder
		if err := jscan.Parse(strings.NewReader(doc), rec.Value); err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		for _, ev := range rec.Events {
			if ev.Path == "$" || !ev.Kind.IsScalar() {
				continue
			}
			res := gjson.Get(doc, gjsonPath(ev.Path))
			if !res.Exists() {
				t.Errorf("Doc: %#q\nPath %q not found by gjson", doc, ev.Path)
				continue
			}
			switch ev.Kind {
			case jscan.Number:
				if res.Raw != ev.Value {
					t.Errorf("Doc: %#q\nPath %q: raw %q, gjson %q", doc, ev.Path, ev.Value, res.Raw)
				}
			case jscan.String:
				if res.String() != ev.Value {
					t.Errorf("Doc: %#q\nPath %q: text %q, gjson %q", doc, ev.Path, ev.Value, res.String())
				}
			}
		}
	}
}

// gjsonPath converts a scanner location like $.a[0].b to gjson syntax
// (a.0.b). Only valid for word-safe keys.
func gjsonPath(p string) string {
	s := strings.TrimPrefix(p, "$")
	s = strings.ReplaceAll(s, "[", ".")
	s = strings.ReplaceAll(s, "]", "")
	return strings.TrimPrefix(s, ".")
}

func scalarEqual(ev jscan.Event, sel any) bool {
	switch ev.Kind {
	case jscan.Number:
		want, err := strconv.ParseFloat(ev.Value, 64)
		if err != nil {
			return false
		}
		got, ok := sel.(float64)
		return ok && got == want
	case jscan.String:
		got, ok := sel.(string)
		return ok && got == ev.Value
	case jscan.True:
		got, ok := sel.(bool)
		return ok && got
	case jscan.False:
		got, ok := sel.(bool)
		return ok && !got
	case jscan.Null:
		return sel == nil
	}
	return false
}
