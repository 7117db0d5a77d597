// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jscan_test

import (
	"os"
	"strings"
	"testing"

	"github.com/creachadair/jscan"
	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

// TestYAMLCases runs the parser cases defined in testdata/parse.yaml.
func TestYAMLCases(t *testing.T) {
	data, err := os.ReadFile("testdata/parse.yaml")
	if err != nil {
		t.Fatalf("Read testdata: %v", err)
	}

	var cases []struct {
		Name   string `yaml:"name"`
		Input  string `yaml:"input"`
		Events []struct {
			Path  string `yaml:"path"`
			Kind  string `yaml:"kind"`
			Value string `yaml:"value"`
		} `yaml:"events"`
		Error string `yaml:"error"`
	}
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("Decode testdata: %v", err)
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			var rec jscan.Recorder
			err := jscan.Parse(strings.NewReader(tc.Input), rec.Value)

			if tc.Error != "" {
				if err == nil {
					t.Fatalf("Parse: got nil, want error containing %q", tc.Error)
				}
				if !strings.Contains(err.Error(), tc.Error) {
					t.Fatalf("Parse: got %v, want error containing %q", err, tc.Error)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			want := make([]jscan.Event, len(tc.Events))
			for i, ev := range tc.Events {
				want[i] = jscan.Event{Path: ev.Path, Kind: kindNamed(t, ev.Kind), Value: ev.Value}
			}
			if diff := cmp.Diff(want, rec.Events); diff != "" {
				t.Errorf("Events: (-want, +got)\n%s", diff)
			}
		})
	}
}

func kindNamed(t *testing.T, name string) jscan.Kind {
	t.Helper()
	for k := jscan.None; k <= jscan.Object; k++ {
		if k.String() == name {
			return k
		}
	}
	t.Fatalf("Unknown kind name %q", name)
	return jscan.None
}
