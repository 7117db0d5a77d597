// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jscan

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tailscale/hujson"
)

// ParseJWCC scans a single JWCC (JSON With Commas and Comments) document
// from r, reporting each value to f. The input is read in full and
// standardized to plain JSON before scanning, so comments and trailing
// commas are accepted but positions in error messages refer to the
// standardized text.
func ParseJWCC(r io.Reader, f ValueFunc) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("standardize: %w", err)
	}
	return Parse(bytes.NewReader(std), f)
}
