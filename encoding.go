// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jscan

import (
	"errors"
	"strings"

	"github.com/creachadair/jscan/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value, adding escapes and enclosing
// quotation marks.
func Quote(src string) string { return string(escape.Escape(mem.S(src))) }

// Unquote decodes a quoted JSON string value: the enclosing quotation
// marks are removed and escape sequences are replaced with their plain
// equivalents.
//
// The parser reports string text with its quotation marks already removed
// and its escapes intact except for the backslashes; such text cannot be
// unquoted directly. Unquote is for callers holding complete string values,
// for example JWCC or raw document fragments.
//
// Invalid escapes decode to the Unicode replacement rune. Unquote reports
// an error for input without enclosing quotes or with an escape sequence
// truncated by the end of the input.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	return escape.Unescape(mem.S(src[1 : len(src)-1]))
}
