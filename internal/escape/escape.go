// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package escape converts between plain text and the escaped interior of
// JSON string values.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

var escByte = [...]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// Unescape decodes src, the contents of a JSON string value with the
// enclosing quotation marks already removed. Escape sequences are replaced
// with their plain equivalents; an invalid escape decodes to the Unicode
// replacement rune. Unescape reports an error only for an escape sequence
// truncated by the end of input.
func Unescape(src mem.RO) ([]byte, error) {
	out := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(out, src), nil
		}
		out = mem.Append(out, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}

		c := src.At(0)
		src = src.SliceFrom(1)
		if c == 'u' {
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			v, err := parseHex4(src)
			if err != nil {
				out = utf8.AppendRune(out, utf8.RuneError)
			} else {
				out = utf8.AppendRune(out, rune(v))
			}
			src = src.SliceFrom(4)
		} else if int(c) < len(escByte) && escByte[c] != 0 {
			out = append(out, escByte[c])
		} else {
			out = utf8.AppendRune(out, utf8.RuneError)
		}
	}
	return out, nil
}

func parseHex4(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < 4; i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += int64(b - '0')
		case 'a' <= b && b <= 'f':
			v += int64(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += int64(b - 'A' + 10)
		default:
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}

var ctrlName = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  0, // size the table through the last control byte
}

const hexDigits = "0123456789abcdef"

// Escape encodes src for inclusion in a JSON string value. Control bytes,
// quotation marks, and backslashes are escaped. The line and paragraph
// separators U+2028 and U+2029 are also escaped, so that the output is safe
// to embed in JavaScript source; all other text is copied through intact.
func Escape(src mem.RO) []byte {
	out := make([]byte, 0, src.Len()+2)
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)

		if r >= utf8.RuneSelf {
			switch r {
			case utf8.RuneError:
				out = append(out, '\\', 'u', 'f', 'f', 'f', 'd')
			case '\u2028':
				out = append(out, '\\', 'u', '2', '0', '2', '8')
			case '\u2029':
				out = append(out, '\\', 'u', '2', '0', '2', '9')
			default:
				out = utf8.AppendRune(out, r)
			}
			continue
		}

		switch {
		case r == '"' || r == '\\':
			out = append(out, '\\', byte(r))
		case r < ' ':
			if b := ctrlName[r]; b != 0 {
				out = append(out, '\\', b)
			} else {
				out = append(out, '\\', 'u', '0', '0', hexDigits[r>>4], hexDigits[r&15])
			}
		default:
			out = append(out, byte(r))
		}
	}
	return out
}
