// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jscan

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"go4.org/mem"
)

// A ValueFunc receives one event per JSON value scanned from the input.
// The path locates the value within the document, rooted at "$"; kind tags
// its shape; value holds the raw lexed text. For objects and arrays the
// value text is whatever scalar text was most recently lexed, not a
// serialization of the composite (see [Parser]).
//
// The function is invoked synchronously on the parser's own call stack and
// has no way to terminate the parse early.
type ValueFunc func(path string, kind Kind, value string)

// A Parser is a single-pass streaming scanner over one JSON input.
//
// The parser never materializes values: it maintains a single mutable path
// buffer and a single mutable value buffer, and reports each value to its
// ValueFunc as soon as the value has been fully consumed. Children of an
// object or array are therefore reported before the composite itself. The
// event reported for a composite carries the residual text of the most
// recently lexed scalar; only scalar events have meaningful value text.
//
// A Parser is not safe for concurrent use; callers needing concurrent
// parses must use independent instances.
type Parser struct {
	r    *bufio.Reader
	emit ValueFunc

	path  []byte // current location, e.g. $.key[3]
	value []byte // raw text of the most recently lexed scalar
	off   int    // byte offset of the current input position

	// Deferred bytes for lookahead, returned in LIFO order.
	// Invariant: at most one byte is pushed back between reads, so the
	// buffer never holds more than one byte in practice.
	pend  [4]byte
	npend int
}

// New constructs a Parser that scans input from r and reports each value
// to f.
func New(r io.Reader, f ValueFunc) *Parser {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Parser{r: br, emit: f, path: []byte("$")}
}

// Parse consumes exactly one JSON value from the front of the input,
// leaving the input positioned immediately after it. It reports an error
// if the input is empty or contains no value.
func (p *Parser) Parse() error {
	if err := p.Next(); err == io.EOF {
		return p.failf("unexpected end of input")
	} else if err != nil {
		return err
	}
	return nil
}

// Next consumes the next JSON value from the current input position,
// leaving the input positioned immediately after it. If no further value
// is available, Next returns io.EOF.
func (p *Parser) Next() error { return p.readValue() }

// Parse scans a single JSON value from r, reporting each value encountered
// to f. It returns nil after one complete value has been consumed, or the
// first error encountered.
func Parse(r io.Reader, f ValueFunc) error { return New(r, f).Parse() }

// next returns the next input byte, preferring deferred bytes over the
// underlying reader. A false flag reports a clean end of input; any other
// read failure is returned as an error.
func (p *Parser) next() (byte, bool, error) {
	if p.npend > 0 {
		p.npend--
		p.off++
		return p.pend[p.npend], true, nil
	}
	c, err := p.r.ReadByte()
	if err == io.EOF {
		return 0, false, nil
	} else if err != nil {
		return 0, false, fmt.Errorf("read input: %w", err)
	}
	p.off++
	return c, true, nil
}

// unread defers c, a byte just returned by next, for re-reading.
func (p *Parser) unread(c byte) {
	p.pend[p.npend] = c
	p.npend++
	p.off--
}

// readValue consumes one value of any type and reports it. It returns
// io.EOF if the input ends before any value is found.
func (p *Parser) readValue() error {
	for {
		c, ok, err := p.next()
		if err != nil {
			return err
		} else if !ok {
			return io.EOF
		}

		switch {
		case c == '{':
			if err := p.readObject(); err != nil {
				return err
			}
			p.report(Object)
		case c == '[':
			if err := p.readArray(); err != nil {
				return err
			}
			p.report(Array)
		case isNumStart(c):
			p.unread(c)
			if err := p.readNumber(); err != nil {
				return err
			}
			p.report(Number)
		case c == '"':
			p.value = p.value[:0]
			if _, err := p.readString(false); err != nil {
				return err
			}
			p.report(String)
		case c == 't':
			if err := p.readLiteral(mem.S("rue")); err != nil {
				return err
			}
			p.report(True)
		case c == 'f':
			if err := p.readLiteral(mem.S("alse")); err != nil {
				return err
			}
			p.report(False)
		case c == 'n':
			if err := p.readLiteral(mem.S("ull")); err != nil {
				return err
			}
			p.report(Null)
		case isSpace(c):
			continue
		default:
			return p.failf("unexpected %q", c)
		}
		return nil
	}
}

// readNumber consumes a maximal run of number bytes into the value buffer.
// Membership in the number character class is the only validation applied;
// the text is surfaced verbatim, well formed or not.
func (p *Parser) readNumber() error {
	p.value = p.value[:0]
	for {
		c, ok, err := p.next()
		if err != nil {
			return err
		} else if !ok {
			return nil
		}
		if !isNumByte(c) {
			p.unread(c)
			return nil
		}
		p.value = append(p.value, c)
	}
}

// readString consumes string bytes up to an unescaped closing quote,
// appending them to the path buffer if asPath is true (the string is an
// object key) and to the value buffer otherwise. A backslash escapes
// exactly the next byte, which is copied through verbatim; no unescaping
// is done. It returns the number of bytes appended.
func (p *Parser) readString(asPath bool) (int, error) {
	var esc bool
	var n int
	for {
		c, ok, err := p.next()
		if err != nil {
			return n, err
		} else if !ok {
			return n, p.failf("unterminated string")
		}

		switch {
		case esc:
			esc = false
		case c == '\\':
			esc = true
			continue
		case c == '"':
			return n, nil
		}
		if asPath {
			p.path = append(p.path, c)
		} else {
			p.value = append(p.value, c)
		}
		n++
	}
}

// readLiteral consumes the remaining bytes of a true/false/null constant
// whose initial byte has already been read. The value buffer is left
// untouched; constants have no payload text.
func (p *Parser) readLiteral(want mem.RO) error {
	for i := 0; i < want.Len(); i++ {
		c, ok, err := p.next()
		if err != nil {
			return err
		} else if !ok {
			return p.failf("unexpected end of input, want %q", want.At(i))
		}
		if c != want.At(i) {
			return p.failf("got %q, want %q", c, want.At(i))
		}
	}
	return nil
}

// readArray consumes the elements of an array whose opening bracket has
// already been read, through the closing bracket. Each element is parsed
// with "[index]" appended to the path, and the path is truncated back to
// its prior length afterward.
func (p *Parser) readArray() error {
	index := 0
	expectValue := true
	for {
		c, ok, err := p.next()
		if err != nil {
			return err
		} else if !ok {
			return p.failf("unexpected end of array")
		}

		switch {
		case c == ']':
			if expectValue && index > 0 {
				// A comma promised another element.
				return p.failf("invalid character %q in array", c)
			}
			return nil
		case c == ',':
			index++
			expectValue = true
		case isSpace(c):
			continue
		default:
			if !expectValue {
				return p.failf("invalid character %q in array", c)
			}
			p.unread(c)

			mark := len(p.path)
			p.path = append(p.path, '[')
			p.path = strconv.AppendInt(p.path, int64(index), 10)
			p.path = append(p.path, ']')
			err := p.readValue()
			p.path = p.path[:mark]
			if err != nil {
				return err
			}
			expectValue = false
		}
	}
}

// readObject consumes the members of an object whose opening brace has
// already been read, through the closing brace. A "." is appended to the
// path for the duration of the object; each key's bytes are appended after
// it and truncated away when the member ends, so member values are parsed
// with the path already naming them.
func (p *Parser) readObject() error {
	keyLen := 0 // length of the pending key, 0 when no key is pending
	p.path = append(p.path, '.')

	for {
		c, ok, err := p.next()
		if err != nil {
			return err
		} else if !ok {
			return p.failf("unexpected end of object")
		}

		switch {
		case c == '}':
			p.path = p.path[:len(p.path)-keyLen-1]
			return nil
		case c == '"':
			if keyLen != 0 {
				return p.failf("expected ':' after %q", p.path)
			}
			keyLen, err = p.readString(true)
			if err != nil {
				return err
			}
		case c == ':':
			if keyLen == 0 {
				return p.failf("expected key before ':'")
			}
			// A clean end of input here surfaces as an unterminated
			// object on the next pass through the loop.
			if err := p.readValue(); err != nil && err != io.EOF {
				return err
			}
		case c == ',':
			p.path = p.path[:len(p.path)-keyLen]
			keyLen = 0
		case isSpace(c):
			continue
		default:
			return p.failf("unexpected %q in object", c)
		}
	}
}

// report delivers the current path, kind, and value text to the handler.
// The string conversions snapshot the buffers, which are mutated as soon
// as scanning resumes.
func (p *Parser) report(kind Kind) { p.emit(string(p.path), kind, string(p.value)) }

func (p *Parser) failf(msg string, args ...any) error {
	return &SyntaxError{Offset: p.off, Msg: fmt.Sprintf(msg, args...)}
}

// SyntaxError is the concrete type of errors reported by the parser for
// malformed input. I/O failures from the underlying reader are returned
// directly and are not syntax errors.
type SyntaxError struct {
	Offset int    // byte offset at which the error was detected
	Msg    string // description of the problem
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Msg, e.Offset)
}

func isSpace(c byte) bool    { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
func isDigit(c byte) bool    { return '0' <= c && c <= '9' }
func isNumStart(c byte) bool { return c == '-' || isDigit(c) }

func isNumByte(c byte) bool {
	return isDigit(c) || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E'
}
