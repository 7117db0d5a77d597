// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jscan

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// A Digest folds a stream of value reports into an order-sensitive 64-bit
// fingerprint. Two parses yield the same fingerprint exactly when they
// report the same sequence of (path, kind, value) triples, which makes a
// Digest a cheap witness for the determinism of a parse. Its zero value is
// not ready for use; call NewDigest.
type Digest struct {
	h *xxhash.Digest
}

// NewDigest constructs an empty event-stream digest.
func NewDigest() *Digest { return &Digest{h: xxhash.New()} }

// Value implements a ValueFunc that mixes the event into the digest.
func (d *Digest) Value(path string, kind Kind, value string) {
	// Length-prefix each field so adjacent fields cannot alias.
	var buf [binary.MaxVarintLen64]byte
	writeField := func(s string) {
		n := binary.PutUvarint(buf[:], uint64(len(s)))
		d.h.Write(buf[:n])
		d.h.WriteString(s)
	}
	writeField(path)
	d.h.Write([]byte{byte(kind)})
	writeField(value)
}

// Sum64 returns the fingerprint of the events mixed in so far.
func (d *Digest) Sum64() uint64 { return d.h.Sum64() }
