// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Program jscan streams the values of JSON documents to stdout, one line
// per value, as tab-separated path, kind, and raw text columns.
//
// Usage:
//
//	jscan [options] [file ...]
//
// With no file arguments, input is read from stdin. Inputs compressed with
// gzip are detected and decompressed transparently. An input may contain
// multiple concatenated top-level values unless -jwcc is set.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/creachadair/jscan"
	"github.com/creachadair/jscan/pathq"
	"github.com/klauspost/compress/gzip"
)

var (
	doJWCC   = flag.Bool("jwcc", false, "Accept comments and trailing commas (JWCC)")
	doDigest = flag.Bool("digest", false, "Print a fingerprint of the event stream instead of events")

	locs []string
)

func init() {
	flag.Func("p", "Emit only values at this location (repeatable)", func(s string) error {
		locs = append(locs, s)
		return nil
	})
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("jscan: ")
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	var dig *jscan.Digest
	var f jscan.ValueFunc
	if *doDigest {
		dig = jscan.NewDigest()
		f = dig.Value
	} else {
		f = func(path string, kind jscan.Kind, value string) {
			fmt.Fprintf(out, "%s\t%s\t%s\n", path, kind, value)
		}
	}
	if len(locs) != 0 {
		q, err := pathq.Compile(locs...)
		if err != nil {
			return err
		}
		f = q.Filter(f)
	}

	if len(args) == 0 {
		if err := scan(os.Stdin, f); err != nil {
			return fmt.Errorf("stdin: %w", err)
		}
	}
	for _, name := range args {
		in, err := os.Open(name)
		if err != nil {
			return err
		}
		err = scan(in, f)
		in.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if dig != nil {
		fmt.Fprintf(out, "%016x\n", dig.Sum64())
	}
	return nil
}

// scan streams the values of r to f, decompressing gzip input as needed.
func scan(r io.Reader, f jscan.ValueFunc) error {
	br := bufio.NewReader(r)
	if hdr, err := br.Peek(2); err == nil && hdr[0] == 0x1f && hdr[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return err
		}
		defer zr.Close()
		return scanValues(zr, f)
	}
	return scanValues(br, f)
}

// scanValues streams the concatenated top-level values of r to f.
func scanValues(r io.Reader, f jscan.ValueFunc) error {
	if *doJWCC {
		return jscan.ParseJWCC(r, f)
	}
	p := jscan.New(r, f)
	for n := 0; ; n++ {
		if err := p.Next(); err == io.EOF {
			if n == 0 {
				return errors.New("no JSON value in input")
			}
			return nil
		} else if err != nil {
			return err
		}
	}
}
