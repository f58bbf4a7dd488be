// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package eci maps ECI (Extended Channel Interpretation) designator
values to the text encodings they name, and transcodes text through
them before it is packed into a QR byte-mode segment.
*/
package eci // import "github.com/YamanSD/QR-IO/eci"

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// registry maps an ECI designator to the charset a byte-mode segment
// under that designator is transcoded through.  Only the designators
// a QR encoder is likely to be asked for are populated; Lookup
// reports the rest as unsupported rather than guessing.
var registry = map[int]encoding.Encoding{
	3:  charmap.ISO8859_1,
	4:  charmap.ISO8859_2,
	5:  charmap.ISO8859_3,
	6:  charmap.ISO8859_7,
	7:  charmap.ISO8859_6,
	8:  charmap.ISO8859_8,
	9:  charmap.ISO8859_5,
	10: charmap.ISO8859_9,
	15: charmap.ISO8859_10,
	17: charmap.Windows1252,
	20: japanese.ShiftJIS,
}

// UnsupportedError reports an ECI designator this registry has no
// charset for.
type UnsupportedError struct {
	Value int
}

func (e UnsupportedError) Error() string {
	return fmt.Sprintf("eci: unsupported designator %d", e.Value)
}

// Lookup returns the encoding registered for an ECI designator value.
func Lookup(value int) (encoding.Encoding, error) {
	enc, ok := registry[value]
	if !ok {
		return nil, UnsupportedError{value}
	}
	return enc, nil
}

// Transcode encodes s, a UTF-8 string, through the charset assigned
// to the given ECI designator, returning the resulting bytes ready to
// pack as a byte-mode payload.
func Transcode(value int, s string) ([]byte, error) {
	enc, err := Lookup(value)
	if err != nil {
		return nil, err
	}
	return enc.NewEncoder().Bytes([]byte(s))
}
