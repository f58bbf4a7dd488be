// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// A Mode names a QR segment encoding mode, the closed set defined by
// ISO/IEC 18004 Table 2 (plus the control pseudo-modes used to frame
// ECI, FNC1 and Structured Append).  Terminator is the zero value.
type Mode int8

const (
	Terminator Mode = iota
	Numeric
	Alphanumeric
	Byte
	Kanji
	ECI
	FNC1First
	FNC1Second
	StructuredAppend
)

var modeNames = [...]string{
	Numeric: "numeric", Alphanumeric: "alphanumeric", Byte: "byte",
	Kanji: "kanji", ECI: "eci", FNC1First: "fnc1-first",
	FNC1Second: "fnc1-second", StructuredAppend: "structured-append",
	Terminator: "terminator",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Indicator returns the 4 bit mode indicator value for m, as fixed by
// the standard.
func (m Mode) Indicator() uint32 {
	return [...]uint32{
		Numeric: 0b0001, Alphanumeric: 0b0010, Byte: 0b0100,
		Kanji: 0b1000, ECI: 0b0111, FNC1First: 0b0101,
		FNC1Second: 0b1001, StructuredAppend: 0b0011,
		Terminator: 0b0000,
	}[m]
}

// countLength[mode][bucket] is the character-count indicator width in
// bits, for the four data modes, by version size-class bucket.
var countLength = [Kanji + 1][3]int{
	Numeric:      {10, 12, 14},
	Alphanumeric: {9, 11, 13},
	Byte:         {8, 16, 16},
	Kanji:        {8, 10, 12},
}

// alphaOrder is the QR alphanumeric character set in standard order:
// 0-9, A-Z, then SPACE $ % * + - . / :.
const alphaOrder = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

var alphaValueTable = func() map[uint32]byte {
	m := make(map[uint32]byte, len(alphaOrder))
	for i := 0; i < len(alphaOrder); i++ {
		m[uint32(alphaOrder[i])] = byte(i)
	}
	return m
}()

// AlphaValue returns the position of code point r in the QR
// alphanumeric character set and whether r belongs to that set.  It
// never conflates "absent" with "index 0": ok is false iff r is not
// in the set, regardless of value.
func AlphaValue(r uint32) (value byte, ok bool) {
	value, ok = alphaValueTable[r]
	return
}

// IsNumeric reports whether r is a QR numeric-mode character (ASCII
// '0'-'9').
func IsNumeric(r uint32) bool { return r-'0' < 10 }

// IsAlphanumeric reports whether r belongs to the QR alphanumeric
// character set.
func IsAlphanumeric(r uint32) bool {
	_, ok := alphaValueTable[r]
	return ok
}

// IsByte reports whether r fits the ISO-8859-1 byte-mode range.
func IsByte(r uint32) bool { return r < 0x100 }

// IsKanji reports whether r is a Shift-JIS code point in one of the
// two QR Kanji double-byte ranges (Annex H).
func IsKanji(r uint32) bool {
	return (r >= 0x8140 && r <= 0x9FFC) || (r >= 0xE040 && r <= 0xEBBF)
}

// kanjiValue converts a Shift-JIS code point in a QR Kanji range to
// its 13 bit encoded value.
func kanjiValue(r uint32) uint32 {
	var c uint32
	if r >= 0x8140 && r <= 0x9FFC {
		c = r - 0x8140
	} else {
		c = r - 0xC140
	}
	return c>>8*0xC0 + c&0xFF
}
