// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split partitions normalized input into QR code segments,
implementing the greedy mode-switching state machine of ISO/IEC 18004
Annex J: the current mode only gives way to another when the
upcoming run of characters in that other mode is long enough to be
worth the switch, with the break-even run lengths indexed by QR
version size-class bucket exactly as the standard tabulates them.
*/
package split // import "github.com/YamanSD/QR-IO/split"

import "github.com/YamanSD/QR-IO/coding"

// A Unit is one normalized input element: a single logical character,
// already classified for every QR mode it could be represented in.
// The Segmenter never looks at text encodings; producing Units from
// raw text (UTF-8 decoding, Shift-JIS transcoding for Kanji, ECI
// transcoding) is the caller's job.
type Unit struct {
	// Rune is the original code point, used to test Numeric and
	// Alphanumeric eligibility.  Both modes are ASCII-only, so Rune
	// is only consulted when Bytes has length 1.
	Rune uint32

	// Bytes holds the byte-mode representation of this unit: one or
	// more values, each below 0x100 (e.g. the UTF-8 encoding of
	// Rune).  Every Unit must have at least one byte; Byte mode is
	// the universal fallback.
	Bytes []uint32

	// Kanji is the Shift-JIS value of this unit and KanjiOK reports
	// whether it is Kanji-mode encodable.  When false, Kanji is
	// unused.
	Kanji   uint32
	KanjiOK bool
}

func (u Unit) isNumeric() bool { return len(u.Bytes) == 1 && coding.IsNumeric(u.Rune) }
func (u Unit) isAlpha() bool   { return len(u.Bytes) == 1 && coding.IsAlphanumeric(u.Rune) && !u.isNumeric() }

// class is both a Unit's finest eligible mode and, during the state
// machine walk, the segmenter's current mode: the two notions share
// the same four values, Numeric/Alphanumeric/Kanji/Byte.
type class int

const (
	classByte class = iota
	classNumeric
	classAlpha
	classKanji
)

func classify(u Unit) class {
	switch {
	case u.isNumeric():
		return classNumeric
	case u.isAlpha():
		return classAlpha
	case u.KanjiOK:
		return classKanji
	default:
		return classByte
	}
}

func toMode(c class) coding.Mode {
	switch c {
	case classNumeric:
		return coding.Numeric
	case classAlpha:
		return coding.Alphanumeric
	case classKanji:
		return coding.Kanji
	default:
		return coding.Byte
	}
}

// runLen returns the length of the maximal run of class c starting at
// position i.
func runLen(classes []class, i int, c class) int {
	n := 0
	for i+n < len(classes) && classes[i+n] == c {
		n++
	}
	return n
}

// initialMode picks the starting mode for the whole sequence, the
// four cases of Annex J's initial-mode rule.
func initialMode(classes []class, bucket int) class {
	switch c0 := classes[0]; c0 {
	case classByte:
		return classByte
	case classKanji:
		run := runLen(classes, 0, classKanji)
		if run < len(classes) && classes[run] == classByte {
			threshold := 5
			if bucket == 2 {
				threshold = 6
			}
			if run < threshold {
				return classByte
			}
		}
		return classKanji
	case classAlpha:
		k := runLen(classes, 0, classAlpha)
		if k < len(classes) && k < 6+bucket {
			if next := classes[k]; next == classByte || next == classKanji {
				return classByte
			}
		}
		return classAlpha
	default: // classNumeric
		k := runLen(classes, 0, classNumeric)
		byteThreshold := 4
		if bucket == 2 {
			byteThreshold = 5
		}
		if k < len(classes) && k < byteThreshold {
			if next := classes[k]; next == classByte || next == classKanji {
				return classByte
			}
		}
		if k < len(classes) && k < 7+bucket && classes[k] == classAlpha {
			return classAlpha
		}
		return classNumeric
	}
}

// nextMode decides whether the state machine, currently in mode m,
// switches before consuming the character at position i.
func nextMode(m class, classes []class, i, bucket int) class {
	switch m {
	case classNumeric:
		// Leaving Numeric is unconditional: the first incompatible
		// character ends the run immediately.
		switch classes[i] {
		case classByte:
			return classByte
		case classKanji:
			return classKanji
		case classAlpha:
			return classAlpha
		default:
			return classNumeric
		}
	case classAlpha:
		switch classes[i] {
		case classByte:
			return classByte
		case classKanji:
			return classKanji
		case classNumeric:
			if runLen(classes, i, classNumeric) >= 13+2*bucket {
				return classNumeric
			}
			return classAlpha
		default:
			return classAlpha
		}
	default: // classByte or classKanji, governed by the same rule
		if runLen(classes, i, classKanji) >= 9+min(3*bucket, 4) {
			return classKanji
		}
		if runLen(classes, i, classAlpha) >= 11+min(4*bucket, 5) {
			return classAlpha
		}
		numRun := runLen(classes, i, classNumeric)
		if numRun >= 6+min(2*bucket, 3) {
			return classNumeric
		}
		if numRun >= 6+bucket && i+numRun < len(classes) && classes[i+numRun] == classAlpha {
			return classNumeric
		}
		// Kanji mode cannot itself carry a non-Kanji character; fall
		// back to Byte rather than stay.  Byte accepts anything, so
		// it always stays.
		if m == classKanji && classes[i] != classKanji {
			return classByte
		}
		return m
	}
}

// Segment partitions units into QR segments for the given version
// size-class bucket, using the Annex J greedy state machine: the
// initial mode is chosen by initialMode, then nextMode re-evaluates
// at every position whether the upcoming run in another mode is long
// enough to justify switching.  Consecutive positions that settle on
// the same mode become one segment.
func Segment(units []Unit, bucket int) []coding.Segment {
	if len(units) == 0 {
		return nil
	}
	classes := make([]class, len(units))
	for i, u := range units {
		classes[i] = classify(u)
	}

	mode := initialMode(classes, bucket)
	var segs []coding.Segment
	start := 0
	for i := 1; i < len(units); i++ {
		if m2 := nextMode(mode, classes, i, bucket); m2 != mode {
			segs = append(segs, buildSegment(units, start, i, mode))
			start = i
			mode = m2
		}
	}
	segs = append(segs, buildSegment(units, start, len(units), mode))
	return segs
}

func buildSegment(units []Unit, i, j int, cat class) coding.Segment {
	switch cat {
	case classNumeric, classAlpha:
		data := make([]uint32, j-i)
		for k := i; k < j; k++ {
			data[k-i] = units[k].Rune
		}
		return coding.Segment{Mode: toMode(cat), Data: data}
	case classKanji:
		data := make([]uint32, j-i)
		for k := i; k < j; k++ {
			data[k-i] = units[k].Kanji
		}
		return coding.Segment{Mode: coding.Kanji, Data: data}
	default:
		var data []uint32
		for k := i; k < j; k++ {
			data = append(data, units[k].Bytes...)
		}
		return coding.Segment{Mode: coding.Byte, Data: data}
	}
}

// MinLength returns a cheap, safe-to-underestimate lower bound on the
// encoded length in bits of units: every unit is costed at the QR
// Numeric Mode rate (its theoretical minimum), the narrowest mode a
// character can occupy.  Encode in package qr does not call it; it
// starts from the bucket of the smallest allowed version and resplits
// when the chosen version falls in another bucket.
func MinLength(units []Unit) int {
	n := len(units)
	full, rem := n/3, n%3
	bits := full * 10
	switch rem {
	case 1:
		bits += 4
	case 2:
		bits += 7
	}
	return bits
}
