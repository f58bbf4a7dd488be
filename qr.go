// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR Code Model 2 symbols: every version 1-40, every
error correction level, and the Numeric/Alphanumeric/Byte/Kanji modes
plus ECI, FNC1 and Structured Append framing.
*/
package qr // import "github.com/YamanSD/QR-IO"

import (
	"errors"
	"fmt"

	"github.com/YamanSD/QR-IO/coding"
	"github.com/YamanSD/QR-IO/eci"
	"github.com/YamanSD/QR-IO/split"
	"golang.org/x/text/encoding/japanese"
)

// A Matrix is the finished module grid Encode produces: a square
// grid of light/dark modules, read-only to callers.
type Matrix = coding.Matrix

// FNC1Kind selects whether, and which, FNC1 indicator Encode emits.
type FNC1Kind int

const (
	FNC1None FNC1Kind = iota
	FNC1First
	FNC1Second
)

// StructuredAppend places this symbol within a Structured Append
// group: Index in [0,Count), Count in [1,16].
//
// FullMessage is the complete, pre-split message the group as a whole
// encodes, used only to compute the parity byte the standard requires
// every symbol of a group to share. Callers splitting one logical
// message into Count symbols must pass the same FullMessage to every
// Encode call, not the per-call substring: the parity byte is the XOR
// of every byte of the full message, not of any one symbol's share of
// it. A nil FullMessage falls back to the text passed to this Encode
// call, which is only correct when the symbol is not actually part of
// a multi-symbol split.
type StructuredAppend struct {
	Index, Count int
	FullMessage  []byte
}

// Options configures Encode.  The zero value of every field except
// Version and Mask means its default: level L, auto mode, no FNC1, no
// structured append, no ECI.  Version and Mask must be set to -1 for
// automatic selection; their zero values are rejected (version 0) or
// pin mask 0.
type Options struct {
	// ECL is the target error correction level.
	ECL coding.Level

	// ModeOverride forces every data segment to a single mode,
	// skipping the segmenter.  coding.Terminator (the zero value)
	// means automatic segmentation.
	ModeOverride coding.Mode

	// Version pins the QR version; -1 (the zero value is not valid
	// here, callers must set -1 explicitly, matching "auto" meaning
	// no version is implied by omission) requests the smallest
	// version that fits.
	Version int

	// Mask pins the XOR mask; -1 requests the lowest-penalty mask of
	// the 8 found by search.
	Mask int

	// FNC1 requests an FNC1-First or FNC1-Second indicator.
	// FNC1AppIndicator carries FNC1-Second's Application Indicator.
	FNC1             FNC1Kind
	FNC1AppIndicator byte

	// StructuredAppend requests a Structured Append header; nil
	// means this symbol stands alone.
	StructuredAppend *StructuredAppend

	// ECIPositions maps an input code point index (after backslash
	// escapes are resolved, see the package doc on Encode) to the ECI
	// designator value that applies starting at that position.
	ECIPositions map[int]int
}

// InvalidArgumentError reports an out-of-range option or value: bit
// width, mask, version, ECI designator, or Structured Append
// parameters.
type InvalidArgumentError struct {
	Reason string
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("qr: invalid argument: %s", e.Reason)
}

// IncompatibleOverrideError reports that Options.ModeOverride cannot
// encode some character of the input.
type IncompatibleOverrideError struct {
	Mode coding.Mode
	Rune rune
}

func (e IncompatibleOverrideError) Error() string {
	return fmt.Sprintf("qr: mode override %s cannot encode %q", e.Mode, e.Rune)
}

// DataTooLongError reports that no version in range holds the input
// at the target error correction level.
type DataTooLongError = coding.DataTooLongError

// InvalidECIEscapeError reports a malformed backslash-ECI escape in
// the input text.
type InvalidECIEscapeError struct {
	Pos int
}

func (e InvalidECIEscapeError) Error() string {
	return fmt.Sprintf("qr: invalid ECI escape at input position %d", e.Pos)
}

// ErrInternal is returned for assertion failures: conditions the
// encoder's own invariants should make unreachable.  It signals a bug
// in the encoder, never a malformed input.
var ErrInternal = errors.New("qr: internal error")

// Encode turns text into a finished QR symbol under opts.
//
// Besides Options.ECIPositions, an ECI assignment may be embedded
// directly in text: a backslash followed by exactly six decimal
// digits sets the ECI designator for everything from that point on;
// a doubled backslash is a literal backslash.  Escapes are resolved
// before Options.ECIPositions indices are applied, so both refer to
// positions in the same normalized code point sequence.
func Encode(text string, opts Options) (*Matrix, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	runes, eciPositions, err := normalize(text, opts.ECIPositions)
	if err != nil {
		return nil, err
	}
	spans, err := buildSpans(runes, eciPositions)
	if err != nil {
		return nil, err
	}

	minVersion := coding.MinVersion
	if opts.Version != -1 {
		minVersion = coding.Version(opts.Version)
	}

	bucket := minVersion.Bucket()
	var segs []coding.Segment
	var v coding.Version
	// The segmenter's count-indicator widths and mode-switch
	// thresholds depend on the version bucket, but the version
	// depends on the segmented length: resplit at most twice more,
	// enough to settle since there are only 3 buckets and bucket only
	// grows as bit demand grows.
	for attempt := 0; attempt < 3; attempt++ {
		if opts.ModeOverride != coding.Terminator {
			segs, err = buildSegmentsOverride(spans, opts.ModeOverride)
		} else {
			segs, err = buildSegments(spans, bucket)
		}
		if err != nil {
			return nil, err
		}
		framed := prependFraming(segs, opts, text)

		v, err = coding.ChooseVersion(framed, opts.ECL, minVersion)
		if err != nil {
			return nil, err
		}
		segs = framed
		if v.Bucket() == bucket {
			break
		}
		bucket = v.Bucket()
	}

	if opts.Version != -1 && v != coding.Version(opts.Version) {
		pinned := coding.Version(opts.Version)
		return nil, coding.DataTooLongError{
			RequiredBits: totalBits(segs, pinned.Bucket()),
			MaxBits:      coding.DataBits(pinned, opts.ECL),
		}
	}

	level := coding.BoostLevel(segs, v, opts.ECL)
	return coding.Build(segs, v, level, opts.Mask)
}

func validateOptions(opts Options) error {
	if opts.ECL < coding.L || opts.ECL > coding.H {
		return InvalidArgumentError{Reason: "ecl out of range"}
	}
	if opts.Version != -1 && (opts.Version < int(coding.MinVersion) || opts.Version > int(coding.MaxVersion)) {
		return InvalidArgumentError{Reason: "version out of range"}
	}
	if opts.Mask != -1 && (opts.Mask < 0 || opts.Mask > 7) {
		return InvalidArgumentError{Reason: "mask out of range"}
	}
	if sa := opts.StructuredAppend; sa != nil {
		if sa.Count <= 0 || sa.Count > 16 || sa.Index < 0 || sa.Index >= sa.Count {
			return InvalidArgumentError{Reason: "structured append index/count out of range"}
		}
	}
	for pos, v := range opts.ECIPositions {
		if pos < 0 || v < 0 || v > 999999 {
			return InvalidArgumentError{Reason: "eci position or designator out of range"}
		}
	}
	return nil
}

// normalize resolves backslash-ECI escapes in text, returning the
// code point sequence with escapes removed and a merged map from
// sequence index to ECI designator (escape-derived entries first,
// then eciPositions, which may override a position an escape also
// set).
func normalize(text string, eciPositions map[int]int) ([]rune, map[int]int, error) {
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	positions := make(map[int]int)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			out = append(out, r)
			continue
		}
		if i+1 < len(runes) && runes[i+1] == '\\' {
			out = append(out, '\\')
			i++
			continue
		}
		if i+6 >= len(runes) {
			return nil, nil, InvalidECIEscapeError{Pos: i}
		}
		value := 0
		for _, d := range runes[i+1 : i+7] {
			if d < '0' || d > '9' {
				return nil, nil, InvalidECIEscapeError{Pos: i}
			}
			value = value*10 + int(d-'0')
		}
		positions[len(out)] = value
		i += 6
	}
	for pos, v := range eciPositions {
		positions[pos] = v
	}
	return out, positions, nil
}

// span is a run of the normalized sequence sharing one ECI context
// (eci == -1 means no ECI is in effect).
type span struct {
	eci   int
	units []split.Unit
}

func buildSpans(runes []rune, eciPositions map[int]int) ([]span, error) {
	if len(runes) == 0 {
		return nil, nil
	}
	boundaries := []int{0}
	for pos := range eciPositions {
		if pos > 0 && pos < len(runes) {
			boundaries = append(boundaries, pos)
		}
	}
	sortInts(boundaries)

	spans := make([]span, 0, len(boundaries))
	eciValue := -1
	for i, start := range boundaries {
		end := len(runes)
		if i+1 < len(boundaries) {
			end = boundaries[i+1]
		}
		if v, ok := eciPositions[start]; ok {
			eciValue = v
		}
		units, err := makeUnits(runes[start:end], eciValue)
		if err != nil {
			return nil, err
		}
		spans = append(spans, span{eci: eciValue, units: units})
	}
	return spans, nil
}

// sortInts insertion-sorts a short slice of boundary indices; the
// number of ECI boundaries in realistic input is tiny, so this avoids
// pulling in sort for one call site.
func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j-1] > a[j]; j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}

var shiftJISEncoder = japanese.ShiftJIS.NewEncoder()

// makeUnits builds split.Units for rs, all sharing ECI context
// eciValue (-1 for none).  Kanji eligibility is decided by whether rs
// transcodes to a Shift-JIS code point in one of the two QR Kanji
// ranges, independent of eciValue. The byte-mode representation comes
// from the active ECI charset when one applies, from the code point
// itself when it already fits a single byte, or from its UTF-8
// encoding otherwise.
func makeUnits(rs []rune, eciValue int) ([]split.Unit, error) {
	units := make([]split.Unit, len(rs))
	for i, r := range rs {
		u := split.Unit{Rune: uint32(r)}
		if b, err := shiftJISEncoder.Bytes([]byte(string(r))); err == nil && len(b) == 2 {
			v := uint32(b[0])<<8 | uint32(b[1])
			if coding.IsKanji(v) {
				u.Kanji = v
				u.KanjiOK = true
			}
		}
		switch {
		case eciValue >= 0:
			b, err := eci.Transcode(eciValue, string(r))
			if err != nil {
				return nil, InvalidArgumentError{Reason: err.Error()}
			}
			u.Bytes = toUint32s(b)
		case r < 0x100:
			u.Bytes = []uint32{uint32(r)}
		default:
			u.Bytes = toUint32s([]byte(string(r)))
		}
		units[i] = u
	}
	return units, nil
}

func toUint32s(b []byte) []uint32 {
	out := make([]uint32, len(b))
	for i, v := range b {
		out[i] = uint32(v)
	}
	return out
}

// buildSegments runs the segmenter over each span, inserting an ECI
// control segment whenever the active ECI context changes.
func buildSegments(spans []span, bucket int) ([]coding.Segment, error) {
	var segs []coding.Segment
	active := -1
	for _, sp := range spans {
		if sp.eci != active {
			segs = append(segs, coding.Segment{Mode: coding.ECI, ECIValue: sp.eci})
			active = sp.eci
		}
		segs = append(segs, split.Segment(sp.units, bucket)...)
	}
	return segs, nil
}

// buildSegmentsOverride skips the segmenter: every span becomes one
// segment in mode, failing IncompatibleOverrideError at the first
// character mode cannot represent.
func buildSegmentsOverride(spans []span, mode coding.Mode) ([]coding.Segment, error) {
	var segs []coding.Segment
	active := -1
	for _, sp := range spans {
		if sp.eci != active {
			segs = append(segs, coding.Segment{Mode: coding.ECI, ECIValue: sp.eci})
			active = sp.eci
		}
		var data []uint32
		for _, u := range sp.units {
			switch mode {
			case coding.Kanji:
				if !u.KanjiOK {
					return nil, IncompatibleOverrideError{Mode: mode, Rune: rune(u.Rune)}
				}
				data = append(data, u.Kanji)
			case coding.Byte:
				data = append(data, u.Bytes...)
			default:
				if !coding.Is(u.Rune, mode) {
					return nil, IncompatibleOverrideError{Mode: mode, Rune: rune(u.Rune)}
				}
				data = append(data, u.Rune)
			}
		}
		segs = append(segs, coding.Segment{Mode: mode, Data: data})
	}
	return segs, nil
}

// prependFraming adds the Structured Append header and/or FNC1
// indicator ahead of segs, in the order the standard's bit stream
// lays them out: Structured Append first, then FNC1, then data.
func prependFraming(segs []coding.Segment, opts Options, text string) []coding.Segment {
	var framing []coding.Segment
	if sa := opts.StructuredAppend; sa != nil {
		msg := sa.FullMessage
		if msg == nil {
			msg = []byte(text)
		}
		framing = append(framing, coding.Segment{
			Mode: coding.StructuredAppend,
			SA: coding.StructuredAppendInfo{
				Index:  sa.Index,
				Count:  sa.Count,
				Parity: parityOf(msg),
			},
		})
	}
	switch opts.FNC1 {
	case FNC1First:
		framing = append(framing, coding.Segment{Mode: coding.FNC1First})
	case FNC1Second:
		framing = append(framing, coding.Segment{
			Mode:             coding.FNC1Second,
			FNC1AppIndicator: opts.FNC1AppIndicator,
		})
	}
	return append(framing, segs...)
}

// parityOf is the XOR of every byte of msg, used as the Structured
// Append parity byte shared by every symbol of a group. Callers must
// pass the full, pre-split user message (StructuredAppend.FullMessage
// when splitting across several symbols), not any one symbol's share
// of it, since the standard defines parity over the whole message.
func parityOf(msg []byte) byte {
	var p byte
	for _, b := range msg {
		p ^= b
	}
	return p
}

// totalBits returns the encoded length, in bits, of segs at the given
// version bucket, including the 4 bit terminator.
func totalBits(segs []coding.Segment, bucket int) int {
	n := 4
	for _, s := range segs {
		n += s.EncodedLength(bucket)
	}
	return n
}
