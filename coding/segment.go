// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// A Segment describes one mode-tagged run of a QR code's data, or one
// of the control frames (ECI designator, FNC1, Structured Append).
// Segment is immutable once constructed: every code point in Data
// must be admissible under Mode (see Is).
type Segment struct {
	Mode Mode

	// Data holds the normalized code point sequence for Numeric,
	// Alphanumeric, Byte and Kanji segments.  Kanji code points are
	// already Shift-JIS values in one of the two QR Kanji ranges.
	Data []uint32

	// ECIValue is the designator for an ECI segment, in [0,999999].
	ECIValue int

	// FNC1AppIndicator is the 8 bit Application Indicator that
	// follows a FNC1-Second mode indicator.
	FNC1AppIndicator byte

	// SA holds the parameters of a StructuredAppend segment.
	SA StructuredAppendInfo
}

// StructuredAppendInfo carries the Structured Append header fields.
type StructuredAppendInfo struct {
	Index, Count int  // 0 <= Index < Count <= 16
	Parity       byte // XOR of every byte of the full user message
}

// SegmentError reports that a Segment's Data is inadmissible under
// its Mode.
type SegmentError struct {
	Mode Mode
}

func (e SegmentError) Error() string {
	return fmt.Sprintf("qr: data not valid for %s mode", e.Mode)
}

// Is reports whether r is encodable in mode.
func Is(r uint32, mode Mode) bool {
	switch mode {
	case Numeric:
		return IsNumeric(r)
	case Alphanumeric:
		return IsAlphanumeric(r)
	case Byte:
		return IsByte(r)
	case Kanji:
		return IsKanji(r)
	default:
		return false
	}
}

// IsValid reports whether every code point of s.Data is admissible
// under s.Mode.  Only Numeric, Alphanumeric, Byte and Kanji segments
// are checked; control segments are always considered valid.
func (s Segment) IsValid() bool {
	switch s.Mode {
	case Numeric, Alphanumeric, Byte, Kanji:
		for _, r := range s.Data {
			if !Is(r, s.Mode) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// count returns the character count indicator value for s.
func (s Segment) count() int { return len(s.Data) }

// payloadBits returns the number of payload bits (excluding mode
// indicator and count indicator) s.Data encodes to under s.Mode.
func (s Segment) payloadBits() int {
	n := len(s.Data)
	switch s.Mode {
	case Numeric:
		full, rem := n/3, n%3
		bits := full * 10
		switch rem {
		case 1:
			bits += 4
		case 2:
			bits += 7
		}
		return bits
	case Alphanumeric:
		return n/2*11 + n%2*6
	case Byte:
		return n * 8
	case Kanji:
		return n * 13
	default:
		return 0
	}
}

// EncodedLength returns the total encoded length in bits of s at the
// given QR version size-class bucket, including its mode indicator
// and (for data modes) its count indicator.  EncodedLength does not
// validate s.Data.
func (s Segment) EncodedLength(bucket int) int {
	switch s.Mode {
	case Numeric, Alphanumeric, Byte, Kanji:
		return 4 + countLength[s.Mode][bucket] + s.payloadBits()
	case ECI:
		return 4 + eciDesignatorBits(s.ECIValue)
	case FNC1First:
		return 4
	case FNC1Second:
		return 4 + 8
	case StructuredAppend:
		return 4 + 4 + 4 + 8
	case Terminator:
		return 4
	default:
		return 0
	}
}

// eciDesignatorBits returns the width in bits of the ECI designator
// field for the given value, per ISO/IEC 18004 7.4.2.
func eciDesignatorBits(value int) int {
	switch {
	case value < 128:
		return 8
	case value < 16384:
		return 16
	default:
		return 24
	}
}

// Encode writes s to b for the given QR version size-class bucket.
func (s Segment) Encode(b *Bits, bucket int) error {
	switch s.Mode {
	case Numeric, Alphanumeric, Byte, Kanji:
		if !s.IsValid() {
			return SegmentError{s.Mode}
		}
		if err := b.AppendBits(s.Mode.Indicator(), 4); err != nil {
			return err
		}
		if err := b.AppendBits(uint32(s.count()), countLength[s.Mode][bucket]); err != nil {
			return err
		}
		return s.encodePayload(b)
	case ECI:
		if err := b.AppendBits(ECI.Indicator(), 4); err != nil {
			return err
		}
		return encodeECIValue(b, s.ECIValue)
	case FNC1First:
		return b.AppendBits(FNC1First.Indicator(), 4)
	case FNC1Second:
		if err := b.AppendBits(FNC1Second.Indicator(), 4); err != nil {
			return err
		}
		return b.AppendBits(uint32(s.FNC1AppIndicator), 8)
	case StructuredAppend:
		if s.SA.Index < 0 || s.SA.Index >= s.SA.Count || s.SA.Count > 16 {
			return ErrArgs
		}
		if err := b.AppendBits(StructuredAppend.Indicator(), 4); err != nil {
			return err
		}
		if err := b.AppendBits(uint32(s.SA.Index), 4); err != nil {
			return err
		}
		if err := b.AppendBits(uint32(s.SA.Count-1), 4); err != nil {
			return err
		}
		return b.AppendBits(uint32(s.SA.Parity), 8)
	case Terminator:
		return b.AppendBits(Terminator.Indicator(), 4)
	default:
		return fmt.Errorf("qr: invalid mode %s", s.Mode)
	}
}

func encodeECIValue(b *Bits, value int) error {
	switch {
	case value < 0 || value > 999999:
		return ErrArgs
	case value < 128:
		return b.AppendBits(uint32(value), 8)
	case value < 16384:
		return b.AppendBits(0b10<<14|uint32(value), 16)
	default:
		return b.AppendBits(0b110<<21|uint32(value), 24)
	}
}

// encodePayload writes s's payload (without headers) to b.  s must be
// one of the four data modes and already validated.
func (s Segment) encodePayload(b *Bits) error {
	switch s.Mode {
	case Numeric:
		for i := 0; i < len(s.Data); i += 3 {
			group := s.Data[i:min(i+3, len(s.Data))]
			var v uint32
			for _, r := range group {
				v = v*10 + (r - '0')
			}
			bits := [...]int{0: 0, 1: 4, 2: 7, 3: 10}[len(group)]
			if err := b.AppendBits(v, bits); err != nil {
				return err
			}
		}
	case Alphanumeric:
		for i := 0; i < len(s.Data); i += 2 {
			if i+1 < len(s.Data) {
				v1, _ := AlphaValue(s.Data[i])
				v2, _ := AlphaValue(s.Data[i+1])
				if err := b.AppendBits(uint32(v1)*45+uint32(v2), 11); err != nil {
					return err
				}
			} else {
				v, _ := AlphaValue(s.Data[i])
				if err := b.AppendBits(uint32(v), 6); err != nil {
					return err
				}
			}
		}
	case Byte:
		for _, r := range s.Data {
			if err := b.AppendBits(r, 8); err != nil {
				return err
			}
		}
	case Kanji:
		for _, r := range s.Data {
			if err := b.AppendBits(kanjiValue(r), 13); err != nil {
				return err
			}
		}
	}
	return nil
}
