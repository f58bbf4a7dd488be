// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "testing"

func TestSegmentIsValid(t *testing.T) {
	s := Segment{Mode: Numeric, Data: []uint32{'1', '2', '3'}}
	if !s.IsValid() {
		t.Error("numeric segment of digits reported invalid")
	}
	bad := Segment{Mode: Numeric, Data: []uint32{'A'}}
	if bad.IsValid() {
		t.Error("numeric segment containing 'A' reported valid")
	}
}

func TestSegmentEncodedLengthNumeric(t *testing.T) {
	// 3 digits cost 4 (mode) + count-indicator + 10 payload bits.
	s := Segment{Mode: Numeric, Data: []uint32{'1', '2', '3'}}
	want := 4 + countLength[Numeric][0] + 10
	if got := s.EncodedLength(0); got != want {
		t.Errorf("EncodedLength(0) = %d, want %d", got, want)
	}
}

func TestSegmentEncodedLengthECI(t *testing.T) {
	tests := []struct {
		value int
		want  int
	}{
		{0, 4 + 8},
		{127, 4 + 8},
		{128, 4 + 16},
		{16383, 4 + 16},
		{16384, 4 + 24},
	}
	for _, tt := range tests {
		s := Segment{Mode: ECI, ECIValue: tt.value}
		if got := s.EncodedLength(0); got != tt.want {
			t.Errorf("EncodedLength(ECI %d) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestEncodeNumericGroupsOfThree(t *testing.T) {
	// "0123" encodes as group "012" (10 bits, value 12) then group
	// "3" (4 bits, value 3): ISO/IEC 18004 7.4.3.
	s := Segment{Mode: Numeric, Data: []uint32{'0', '1', '2', '3'}}
	b := NewBits(4)
	if err := s.Encode(b, 0); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := 4 + countLength[Numeric][0] + 10 + 4
	if got := b.Len(); got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
}

func TestEncodeAlphanumericKnownVector(t *testing.T) {
	// "AC-42" per ISO/IEC 18004 Annex I: pairs (A,C)=(10,12) -> 10*45+12=462,
	// (-,4)=(41,4) -> 41*45+4=1849, then lone '2'=2 in 6 bits.
	s := Segment{Mode: Alphanumeric, Data: []uint32{'A', 'C', '-', '4', '2'}}
	b := NewBits(4)
	if err := s.Encode(b, 0); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// The segment is 41 bits long; both buffers are padded with 7 zero
	// bits to a whole byte so Bytes can be compared.
	b.AppendBits(0, 7)
	data := b.Bytes()
	// Mode indicator 0010, count indicator 000000101 (5, 9 bits at
	// bucket 0), then 462 (11 bits) = 00111001110, then 1849 (11 bits)
	// = 11100111001, then 2 (6 bits) = 000010.
	bits := NewBits(4)
	bits.AppendBits(0b0010, 4)
	bits.AppendBits(5, 9)
	bits.AppendBits(462, 11)
	bits.AppendBits(1849, 11)
	bits.AppendBits(2, 6)
	bits.AppendBits(0, 7)
	want := bits.Bytes()
	if len(data) != len(want) {
		t.Fatalf("encoded length = %d bytes, want %d", len(data), len(want))
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("byte %d = %#x, want %#x", i, data[i], want[i])
		}
	}
}

func TestEncodeFNC1SecondIncludesAppIndicator(t *testing.T) {
	s := Segment{Mode: FNC1Second, FNC1AppIndicator: 0x5a}
	b := NewBits(2)
	if err := s.Encode(b, 0); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := b.Len(), 4+8; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestEncodeStructuredAppendRejectsBadIndex(t *testing.T) {
	s := Segment{Mode: StructuredAppend, SA: StructuredAppendInfo{Index: 3, Count: 2}}
	b := NewBits(3)
	if err := s.Encode(b, 0); err != ErrArgs {
		t.Errorf("Encode() = %v, want ErrArgs", err)
	}
}

func TestEncodeKanjiPayload(t *testing.T) {
	// A Shift-JIS code point in the first Kanji range: 0x8140 encodes
	// to value 0 (c = 0x8140-0x8140 = 0, c>>8*0xC0 + c&0xFF = 0).
	s := Segment{Mode: Kanji, Data: []uint32{0x8140}}
	b := NewBits(2)
	if err := s.Encode(b, 0); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := 4 + countLength[Kanji][0] + 13
	if got := b.Len(); got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}
