// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "testing"

func digits(n int) []uint32 {
	data := make([]uint32, n)
	for i := range data {
		data[i] = '0' + uint32(i%10)
	}
	return data
}

func TestChooseVersionPicksSmallestThatFits(t *testing.T) {
	segs := []Segment{{Mode: Byte, Data: digits(5)}}
	v, err := ChooseVersion(segs, L, MinVersion)
	if err != nil {
		t.Fatalf("ChooseVersion: %v", err)
	}
	if v != MinVersion {
		t.Errorf("ChooseVersion() = %d, want %d", v, MinVersion)
	}
}

func TestChooseVersionRespectsMinVersion(t *testing.T) {
	segs := []Segment{{Mode: Byte, Data: digits(5)}}
	v, err := ChooseVersion(segs, L, 10)
	if err != nil {
		t.Fatalf("ChooseVersion: %v", err)
	}
	if v != 10 {
		t.Errorf("ChooseVersion() = %d, want 10", v)
	}
}

func TestChooseVersionTooLong(t *testing.T) {
	// Far more byte-mode data than version 40-L can hold.
	segs := []Segment{{Mode: Byte, Data: make([]uint32, 10000)}}
	_, err := ChooseVersion(segs, L, MinVersion)
	if _, ok := err.(DataTooLongError); !ok {
		t.Errorf("ChooseVersion() error = %v, want DataTooLongError", err)
	}
}

func TestBoostLevelNeverLowersOrExceedsH(t *testing.T) {
	segs := []Segment{{Mode: Byte, Data: digits(3)}}
	got := BoostLevel(segs, 40, H)
	if got != H {
		t.Errorf("BoostLevel at H = %s, want H", got)
	}
}

func TestBoostLevelRaisesWhenCapacityAllows(t *testing.T) {
	segs := []Segment{{Mode: Byte, Data: digits(3)}}
	got := BoostLevel(segs, 40, L)
	if got < L {
		t.Errorf("BoostLevel() = %s, want >= L", got)
	}
	// A tiny payload at version 40 fits comfortably even at H.
	if got != H {
		t.Errorf("BoostLevel() = %s, want H for a tiny payload at version 40", got)
	}
}

func TestPadDataFillsToCapacity(t *testing.T) {
	segs := []Segment{{Mode: Byte, Data: digits(1)}}
	data, err := padData(segs, MinVersion, L)
	if err != nil {
		t.Fatalf("padData: %v", err)
	}
	if got, want := len(data), DataCodewords(MinVersion, L); got != want {
		t.Fatalf("len(data) = %d, want %d", got, want)
	}
	// Pad bytes alternate 0xEC, 0x11 after the segment + terminator +
	// byte-alignment bits.
	last := data[len(data)-1]
	if last != 0xEC && last != 0x11 {
		t.Errorf("last pad byte = %#x, want 0xEC or 0x11", last)
	}
}

func TestPadDataTooLong(t *testing.T) {
	segs := []Segment{{Mode: Byte, Data: make([]uint32, 1000)}}
	_, err := padData(segs, MinVersion, L)
	if _, ok := err.(DataTooLongError); !ok {
		t.Errorf("padData() error = %v, want DataTooLongError", err)
	}
}
