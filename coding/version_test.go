// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "testing"

func TestVersionSize(t *testing.T) {
	tests := []struct {
		v    Version
		want int
	}{
		{1, 21},
		{2, 25},
		{40, 177},
	}
	for _, tt := range tests {
		if got := tt.v.Size(); got != tt.want {
			t.Errorf("Version(%d).Size() = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestVersionBucket(t *testing.T) {
	tests := []struct {
		v    Version
		want int
	}{
		{1, 0}, {9, 0}, {10, 1}, {26, 1}, {27, 2}, {40, 2},
	}
	for _, tt := range tests {
		if got := tt.v.Bucket(); got != tt.want {
			t.Errorf("Version(%d).Bucket() = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		l    Level
		want string
	}{
		{L, "L"}, {M, "M"}, {Q, "Q"}, {H, "H"},
	}
	for _, tt := range tests {
		if got := tt.l.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.l, got, tt.want)
		}
	}
}

func TestDataCodewordsVersion1(t *testing.T) {
	// ISO/IEC 18004 Table 7: version 1 data capacity in codewords per
	// level is 19 (L), 16 (M), 13 (Q), 9 (H).
	tests := []struct {
		l    Level
		want int
	}{
		{L, 19}, {M, 16}, {Q, 13}, {H, 9},
	}
	for _, tt := range tests {
		if got := DataCodewords(1, tt.l); got != tt.want {
			t.Errorf("DataCodewords(1, %s) = %d, want %d", tt.l, got, tt.want)
		}
	}
}

func TestDataBitsIsEightTimesCodewords(t *testing.T) {
	if got, want := DataBits(5, M), DataCodewords(5, M)*8; got != want {
		t.Errorf("DataBits(5, M) = %d, want %d", got, want)
	}
}

func TestRawDataModulesVersion1(t *testing.T) {
	// Version 1 has no alignment patterns: R(1) = (16*1+128)*1+64 = 208.
	if got, want := RawDataModules(1), 208; got != want {
		t.Errorf("RawDataModules(1) = %d, want %d", got, want)
	}
}

func TestAlignmentPositionsVersion1IsNil(t *testing.T) {
	if got := AlignmentPositions(1); got != nil {
		t.Errorf("AlignmentPositions(1) = %v, want nil", got)
	}
}

func TestAlignmentPositionsVersion2(t *testing.T) {
	want := []int{6, 18}
	got := AlignmentPositions(2)
	if len(got) != len(want) {
		t.Fatalf("AlignmentPositions(2) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AlignmentPositions(2)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestCheckVersionAndLevel(t *testing.T) {
	if checkVersion(0) != ErrVersion {
		t.Error("checkVersion(0) did not report ErrVersion")
	}
	if checkVersion(41) != ErrVersion {
		t.Error("checkVersion(41) did not report ErrVersion")
	}
	if checkVersion(1) != nil {
		t.Error("checkVersion(1) reported an error")
	}
	if checkLevel(Level(-1)) != ErrLevel {
		t.Error("checkLevel(-1) did not report ErrLevel")
	}
	if checkLevel(H) != nil {
		t.Error("checkLevel(H) reported an error")
	}
}
