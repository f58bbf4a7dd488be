// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "testing"

func toUint32(s string) []uint32 {
	runes := []rune(s)
	out := make([]uint32, len(runes))
	for i, r := range runes {
		out[i] = uint32(r)
	}
	return out
}

func TestBuildProducesCorrectlySizedMatrix(t *testing.T) {
	segs := []Segment{{Mode: Alphanumeric, Data: toUint32("HELLO WORLD")}}
	m, err := Build(segs, 1, Q, -1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, want := m.Size(), Version(1).Size(); got != want {
		t.Errorf("Size() = %d, want %d", got, want)
	}
}

func TestBuildWithPinnedMaskIsDeterministic(t *testing.T) {
	segs := []Segment{{Mode: Numeric, Data: []uint32{'1', '2', '3'}}}
	m1, err := Build(segs, 2, M, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m2, err := Build(segs, 2, M, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m1.Size() != m2.Size() {
		t.Fatal("two Build calls with the same mask produced different sizes")
	}
	for y := 0; y < m1.Size(); y++ {
		for x := 0; x < m1.Size(); x++ {
			if m1.Module(x, y) != m2.Module(x, y) {
				t.Fatalf("Build is not deterministic at (%d,%d)", x, y)
			}
		}
	}
}

func TestBuildRejectsBadVersion(t *testing.T) {
	segs := []Segment{{Mode: Numeric, Data: []uint32{'1'}}}
	if _, err := Build(segs, 0, L, -1); err != ErrVersion {
		t.Errorf("Build() error = %v, want ErrVersion", err)
	}
}

func TestBuildRejectsBadLevel(t *testing.T) {
	segs := []Segment{{Mode: Numeric, Data: []uint32{'1'}}}
	if _, err := Build(segs, 1, Level(9), -1); err != ErrLevel {
		t.Errorf("Build() error = %v, want ErrLevel", err)
	}
}

func TestBuildRejectsBadMask(t *testing.T) {
	segs := []Segment{{Mode: Numeric, Data: []uint32{'1'}}}
	if _, err := Build(segs, 1, L, 8); err != ErrArgs {
		t.Errorf("Build() error = %v, want ErrArgs", err)
	}
}

func TestBuildRejectsOverflow(t *testing.T) {
	segs := []Segment{{Mode: Byte, Data: make([]uint32, 10000)}}
	if _, err := Build(segs, 1, L, -1); err == nil {
		t.Error("Build() with oversized data did not error")
	}
}
