// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eci

import "testing"

func TestLookupKnownDesignator(t *testing.T) {
	if _, err := Lookup(3); err != nil {
		t.Errorf("Lookup(3): %v", err)
	}
}

func TestLookupUnsupportedDesignator(t *testing.T) {
	_, err := Lookup(12345)
	if _, ok := err.(UnsupportedError); !ok {
		t.Errorf("Lookup(12345) error = %v, want UnsupportedError", err)
	}
}

func TestTranscodeASCIIUnderISO8859_7(t *testing.T) {
	// ISO-8859-7 (designator 6) encodes a plain ASCII string
	// identically to its byte values.
	got, err := Transcode(6, "hello")
	if err != nil {
		t.Fatalf("Transcode: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("Transcode() = %q, want %q", got, "hello")
	}
}

func TestTranscodeShiftJIS(t *testing.T) {
	got, err := Transcode(20, "A")
	if err != nil {
		t.Fatalf("Transcode: %v", err)
	}
	if len(got) != 1 || got[0] != 'A' {
		t.Errorf("Transcode(20, \"A\") = %v, want [0x41]", got)
	}
}

func TestTranscodeUnsupportedDesignator(t *testing.T) {
	if _, err := Transcode(999, "x"); err == nil {
		t.Error("Transcode with an unsupported designator did not error")
	}
}
