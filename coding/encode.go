// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Build runs the full encoding pipeline for a validated, ordered
// segment list: pads the segments into data codewords for the given
// version and level, computes and interleaves error correction
// codewords, places the result onto a matrix, and applies the chosen
// (or searched-for) mask.  mask -1 requests automatic mask search;
// any other value outside [0,7] returns ErrArgs.
func Build(segs []Segment, v Version, l Level, mask int) (*Matrix, error) {
	if err := checkVersion(v); err != nil {
		return nil, err
	}
	if err := checkLevel(l); err != nil {
		return nil, err
	}
	if mask < -1 || mask > 7 {
		return nil, ErrArgs
	}

	data, err := padData(segs, v, l)
	if err != nil {
		return nil, err
	}
	full := addECCAndInterleave(data, v, l)

	s := newBuildState(v)
	s.drawFunctionPatterns(v)
	s.drawCodewords(full)
	s.chooseMask(l, mask)

	return &Matrix{size: s.size, dark: s.dark}, nil
}
