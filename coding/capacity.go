// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// DataTooLongError reports that a segment sequence has no encoding
// that fits any QR version at the required error correction level.
type DataTooLongError struct {
	RequiredBits int
	MaxBits      int
}

func (e DataTooLongError) Error() string {
	return fmt.Sprintf("qr: data (%d bits) too long to fit (max %d bits)",
		e.RequiredBits, e.MaxBits)
}

// segmentsLength returns the total encoded length of segs, in bits,
// at the version bucket of v, including the terminator.
func segmentsLength(segs []Segment, v Version) int {
	bucket := v.Bucket()
	n := 0
	for _, s := range segs {
		n += s.EncodedLength(bucket)
	}
	return n + 4 // terminator
}

// ChooseVersion finds the smallest version in [minVersion, MaxVersion]
// at which segs (encoded per that version's bucket) fit within
// DataBits(v,l), boosting l is never attempted here: the caller
// decides whether to raise the level once a version is found (see
// BoostLevel).  It returns ErrVersion-shaped
// DataTooLongError if no version in range fits.
func ChooseVersion(segs []Segment, l Level, minVersion Version) (Version, error) {
	for v := minVersion; v <= MaxVersion; v++ {
		if segmentsLength(segs, v) <= DataBits(v, l) {
			return v, nil
		}
	}
	return 0, DataTooLongError{
		RequiredBits: segmentsLength(segs, MaxVersion),
		MaxBits:      DataBits(MaxVersion, l),
	}
}

// BoostLevel returns the highest level >= l for which segs still fit
// in version v, without changing v.  It never lowers below l and
// never exceeds H.  Boosting strictly improves error tolerance at no
// capacity cost; Encode in package qr applies it to every symbol once
// the version is chosen.
func BoostLevel(segs []Segment, v Version, l Level) Level {
	need := segmentsLength(segs, v)
	best := l
	for cand := l + 1; cand <= H; cand++ {
		if need > DataBits(v, cand) {
			break
		}
		best = cand
	}
	return best
}

// padData packs segs into a data codeword buffer of exactly
// DataCodewords(v,l) bytes: segment bits, a terminator (as many of
// the remaining 4 bits as fit), a zero pad to byte alignment, then
// alternating 0xEC/0x11 pad bytes until full.
func padData(segs []Segment, v Version, l Level) ([]byte, error) {
	bucket := v.Bucket()
	capBits := DataBits(v, l)
	need := 0
	for _, s := range segs {
		need += s.EncodedLength(bucket)
	}
	if need > capBits {
		return nil, DataTooLongError{RequiredBits: need, MaxBits: capBits}
	}
	b := NewBits(DataCodewords(v, l))
	for _, s := range segs {
		if err := s.Encode(b, bucket); err != nil {
			return nil, err
		}
	}
	if b.Len() > capBits {
		return nil, DataTooLongError{RequiredBits: b.Len(), MaxBits: capBits}
	}

	term := min(4, capBits-b.Len())
	if err := b.AppendBits(0, term); err != nil {
		return nil, err
	}

	if pad := -b.Len() & 7; pad != 0 {
		if err := b.AppendBits(0, pad); err != nil {
			return nil, err
		}
	}

	capBytes := DataCodewords(v, l)
	for i, alt := len(b.Bytes()), byte(0xEC); i < capBytes; i, alt = i+1, alt^0xEC^0x11 {
		b.AppendBytes([]byte{alt})
	}
	return b.Bytes(), nil
}
