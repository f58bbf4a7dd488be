// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR code coding details: bit
// packing, segment encoding, Reed-Solomon error correction, module
// placement and masking.
package coding // import "github.com/YamanSD/QR-IO/coding"

import (
	"errors"
	"fmt"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
)

// A Version represents a QR code version (symbol size class), an
// integer in [1, 40].
type Version int

const (
	MinVersion Version = 1  // smallest QR version
	MaxVersion Version = 40 // largest QR version
)

// Size returns the module side length of a symbol with version v:
// S = 4v+17.
func (v Version) Size() int { return int(v)*4 + 17 }

// Bucket is the version range bucket used to index count-indicator
// widths and the Annex J mode-switch thresholds: 0 for v<=9, 1 for
// 10<=v<=26, 2 for v>=27.
func (v Version) Bucket() int {
	switch {
	case v <= 9:
		return 0
	case v <= 26:
		return 1
	default:
		return 2
	}
}

func (v Version) valid() bool { return MinVersion <= v && v <= MaxVersion }

// A Level represents a QR error correction level.  From least to
// most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota
	M
	Q
	H
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) valid() bool { return L <= l && l <= H }

// eccPerBlock[level][version] is the number of error correction
// codewords per block.  eccPerBlock[level][0] is unused.
//
// Reproduced verbatim from ISO/IEC 18004 Table 9 (equivalently,
// original_source/QrCode.cpp's getEccsPerBlock table).
var eccPerBlock = [4][41]int{
	L: {-1, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18, 20, 24, 26, 30, 22,
		24, 28, 30, 28, 28, 28, 28, 30, 30, 26, 28, 30, 30, 30, 30, 30,
		30, 30, 30, 30, 30, 30, 30, 30, 30},
	M: {-1, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26, 30, 22, 22, 24, 24,
		28, 28, 26, 26, 26, 26, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28,
		28, 28, 28, 28, 28, 28, 28, 28, 28},
	Q: {-1, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24, 28, 26, 24, 20, 30,
		24, 28, 28, 26, 30, 28, 30, 30, 30, 30, 28, 30, 30, 30, 30, 30,
		30, 30, 30, 30, 30, 30, 30, 30, 30},
	H: {-1, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28, 24, 28, 22, 24, 24,
		30, 28, 28, 26, 28, 30, 24, 30, 30, 30, 30, 30, 30, 30, 30, 30,
		30, 30, 30, 30, 30, 30, 30, 30, 30},
}

// numBlocks[level][version] is the number of interleaved blocks.
//
// Reproduced verbatim from ISO/IEC 18004 Table 9 (equivalently,
// original_source/QrCode.cpp's getErrCorrectionPerBlock table, a
// misleading name for the block count).
var numBlocks = [4][41]int{
	L: {-1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 7,
		8, 8, 9, 9, 10, 12, 12, 12, 13, 14, 15, 16, 17, 18, 19, 19,
		20, 21, 22, 24, 25},
	M: {-1, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5, 5, 8, 9, 9, 10, 10, 11,
		13, 14, 16, 17, 17, 18, 20, 21, 23, 25, 26, 28, 29, 31, 33,
		35, 37, 38, 40, 43, 45, 47, 49},
	Q: {-1, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8, 8, 10, 12, 16, 12, 17, 16,
		18, 21, 20, 23, 23, 25, 27, 29, 34, 34, 35, 38, 40, 43, 45,
		48, 51, 53, 56, 59, 62, 65, 68},
	H: {-1, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8, 11, 11, 16, 16, 18, 16,
		19, 21, 25, 25, 25, 34, 30, 32, 35, 37, 40, 42, 45, 48, 51,
		54, 57, 60, 63, 66, 70, 74, 77, 81},
}

// RawDataModules returns the number of data-carrying bit positions
// (the "raw data modules") available in a symbol of version v,
// before subtracting error correction: R(v).
func RawDataModules(v Version) int {
	r := (16*int(v)+128)*int(v) + 64
	if v >= 2 {
		n := int(v)/7 + 2
		r -= (25*n-10)*n - 55
		if v >= 7 {
			r -= 36
		}
	}
	return r
}

// NumBlocks returns the number of interleaved error-correction
// blocks for version v at level l.
func NumBlocks(v Version, l Level) int { return numBlocks[l][v] }

// EccPerBlock returns the number of error correction codewords per
// block for version v at level l.
func EccPerBlock(v Version, l Level) int { return eccPerBlock[l][v] }

// DataCodewords returns D(v,l): the number of data codewords (bytes)
// available for version v at level l, after reserving space for
// error correction codewords.
func DataCodewords(v Version, l Level) int {
	return RawDataModules(v)/8 - NumBlocks(v, l)*EccPerBlock(v, l)
}

// DataBits returns 8*DataCodewords(v, l).
func DataBits(v Version, l Level) int { return DataCodewords(v, l) * 8 }

// AlignmentPositions returns the row/column coordinates at which
// alignment pattern centres are drawn for version v, per ISO/IEC
// 18004 6.3.6.  It returns nil for version 1, which has no
// alignment patterns.
func AlignmentPositions(v Version) []int {
	if v == 1 {
		return nil
	}
	n := int(v)/7 + 2
	var step int
	if v == 32 {
		step = 26
	} else {
		step = (int(v)*4 + n*2 + 1) / (n*2 - 2) * 2
	}
	size := v.Size()
	result := make([]int, n)
	result[0] = 6
	pos := size - 7
	for i := n - 1; i >= 1; i-- {
		result[i] = pos
		pos -= step
	}
	return result
}

func checkVersion(v Version) error {
	if !v.valid() {
		return ErrVersion
	}
	return nil
}

func checkLevel(l Level) error {
	if !l.valid() {
		return ErrLevel
	}
	return nil
}
