// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Matrix is a finished, square QR code module grid.  Dark is true.
// Matrix is read-only to consumers.
type Matrix struct {
	size int
	dark []bool // size*size, row-major
}

// Size returns the number of modules on a side.
func (m *Matrix) Size() int { return m.size }

// Module reports whether the module at (x,y) is dark.  x and y are
// column and row indices in [0, Size()).
func (m *Matrix) Module(x, y int) bool { return m.dark[y*m.size+x] }

// buildState is the mutable scratch space used while constructing a
// symbol: the dark grid and a parallel function-module grid, as
// described by the "function_mask" of the data model.  function is
// released (by dropping buildState) once masking completes.
type buildState struct {
	size     int
	dark     []bool
	function []bool
}

func newBuildState(v Version) *buildState {
	size := v.Size()
	return &buildState{
		size:     size,
		dark:     make([]bool, size*size),
		function: make([]bool, size*size),
	}
}

func (s *buildState) at(x, y int) bool { return s.dark[y*s.size+x] }

func (s *buildState) inBounds(x, y int) bool {
	return 0 <= x && x < s.size && 0 <= y && y < s.size
}

// setFunction marks (x,y) as a function module with the given value.
func (s *buildState) setFunction(x, y int, dark bool) {
	i := y*s.size + x
	s.dark[i] = dark
	s.function[i] = true
}

// setData writes a data/checksum bit to a non-function module.  It is
// a no-op on function modules, preserving the invariant that function
// modules are written only by drawFunctionPatterns and the later
// format/version rewrite.
func (s *buildState) setData(x, y int, dark bool) {
	i := y*s.size + x
	if !s.function[i] {
		s.dark[i] = dark
	}
}

func (s *buildState) isFunction(x, y int) bool { return s.function[y*s.size+x] }

// drawFunctionPatterns lays out every reserved pattern of the symbol:
// timing, finders, alignment, a placeholder format-info block (mask
// 0), the version block (v>=7) and the single dark module.
func (s *buildState) drawFunctionPatterns(v Version) {
	size := s.size
	for i := 0; i < size; i++ {
		s.setFunction(6, i, i%2 == 0)
		s.setFunction(i, 6, i%2 == 0)
	}

	s.drawFinderPattern(3, 3)
	s.drawFinderPattern(size-4, 3)
	s.drawFinderPattern(3, size-4)

	pos := AlignmentPositions(v)
	for i, x := range pos {
		for j, y := range pos {
			// Skip the three positions that coincide with finders.
			if (i == 0 && j == 0) || (i == 0 && j == len(pos)-1) ||
				(i == len(pos)-1 && j == 0) {
				continue
			}
			s.drawAlignmentPattern(x, y)
		}
	}

	s.drawFormatBits(L, 0)
	s.drawVersion(v)

	s.setFunction(8, size-8, true) // the single dark module
}

func (s *buildState) drawFinderPattern(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if !s.inBounds(xx, yy) {
				continue
			}
			dist := abs(dx)
			if d := abs(dy); d > dist {
				dist = d
			}
			s.setFunction(xx, yy, dist != 2 && dist != 4)
		}
	}
}

func (s *buildState) drawAlignmentPattern(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			d := abs(dx)
			if ady := abs(dy); ady > d {
				d = ady
			}
			s.setFunction(x+dx, y+dy, d != 1)
		}
	}
}

// drawFormatBits computes and writes the 15 bit format information
// (error correction level + mask pattern, BCH protected, then XORed
// with the fixed mask 0x5412) at both reserved locations.
func (s *buildState) drawFormatBits(l Level, mask int) {
	data := uint32(formatLevelBits[l])<<3 | uint32(mask)
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ (rem>>9)*0x537
	}
	bits := (data<<10 | rem) ^ 0x5412

	for i := 0; i <= 5; i++ {
		s.setFunction(8, i, bit32(bits, i))
	}
	s.setFunction(8, 7, bit32(bits, 6))
	s.setFunction(8, 8, bit32(bits, 7))
	s.setFunction(7, 8, bit32(bits, 8))
	for i := 9; i < 15; i++ {
		s.setFunction(14-i, 8, bit32(bits, i))
	}

	size := s.size
	for i := 0; i < 8; i++ {
		s.setFunction(size-1-i, 8, bit32(bits, i))
	}
	for i := 8; i < 15; i++ {
		s.setFunction(8, size-15+i, bit32(bits, i))
	}
	s.setFunction(8, size-8, true)
}

// formatLevelBits maps a Level to its 2 bit format-indicator value:
// L=01, M=00, Q=11, H=10, a fixed non-monotone mapping defined by the
// standard and independent of Level's iota order.
var formatLevelBits = [4]uint32{L: 0b01, M: 0b00, Q: 0b11, H: 0b10}

// drawVersion writes the 18 bit version information block (v>=7
// only), BCH protected by the degree-12 polynomial 0x1F25.
func (s *buildState) drawVersion(v Version) {
	if v < 7 {
		return
	}
	rem := uint32(v)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ (rem>>11)*0x1F25
	}
	bits := uint32(v)<<12 | rem

	for i := 0; i < 18; i++ {
		b := bit32(bits, i)
		a := s.size - 11 + i%3
		bb := i / 3
		s.setFunction(a, bb, b)
		s.setFunction(bb, a, b)
	}
}

func bit32(n uint32, i int) bool { return n>>uint(i)&1 != 0 }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// drawCodewords places the interleaved codeword stream onto the
// symbol's non-function modules in the zig-zag scan defined by
// ISO/IEC 18004 7.7.3.
func (s *buildState) drawCodewords(data []byte) {
	i := 0
	total := len(data) * 8
	for right := s.size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		upward := (right+1)&2 == 0
		for vert := 0; vert < s.size; vert++ {
			for j := 0; j < 2; j++ {
				x := right - j
				y := vert
				if upward {
					y = s.size - 1 - vert
				}
				if s.isFunction(x, y) {
					continue
				}
				var bit bool
				if i < total {
					bit = Bit(data, i) != 0
				}
				s.setData(x, y, bit)
				i++
			}
		}
	}
}
