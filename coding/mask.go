// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// maskFuncs is the fixed array of the eight QR mask predicates: cell
// (x,y) is inverted iff the predicate holds and the cell isn't a
// function module.  Dynamic dispatch is unneeded; QR defines exactly
// eight masks.
var maskFuncs = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (x/3+y/2)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

// applyMask XORs mask m over every non-function module.  Application
// is self-inverse: calling applyMask twice with the same m restores
// the original matrix.
func (s *buildState) applyMask(m int) {
	f := maskFuncs[m]
	for y := 0; y < s.size; y++ {
		for x := 0; x < s.size; x++ {
			if !s.isFunction(x, y) && f(x, y) {
				i := y*s.size + x
				s.dark[i] = !s.dark[i]
			}
		}
	}
}

const (
	penaltyN1 = 3
	penaltyN2 = 3
	penaltyN3 = 40
	penaltyN4 = 10
)

// penalty computes the four-term penalty score of the current grid,
// per ISO/IEC 18004 Annex C: lower is better.
func (s *buildState) penalty() int {
	result := 0
	size := s.size

	for y := 0; y < size; y++ {
		result += s.lineRunPenalty(func(x int) bool { return s.at(x, y) }, size)
	}
	for x := 0; x < size; x++ {
		result += s.lineRunPenalty(func(y int) bool { return s.at(x, y) }, size)
	}

	for y := 0; y < size-1; y++ {
		for x := 0; x < size-1; x++ {
			c := s.at(x, y)
			if c == s.at(x+1, y) && c == s.at(x, y+1) && c == s.at(x+1, y+1) {
				result += penaltyN2
			}
		}
	}

	dark := 0
	for _, v := range s.dark {
		if v {
			dark++
		}
	}
	total := size * size
	k := (abs(dark*20-total*10)+total-1)/total - 1
	result += k * penaltyN4

	return result
}

// lineRunPenalty computes the N1 (run length) and N3 (finder-like
// pattern) penalty contributions of one row or column, accessed via
// get(i) for i in [0,n).
func (s *buildState) lineRunPenalty(get func(int) bool, n int) int {
	result := 0
	runColor := false
	runLen := 0
	first := true
	var history [7]int
	for i := 0; i < n; i++ {
		if get(i) == runColor {
			runLen++
			if runLen == 5 {
				result += penaltyN1
			} else if runLen > 5 {
				result++
			}
		} else {
			finderPenaltyAddHistory(runLen, &history, first, n)
			first = false
			if !runColor {
				result += finderPenaltyCountPatterns(&history) * penaltyN3
			}
			runColor = get(i)
			runLen = 1
		}
	}
	result += finderPenaltyTerminateAndCount(runColor, runLen, &history, first, n) * penaltyN3
	return result
}

// finderPenaltyAddHistory shifts currentRunLength into the run-length
// history, accounting for the light border of the very first run
// (first is true only for the first run added in a given line scan).
func finderPenaltyAddHistory(currentRunLength int, history *[7]int, first bool, lineSize int) {
	if first {
		currentRunLength += lineSize
	}
	copy(history[1:], history[:6])
	history[0] = currentRunLength
}

// finderPenaltyCountPatterns tests the shifted history for the
// finder-like 1:1:3:1:1 pattern with a >=4 module light margin on
// either side, counting a qualifying occurrence once per side (so at
// most twice).
func finderPenaltyCountPatterns(history *[7]int) int {
	n := history[1]
	core := n > 0 && history[2] == n && history[3] == 3*n &&
		history[4] == n && history[5] == n
	count := 0
	if core && history[0] >= n*4 && history[6] >= n {
		count++
	}
	if core && history[6] >= n*4 && history[0] >= n {
		count++
	}
	return count
}

func finderPenaltyTerminateAndCount(runColor bool, runLen int, history *[7]int, first bool, lineSize int) int {
	if runColor {
		finderPenaltyAddHistory(runLen, history, first, lineSize)
		first = false
		runLen = 0
	}
	runLen += lineSize
	finderPenaltyAddHistory(runLen, history, first, lineSize)
	return finderPenaltyCountPatterns(history)
}

// chooseMask tries every mask (or just the caller's choice), returns
// the selected mask id and leaves the grid masked with it.  Ties are
// broken by the lowest id.
func (s *buildState) chooseMask(l Level, mask int) int {
	if mask >= 0 {
		s.applyMask(mask)
		s.drawFormatBits(l, mask)
		return mask
	}
	best, bestPenalty := 0, -1
	for m := 0; m < 8; m++ {
		s.drawFormatBits(l, m)
		s.applyMask(m)
		p := s.penalty()
		if bestPenalty < 0 || p < bestPenalty {
			best, bestPenalty = m, p
		}
		s.applyMask(m) // undo
	}
	s.applyMask(best)
	s.drawFormatBits(l, best)
	return best
}
