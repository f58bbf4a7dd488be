// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package gf256 implements GF(2^8) arithmetic and Reed-Solomon error
correction coding over that field, as used by QR code symbols
(ISO/IEC 18004 Annex A).
*/
package gf256

import "fmt"

// A Field is GF(2^8) reduced by a degree-8 polynomial, with a chosen
// generator element used to build Reed-Solomon generator polynomials.
//
// QR codes use Field{Poly: 0x11d, Generator: 0x02}: the field for
// x^8 + x^4 + x^3 + x^2 + 1, generated by α = 2.
type Field struct {
	Poly      uint32
	Generator byte
}

// NewField returns a Field for the given reducing polynomial (with
// the implicit degree-8 leading term) and generator element.
func NewField(poly uint32, generator byte) *Field {
	return &Field{Poly: poly, Generator: generator}
}

// Mul returns x*y in f, computed by Russian peasant multiplication:
// for each of the 8 bits of y from the top down, the accumulator is
// doubled (XORing in f.Poly whenever that doubling would overflow
// the field), then x is added in wherever the corresponding bit of y
// is set.
func (f *Field) Mul(x, y byte) byte {
	var z uint32
	for i := 7; i >= 0; i-- {
		z = (z << 1) ^ ((z >> 7) & 1 * f.Poly)
		z ^= uint32(y>>uint(i)&1) * uint32(x)
	}
	return byte(z)
}

// Pow returns f.Generator^n in f.
func (f *Field) Pow(n int) byte {
	r := byte(1)
	for i := 0; i < n; i++ {
		r = f.Mul(r, f.Generator)
	}
	return r
}

// Divisor returns the coefficients of the monic Reed-Solomon generator
// polynomial of the given degree,
//
//	(x - g^0)(x - g^1)...(x - g^degree-1),
//
// high to low, excluding the leading (always 1) coefficient, so the
// returned slice has length degree.  Divisor panics if degree is out
// of [1, 255].
func (f *Field) Divisor(degree int) []byte {
	if degree < 1 || degree > 255 {
		panic("gf256: degree out of range")
	}
	result := make([]byte, degree)
	result[len(result)-1] = 1 // start with the monomial x^0
	root := byte(1)
	for i := 0; i < degree; i++ {
		for j := range result {
			result[j] = f.Mul(result[j], root)
			if j+1 < len(result) {
				result[j] ^= result[j+1]
			}
		}
		root = f.Mul(root, f.Generator)
	}
	return result
}

// RSEncoder computes Reed-Solomon error correction codewords for a
// fixed divisor degree.
type RSEncoder struct {
	field   *Field
	divisor []byte
}

// NewRSEncoder returns an RSEncoder producing degree error correction
// codewords per block, computed in field f.
func NewRSEncoder(f *Field, degree int) *RSEncoder {
	return &RSEncoder{field: f, divisor: f.Divisor(degree)}
}

// Degree returns the number of ECC codewords e produces per block.
func (e *RSEncoder) Degree() int { return len(e.divisor) }

// ECC computes the Reed-Solomon remainder of data divided by e's
// generator polynomial and writes it to dst, which must have length
// e.Degree().  The returned codewords are the error correction
// codewords to append to data.
func (e *RSEncoder) ECC(data []byte, dst []byte) {
	if len(dst) != len(e.divisor) {
		panic(fmt.Sprintf("gf256: dst has length %d, want %d", len(dst), len(e.divisor)))
	}
	for i := range dst {
		dst[i] = 0
	}
	for _, b := range data {
		factor := b ^ dst[0]
		copy(dst, dst[1:])
		dst[len(dst)-1] = 0
		for i, d := range e.divisor {
			dst[i] ^= e.field.Mul(d, factor)
		}
	}
}
