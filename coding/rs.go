// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "github.com/YamanSD/QR-IO/gf256"

// Field is the Galois field GF(2^8) used for QR error correction,
// reduced by x^8+x^4+x^3+x^2+1 (0x11d) and generated by 2.
var Field = gf256.NewField(0x11d, 2)

// addECCAndInterleave splits data (of length DataCodewords(v,l)) into
// NumBlocks(v,l) blocks, computes EccPerBlock(v,l) Reed-Solomon
// codewords per block, and returns the final codeword stream:
// interleaved data bytes followed by interleaved ECC bytes, exactly
// as placed on the matrix by drawCodewords.
func addECCAndInterleave(data []byte, v Version, l Level) []byte {
	numBlocks := NumBlocks(v, l)
	eccLen := EccPerBlock(v, l)
	totalData := len(data)
	shortBlockLen := totalData / numBlocks
	numLongBlocks := totalData % numBlocks

	rs := gf256.NewRSEncoder(Field, eccLen)

	blocks := make([][]byte, numBlocks)
	eccBlocks := make([][]byte, numBlocks)
	pos := 0
	for i := 0; i < numBlocks; i++ {
		blen := shortBlockLen
		if i >= numBlocks-numLongBlocks {
			blen++
		}
		block := data[pos : pos+blen]
		pos += blen

		ecc := make([]byte, eccLen)
		rs.ECC(block, ecc)

		blocks[i] = block
		eccBlocks[i] = ecc
	}

	longBlockLen := shortBlockLen + 1
	result := make([]byte, 0, totalData+numBlocks*eccLen)

	for i := 0; i < longBlockLen; i++ {
		for _, b := range blocks {
			if i < len(b) {
				result = append(result, b[i])
			}
		}
	}
	for i := 0; i < eccLen; i++ {
		for _, b := range eccBlocks {
			result = append(result, b[i])
		}
	}
	return result
}
