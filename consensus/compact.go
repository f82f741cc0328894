// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consensus

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var (
	// bigOne is 1 represented as a big.Int. Defined here to avoid the
	// overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// oneLsh256 is 1 shifted left 256 bits. Defined here to avoid the
	// overhead of creating it multiple times.
	oneLsh256 = new(big.Int).Lsh(bigOne, 256)
)

// HashToBig converts a chainhash.Hash into a big.Int so it can be
// compared against a decoded target. A Hash is stored in
// little-endian; the big package wants big-endian, so the bytes are
// reversed first.
func HashToBig(hash *chainhash.Hash) *big.Int {
	buf := *hash
	blen := len(buf)
	for i := 0; i < blen/2; i++ {
		buf[i], buf[blen-1-i] = buf[blen-1-i], buf[i]
	}
	return new(big.Int).SetBytes(buf[:])
}

// CompactToBig converts a compact representation of a whole number N
// to a big.Int. The representation mirrors IEEE754 floating point:
// the most significant 8 bits are the base-256 exponent, bit 23 is
// the sign, and the low 23 bits are the mantissa. N = (-1^sign) *
// mantissa * 256^(exponent-3).
//
// This is the Bitcoin nBits compact target encoding spec.md §3/§4.1
// calls CompactTarget; there really is no need for a sign bit on a
// target, but the encoding keeps one for wire compatibility.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}
	return bn
}

// BigToCompact converts a whole number N to its compact
// representation. The compact form only carries 23 bits of precision,
// so values beyond 2^23-1 only encode the most significant digits.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	// When the mantissa already has the sign bit set, the number is
	// too large to fit into the available 23 bits, so divide by 256
	// and bump the exponent.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}
	return compact
}

// decodeCompact is CompactToBig plus the negative/overflow detection
// CheckProofOfWork and the retarget algorithms both need: negative is
// set from the sign bit, overflow is set when a non-zero mantissa
// shifted by the exponent would exceed 256 bits.
func decodeCompact(compact uint32) (target *big.Int, negative, overflow bool) {
	mantissa := compact & 0x007fffff
	size := compact >> 24
	negative = mantissa != 0 && compact&0x00800000 != 0
	overflow = mantissa != 0 && (size > 34 ||
		(mantissa > 0xff && size > 33) ||
		(mantissa > 0xffff && size > 32))
	return CompactToBig(compact), negative, overflow
}

// CalcWork converts a compact target into the amount of proof of work
// a block with that target represents: floor(2^256 / (target + 1)).
// This is spec.md §4.1's block_proof. A target of zero or negative
// yields zero work, matching btcsuite's CalcWork.
func CalcWork(bits uint32) *big.Int {
	target := CompactToBig(bits)
	if target.Sign() <= 0 {
		return big.NewInt(0)
	}

	denominator := new(big.Int).Add(target, bigOne)
	return new(big.Int).Div(oneLsh256, denominator)
}

// clampToLimit returns limit if target exceeds it, else target
// unchanged.
func clampToLimit(target, limit *big.Int) *big.Int {
	if target.Cmp(limit) > 0 {
		return new(big.Int).Set(limit)
	}
	return target
}
