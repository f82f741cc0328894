// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package consensus implements the difficulty retargeting state
// machine and CompactTarget arithmetic that decide, for a given chain
// tip, what the next block's required difficulty is, and whether a
// claimed block hash satisfies it. It is pure and holds no mutable
// state of its own: everything it needs comes from the immutable
// *chaincfg.Params it is built with and the BlockNode chain it is
// asked to walk.
package consensus

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/ufo-project/ufod/chaincfg"
)

// Retargeter computes the required difficulty for the block following
// a given tip, dispatching among three historical algorithms by
// height, and checks whether a hash satisfies a claimed target. It
// depends only on immutable chain parameters and the chain it is
// asked to walk, so a single Retargeter is safe for concurrent use by
// any number of callers validating distinct tips.
type Retargeter struct {
	params *chaincfg.Params
}

// NewRetargeter builds a Retargeter bound to params. params is never
// copied and must not be mutated afterward.
func NewRetargeter(params *chaincfg.Params) *Retargeter {
	return &Retargeter{params: params}
}

// NextRequiredBits returns the compact target the block following tip
// must claim. candidate supplies the new block's timestamp, needed
// only by the V1 algorithm's min-difficulty escape hatch. The result
// always decodes to a target no greater than params.PowLimit.
//
// Dispatch follows spec.md §4.3.1 exactly: a one-block difficulty
// reset at HardForkThreeHeight, a ten-block V1 warm-up immediately
// after it, V2 from HardForkTwoHeight through the reset and again
// after the warm-up until HardForkFourHeight, and V3 from
// HardForkFourHeight on. Before HardForkTwoHeight the chain never left
// V1.
func (r *Retargeter) NextRequiredBits(tip BlockNode, candidate HeaderView) uint32 {
	p := r.params
	h := tip.Height() + 1

	switch {
	case h == p.HardForkThreeHeight:
		log.Infof("difficulty reset to pow limit at height %d", h)
		return BigToCompact(p.PowLimit)
	case h > p.HardForkThreeHeight && h <= p.HardForkThreeHeight+10:
		return r.retargetV1(tip, candidate)
	case h > p.HardForkThreeHeight && h < p.HardForkFourHeight:
		return r.retargetV2(tip, int64(h))
	case h >= p.HardForkFourHeight:
		return r.retargetV3(tip, int64(h))
	case tip.Height() >= p.HardForkTwoHeight:
		return r.retargetV2(tip, int64(h))
	default:
		return r.retargetV1(tip, candidate)
	}
}

// CheckProofOfWork reports whether hash satisfies the target encoded
// by bits. It rejects negative, zero, overflowing or
// above-PowLimit targets before ever comparing the hash, matching
// spec.md §4.3.5 and the original CheckProofOfWork in pow.cpp.
func (r *Retargeter) CheckProofOfWork(hash chainhash.Hash, bits uint32) bool {
	target, negative, overflow := decodeCompact(bits)
	if negative || target.Sign() == 0 || overflow || target.Cmp(r.params.PowLimit) > 0 {
		return false
	}

	hashNum := HashToBig(&hash)
	ok := hashNum.Cmp(target) <= 0
	if !ok {
		log.Debugf("hash %s does not satisfy target encoded by 0x%08x", hash, bits)
	}
	return ok
}

// BlockProof is spec.md §4.1's block_proof / btcsuite's CalcWork: the
// amount of cumulative chain work a block with the given compact bits
// represents.
func (r *Retargeter) BlockProof(bits uint32) *big.Int {
	return CalcWork(bits)
}
