// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consensus

import "math/big"

// retargetV1 is the legacy retarget algorithm the chain ran from
// genesis until HardForkTwoHeight, and again for the ten-block warm-up
// following the HardForkThreeHeight reset. It is a direct port of
// GetNextWorkRequired in the original pow.cpp, preserving its
// before/after-HardForkOneHeight parameter switch and its strict
// tip.Height() > params.CoinFixHeight boundary (spec.md §9: preserve the
// strict ">", not ">=").
func (r *Retargeter) retargetV1(tip BlockNode, candidate HeaderView) uint32 {
	p := r.params
	height := int64(tip.Height()) + 1
	tipHeight := int64(tip.Height())
	coinFixHeight := int64(p.CoinFixHeight)

	targetTimespan := int64(p.TargetTimespan.Seconds())
	retargetHistoryFactor := int64(4)

	if height >= int64(p.HardForkOneHeight) {
		targetTimespan = 3600
		retargetHistoryFactor = 2
	}
	spacing := int64(p.TargetTimePerBlock.Seconds())
	interval := targetTimespan / spacing
	powLimitBits := BigToCompact(p.PowLimit)

	// Only change once per difficulty adjustment interval.
	if height%interval != 0 {
		if p.AllowMinDifficultyBlocks {
			if int64(candidate.Time()) > int64(tip.Time())+spacing*2 {
				return powLimitBits
			}
			node := tip
			for node.Parent() != nil && int64(node.Height())%interval != 0 && node.Bits() == powLimitBits {
				node = node.Parent()
			}
			return node.Bits()
		}
		return tip.Bits()
	}

	// This fixes an issue where a 51% attack can change difficulty at
	// will: go back the full period unless it's the first retarget
	// after genesis.
	blocksToGoBack := interval - 1
	if height != interval {
		blocksToGoBack = interval
	}
	if tipHeight > coinFixHeight {
		blocksToGoBack = retargetHistoryFactor * interval
	}

	first := ancestor(tip, int(blocksToGoBack))

	if p.NoRetargeting {
		return tip.Bits()
	}

	var actualTimespan int64
	if tipHeight > coinFixHeight {
		actualTimespan = (int64(tip.Time()) - int64(first.Time())) / retargetHistoryFactor
	} else {
		actualTimespan = int64(tip.Time()) - int64(first.Time())
	}

	if actualTimespan < targetTimespan/4 {
		actualTimespan = targetTimespan / 4
	}
	if actualTimespan > targetTimespan*4 {
		actualTimespan = targetTimespan * 4
	}

	bn := CompactToBig(tip.Bits())
	powLimit := p.PowLimit

	// The shift dance avoids 256-bit overflow when multiplying a
	// near-limit target by actualTimespan.
	fShift := bn.BitLen() > powLimit.BitLen()-1
	if fShift {
		bn.Rsh(bn, 1)
	}
	bn.Mul(bn, big.NewInt(actualTimespan))
	bn.Div(bn, big.NewInt(targetTimespan))
	if fShift {
		bn.Lsh(bn, 1)
	}

	bn = clampToLimit(bn, powLimit)
	return BigToCompact(bn)
}
