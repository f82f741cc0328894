// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consensus

import (
	"math"
	"math/big"
)

// v2HardCodedLimit is the hard-coded minimum-difficulty compact target
// the gravity-well algorithm returns before enough history exists to
// retarget, and the ceiling every V2 result is clamped to. It is
// 504365055 (0x1e0fffff) regardless of the network's own PowLimit,
// matching the original KimotoGravityWell implementation.
const v2HardCodedLimit uint32 = 0x1e0fffff

// retargetV2 is the "gravity well" moving-average retarget (Kimoto
// Gravity Well): a weighted average of up to past_blocks_max ancestor
// targets, damped by an "event horizon" deviation bound that widens as
// the averaging window grows. spec.md §4.3.3 requires the ratio
// comparisons to run in float64 exactly as the original did; only the
// final multiply/divide is integer. h is tip.Height()+1.
func (r *Retargeter) retargetV2(tip BlockNode, h int64) uint32 {
	p := r.params
	const targetTimespan = 3600.0

	pastSecondsMin := 0.025 * targetTimespan
	if h >= int64(p.HardForkTwoAHeight) {
		pastSecondsMin = 0.15 * targetTimespan
	}
	pastSecondsMax := 7 * targetTimespan
	spacing := p.TargetTimePerBlock.Seconds()
	pastBlocksMin := pastSecondsMin / spacing
	pastBlocksMax := pastSecondsMax / spacing

	if tip == nil || tip.Height() == 0 || float64(tip.Height()) < pastBlocksMin {
		return v2HardCodedLimit
	}

	var pastDifficultyAverage, pastDifficultyAveragePrev big.Int
	latestTime := float64(tip.Time())

	var actual, targetSecs float64
	reading := tip
	for i := 1; ; i++ {
		if float64(i) > pastBlocksMax || reading.Height() == 0 {
			break
		}

		readingTarget := CompactToBig(reading.Bits())
		if i == 1 {
			pastDifficultyAverage.Set(readingTarget)
		} else {
			diff := new(big.Int).Sub(readingTarget, &pastDifficultyAveragePrev)
			diff.Quo(diff, big.NewInt(int64(i)))
			diff.Add(diff, &pastDifficultyAveragePrev)
			pastDifficultyAverage.Set(diff)
		}
		pastDifficultyAveragePrev.Set(&pastDifficultyAverage)

		if float64(reading.Time()) > latestTime {
			latestTime = float64(reading.Time())
		}

		actual = latestTime - float64(reading.Time())
		if actual < 1 {
			actual = 5
		}

		targetSecs = spacing * float64(i)
		ratio := targetSecs / actual

		var eventHorizonDeflator float64
		if h >= int64(p.HardForkTwoAHeight) {
			eventHorizonDeflator = float64(i) / 144
		} else {
			eventHorizonDeflator = float64(i) / 28.2
		}
		eventHorizon := 1 + 0.7084*math.Pow(eventHorizonDeflator, -1.228)

		if float64(i) >= pastBlocksMin && (ratio <= 1/eventHorizon || ratio >= eventHorizon) {
			break
		}

		if reading.Parent() == nil {
			break
		}
		reading = reading.Parent()
	}

	newTarget := new(big.Int).Mul(&pastDifficultyAverage, big.NewInt(int64(actual)))
	newTarget.Div(newTarget, big.NewInt(int64(targetSecs)))

	newTarget = clampToLimit(newTarget, CompactToBig(v2HardCodedLimit))
	return BigToCompact(newTarget)
}
