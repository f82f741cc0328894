// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consensus

import (
	"math/big"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"

	"github.com/ufo-project/ufod/chaincfg"
)

// fakeNode is a minimal in-memory BlockNode used to drive the
// retargeter without a real chain index.
type fakeNode struct {
	height int32
	time   uint32
	bits   uint32
	parent *fakeNode
}

func (n *fakeNode) Height() int32 { return n.height }
func (n *fakeNode) Time() uint32  { return n.time }
func (n *fakeNode) Bits() uint32  { return n.bits }
func (n *fakeNode) Parent() BlockNode {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

type fakeHeader uint32

func (h fakeHeader) Time() uint32 { return uint32(h) }

// buildChain returns the tip of a count-block chain (heights 0..count-1),
// each block spacing seconds after its parent, all claiming bits.
func buildChain(count int, spacing uint32, bits uint32) *fakeNode {
	var parent *fakeNode
	var node *fakeNode
	for h := 0; h < count; h++ {
		node = &fakeNode{
			height: int32(h),
			time:   uint32(h) * spacing,
			bits:   bits,
			parent: parent,
		}
		parent = node
	}
	return node
}

func testParams() *chaincfg.Params {
	limit := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 224), big.NewInt(1))
	return &chaincfg.Params{
		PowLimit:                 limit,
		TargetTimespan:           86400 * time.Second,
		TargetTimePerBlock:       90 * time.Second,
		CoinFixHeight:            15000,
		HardForkOneHeight:        33479,
		HardForkTwoHeight:        160997,
		HardForkTwoAHeight:       171900,
		HardForkThreeHeight:      266000,
		HardForkFourHeight:       1182000,
		HardForkFourAHeight:      1220000,
		AllowMinDifficultyBlocks: false,
		NoRetargeting:            false,
	}
}

func TestCheckProofOfWorkAcceptsHashBelowTarget(t *testing.T) {
	r := NewRetargeter(testParams())
	bits := uint32(0x1d00ffff)

	var low chainhash.Hash
	low[len(low)-1] = 0x01
	require.True(t, r.CheckProofOfWork(low, bits))
}

func TestCheckProofOfWorkRejectsHashAboveTarget(t *testing.T) {
	r := NewRetargeter(testParams())
	bits := uint32(0x03000001)

	var high chainhash.Hash
	for i := range high {
		high[i] = 0xff
	}
	require.False(t, r.CheckProofOfWork(high, bits))
}

func TestCheckProofOfWorkRejectsNegativeBits(t *testing.T) {
	r := NewRetargeter(testParams())
	var hash chainhash.Hash
	require.False(t, r.CheckProofOfWork(hash, 0x01800001))
}

func TestCheckProofOfWorkRejectsTargetAbovePowLimit(t *testing.T) {
	r := NewRetargeter(testParams())
	var hash chainhash.Hash
	// 0x2100ffff decodes to a target far above the 224-bit pow limit.
	require.False(t, r.CheckProofOfWork(hash, 0x2100ffff))
}

func TestRetargetV1NonRetargetBlockKeepsTipBits(t *testing.T) {
	p := testParams()
	r := NewRetargeter(p)

	spacing := uint32(p.TargetTimePerBlock.Seconds())
	interval := int(p.TargetTimespan.Seconds()) / int(spacing)

	tip := buildChain(interval/2, spacing, 0x1d00eeee)
	candidate := fakeHeader(tip.Time() + spacing)

	bits := r.NextRequiredBits(tip, candidate)
	require.Equal(t, tip.Bits(), bits)
}

func TestRetargetV1MinDifficultyEscapeHatch(t *testing.T) {
	p := testParams()
	p.AllowMinDifficultyBlocks = true
	r := NewRetargeter(p)

	spacing := uint32(p.TargetTimePerBlock.Seconds())
	interval := int(p.TargetTimespan.Seconds()) / int(spacing)

	tip := buildChain(interval/2, spacing, 0x1d00eeee)
	candidate := fakeHeader(tip.Time() + spacing*3)

	bits := r.NextRequiredBits(tip, candidate)
	require.Equal(t, BigToCompact(p.PowLimit), bits)
}

func TestRetargetV2InsufficientHistoryReturnsHardCodedLimit(t *testing.T) {
	p := testParams()
	r := NewRetargeter(p)

	tip := buildChain(1, uint32(p.TargetTimePerBlock.Seconds()), 0x1d00ffff)
	require.Equal(t, v2HardCodedLimit, r.retargetV2(tip, int64(tip.Height())+1))
}

func TestRetargetV3BeforeLongSampleReturnsPowLimit(t *testing.T) {
	p := testParams()
	r := NewRetargeter(p)

	tip := buildChain(5, uint32(p.TargetTimePerBlock.Seconds()), 0x1d00ffff)
	got := r.retargetV3(tip, int64(tip.Height())+1)
	require.Equal(t, BigToCompact(p.PowLimit), got)
}

func TestNextRequiredBitsResetsAtHardForkThree(t *testing.T) {
	p := testParams()
	p.HardForkThreeHeight = 10
	r := NewRetargeter(p)

	tip := &fakeNode{height: 9, time: 900, bits: 0x1c00ffff}
	bits := r.NextRequiredBits(tip, fakeHeader(1000))
	require.Equal(t, BigToCompact(p.PowLimit), bits)
}

func TestNextRequiredBitsDispatchesV3AfterHardForkFour(t *testing.T) {
	p := testParams()
	p.HardForkThreeHeight = 10
	p.HardForkFourHeight = 25
	r := NewRetargeter(p)

	// h (25) is past the ten-block V1 warm-up window following
	// HardForkThreeHeight (which ends at height 20) and lands exactly
	// on HardForkFourHeight, so dispatch must reach V3.
	tip := &fakeNode{height: 24, time: 2400, bits: 0x1d00ffff}
	bits := r.NextRequiredBits(tip, fakeHeader(2500))
	// h (25) <= longSample (1000), so V3 falls back to PowLimit.
	require.Equal(t, BigToCompact(p.PowLimit), bits)
}

func TestBlockProofMatchesCalcWork(t *testing.T) {
	r := NewRetargeter(testParams())
	require.Equal(t, CalcWork(0x1d00ffff), r.BlockProof(0x1d00ffff))
}

// TestRetargetV1OnScheduleRetargetKeepsTipBitsUnchanged drives the real
// retarget branch of retargetV1 (spec.md §8 scenario 2): a
// 2*interval-block chain with on-schedule timestamps, so the look-back
// spans one full interval, actualTimespan lands exactly on
// targetTimespan and the multiply/divide is a no-op.
func TestRetargetV1OnScheduleRetargetKeepsTipBitsUnchanged(t *testing.T) {
	p := testParams()
	p.HardForkOneHeight = 0
	p.CoinFixHeight = 1000000
	r := NewRetargeter(p)

	spacing := uint32(p.TargetTimePerBlock.Seconds())
	interval := int(3600) / int(spacing)

	// Tip bits are the canonical compact encoding of 0x123456<<184, so
	// a no-op retarget round-trips through BigToCompact unchanged.
	tip := buildChain(2*interval, spacing, 0x1a123456)
	candidate := fakeHeader(tip.Time() + spacing)

	got := r.retargetV1(tip, candidate)
	require.Equal(t, tip.Bits(), got)
}

// TestRetargetV1ExtremeFastChainClampsActualTimespan drives retargetV1's
// clamp floor (spec.md §8 scenario 3): one-second block spacing makes
// the raw actualTimespan collapse to a sliver of targetTimespan, so it
// is clamped up to targetTimespan/4 and the target is cut to a quarter
// (difficulty rises).
func TestRetargetV1ExtremeFastChainClampsActualTimespan(t *testing.T) {
	p := testParams()
	p.HardForkOneHeight = 0
	p.CoinFixHeight = 1000000
	r := NewRetargeter(p)

	spacing := uint32(p.TargetTimePerBlock.Seconds())
	interval := int(3600) / int(spacing)

	// Tip bits are the canonical compact encoding of 0x123456<<192.
	tip := buildChain(2*interval, 1, 0x1b123456)
	candidate := fakeHeader(tip.Time() + 1)

	got := r.retargetV1(tip, candidate)
	require.Equal(t, uint32(0x1b048d15), got)
}

// TestRetargetV2AveragesMultipleAncestors drives the running-average
// loop past its first iteration (i==1) so the Sub/Div/Add recurrence
// actually executes, pinning down the truncating big.Int arithmetic
// spec.md §9 requires (a big.Float average would diverge from this
// value once any fractional remainder appears across iterations).
func TestRetargetV2AveragesMultipleAncestors(t *testing.T) {
	p := testParams()
	r := NewRetargeter(p)

	spacing := uint32(p.TargetTimePerBlock.Seconds())

	// Heights 0..4, bits chosen so CompactToBig decodes to the round
	// values 9999, 500, 4000, 2000, 1000 respectively (exponent 3,
	// mantissa verbatim).
	h0 := &fakeNode{height: 0, time: 0, bits: 0x0300270f}
	h1 := &fakeNode{height: 1, time: spacing, bits: 0x030001f4, parent: h0}
	h2 := &fakeNode{height: 2, time: 2 * spacing, bits: 0x03000fa0, parent: h1}
	h3 := &fakeNode{height: 3, time: 3 * spacing, bits: 0x030007d0, parent: h2}
	tip := &fakeNode{height: 4, time: 4 * spacing, bits: 0x030003e8, parent: h3}

	got := r.retargetV2(tip, int64(tip.Height())+1)
	require.Equal(t, uint32(0x02057e00), got)
}

// TestRetargetV3NinePercentClamp drives retargetV3's short/medium/long
// moving averages and its asymmetric clamp (spec.md §8 scenario 5): a
// 1001-block, one-second-spaced chain makes the blended actual time
// collapse far below the 9% floor, so it is clamped to 453/494 of
// v3TargetTimespan.
func TestRetargetV3NinePercentClamp(t *testing.T) {
	p := testParams()
	r := NewRetargeter(p)

	// Tip bits are the canonical compact encoding of 45<<208; 45*82 is
	// an exact multiple of 90, so the final scaling has no remainder.
	tip := buildChain(v3LongSample+1, 1, 0x1d00002d)

	got := r.retargetV3(tip, int64(tip.Height())+1)
	require.Equal(t, uint32(0x1b290000), got)
}

// TestNextRequiredBitsRegtestInvariant checks spec.md §8 scenario 4:
// on a one-block regtest chain, next_required_bits(tip, _, regtest)
// == tip.bits, because the next height equals HardForkThreeHeight (1),
// so the difficulty-reset branch returns the pow limit, which is also
// the genesis block's bits.
func TestNextRequiredBitsRegtestInvariant(t *testing.T) {
	p := chaincfg.NewRegressionNetParams()
	r := NewRetargeter(p)

	tip := &fakeNode{height: 0, time: uint32(p.GenesisBlock.Header.Timestamp.Unix()), bits: p.PowLimitBits}
	candidate := fakeHeader(tip.Time() + uint32(p.TargetTimePerBlock.Seconds()))

	bits := r.NextRequiredBits(tip, candidate)
	require.Equal(t, tip.Bits(), bits)
}
