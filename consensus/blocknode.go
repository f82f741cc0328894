// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consensus

// BlockNode is the read-only view of a chain-index entry the
// Retargeter walks to gather historical timestamps and targets. It is
// the Go shape of the header-validation pipeline's block index node;
// the retargeter never mutates it and only ever follows Parent().
type BlockNode interface {
	// Height is the node's height; the genesis block is height 0.
	Height() int32

	// Time is the node's block time as unsigned seconds, matching
	// the wire encoding of BlockHeader.Timestamp.
	Time() uint32

	// Bits is the node's compact-encoded target.
	Bits() uint32

	// Parent returns the previous node, or nil at genesis.
	Parent() BlockNode
}

// HeaderView is the minimal read-only view of a candidate block
// header the Retargeter needs: just enough to evaluate the
// min-difficulty escape hatch in the V1 algorithm. Any
// *wire.BlockHeader satisfies it via the adapter in header.go.
type HeaderView interface {
	Time() uint32
}

// ancestor walks back exactly n steps from node via Parent, panicking
// if the walk runs off the chain. A caller asking to walk further back
// than the index actually holds indicates the index itself is
// corrupt -- a programmer error, not a runtime condition (spec §7).
func ancestor(node BlockNode, n int) BlockNode {
	for i := 0; i < n; i++ {
		if node == nil {
			panic("consensus: walked off the chain while looking for a retarget ancestor")
		}
		node = node.Parent()
	}
	if node == nil {
		panic("consensus: walked off the chain while looking for a retarget ancestor")
	}
	return node
}
