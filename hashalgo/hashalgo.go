// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hashalgo selects and computes the block-header hash used to
// check proof of work. UFO mined with scrypt from genesis and
// switched to neoscrypt at a later block time; package consensus treats
// the resulting hash as an external collaborator (see spec §3 and
// §9) and only needs to know which function applies to a given block
// time. This package is that collaborator.
package hashalgo

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

// HashFunc computes the proof-of-work hash of a block header.
type HashFunc func(header *wire.BlockHeader) (chainhash.Hash, error)

// scryptN, scryptR and scryptP are the classic Litecoin-lineage scrypt
// PoW parameters UFO inherited: N=1024, r=1, p=1, 32-byte output.
const (
	scryptN = 1024
	scryptR = 1
	scryptP = 1
)

// ScryptHash computes the scrypt(header, header) proof-of-work hash
// used by every UFO block mined before the neoscrypt switch,
// including every network's genesis block.
func ScryptHash(header *wire.BlockHeader) (chainhash.Hash, error) {
	var buf bytes.Buffer
	if err := header.Serialize(&buf); err != nil {
		return chainhash.Hash{}, errors.Wrap(err, "hashalgo: serialize header")
	}

	raw, err := scrypt.Key(buf.Bytes(), buf.Bytes(), scryptN, scryptR, scryptP, chainhash.HashSize)
	if err != nil {
		return chainhash.Hash{}, errors.Wrap(err, "hashalgo: scrypt")
	}

	var hash chainhash.Hash
	copy(hash[:], raw)
	return hash, nil
}

// NeoScryptHash computes the neoscrypt proof-of-work hash used after
// the fork gated by chaincfg.Params.NeoScryptForkTime. Neoscrypt
// layers ChaCha and BLAKE2s mixing on top of scrypt's core and has no
// published Go module in this module's dependency corpus; wiring a
// concrete implementation is left to the block-validation pipeline
// that embeds this package (see DESIGN.md). Calling it is a
// programmer error until that backend is supplied.
func NeoScryptHash(header *wire.BlockHeader) (chainhash.Hash, error) {
	return chainhash.Hash{}, errors.New("hashalgo: neoscrypt backend not wired")
}

// Select returns the HashFunc that applies to a header with the given
// timestamp, per chaincfg.Params' NeoScryptForkTime. The switch
// timestamp is the soft-signal boundary preserved for parity with the
// original client; only the fork timestamp gates the hard activation.
func Select(neoScryptForkTime uint32, blockTime uint32) HashFunc {
	if blockTime >= neoScryptForkTime {
		return NeoScryptHash
	}
	return ScryptHash
}
