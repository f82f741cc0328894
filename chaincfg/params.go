// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the per-network constants a UFO full node
// needs before it can validate a single header: genesis block, proof
// of work limit, retarget cadence, hard-fork activation heights and
// the checkpoints shipped with the client. Everything in this package
// is built once by a factory (NewMainNetParams, NewTestNetParams,
// NewRegressionNetParams) and is immutable and safe for concurrent
// readers from then on.
package chaincfg

import (
	"math/big"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"
)

var (
	// bigOne is 1 represented as a big.Int. Defined once to avoid the
	// overhead of allocating it on every PoW-limit computation.
	bigOne = big.NewInt(1)

	// mainPowLimit is the highest proof of work value a UFO mainnet or
	// testnet block can have: 2^236 - 1.
	mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne)

	// regressionPowLimit is the regtest proof of work limit: 2^255 - 1.
	regressionPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

// UFONet represents which UFO network a message belongs to.
type UFONet uint32

// Magic bytes identifying each default network.
const (
	MainNet UFONet = 0xddb7d9fc
	TestNet UFONet = 0xdbb8c0fb
	RegTest UFONet = 0x1c55211b
)

var netStrings = map[UFONet]string{
	MainNet: "MainNet",
	TestNet: "TestNet",
	RegTest: "RegTest",
}

// String returns the UFONet in human-readable form.
func (n UFONet) String() string {
	if s, ok := netStrings[n]; ok {
		return s
	}
	return "Unknown UFONet"
}

// Checkpoint identifies a known good point in the block chain. Clients
// use these to skip full script/signature validation on historical
// blocks and to reject chains that fork below a checkpointed height.
type Checkpoint struct {
	Height int32
	Hash   *chainhash.Hash
}

// DNSSeed identifies a DNS seed used for peer discovery.
type DNSSeed struct {
	Host         string
	HasFiltering bool
}

// FixedSeed is a hard-coded IPv6 address (v4-mapped when the peer is
// IPv4) and port used as a peer-discovery fallback when DNS seeding
// fails.
type FixedSeed struct {
	Addr [16]byte
	Port uint16
}

// ChainTxData summarizes chain activity as of a known-good block; it
// is informational only and is never read by the retargeter.
type ChainTxData struct {
	Time    time.Time
	TxCount int64
	TxRate  float64
}

// Params defines the immutable per-network constants for a UFO
// network: message magic, genesis block, proof-of-work parameters,
// hard-fork activation heights/times, checkpoints and address
// encoding prefixes. A Params value is built once by one of the
// factory functions below and is read-only thereafter.
type Params struct {
	// Name is a human-readable identifier for the network.
	Name string

	// Net carries the magic bytes used to identify the network on the
	// wire.
	Net UFONet

	// DefaultPort is the default peer-to-peer TCP port.
	DefaultPort string

	// DNSSeeds and FixedSeeds are peer-discovery data; the retargeter
	// never reads them.
	DNSSeeds   []DNSSeed
	FixedSeeds []FixedSeed

	// GenesisBlock is the first block of the chain. GenesisHash is its
	// hash, asserted against the computed hash at construction time.
	GenesisBlock *wire.MsgBlock
	GenesisHash  *chainhash.Hash

	// PowLimit is the highest (easiest) target any block may claim.
	// PowLimitBits is the same value pre-encoded in compact form.
	PowLimit     *big.Int
	PowLimitBits uint32

	// SubsidyHalvingInterval is the block-count interval at which the
	// block subsidy halves. Not read by the retargeter; carried here
	// because it is as immutable and per-network as everything else.
	SubsidyHalvingInterval int32

	// CoinFixHeight, HardForkOneHeight, ..., HardForkFourAHeight are
	// the block heights at which historical consensus-rule changes
	// activate. See the Retargeter in package consensus for how
	// HardForkTwoHeight through HardForkFourHeight select among the
	// three retarget algorithms.
	CoinFixHeight       int32
	HardForkOneHeight   int32
	HardForkTwoHeight   int32
	HardForkTwoAHeight  int32
	HardForkThreeHeight int32
	HardForkFourHeight  int32
	HardForkFourAHeight int32

	// NeoScryptSwitchTime and NeoScryptForkTime gate the header-hash
	// algorithm (scrypt vs. neoscrypt) by block time. The hash
	// function itself lives outside this package; these timestamps
	// are the only piece of that decision the chain parameters own.
	NeoScryptSwitchTime uint32
	NeoScryptForkTime   uint32

	// TargetTimespan is the retarget window (the "two weeks" of
	// Bitcoin's original design, here 90 seconds * 960 blocks on
	// mainnet/testnet before HardForkOneHeight). TargetTimePerBlock is
	// the desired spacing between blocks.
	TargetTimespan     time.Duration
	TargetTimePerBlock time.Duration

	// AllowMinDifficultyBlocks relaxes difficulty after a long gap
	// between blocks (testnet/regtest only).
	AllowMinDifficultyBlocks bool

	// NoRetargeting makes the V1 retarget return the tip's bits at
	// every retarget boundary (regtest only). The V2 and V3 retarget
	// algorithms do not read it.
	NoRetargeting bool

	// Checkpoints ordered from oldest to newest.
	Checkpoints []Checkpoint

	// ChainTxData is a point-in-time summary of chain activity used
	// only to estimate initial-block-download progress.
	ChainTxData ChainTxData

	// Bech32HRPSegwit is the human-readable part used for bech32
	// address encoding.
	Bech32HRPSegwit string

	// Address encoding magics.
	PubKeyHashAddrID byte
	ScriptHashAddrID byte
	PrivateKeyID     byte

	// BIP32 hierarchical deterministic extended key magics.
	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte
}

// genesisCoinbaseTx is the single coinbase transaction shared by the
// genesis block on every UFO network: the reward is zero and the
// scriptSig embeds the "2 january 2014" timestamp the same way
// Satoshi's original genesis embedded a newspaper headline.
var genesisCoinbaseTx = wire.MsgTx{
	Version: 1,
	TxIn: []*wire.TxIn{
		{
			PreviousOutPoint: wire.OutPoint{
				Hash:  chainhash.Hash{},
				Index: 0xffffffff,
			},
			SignatureScript: genesisScriptSig("2 january 2014"),
			Sequence:        0xffffffff,
		},
	},
	TxOut: []*wire.TxOut{
		{
			Value:    0,
			PkScript: []byte{0x00, 0xac}, // PUSH(0x00) OP_CHECKSIG
		},
	},
	LockTime: 0,
}

// genesisScriptSig builds the coinbase scriptSig: CScript() <<
// 486604799 << CScriptNum(4) << timestamp, mirroring the original
// C++ genesis construction exactly (486604799 pushed as a 4-byte
// minimal scriptnum, 4 pushed as a single byte, followed by the raw
// ASCII timestamp).
func genesisScriptSig(timestamp string) []byte {
	script := []byte{
		0x04, 0xff, 0xff, 0x00, 0x1d, // push 486604799 (0x1d00ffff)
		0x01, 0x04, // push 4
		byte(len(timestamp)),
	}
	return append(script, []byte(timestamp)...)
}

// newGenesisBlock assembles a genesis block header around the shared
// coinbase transaction, matching CreateGenesisBlock in the original
// chainparams.cpp.
func newGenesisBlock(nTime, nNonce, nBits uint32, nVersion int32) *wire.MsgBlock {
	return &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    nVersion,
			PrevBlock:  chainhash.Hash{},
			MerkleRoot: genesisCoinbaseTx.TxHash(),
			Timestamp:  time.Unix(int64(nTime), 0),
			Bits:       nBits,
			Nonce:      nNonce,
		},
		Transactions: []*wire.MsgTx{&genesisCoinbaseTx},
	}
}

// newHashFromStr converts a big-endian hex string into a
// chainhash.Hash. It only ever runs against hard-coded literals, so a
// parse failure means the source itself is broken; panicking here is
// the same tripwire the teacher's newHashFromStr uses.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}

// mustMatchGenesis verifies the constructed genesis block's hash and
// merkle root against the hard-coded expected values for a network.
// A mismatch means the binary cannot reproduce consensus history and
// must not be allowed to run, so this panics rather than returning an
// error.
func mustMatchGenesis(networkName string, genesis *wire.MsgBlock, wantHash, wantMerkle *chainhash.Hash) *chainhash.Hash {
	gotHash := genesis.Header.BlockHash()
	if !gotHash.IsEqual(wantHash) {
		panic(errors.Errorf("chaincfg: %s genesis hash mismatch: got %s want %s", networkName, gotHash, wantHash))
	}
	if !genesis.Header.MerkleRoot.IsEqual(wantMerkle) {
		panic(errors.Errorf("chaincfg: %s genesis merkle root mismatch: got %s want %s", networkName, genesis.Header.MerkleRoot, wantMerkle))
	}
	log.Infof("%s genesis block verified: %s", networkName, gotHash)
	return wantHash
}

// NewMainNetParams builds the UFO mainnet chain parameters. It panics
// if the constructed genesis block does not reproduce the hard-coded
// mainnet genesis hash and merkle root.
func NewMainNetParams() *Params {
	genesis := newGenesisBlock(1388681920, 1671824, 0x1e0ffff0, 1)
	hash := mustMatchGenesis(
		"main", genesis,
		newHashFromStr("ba1d39b4928ab03d813d952daf65fb7797fcf538a9c1b8274f4edc8557722d13"),
		newHashFromStr("8207df3a28a5bfdcaba0c810e540123aaea8d067b745092849787169f5e77065"),
	)

	return &Params{
		Name:        "main",
		Net:         MainNet,
		DefaultPort: "9887",
		DNSSeeds: []DNSSeed{
			{Host: "dns.seed1.ufocoin.net"},
			{Host: "dns.seed2.ufocoin.net"},
			{Host: "dns.dnsseed.lowecraft.it"},
			{Host: "dns.dnsseed.ufocoinnode.com"},
		},

		GenesisBlock: genesis,
		GenesisHash:  hash,
		PowLimit:     mainPowLimit,
		PowLimitBits: 0x1e0fffff,

		SubsidyHalvingInterval: 400000,

		CoinFixHeight:       15000,
		HardForkOneHeight:   33479,
		HardForkTwoHeight:   160997,
		HardForkTwoAHeight:  171900,
		HardForkThreeHeight: 266000,
		HardForkFourHeight:  1182000,
		HardForkFourAHeight: 1220000,

		NeoScryptSwitchTime: 1414195200,
		NeoScryptForkTime:   1414446393,

		TargetTimespan:     86400 * time.Second,
		TargetTimePerBlock: 90 * time.Second,

		AllowMinDifficultyBlocks: false,
		NoRetargeting:            false,

		Checkpoints: []Checkpoint{
			{4500, newHashFromStr("5755857a8055c732d5236b0526afcb9b92f1291c87ed3c655c6d79df6b9d3dd4")},
			{9999, newHashFromStr("808bf9bdf3c7e777ad8008455f6849001bc264910de86e01a0bf1d83ed362aba")},
			{20000, newHashFromStr("e14a9e1d1cd79fa0385d3af7eac36ed96f29d7c0205b62eb82c4e7c5b043c6d1")},
			{33349, newHashFromStr("cf9ea4ab6589b0ac0cc34fca94ea3c24842ac80f43724d0c8d89ece0aa0a5081")},
			{1079136, newHashFromStr("e171e30fa1ab3428f079a165a22f5cfd3529fb0e76bd0e7213a3ac9a09bd5571")},
			{1213947, newHashFromStr("a4c7b570fbf1d755c327ff9c3d98e9d5433e453f9ecade20a8e4852bd124eb8f")},
			{1246467, newHashFromStr("a0e2460c7e644cbb6c4bc01088094524fdf90892aa42d22f9dd9b6e3c981ca6f")},
		},

		ChainTxData: ChainTxData{
			Time:    time.Unix(1526634445, 0),
			TxCount: 1627450,
			TxRate:  0.001,
		},

		Bech32HRPSegwit: "uf",

		PubKeyHashAddrID: 27,
		ScriptHashAddrID: 5,
		PrivateKeyID:     155,

		HDPublicKeyID:  [4]byte{0x04, 0x88, 0xb2, 0x1e},
		HDPrivateKeyID: [4]byte{0x04, 0x88, 0xad, 0xe4},
	}
}

// NewTestNetParams builds the UFO testnet chain parameters. Most hard
// fork heights are pinned to 1 ("always active") since testnet never
// lived through the mainnet history those heights gate.
func NewTestNetParams() *Params {
	genesis := newGenesisBlock(1388678813, 616291, 0x1e0ffff0, 1)
	hash := mustMatchGenesis(
		"test", genesis,
		newHashFromStr("45b4e55bddf20dfeb69ef2a35dd36f58dd45d5f4582c1a4ca1c1b78eef8f8c37"),
		newHashFromStr("8207df3a28a5bfdcaba0c810e540123aaea8d067b745092849787169f5e77065"),
	)

	return &Params{
		Name:        "test",
		Net:         TestNet,
		DefaultPort: "19887",
		DNSSeeds: []DNSSeed{
			{Host: "testnet-seed.ufocoin.net"},
		},

		GenesisBlock: genesis,
		GenesisHash:  hash,
		PowLimit:     mainPowLimit,
		PowLimitBits: 0x1e0fffff,

		SubsidyHalvingInterval: 400000,

		CoinFixHeight:       1,
		HardForkOneHeight:   1,
		HardForkTwoHeight:   1,
		HardForkTwoAHeight:  1,
		HardForkThreeHeight: 1,
		HardForkFourHeight:  1100,
		HardForkFourAHeight: 1500,

		NeoScryptSwitchTime: 1414195200,
		NeoScryptForkTime:   1506816000,

		TargetTimespan:     86400 * time.Second,
		TargetTimePerBlock: 90 * time.Second,

		AllowMinDifficultyBlocks: true,
		NoRetargeting:            false,

		Checkpoints: []Checkpoint{
			{0, hash},
		},

		Bech32HRPSegwit: "ut",

		PubKeyHashAddrID: 111,
		ScriptHashAddrID: 196,
		PrivateKeyID:     239,

		HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xcf},
		HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x94},
	}
}

// NewRegressionNetParams builds the UFO regression-test chain
// parameters: difficulty is frozen (NoRetargeting) and every hard
// fork is active from genesis, matching a deterministic single-node
// test harness.
func NewRegressionNetParams() *Params {
	genesis := newGenesisBlock(1296688602, 3, 0x207fffff, 1)
	hash := mustMatchGenesis(
		"regtest", genesis,
		newHashFromStr("a482cf37ea99d8c74f62e28903208bfbc12901b35738feff20fdf7e3b671afb7"),
		newHashFromStr("8207df3a28a5bfdcaba0c810e540123aaea8d067b745092849787169f5e77065"),
	)

	return &Params{
		Name:        "regtest",
		Net:         RegTest,
		DefaultPort: "18444",

		GenesisBlock: genesis,
		GenesisHash:  hash,
		PowLimit:     regressionPowLimit,
		PowLimitBits: 0x207fffff,

		SubsidyHalvingInterval: 150,

		CoinFixHeight:       1,
		HardForkOneHeight:   1,
		HardForkTwoHeight:   1,
		HardForkTwoAHeight:  1,
		HardForkThreeHeight: 1,
		HardForkFourHeight:  1,
		HardForkFourAHeight: 1,

		NeoScryptSwitchTime: 1414195200,
		NeoScryptForkTime:   1524473955,

		TargetTimespan:     1209600 * time.Second,
		TargetTimePerBlock: 600 * time.Second,

		AllowMinDifficultyBlocks: true,
		NoRetargeting:            true,

		Checkpoints: []Checkpoint{
			{0, hash},
		},

		Bech32HRPSegwit: "ufrt",

		PubKeyHashAddrID: 111,
		ScriptHashAddrID: 196,
		PrivateKeyID:     239,

		HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xcf},
		HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x94},
	}
}

// IsBech32SegwitPrefix reports whether prefix (case-insensitively) is
// a known network's bech32 human-readable part followed by '1'.
func IsBech32SegwitPrefix(prefix string, params *Params) bool {
	return strings.EqualFold(prefix, params.Bech32HRPSegwit+"1")
}
