// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrUnknownNetwork is returned by SelectParams when asked for a
// network name that is not main, test or regtest.
var ErrUnknownNetwork = errors.New("chaincfg: unknown network")

// ErrNetworkAlreadySelected is returned by SelectParams when the
// process-wide network has already been chosen. The original client
// keeps a single global pCurrentParams pointer set once at startup;
// this package models the same lifecycle so the rest of the
// validation pipeline can read ActiveParams without threading a
// *Params through every call site. Tests may reset the selection with
// ResetForTesting.
var ErrNetworkAlreadySelected = errors.New("chaincfg: network already selected")

var (
	activeMu     sync.RWMutex
	activeParams *Params
)

// SelectParams builds and installs the chain parameters for name
// ("main", "test" or "regtest") as the process-wide active network.
// It must be called exactly once per process, before any consensus
// call; a second call returns ErrNetworkAlreadySelected.
func SelectParams(name string) (*Params, error) {
	activeMu.Lock()
	defer activeMu.Unlock()

	if activeParams != nil {
		return nil, ErrNetworkAlreadySelected
	}

	params, err := newParams(name)
	if err != nil {
		return nil, err
	}

	activeParams = params
	return params, nil
}

func newParams(name string) (*Params, error) {
	switch name {
	case "main":
		return NewMainNetParams(), nil
	case "test":
		return NewTestNetParams(), nil
	case "regtest":
		return NewRegressionNetParams(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownNetwork, "%q", name)
	}
}

// ActiveParams returns the process-wide chain parameters installed by
// SelectParams, or nil if none has been selected yet.
func ActiveParams() *Params {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return activeParams
}

// ResetForTesting clears the process-wide network selection so a test
// binary can call SelectParams more than once. It must never be
// called from production code.
func ResetForTesting() {
	activeMu.Lock()
	defer activeMu.Unlock()
	activeParams = nil
}
