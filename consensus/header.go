// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consensus

import "github.com/btcsuite/btcd/wire"

// wireHeaderView adapts a *wire.BlockHeader to HeaderView.
type wireHeaderView struct {
	header *wire.BlockHeader
}

// WireHeader wraps a *wire.BlockHeader as a HeaderView so it can be
// passed to Retargeter.NextRequiredBits.
func WireHeader(header *wire.BlockHeader) HeaderView {
	return wireHeaderView{header: header}
}

func (h wireHeaderView) Time() uint32 {
	return uint32(h.header.Timestamp.Unix())
}
