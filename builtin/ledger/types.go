// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/vechain/tokenomy/thor"
)

// Authority gates privileged operations.
type Authority interface {
	Require(caller thor.Address) error
}

// Metadata describes the asset held by a ledger.
type Metadata struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

type allowanceKey struct {
	owner   thor.Address
	spender thor.Address
}

func (k allowanceKey) Bytes() []byte {
	return append(append(make([]byte, 0, 2*thor.AddressLength), k.owner[:]...), k.spender[:]...)
}
