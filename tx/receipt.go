// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/vechain/tokenomy/thor"

// Receipt is the outcome of a committed invocation.
type Receipt struct {
	// sequence number of the invocation, strictly increasing
	Seq uint64 `json:"seq"`
	// clock reading the invocation ran at
	Time   uint64       `json:"time"`
	Caller thor.Address `json:"caller"`
	// name of the invoked operation
	Op     string `json:"op"`
	Events Events `json:"events"`
}
