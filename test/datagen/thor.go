// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/vechain/tokenomy/thor"
)

func RandBytes32() (b thor.Bytes32) {
	rand.Read(b[:])
	return
}

func RandAddress() (a thor.Address) {
	rand.Read(a[:])
	return
}

func RandAddresses(n int) []thor.Address {
	addrs := make([]thor.Address, n)
	for i := range addrs {
		addrs[i] = RandAddress()
	}
	return addrs
}
