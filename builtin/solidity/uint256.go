// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/vechain/tokenomy/bn"
	"github.com/vechain/tokenomy/thor"
)

// Uint256 is a counter slot. Add and Sub are overflow checked.
type Uint256 struct {
	raw *Raw[*big.Int]
}

func NewUint256(context *Context, pos thor.Bytes32) *Uint256 {
	return &Uint256{raw: NewRaw[*big.Int](context, pos)}
}

func (u *Uint256) Get() (*big.Int, error) {
	return u.raw.Get()
}

func (u *Uint256) Set(value *big.Int) error {
	return u.raw.Set(value)
}

func (u *Uint256) Add(value *big.Int) error {
	cur, err := u.raw.Get()
	if err != nil {
		return err
	}
	sum, err := bn.Add(cur, value)
	if err != nil {
		return err
	}
	return u.raw.Set(sum)
}

func (u *Uint256) Sub(value *big.Int) error {
	cur, err := u.raw.Get()
	if err != nil {
		return err
	}
	diff, err := bn.Sub(cur, value)
	if err != nil {
		return err
	}
	return u.raw.Set(diff)
}
