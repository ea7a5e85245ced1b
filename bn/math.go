// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bn provides overflow checked arithmetic for token amounts.
// Amounts are carried as *big.Int but must always fit into an unsigned 256-bit word.
package bn

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
)

var (
	ErrNegative  = errors.New("negative amount")
	ErrOverflow  = errors.New("amount overflows 256 bits")
	ErrUnderflow = errors.New("amount underflow")
	ErrDivByZero = errors.New("division by zero")
)

// Zero returns a new zero amount.
func Zero() *big.Int { return new(big.Int) }

// IsZero returns true for nil or zero amounts.
func IsZero(x *big.Int) bool {
	return x == nil || x.Sign() == 0
}

// Copy returns a copy of x, nil is treated as zero.
func Copy(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(x)
}

// ToU256 converts x into a 256-bit word.
func ToU256(x *big.Int) (*uint256.Int, error) {
	if x == nil {
		return new(uint256.Int), nil
	}
	if x.Sign() < 0 {
		return nil, ErrNegative
	}
	v, overflow := uint256.FromBig(x)
	if overflow {
		return nil, ErrOverflow
	}
	return v, nil
}

// Validate checks that x is a valid amount.
func Validate(x *big.Int) error {
	_, err := ToU256(x)
	return err
}

// Add returns x+y.
func Add(x, y *big.Int) (*big.Int, error) {
	a, err := ToU256(x)
	if err != nil {
		return nil, err
	}
	b, err := ToU256(y)
	if err != nil {
		return nil, err
	}
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	return toBig(sum), nil
}

// Sub returns x-y, failing when y > x.
func Sub(x, y *big.Int) (*big.Int, error) {
	a, err := ToU256(x)
	if err != nil {
		return nil, err
	}
	b, err := ToU256(y)
	if err != nil {
		return nil, err
	}
	diff, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, ErrUnderflow
	}
	return toBig(diff), nil
}

// MulDiv returns x*y/d with truncation. The intermediate product must fit 256 bits.
func MulDiv(x, y, d *big.Int) (*big.Int, error) {
	a, err := ToU256(x)
	if err != nil {
		return nil, err
	}
	b, err := ToU256(y)
	if err != nil {
		return nil, err
	}
	c, err := ToU256(d)
	if err != nil {
		return nil, err
	}
	if c.IsZero() {
		return nil, ErrDivByZero
	}
	prod, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	return toBig(prod.Div(prod, c)), nil
}

// toBig keeps zero results in the canonical big.Int form.
func toBig(v *uint256.Int) *big.Int {
	if v.IsZero() {
		return new(big.Int)
	}
	return v.ToBig()
}

// Percent returns x*pct/100 with truncation.
func Percent(x *big.Int, pct uint64) (*big.Int, error) {
	return MulDiv(x, new(big.Int).SetUint64(pct), big.NewInt(100))
}
