// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"math/big"

	"github.com/vechain/tokenomy/thor"
)

// Authority gates privileged operations.
type Authority interface {
	Require(caller thor.Address) error
}

// Asset moves the vested tokens out of the schedule's holding balance.
type Asset interface {
	Transfer(from, to thor.Address, amount *big.Int) error
}

// AssetResolver returns the ledger at the given address.
type AssetResolver func(addr thor.Address) (Asset, error)

// Config is the distribution window, the unlock curve and the vested asset.
// Times are unix seconds.
type Config struct {
	StartTime uint64
	EndTime   uint64
	Asset     thor.Address
	Curve     Curve
}

// Validate checks the window and the curve.
func (c *Config) Validate() error {
	if c.EndTime < c.StartTime {
		return errorf("end time %d before start time %d", c.EndTime, c.StartTime)
	}
	if c.Asset.IsZero() {
		return errorf("asset is the null account")
	}
	if err := c.Curve.Validate(); err != nil {
		return errorf("invalid curve: %v", err)
	}
	return nil
}

// Account is the vesting bookkeeping of one account.
type Account struct {
	Rights  *big.Int `json:"rights"`
	PaidOut *big.Int `json:"paidOut"`
	Granted *big.Int `json:"granted"`
}
