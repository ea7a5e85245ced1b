// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/thor"
)

// Asset is the ledger the pool pulls deposits from and pays out of.
type Asset interface {
	Transfer(from, to thor.Address, amount *big.Int) error
	TransferFrom(owner, spender, recipient thor.Address, amount *big.Int) error
	BalanceOf(account thor.Address) (*big.Int, error)
}

// AssetResolver returns the ledger at the given address.
type AssetResolver func(addr thor.Address) (Asset, error)

// Config holds the pool parameters. Times and durations are in seconds.
type Config struct {
	StartTime   uint64
	LockPeriod  uint64 // zero lets deposits be claimed at once
	RewardRate  uint64 // percent of the deposit
	StakeAsset  thor.Address
	RewardAsset thor.Address

	// RestartLockOnTopUp resets the deposit time on every deposit, not only the first.
	RestartLockOnTopUp bool
	// RejectZeroReward makes a claim with a zero reward fail with NothingAvailable.
	RejectZeroReward bool
}

func (c *Config) Validate() error {
	if c.StakeAsset.IsZero() || c.RewardAsset.IsZero() {
		return errors.New("staking: asset is the null account")
	}
	if c.RewardRate > thor.PercentBase*thor.PercentBase {
		return errors.Errorf("staking: reward rate %d too large", c.RewardRate)
	}
	return nil
}

// Position is the deposit record of one account.
// Empty -> Deposited -> Claimed -> Empty.
type Position struct {
	Amount      *big.Int `json:"amount"`
	DepositTime uint64   `json:"depositTime"`
	Claimed     bool     `json:"claimed"`
}

func (p *Position) IsEmpty() bool {
	return p.Amount == nil || p.Amount.Sign() == 0
}
