// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/builtin"
	"github.com/vechain/tokenomy/builtin/ledger"
	"github.com/vechain/tokenomy/builtin/staking"
	"github.com/vechain/tokenomy/builtin/vesting"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/xenv"
)

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.Administrator.IsZero() {
		return nil, errors.New("administrator must be set")
	}
	administrator := gen.Administrator

	builder := new(Builder).
		Administrator(administrator).
		State("admin", func(env *xenv.Environment) error {
			return env.Admin().Initialize(administrator)
		}).
		State("metadata", func(env *xenv.Environment) error {
			if err := env.Token().Initialize(gen.Token.metadata("Token", "TKN")); err != nil {
				return err
			}
			return env.Reward().Initialize(gen.Reward.metadata("Reward", "RWD"))
		})

	for i, a := range gen.Accounts {
		if a.Address.IsZero() {
			return nil, fmt.Errorf("account %d: address must be set", i)
		}
		for _, amount := range []*big.Int{amountOf(a.Token), amountOf(a.Reward)} {
			if amount != nil && amount.Sign() < 0 {
				return nil, fmt.Errorf("%v: allocation must be a non-negative integer", a.Address)
			}
		}
	}
	builder.State("accounts", func(env *xenv.Environment) error {
		for _, a := range gen.Accounts {
			if err := mint(env.Token(), administrator, a.Address, amountOf(a.Token)); err != nil {
				return err
			}
			if err := mint(env.Reward(), administrator, a.Address, amountOf(a.Reward)); err != nil {
				return err
			}
		}
		return nil
	})

	if p := gen.Vesting; p != nil {
		asset, ok := builtin.LookupLedger(p.Asset)
		if !ok {
			return nil, fmt.Errorf("vesting: unknown asset %q", p.Asset)
		}
		cfg := &vesting.Config{
			StartTime: p.StartTime,
			EndTime:   p.EndTime,
			Asset:     asset.Address,
			Curve:     p.Curve,
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		builder.State("vesting", func(env *xenv.Environment) error {
			if err := env.Vesting().Initialize(cfg); err != nil {
				return err
			}
			return mint(asset.Native(env.State()), administrator, builtin.Vesting.Address, amountOf(p.Fund))
		})
	}

	if p := gen.Staking; p != nil {
		stakeAsset, ok := builtin.LookupLedger(p.StakeAsset)
		if !ok {
			return nil, fmt.Errorf("staking: unknown stake asset %q", p.StakeAsset)
		}
		rewardAsset, ok := builtin.LookupLedger(p.RewardAsset)
		if !ok {
			return nil, fmt.Errorf("staking: unknown reward asset %q", p.RewardAsset)
		}
		lockPeriod := thor.DefaultLockPeriod
		if p.LockPeriod != nil {
			lockPeriod = *p.LockPeriod
		}
		if lockPeriod < 0 {
			return nil, errors.New("staking: lock period must not be negative")
		}
		if lockPeriod%time.Second != 0 {
			return nil, errors.Errorf("staking: lock period %v is not a whole number of seconds", lockPeriod)
		}
		cfg := &staking.Config{
			StartTime:          p.StartTime,
			LockPeriod:         uint64(lockPeriod / time.Second),
			RewardRate:         p.RewardRate,
			StakeAsset:         stakeAsset.Address,
			RewardAsset:        rewardAsset.Address,
			RestartLockOnTopUp: p.RestartLockOnTopUp == nil || *p.RestartLockOnTopUp,
			RejectZeroReward:   p.RejectZeroReward,
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		builder.State("staking", func(env *xenv.Environment) error {
			if err := env.Staking().Initialize(cfg); err != nil {
				return err
			}
			return mint(rewardAsset.Native(env.State()), administrator, builtin.Staking.Address, amountOf(p.Fund))
		})
	}

	name := gen.Name
	if name == "" {
		name = "customnet"
	}
	return &Genesis{builder, name}, nil
}

func (a *Asset) metadata(name, symbol string) *ledger.Metadata {
	md := &ledger.Metadata{Name: a.Name, Symbol: a.Symbol}
	if md.Name == "" {
		md.Name = name
	}
	if md.Symbol == "" {
		md.Symbol = symbol
	}
	if a.Decimals != nil {
		md.Decimals = *a.Decimals
	}
	return md
}

func mint(l *ledger.Ledger, caller, account thor.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	return l.Mint(caller, account, amount)
}
