// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/bn"
	"github.com/vechain/tokenomy/builtin/reverts"
	"github.com/vechain/tokenomy/builtin/solidity"
	"github.com/vechain/tokenomy/log"
	"github.com/vechain/tokenomy/state"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
)

var (
	logger = log.WithContext("pkg", "vesting")

	slotConfig  = thor.BytesToBytes32([]byte("config"))
	slotRights  = thor.BytesToBytes32([]byte("rights"))
	slotPaidOut = thor.BytesToBytes32([]byte("paid-out"))
	slotGranted = thor.BytesToBytes32([]byte("granted"))
)

// ErrNotInitialized is returned when reading the config of a schedule never initialized.
var ErrNotInitialized = errors.New("vesting: not initialized")

func errorf(format string, args ...any) error {
	return errors.Errorf("vesting: "+format, args...)
}

// Vesting implements the stepped vesting schedule.
// Unlock percentages apply to the total ever granted to an account; paidOut is the high-water mark
// of what the account has been paid.
type Vesting struct {
	sctx      *solidity.Context
	authority Authority
	assets    AssetResolver

	config  *solidity.Raw[*Config]
	rights  *solidity.Mapping[thor.Address, *big.Int]
	paidOut *solidity.Mapping[thor.Address, *big.Int]
	granted *solidity.Mapping[thor.Address, *big.Int]
}

// New create a new instance.
func New(addr thor.Address, state *state.State, authority Authority, assets AssetResolver) *Vesting {
	sctx := solidity.NewContext(addr, state)
	return &Vesting{
		sctx:      sctx,
		authority: authority,
		assets:    assets,
		config:    solidity.NewRaw[*Config](sctx, slotConfig),
		rights:    solidity.NewMapping[thor.Address, *big.Int](sctx, slotRights),
		paidOut:   solidity.NewMapping[thor.Address, *big.Int](sctx, slotPaidOut),
		granted:   solidity.NewMapping[thor.Address, *big.Int](sctx, slotGranted),
	}
}

func (v *Vesting) Address() thor.Address {
	return v.sctx.Address()
}

// Initialize stores the schedule configuration.
func (v *Vesting) Initialize(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := v.config.Set(cfg); err != nil {
		return errors.Wrap(err, "failed to set config")
	}
	logger.Debug("schedule initialized", "start", cfg.StartTime, "end", cfg.EndTime, "stages", len(cfg.Curve))
	return nil
}

func (v *Vesting) Config() (*Config, error) {
	set, err := v.config.IsSet()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config")
	}
	if !set {
		return nil, ErrNotInitialized
	}
	cfg, err := v.config.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config")
	}
	return cfg, nil
}

//
// Getters - no state change
//

// Account returns rights, paid out and granted amounts of an account.
func (v *Vesting) Account(addr thor.Address) (*Account, error) {
	rights, err := v.rights.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get rights")
	}
	paidOut, err := v.paidOut.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get paid out")
	}
	granted, err := v.granted.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get granted")
	}
	return &Account{Rights: rights, PaidOut: paidOut, Granted: granted}, nil
}

// UnlockedAmount is granted * percent / 100, zero before the start time.
func (v *Vesting) UnlockedAmount(addr thor.Address, now uint64) (*big.Int, error) {
	cfg, err := v.Config()
	if err != nil {
		return nil, err
	}
	return v.unlocked(cfg, addr, now)
}

// Withdrawable is the amount a withdrawal at now would pay, ignoring the distribution gate.
func (v *Vesting) Withdrawable(addr thor.Address, now uint64) (*big.Int, error) {
	available, err := v.UnlockedAmount(addr, now)
	if err != nil {
		return nil, err
	}
	paid, err := v.paidOut.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get paid out")
	}
	if available.Cmp(paid) <= 0 {
		return bn.Zero(), nil
	}
	return bn.Sub(available, paid)
}

func (v *Vesting) unlocked(cfg *Config, addr thor.Address, now uint64) (*big.Int, error) {
	if now < cfg.StartTime {
		return bn.Zero(), nil
	}
	granted, err := v.granted.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get granted")
	}
	return bn.Percent(granted, cfg.Curve.Percent(now-cfg.StartTime))
}

//
// Setters - state change
//

// GrantRights adds amount to the rights of account. Administrator only, inside the distribution window.
func (v *Vesting) GrantRights(caller, account thor.Address, amount *big.Int, now uint64) error {
	if err := v.authority.Require(caller); err != nil {
		return err
	}
	if account.IsZero() {
		return reverts.New(reverts.ZeroAddress, "grant to the null account")
	}
	if amount == nil || amount.Sign() <= 0 || bn.Validate(amount) != nil {
		return reverts.New(reverts.InvalidAmount, "grant amount %v", amount)
	}
	cfg, err := v.Config()
	if err != nil {
		return err
	}
	if now < cfg.StartTime || now > cfg.EndTime {
		return reverts.New(reverts.DistributionClosed, "now %d outside [%d, %d]", now, cfg.StartTime, cfg.EndTime)
	}

	granted, err := v.granted.Get(account)
	if err != nil {
		return errors.Wrap(err, "failed to get granted")
	}
	newGranted, err := bn.Add(granted, amount)
	if err != nil {
		return reverts.New(reverts.InvalidAmount, "granted overflow")
	}
	rights, err := v.rights.Get(account)
	if err != nil {
		return errors.Wrap(err, "failed to get rights")
	}
	// rights never exceed granted
	newRights, err := bn.Add(rights, amount)
	if err != nil {
		return err
	}

	if err := v.granted.Set(account, newGranted); err != nil {
		return errors.Wrap(err, "failed to set granted")
	}
	if err := v.rights.Set(account, newRights); err != nil {
		return errors.Wrap(err, "failed to set rights")
	}
	v.sctx.Emit(tx.EventRightsGranted, amount, account)
	return nil
}

// Withdraw pays the account the unlocked amount it has not been paid yet.
// Only reachable once the distribution window is over.
func (v *Vesting) Withdraw(account thor.Address, now uint64) (*big.Int, error) {
	cfg, err := v.Config()
	if err != nil {
		return nil, err
	}
	if now < cfg.EndTime {
		return nil, reverts.New(reverts.DistributionNotOver, "now %d before end time %d", now, cfg.EndTime)
	}
	available, err := v.unlocked(cfg, account, now)
	if err != nil {
		return nil, err
	}
	if available.Sign() == 0 {
		return nil, reverts.New(reverts.NothingAvailable, "nothing unlocked for %v", account)
	}
	paid, err := v.paidOut.Get(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get paid out")
	}
	if available.Cmp(paid) <= 0 {
		return nil, reverts.New(reverts.NothingAvailable, "unlocked %v already paid", available)
	}
	delta, err := bn.Sub(available, paid)
	if err != nil {
		return nil, err
	}
	rights, err := v.rights.Get(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get rights")
	}
	newRights, err := bn.Sub(rights, delta)
	if err != nil {
		return nil, errors.Wrap(err, "rights below unlocked delta")
	}

	asset, err := v.assets(cfg.Asset)
	if err != nil {
		return nil, err
	}
	if err := asset.Transfer(v.Address(), account, delta); err != nil {
		return nil, err
	}
	if err := v.rights.Set(account, newRights); err != nil {
		return nil, errors.Wrap(err, "failed to set rights")
	}
	if err := v.paidOut.Set(account, available); err != nil {
		return nil, errors.Wrap(err, "failed to set paid out")
	}
	v.sctx.Emit(tx.EventTokensWithdrawn, delta, account)
	return delta, nil
}
