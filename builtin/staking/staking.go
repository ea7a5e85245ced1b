// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

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
	logger = log.WithContext("pkg", "staking")

	slotConfig      = thor.BytesToBytes32([]byte("config"))
	slotPositions   = thor.BytesToBytes32([]byte("positions"))
	slotTotalStaked = thor.BytesToBytes32([]byte("total-staked"))
)

// ErrNotInitialized is returned when reading the config of a pool never initialized.
var ErrNotInitialized = errors.New("staking: not initialized")

// Staking implements the lock-then-claim staking pool.
type Staking struct {
	sctx   *solidity.Context
	assets AssetResolver

	config      *solidity.Raw[*Config]
	positions   *solidity.Mapping[thor.Address, *Position]
	totalStaked *solidity.Uint256
}

// New create a new instance.
func New(addr thor.Address, state *state.State, assets AssetResolver) *Staking {
	sctx := solidity.NewContext(addr, state)
	return &Staking{
		sctx:        sctx,
		assets:      assets,
		config:      solidity.NewRaw[*Config](sctx, slotConfig),
		positions:   solidity.NewMapping[thor.Address, *Position](sctx, slotPositions),
		totalStaked: solidity.NewUint256(sctx, slotTotalStaked),
	}
}

func (s *Staking) Address() thor.Address {
	return s.sctx.Address()
}

// Initialize stores the pool parameters.
func (s *Staking) Initialize(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := s.config.Set(cfg); err != nil {
		return errors.Wrap(err, "failed to set config")
	}
	logger.Debug("pool initialized", "start", cfg.StartTime, "lock", cfg.LockPeriod, "rate", cfg.RewardRate)
	return nil
}

func (s *Staking) Config() (*Config, error) {
	set, err := s.config.IsSet()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config")
	}
	if !set {
		return nil, ErrNotInitialized
	}
	cfg, err := s.config.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config")
	}
	return cfg, nil
}

//
// Getters - no state change
//

func (s *Staking) Position(account thor.Address) (*Position, error) {
	pos, err := s.positions.Get(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	if pos.Amount == nil {
		pos.Amount = bn.Zero()
	}
	return pos, nil
}

// TotalStaked is the sum of all open deposits.
func (s *Staking) TotalStaked() (*big.Int, error) {
	total, err := s.totalStaked.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total staked")
	}
	return total, nil
}

// PendingReward is the reward a claim would pay, zero once claimed.
func (s *Staking) PendingReward(account thor.Address) (*big.Int, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	pos, err := s.Position(account)
	if err != nil {
		return nil, err
	}
	if pos.Claimed || pos.IsEmpty() {
		return bn.Zero(), nil
	}
	return bn.Percent(pos.Amount, cfg.RewardRate)
}

// Unlocked reports whether the lock period of the position has elapsed at now.
func (s *Staking) Unlocked(account thor.Address, now uint64) (bool, error) {
	cfg, err := s.Config()
	if err != nil {
		return false, err
	}
	pos, err := s.Position(account)
	if err != nil {
		return false, err
	}
	return lockElapsed(cfg, pos, now), nil
}

func lockElapsed(cfg *Config, pos *Position, now uint64) bool {
	return now >= pos.DepositTime && now-pos.DepositTime >= cfg.LockPeriod
}

//
// Setters - state change
//

// Deposit pulls amount from account into the pool. The account must have approved the pool.
func (s *Staking) Deposit(account thor.Address, amount *big.Int, now uint64) error {
	cfg, err := s.Config()
	if err != nil {
		return err
	}
	if now < cfg.StartTime {
		return reverts.New(reverts.StakingNotStarted, "now %d before start %d", now, cfg.StartTime)
	}
	if amount == nil || amount.Sign() <= 0 || bn.Validate(amount) != nil {
		return reverts.New(reverts.InvalidAmount, "deposit amount %v", amount)
	}
	pos, err := s.Position(account)
	if err != nil {
		return err
	}
	if pos.Claimed {
		return reverts.New(reverts.RewardsAlreadyClaimed, "withdraw the claimed position first")
	}
	newAmount, err := bn.Add(pos.Amount, amount)
	if err != nil {
		return reverts.New(reverts.InvalidAmount, "deposit overflow")
	}

	stake, err := s.assets(cfg.StakeAsset)
	if err != nil {
		return err
	}
	if err := stake.TransferFrom(account, s.Address(), s.Address(), amount); err != nil {
		return err
	}

	if pos.IsEmpty() || cfg.RestartLockOnTopUp {
		pos.DepositTime = now
	}
	pos.Amount = newAmount
	if err := s.positions.Set(account, pos); err != nil {
		return errors.Wrap(err, "failed to set position")
	}
	if err := s.totalStaked.Add(amount); err != nil {
		return errors.Wrap(err, "failed to add total staked")
	}
	s.sctx.EmitAt(tx.EventDeposited, amount, now, account)
	return nil
}

// ClaimRewards pays the flat reward of the position once its lock has elapsed.
func (s *Staking) ClaimRewards(account thor.Address, now uint64) (*big.Int, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	pos, err := s.Position(account)
	if err != nil {
		return nil, err
	}
	if pos.IsEmpty() {
		return nil, reverts.New(reverts.NothingAvailable, "no deposit for %v", account)
	}
	if !lockElapsed(cfg, pos, now) {
		return nil, reverts.New(reverts.LockPeriodNotElapsed, "unlocks at %d", pos.DepositTime+cfg.LockPeriod)
	}
	if pos.Claimed {
		return nil, reverts.New(reverts.RewardsAlreadyClaimed, "already claimed for %v", account)
	}
	reward, err := bn.Percent(pos.Amount, cfg.RewardRate)
	if err != nil {
		return nil, reverts.New(reverts.InvalidAmount, "reward overflow")
	}
	if reward.Sign() == 0 && cfg.RejectZeroReward {
		return nil, reverts.New(reverts.NothingAvailable, "zero reward")
	}

	if reward.Sign() > 0 {
		if err := s.payReward(cfg, account, reward); err != nil {
			return nil, err
		}
	}

	pos.Claimed = true
	if err := s.positions.Set(account, pos); err != nil {
		return nil, errors.Wrap(err, "failed to set position")
	}
	s.sctx.Emit(tx.EventRewardsClaimed, reward, account)
	return reward, nil
}

// payReward transfers the reward. Deposits never fund rewards when both assets are the same ledger.
func (s *Staking) payReward(cfg *Config, account thor.Address, reward *big.Int) error {
	asset, err := s.assets(cfg.RewardAsset)
	if err != nil {
		return err
	}
	if cfg.RewardAsset == cfg.StakeAsset {
		balance, err := asset.BalanceOf(s.Address())
		if err != nil {
			return err
		}
		staked, err := s.TotalStaked()
		if err != nil {
			return err
		}
		var reserve *big.Int
		if balance.Cmp(staked) > 0 {
			reserve = new(big.Int).Sub(balance, staked)
		} else {
			reserve = bn.Zero()
		}
		if reserve.Cmp(reward) < 0 {
			return reverts.New(reverts.InsufficientFunds, "reward reserve %v, reward %v", reserve, reward)
		}
	}
	return asset.Transfer(s.Address(), account, reward)
}

// Withdraw returns the full deposit and resets the position. Rewards must be claimed first.
func (s *Staking) Withdraw(account thor.Address, now uint64) (*big.Int, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	pos, err := s.Position(account)
	if err != nil {
		return nil, err
	}
	if !lockElapsed(cfg, pos, now) {
		return nil, reverts.New(reverts.LockPeriodNotElapsed, "unlocks at %d", pos.DepositTime+cfg.LockPeriod)
	}
	if !pos.Claimed {
		return nil, reverts.New(reverts.RewardsNotClaimed, "claim rewards before withdrawal")
	}

	stake, err := s.assets(cfg.StakeAsset)
	if err != nil {
		return nil, err
	}
	if err := stake.Transfer(s.Address(), account, pos.Amount); err != nil {
		return nil, err
	}
	if err := s.totalStaked.Sub(pos.Amount); err != nil {
		return nil, errors.Wrap(err, "failed to sub total staked")
	}
	s.positions.Delete(account)
	s.sctx.Emit(tx.EventWithdrawn, pos.Amount, account)
	return pos.Amount, nil
}
