// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/api/restutil"
	"github.com/vechain/tokenomy/builtin"
	builtinstaking "github.com/vechain/tokenomy/builtin/staking"
	"github.com/vechain/tokenomy/runtime"
	"github.com/vechain/tokenomy/xenv"
)

type Staking struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Staking {
	return &Staking{rt}
}

func (s *Staking) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	var pool *Pool
	err := s.rt.Call(req.Context(), func(env *xenv.Environment) error {
		cfg, err := env.Staking().Config()
		if errors.Is(err, builtinstaking.ErrNotInitialized) {
			return restutil.NotFound(err)
		}
		if err != nil {
			return err
		}
		total, err := env.Staking().TotalStaked()
		if err != nil {
			return err
		}
		pool = &Pool{
			Address:            builtin.Staking.Address,
			StartTime:          cfg.StartTime,
			LockPeriod:         cfg.LockPeriod,
			RewardRate:         cfg.RewardRate,
			StakeAsset:         cfg.StakeAsset,
			RewardAsset:        cfg.RewardAsset,
			RestartLockOnTopUp: cfg.RestartLockOnTopUp,
			RejectZeroReward:   cfg.RejectZeroReward,
			TotalStaked:        restutil.HexOrDecimal(total),
			Now:                env.Now(),
		}
		return nil
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, pool)
}

func (s *Staking) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var position *Position
	err = s.rt.Call(req.Context(), func(env *xenv.Environment) error {
		pool := env.Staking()
		pos, err := pool.Position(addr)
		if err != nil {
			return err
		}
		pending, err := pool.PendingReward(addr)
		if err != nil {
			return err
		}
		unlocked, err := pool.Unlocked(addr, env.Now())
		if err != nil {
			return err
		}
		position = &Position{
			Amount:        restutil.HexOrDecimal(pos.Amount),
			DepositTime:   pos.DepositTime,
			Claimed:       pos.Claimed,
			Unlocked:      unlocked,
			PendingReward: restutil.HexOrDecimal(pending),
		}
		return nil
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, position)
}

func (s *Staking) handleDeposit(w http.ResponseWriter, req *http.Request) error {
	var body DepositRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	caller, err := restutil.RequireAddress(body.Caller, "caller")
	if err != nil {
		return err
	}
	amount, err := restutil.RequireAmount(body.Amount, "amount")
	if err != nil {
		return err
	}
	receipt, err := s.rt.Exec(req.Context(), caller, "staking.deposit", func(env *xenv.Environment) error {
		return env.Staking().Deposit(env.Caller(), amount, env.Now())
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.NewResult(receipt, nil))
}

// payout handles claim and withdraw, both take only the caller and pay an amount.
func (s *Staking) payout(op string, fn func(env *xenv.Environment) (*big.Int, error)) restutil.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		var body restutil.Invocation
		if err := restutil.ParseJSON(req.Body, &body); err != nil {
			return restutil.BadRequest(errors.WithMessage(err, "body"))
		}
		caller, err := restutil.RequireAddress(body.Caller, "caller")
		if err != nil {
			return err
		}
		var paid *big.Int
		receipt, err := s.rt.Exec(req.Context(), caller, op, func(env *xenv.Environment) (err error) {
			paid, err = fn(env)
			return
		})
		if err != nil {
			return err
		}
		return restutil.WriteJSON(w, restutil.NewResult(receipt, paid))
	}
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /staking").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetPool))
	sub.Path("/deposit").
		Methods(http.MethodPost).
		Name("POST /staking/deposit").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleDeposit))
	sub.Path("/claim").
		Methods(http.MethodPost).
		Name("POST /staking/claim").
		HandlerFunc(restutil.WrapHandlerFunc(s.payout("staking.claim", func(env *xenv.Environment) (*big.Int, error) {
			return env.Staking().ClaimRewards(env.Caller(), env.Now())
		})))
	sub.Path("/withdraw").
		Methods(http.MethodPost).
		Name("POST /staking/withdraw").
		HandlerFunc(restutil.WrapHandlerFunc(s.payout("staking.withdraw", func(env *xenv.Environment) (*big.Int, error) {
			return env.Staking().Withdraw(env.Caller(), env.Now())
		})))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /staking/{address}").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetPosition))
}
