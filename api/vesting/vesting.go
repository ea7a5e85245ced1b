// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/api/restutil"
	"github.com/vechain/tokenomy/builtin"
	builtinvesting "github.com/vechain/tokenomy/builtin/vesting"
	"github.com/vechain/tokenomy/runtime"
	"github.com/vechain/tokenomy/xenv"
)

type Vesting struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Vesting {
	return &Vesting{rt}
}

func (v *Vesting) handleGetSchedule(w http.ResponseWriter, req *http.Request) error {
	var schedule *Schedule
	err := v.rt.Call(req.Context(), func(env *xenv.Environment) error {
		cfg, err := env.Vesting().Config()
		if errors.Is(err, builtinvesting.ErrNotInitialized) {
			return restutil.NotFound(err)
		}
		if err != nil {
			return err
		}
		schedule = &Schedule{
			Address:   builtin.Vesting.Address,
			StartTime: cfg.StartTime,
			EndTime:   cfg.EndTime,
			Asset:     cfg.Asset,
			Curve:     cfg.Curve,
			Now:       env.Now(),
		}
		return nil
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, schedule)
}

func (v *Vesting) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var account *Account
	err = v.rt.Call(req.Context(), func(env *xenv.Environment) error {
		sched := env.Vesting()
		acc, err := sched.Account(addr)
		if err != nil {
			return err
		}
		unlocked, err := sched.UnlockedAmount(addr, env.Now())
		if err != nil {
			return err
		}
		withdrawable, err := sched.Withdrawable(addr, env.Now())
		if err != nil {
			return err
		}
		account = &Account{
			Rights:       restutil.HexOrDecimal(acc.Rights),
			PaidOut:      restutil.HexOrDecimal(acc.PaidOut),
			Granted:      restutil.HexOrDecimal(acc.Granted),
			Unlocked:     restutil.HexOrDecimal(unlocked),
			Withdrawable: restutil.HexOrDecimal(withdrawable),
		}
		return nil
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, account)
}

func (v *Vesting) handleGrant(w http.ResponseWriter, req *http.Request) error {
	var body GrantRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	caller, err := restutil.RequireAddress(body.Caller, "caller")
	if err != nil {
		return err
	}
	account, err := restutil.RequireAddress(body.Account, "account")
	if err != nil {
		return err
	}
	amount, err := restutil.RequireAmount(body.Amount, "amount")
	if err != nil {
		return err
	}
	receipt, err := v.rt.Exec(req.Context(), caller, "vesting.grant", func(env *xenv.Environment) error {
		return env.Vesting().GrantRights(env.Caller(), account, amount, env.Now())
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.NewResult(receipt, nil))
}

func (v *Vesting) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	var body restutil.Invocation
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	caller, err := restutil.RequireAddress(body.Caller, "caller")
	if err != nil {
		return err
	}
	var paid *big.Int
	receipt, err := v.rt.Exec(req.Context(), caller, "vesting.withdraw", func(env *xenv.Environment) (err error) {
		paid, err = env.Vesting().Withdraw(env.Caller(), env.Now())
		return
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.NewResult(receipt, paid))
}

func (v *Vesting) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /vesting").
		HandlerFunc(restutil.WrapHandlerFunc(v.handleGetSchedule))
	sub.Path("/grant").
		Methods(http.MethodPost).
		Name("POST /vesting/grant").
		HandlerFunc(restutil.WrapHandlerFunc(v.handleGrant))
	sub.Path("/withdraw").
		Methods(http.MethodPost).
		Name("POST /vesting/withdraw").
		HandlerFunc(restutil.WrapHandlerFunc(v.handleWithdraw))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /vesting/{address}").
		HandlerFunc(restutil.WrapHandlerFunc(v.handleGetAccount))
}
