// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/api/restutil"
	"github.com/vechain/tokenomy/builtin"
	"github.com/vechain/tokenomy/builtin/ledger"
	"github.com/vechain/tokenomy/runtime"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/xenv"
)

type Tokens struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Tokens {
	return &Tokens{rt}
}

// lookup resolves the {token} path variable, a ledger name or address.
func lookup(req *http.Request) (thor.Address, error) {
	name := mux.Vars(req)["token"]
	l, ok := builtin.LookupLedger(name)
	if !ok {
		return thor.Address{}, restutil.NotFound(errors.Errorf("token %q not found", name))
	}
	return l.Address, nil
}

func (t *Tokens) token(env *xenv.Environment, addr thor.Address) (*Token, error) {
	l, err := env.Ledger(addr)
	if err != nil {
		return nil, err
	}
	md, err := l.Metadata()
	if err != nil {
		return nil, err
	}
	supply, err := l.TotalSupply()
	if err != nil {
		return nil, err
	}
	return &Token{
		Name:        md.Name,
		Symbol:      md.Symbol,
		Decimals:    md.Decimals,
		Address:     addr,
		TotalSupply: restutil.HexOrDecimal(supply),
	}, nil
}

func (t *Tokens) handleGetTokens(w http.ResponseWriter, req *http.Request) error {
	tokens := make([]*Token, 0, len(builtin.Ledgers()))
	err := t.rt.Call(req.Context(), func(env *xenv.Environment) error {
		for _, l := range builtin.Ledgers() {
			tok, err := t.token(env, l.Address)
			if err != nil {
				return err
			}
			tokens = append(tokens, tok)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, tokens)
}

func (t *Tokens) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	addr, err := lookup(req)
	if err != nil {
		return err
	}
	var tok *Token
	if err := t.rt.Call(req.Context(), func(env *xenv.Environment) (err error) {
		tok, err = t.token(env, addr)
		return
	}); err != nil {
		return err
	}
	return restutil.WriteJSON(w, tok)
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := lookup(req)
	if err != nil {
		return err
	}
	account, err := restutil.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var balance Balance
	if err := t.rt.Call(req.Context(), func(env *xenv.Environment) error {
		l, err := env.Ledger(addr)
		if err != nil {
			return err
		}
		b, err := l.BalanceOf(account)
		if err != nil {
			return err
		}
		balance.Balance = restutil.HexOrDecimal(b)
		return nil
	}); err != nil {
		return err
	}
	return restutil.WriteJSON(w, &balance)
}

func (t *Tokens) handleGetAllowance(w http.ResponseWriter, req *http.Request) error {
	addr, err := lookup(req)
	if err != nil {
		return err
	}
	owner, err := restutil.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	spender, err := restutil.AddressVar(req, "spender")
	if err != nil {
		return err
	}
	var allowance Allowance
	if err := t.rt.Call(req.Context(), func(env *xenv.Environment) error {
		l, err := env.Ledger(addr)
		if err != nil {
			return err
		}
		a, err := l.Allowance(owner, spender)
		if err != nil {
			return err
		}
		allowance.Allowance = restutil.HexOrDecimal(a)
		return nil
	}); err != nil {
		return err
	}
	return restutil.WriteJSON(w, &allowance)
}

// operation binds the arguments of an OpRequest to a ledger call.
type operation func(l *ledger.Ledger, caller thor.Address, body *OpRequest) error

var operations = map[string]operation{
	"transfer": func(l *ledger.Ledger, caller thor.Address, body *OpRequest) error {
		return l.Transfer(caller, *body.To, restutil.Amount(body.Amount))
	},
	"approve": func(l *ledger.Ledger, caller thor.Address, body *OpRequest) error {
		return l.Approve(caller, *body.Spender, restutil.Amount(body.Amount))
	},
	"transferFrom": func(l *ledger.Ledger, caller thor.Address, body *OpRequest) error {
		return l.TransferFrom(*body.Owner, caller, *body.To, restutil.Amount(body.Amount))
	},
	"increaseAllowance": func(l *ledger.Ledger, caller thor.Address, body *OpRequest) error {
		return l.IncreaseAllowance(caller, *body.Spender, restutil.Amount(body.Amount))
	},
	"decreaseAllowance": func(l *ledger.Ledger, caller thor.Address, body *OpRequest) error {
		return l.DecreaseAllowance(caller, *body.Spender, restutil.Amount(body.Amount))
	},
	"mint": func(l *ledger.Ledger, caller thor.Address, body *OpRequest) error {
		return l.Mint(caller, *body.Account, restutil.Amount(body.Amount))
	},
	"burn": func(l *ledger.Ledger, caller thor.Address, body *OpRequest) error {
		return l.Burn(caller, *body.Account, restutil.Amount(body.Amount))
	},
}

// validate checks the arguments an operation reads are present.
func (body *OpRequest) validate(op string) error {
	if _, err := restutil.RequireAddress(body.Caller, "caller"); err != nil {
		return err
	}
	if _, err := restutil.RequireAmount(body.Amount, "amount"); err != nil {
		return err
	}
	var required map[string]*thor.Address
	switch op {
	case "transfer":
		required = map[string]*thor.Address{"to": body.To}
	case "approve", "increaseAllowance", "decreaseAllowance":
		required = map[string]*thor.Address{"spender": body.Spender}
	case "transferFrom":
		required = map[string]*thor.Address{"owner": body.Owner, "to": body.To}
	case "mint", "burn":
		required = map[string]*thor.Address{"account": body.Account}
	}
	for name, v := range required {
		if _, err := restutil.RequireAddress(v, name); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tokens) handleOperation(w http.ResponseWriter, req *http.Request) error {
	addr, err := lookup(req)
	if err != nil {
		return err
	}
	opName := mux.Vars(req)["op"]
	op, ok := operations[opName]
	if !ok {
		return restutil.NotFound(errors.Errorf("operation %q not found", opName))
	}
	var body OpRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := body.validate(opName); err != nil {
		return err
	}

	receipt, err := t.rt.Exec(req.Context(), *body.Caller, "token."+opName, func(env *xenv.Environment) error {
		l, err := env.Ledger(addr)
		if err != nil {
			return err
		}
		return op(l, env.Caller(), &body)
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.NewResult(receipt, nil))
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /tokens").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleGetTokens))
	sub.Path("/{token}").
		Methods(http.MethodGet).
		Name("GET /tokens/{token}").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleGetToken))
	sub.Path("/{token}/balances/{address}").
		Methods(http.MethodGet).
		Name("GET /tokens/{token}/balances/{address}").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleGetBalance))
	sub.Path("/{token}/allowances/{owner}/{spender}").
		Methods(http.MethodGet).
		Name("GET /tokens/{token}/allowances/{owner}/{spender}").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleGetAllowance))
	sub.Path("/{token}/{op}").
		Methods(http.MethodPost).
		Name("POST /tokens/{token}/{op}").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleOperation))
}
