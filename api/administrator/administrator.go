// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package administrator

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/api/restutil"
	"github.com/vechain/tokenomy/runtime"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/xenv"
)

type Administrator struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Administrator {
	return &Administrator{rt}
}

// Status is the current holder of the administrator capability.
// Renounced is true once nobody holds it.
type Status struct {
	Administrator thor.Address `json:"administrator"`
	Renounced     bool         `json:"renounced"`
}

type TransferRequest struct {
	restutil.Invocation
	NewAdministrator *thor.Address `json:"newAdministrator"`
}

func (a *Administrator) handleGetAdministrator(w http.ResponseWriter, req *http.Request) error {
	var status Status
	err := a.rt.Call(req.Context(), func(env *xenv.Environment) error {
		addr, err := env.Admin().Get()
		if err != nil {
			return err
		}
		status.Administrator = addr
		status.Renounced = addr.IsZero()
		return nil
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, &status)
}

func (a *Administrator) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	var body TransferRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	caller, err := restutil.RequireAddress(body.Caller, "caller")
	if err != nil {
		return err
	}
	newAdmin, err := restutil.RequireAddress(body.NewAdministrator, "newAdministrator")
	if err != nil {
		return err
	}
	receipt, err := a.rt.Exec(req.Context(), caller, "admin.transfer", func(env *xenv.Environment) error {
		return env.Admin().Transfer(env.Caller(), newAdmin)
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.NewResult(receipt, nil))
}

func (a *Administrator) handleRenounce(w http.ResponseWriter, req *http.Request) error {
	var body restutil.Invocation
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	caller, err := restutil.RequireAddress(body.Caller, "caller")
	if err != nil {
		return err
	}
	receipt, err := a.rt.Exec(req.Context(), caller, "admin.renounce", func(env *xenv.Environment) error {
		return env.Admin().Renounce(env.Caller())
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.NewResult(receipt, nil))
}

func (a *Administrator) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /admin").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleGetAdministrator))
	sub.Path("/transfer").
		Methods(http.MethodPost).
		Name("POST /admin/transfer").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleTransfer))
	sub.Path("/renounce").
		Methods(http.MethodPost).
		Name("POST /admin/renounce").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleRenounce))
}
