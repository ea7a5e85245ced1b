// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/builtin/reverts"
	"github.com/vechain/tokenomy/builtin/solidity"
	"github.com/vechain/tokenomy/state"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
)

var slotAdministrator = thor.BytesToBytes32([]byte("administrator"))

// Admin implements the single administrator capability.
// A null administrator means the role has been renounced.
type Admin struct {
	sctx          *solidity.Context
	administrator *solidity.Raw[thor.Address]
}

func New(addr thor.Address, state *state.State) *Admin {
	sctx := solidity.NewContext(addr, state)
	return &Admin{
		sctx:          sctx,
		administrator: solidity.NewRaw[thor.Address](sctx, slotAdministrator),
	}
}

// Initialize sets the first administrator.
func (a *Admin) Initialize(administrator thor.Address) error {
	if administrator.IsZero() {
		return reverts.New(reverts.ZeroAddress, "administrator is the null account")
	}
	current, err := a.Get()
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return errors.New("administrator already initialized")
	}
	return a.set(thor.NullAddress, administrator)
}

// Get returns the current administrator, the null account if renounced.
func (a *Admin) Get() (thor.Address, error) {
	addr, err := a.administrator.Get()
	if err != nil {
		return thor.Address{}, errors.Wrap(err, "failed to get administrator")
	}
	return addr, nil
}

func (a *Admin) IsAdministrator(caller thor.Address) (bool, error) {
	current, err := a.Get()
	if err != nil {
		return false, err
	}
	return !current.IsZero() && current == caller, nil
}

// Require reverts with NotAdministrator unless caller holds the role.
func (a *Admin) Require(caller thor.Address) error {
	ok, err := a.IsAdministrator(caller)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.New(reverts.NotAdministrator, "caller %v is not the administrator", caller)
	}
	return nil
}

// Transfer hands the role to a new account.
func (a *Admin) Transfer(caller, newAdministrator thor.Address) error {
	if err := a.Require(caller); err != nil {
		return err
	}
	if newAdministrator.IsZero() {
		return reverts.New(reverts.ZeroAddress, "new administrator is the null account")
	}
	return a.set(caller, newAdministrator)
}

// Renounce leaves the role empty. Privileged operations are unreachable afterwards.
func (a *Admin) Renounce(caller thor.Address) error {
	if err := a.Require(caller); err != nil {
		return err
	}
	a.administrator.Delete()
	a.sctx.Emit(tx.EventOwnershipTransferred, nil, caller, thor.NullAddress)
	return nil
}

func (a *Admin) set(previous, next thor.Address) error {
	if err := a.administrator.Set(next); err != nil {
		return errors.Wrap(err, "failed to set administrator")
	}
	a.sctx.Emit(tx.EventOwnershipTransferred, nil, previous, next)
	return nil
}
