// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/builtin/admin"
	"github.com/vechain/tokenomy/builtin/ledger"
	"github.com/vechain/tokenomy/builtin/staking"
	"github.com/vechain/tokenomy/builtin/vesting"
	"github.com/vechain/tokenomy/state"
	"github.com/vechain/tokenomy/thor"
)

// Builtin contracts binding.
var (
	Admin   = &adminContract{newContract("Admin")}
	Token   = &ledgerContract{newContract("Token")}
	Reward  = &ledgerContract{newContract("Reward")}
	Vesting = &vestingContract{newContract("Vesting")}
	Staking = &stakingContract{newContract("Staking")}
)

type (
	adminContract   struct{ *contract }
	ledgerContract  struct{ *contract }
	vestingContract struct{ *contract }
	stakingContract struct{ *contract }
)

// Ledgers lists the asset contracts.
func Ledgers() []*ledgerContract {
	return []*ledgerContract{Token, Reward}
}

// LookupLedger finds a ledger contract by name (case insensitive) or address.
func LookupLedger(nameOrAddress string) (*ledgerContract, bool) {
	for _, l := range Ledgers() {
		if strings.EqualFold(l.Name, nameOrAddress) {
			return l, true
		}
	}
	if addr, err := thor.ParseAddress(nameOrAddress); err == nil {
		for _, l := range Ledgers() {
			if l.Address == addr {
				return l, true
			}
		}
	}
	return nil, false
}

// LedgerAt returns the native ledger at addr.
func LedgerAt(state *state.State, addr thor.Address) (*ledger.Ledger, error) {
	for _, l := range Ledgers() {
		if l.Address == addr {
			return l.Native(state), nil
		}
	}
	return nil, errors.Errorf("no ledger at %v", addr)
}

func (a *adminContract) Native(state *state.State) *admin.Admin {
	return admin.New(a.Address, state)
}

func (l *ledgerContract) Native(state *state.State) *ledger.Ledger {
	return ledger.New(l.Address, state, Admin.Native(state))
}

func (v *vestingContract) Native(state *state.State) *vesting.Vesting {
	return vesting.New(v.Address, state, Admin.Native(state), func(addr thor.Address) (vesting.Asset, error) {
		return LedgerAt(state, addr)
	})
}

func (s *stakingContract) Native(state *state.State) *staking.Staking {
	return staking.New(s.Address, state, func(addr thor.Address) (staking.Asset, error) {
		return LedgerAt(state, addr)
	})
}
