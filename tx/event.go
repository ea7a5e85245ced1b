// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"math/big"

	"github.com/vechain/tokenomy/thor"
)

// Names of observable records.
const (
	EventTransfer             = "Transfer"
	EventApproval             = "Approval"
	EventRightsGranted        = "RightsGranted"
	EventTokensWithdrawn      = "TokensWithdrawn"
	EventDeposited            = "Deposited"
	EventRewardsClaimed       = "RewardsClaimed"
	EventWithdrawn            = "Withdrawn"
	EventOwnershipTransferred = "OwnershipTransferred"
)

// Event is an observable record emitted by a builtin contract.
// Accounts holds the indexed participants in declaration order, e.g. (from, to) for Transfer.
type Event struct {
	Address  thor.Address   `json:"address"`
	Name     string         `json:"name"`
	Accounts []thor.Address `json:"accounts"`
	Amount   *big.Int       `json:"amount,omitempty"`
	Time     uint64         `json:"time,omitempty"`
}

// NewEvent creates an event.
func NewEvent(contract thor.Address, name string, amount *big.Int, accounts ...thor.Address) *Event {
	var cpy *big.Int
	if amount != nil {
		cpy = new(big.Int).Set(amount)
	}
	return &Event{
		Address:  contract,
		Name:     name,
		Accounts: accounts,
		Amount:   cpy,
	}
}

// Account returns the i-th indexed account, or the null account if absent.
func (e *Event) Account(i int) thor.Address {
	if i < len(e.Accounts) {
		return e.Accounts[i]
	}
	return thor.NullAddress
}

func (e *Event) String() string {
	return fmt.Sprintf("%v(%v, amount=%v) @%v", e.Name, e.Accounts, e.Amount, e.Address)
}

// Events slice of events.
type Events []*Event

// Filter returns events with the given name.
func (es Events) Filter(name string) Events {
	var out Events
	for _, e := range es {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
