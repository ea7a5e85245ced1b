// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
)

// Event represents tx.Event that can be stored in db.
type Event struct {
	Seq      uint64
	Index    uint32
	Time     uint64
	Caller   thor.Address
	Op       string
	Address  thor.Address // always a contract address
	Name     string
	Accounts [2]*thor.Address
	Amount   *big.Int
}

// newEvent converts tx.Event to Event.
func newEvent(receipt *tx.Receipt, index uint32, ev *tx.Event) *Event {
	out := &Event{
		Seq:     receipt.Seq,
		Index:   index,
		Time:    receipt.Time,
		Caller:  receipt.Caller,
		Op:      receipt.Op,
		Address: ev.Address,
		Name:    ev.Name,
		Amount:  ev.Amount,
	}
	if ev.Time != 0 {
		out.Time = ev.Time
	}
	for i := 0; i < len(ev.Accounts) && i < len(out.Accounts); i++ {
		acc := ev.Accounts[i]
		out.Accounts[i] = &acc
	}
	return out
}

// EventsOf converts the events of a receipt, in emission order.
func EventsOf(receipt *tx.Receipt) []*Event {
	out := make([]*Event, len(receipt.Events))
	for i, ev := range receipt.Events {
		out[i] = newEvent(receipt, uint32(i), ev)
	}
	return out
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds event time, inclusive. To below From means unbounded.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventCriteria fields are ANDed. Account matches either indexed account.
type EventCriteria struct {
	Address *thor.Address
	Name    string
	Account *thor.Address
	Caller  *thor.Address
}

// EventFilter criteria are ORed.
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order
}

// Match reports whether ev satisfies all fields of the criteria.
func (c *EventCriteria) Match(ev *Event) bool {
	if c.Address != nil && *c.Address != ev.Address {
		return false
	}
	if c.Name != "" && c.Name != ev.Name {
		return false
	}
	if c.Caller != nil && *c.Caller != ev.Caller {
		return false
	}
	if c.Account != nil {
		for _, acc := range ev.Accounts {
			if acc != nil && *acc == *c.Account {
				return true
			}
		}
		return false
	}
	return true
}
