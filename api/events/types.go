// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/tokenomy/api/restutil"
	"github.com/vechain/tokenomy/logdb"
	"github.com/vechain/tokenomy/thor"
)

type Range struct {
	From *uint64 `json:"from,omitempty"`
	To   *uint64 `json:"to,omitempty"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type EventCriteria struct {
	Address *thor.Address `json:"address,omitempty"`
	Name    string        `json:"name,omitempty"`
	Account *thor.Address `json:"account,omitempty"`
	Caller  *thor.Address `json:"caller,omitempty"`
}

type EventFilter struct {
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *Range           `json:"range"`
	Options     *Options         `json:"options"`
	Order       logdb.Order      `json:"order"`
}

type FilteredEvent struct {
	Seq      uint64                `json:"seq"`
	Index    uint32                `json:"index"`
	Time     uint64                `json:"time"`
	Caller   thor.Address          `json:"caller"`
	Op       string                `json:"op"`
	Address  thor.Address          `json:"address"`
	Name     string                `json:"name"`
	Accounts []thor.Address        `json:"accounts"`
	Amount   *math.HexOrDecimal256 `json:"amount,omitempty"`
}

func convertEventFilter(ef *EventFilter) *logdb.EventFilter {
	f := &logdb.EventFilter{
		Order: ef.Order,
	}
	if f.Order != logdb.DESC {
		f.Order = logdb.ASC
	}
	if r := ef.Range; r != nil && (r.From != nil || r.To != nil) {
		f.Range = &logdb.Range{}
		if r.From != nil {
			f.Range.From = *r.From
		}
		if r.To != nil {
			f.Range.To = *r.To
		} else if f.Range.From == 0 {
			f.Range = nil
		}
	}
	if ef.Options != nil {
		f.Options = &logdb.Options{
			Offset: ef.Options.Offset,
			Limit:  ef.Options.Limit,
		}
	}
	for _, c := range ef.CriteriaSet {
		f.CriteriaSet = append(f.CriteriaSet, &logdb.EventCriteria{
			Address: c.Address,
			Name:    c.Name,
			Account: c.Account,
			Caller:  c.Caller,
		})
	}
	return f
}

// NewFilteredEvent converts an indexed event.
func NewFilteredEvent(e *logdb.Event) *FilteredEvent {
	fe := &FilteredEvent{
		Seq:      e.Seq,
		Index:    e.Index,
		Time:     e.Time,
		Caller:   e.Caller,
		Op:       e.Op,
		Address:  e.Address,
		Name:     e.Name,
		Accounts: make([]thor.Address, 0, len(e.Accounts)),
		Amount:   restutil.HexOrDecimal(e.Amount),
	}
	for _, acc := range e.Accounts {
		if acc != nil {
			fe.Accounts = append(fe.Accounts, *acc)
		}
	}
	return fe
}
