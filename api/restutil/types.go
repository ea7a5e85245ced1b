// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
)

// Event is the json form of an observable record.
type Event struct {
	Address  thor.Address          `json:"address"`
	Name     string                `json:"name"`
	Accounts []thor.Address        `json:"accounts"`
	Amount   *math.HexOrDecimal256 `json:"amount,omitempty"`
	Time     uint64                `json:"time,omitempty"`
}

// Receipt is the json form of a committed invocation.
type Receipt struct {
	Seq    uint64       `json:"seq"`
	Time   uint64       `json:"time"`
	Caller thor.Address `json:"caller"`
	Op     string       `json:"op"`
	Events []*Event     `json:"events"`
}

// Result is the response of a write request.
// Amount is set by operations paying something out.
type Result struct {
	Amount  *math.HexOrDecimal256 `json:"amount,omitempty"`
	Receipt *Receipt              `json:"receipt"`
}

// Invocation is the common part of write requests.
type Invocation struct {
	Caller *thor.Address `json:"caller"`
}

// ConvertReceipt converts tx.Receipt to its json form.
func ConvertReceipt(r *tx.Receipt) *Receipt {
	out := &Receipt{
		Seq:    r.Seq,
		Time:   r.Time,
		Caller: r.Caller,
		Op:     r.Op,
		Events: make([]*Event, 0, len(r.Events)),
	}
	for _, ev := range r.Events {
		accounts := ev.Accounts
		if accounts == nil {
			accounts = []thor.Address{}
		}
		out.Events = append(out.Events, &Event{
			Address:  ev.Address,
			Name:     ev.Name,
			Accounts: accounts,
			Amount:   HexOrDecimal(ev.Amount),
			Time:     ev.Time,
		})
	}
	return out
}

// NewResult builds the response of a write request.
func NewResult(r *tx.Receipt, amount *big.Int) *Result {
	return &Result{
		Amount:  HexOrDecimal(amount),
		Receipt: ConvertReceipt(r),
	}
}

// HexOrDecimal returns the json form of an amount, nil stays nil.
func HexOrDecimal(v *big.Int) *math.HexOrDecimal256 {
	if v == nil {
		return nil
	}
	return (*math.HexOrDecimal256)(new(big.Int).Set(v))
}
