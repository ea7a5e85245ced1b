// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/vechain/tokenomy/state"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
)

// Context binds a builtin contract address to the state it reads and writes.
type Context struct {
	address thor.Address
	state   *state.State
}

func NewContext(address thor.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() thor.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Emit records an event on behalf of the contract.
func (c *Context) Emit(name string, amount *big.Int, accounts ...thor.Address) {
	c.state.AddEvent(tx.NewEvent(c.address, name, amount, accounts...))
}

// EmitAt records an event carrying a timestamp.
func (c *Context) EmitAt(name string, amount *big.Int, time uint64, accounts ...thor.Address) {
	ev := tx.NewEvent(c.address, name, amount, accounts...)
	ev.Time = time
	c.state.AddEvent(ev)
}
