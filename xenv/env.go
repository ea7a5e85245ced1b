// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/vechain/tokenomy/builtin"
	"github.com/vechain/tokenomy/builtin/admin"
	"github.com/vechain/tokenomy/builtin/ledger"
	"github.com/vechain/tokenomy/builtin/staking"
	"github.com/vechain/tokenomy/builtin/vesting"
	"github.com/vechain/tokenomy/state"
	"github.com/vechain/tokenomy/thor"
)

// InvocationContext describes the invocation being executed.
type InvocationContext struct {
	Seq    uint64
	Time   uint64
	Caller thor.Address
	Op     string
}

// Environment an env to execute native contract methods.
type Environment struct {
	state  *state.State
	invCtx *InvocationContext
}

// New create a new env.
func New(state *state.State, invCtx *InvocationContext) *Environment {
	return &Environment{
		state:  state,
		invCtx: invCtx,
	}
}

func (env *Environment) State() *state.State                   { return env.state }
func (env *Environment) InvocationContext() *InvocationContext { return env.invCtx }
func (env *Environment) Caller() thor.Address                  { return env.invCtx.Caller }

// Now is the clock reading of the invocation, in unix seconds.
func (env *Environment) Now() uint64 { return env.invCtx.Time }

func (env *Environment) Admin() *admin.Admin       { return builtin.Admin.Native(env.state) }
func (env *Environment) Token() *ledger.Ledger     { return builtin.Token.Native(env.state) }
func (env *Environment) Reward() *ledger.Ledger    { return builtin.Reward.Native(env.state) }
func (env *Environment) Vesting() *vesting.Vesting { return builtin.Vesting.Native(env.state) }
func (env *Environment) Staking() *staking.Staking { return builtin.Staking.Native(env.state) }

// Ledger resolves an asset contract by address.
func (env *Environment) Ledger(addr thor.Address) (*ledger.Ledger, error) {
	return builtin.LedgerAt(env.state, addr)
}
