// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/runtime"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/xenv"
)

// Builder helper to build the genesis invocation.
type Builder struct {
	administrator thor.Address
	procs         []proc
}

type proc struct {
	name string
	fn   runtime.Func
}

// Administrator sets the caller the genesis invocation runs as.
func (b *Builder) Administrator(addr thor.Address) *Builder {
	b.administrator = addr
	return b
}

// State adds a named state process.
func (b *Builder) State(name string, fn runtime.Func) *Builder {
	b.procs = append(b.procs, proc{name, fn})
	return b
}

// Build returns all state processes as a single invocation body.
func (b *Builder) Build() runtime.Func {
	procs := append([]proc(nil), b.procs...)
	return func(env *xenv.Environment) error {
		for _, p := range procs {
			if err := p.fn(env); err != nil {
				return errors.Wrap(err, p.name)
			}
		}
		return nil
	}
}
