// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"context"

	"github.com/vechain/tokenomy/log"
	"github.com/vechain/tokenomy/runtime"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
)

var logger = log.WithContext("pkg", "genesis")

// OpGenesis names the genesis invocation.
const OpGenesis = "genesis"

// Genesis initial state of the token system.
type Genesis struct {
	builder *Builder
	name    string
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// Administrator returns the initial administrator.
func (g *Genesis) Administrator() thor.Address {
	return g.builder.administrator
}

// Apply runs the genesis invocation on an empty runtime.
// It returns a nil receipt if rt already holds committed state.
func (g *Genesis) Apply(ctx context.Context, rt *runtime.Runtime) (*tx.Receipt, error) {
	seq, _, err := rt.Head()
	if err != nil {
		return nil, err
	}
	if seq > 0 {
		logger.Debug("genesis already applied", "head", seq)
		return nil, nil
	}
	receipt, err := rt.Exec(ctx, g.builder.administrator, OpGenesis, g.builder.Build())
	if err != nil {
		return nil, err
	}
	logger.Info("genesis applied", "network", g.name, "events", len(receipt.Events))
	return receipt, nil
}
