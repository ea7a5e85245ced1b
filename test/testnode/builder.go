// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testnode

import (
	"github.com/vechain/tokenomy/genesis"
)

// DefaultLaunchTime is the clock reading a node starts at unless set.
const DefaultLaunchTime uint64 = 1_700_000_000

// NodeBuilder implements the builder pattern for creating a test node instance.
type NodeBuilder struct {
	genesis    *genesis.Genesis
	launchTime uint64
	logsLimit  uint64
}

// NewNodeBuilder creates a new NodeBuilder with default configuration.
func NewNodeBuilder() *NodeBuilder {
	return &NodeBuilder{launchTime: DefaultLaunchTime, logsLimit: 100}
}

// WithGenesis sets the genesis applied on build.
// If not set, the devnet genesis opening at the launch time is used.
func (b *NodeBuilder) WithGenesis(gen *genesis.Genesis) *NodeBuilder {
	if gen == nil {
		panic("genesis cannot be nil")
	}
	b.genesis = gen
	return b
}

// WithLaunchTime sets the initial clock reading.
func (b *NodeBuilder) WithLaunchTime(t uint64) *NodeBuilder {
	b.launchTime = t
	return b
}

// WithLogsLimit sets the maximum number of events a filter may return.
func (b *NodeBuilder) WithLogsLimit(limit uint64) *NodeBuilder {
	b.logsLimit = limit
	return b
}

// Build creates a node with genesis applied.
func (b *NodeBuilder) Build() (*Node, error) {
	gen := b.genesis
	if gen == nil {
		gen = genesis.NewDevnet(b.launchTime)
	}
	return newNode(gen, b.launchTime, b.logsLimit)
}

// NewDefaultNode creates a new node with default configuration.
func NewDefaultNode() (*Node, error) {
	return NewNodeBuilder().Build()
}
