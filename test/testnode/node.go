// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testnode

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"github.com/vechain/tokenomy/api"
	"github.com/vechain/tokenomy/genesis"
	"github.com/vechain/tokenomy/logdb"
	"github.com/vechain/tokenomy/lvldb"
	"github.com/vechain/tokenomy/runtime"
	"github.com/vechain/tokenomy/state"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
)

// Node is an in-memory token system with a manual clock and an optional API server.
type Node struct {
	db        *lvldb.LevelDB
	logDB     *logdb.LogDB
	rt        *runtime.Runtime
	genesis   *genesis.Genesis
	logsLimit uint64

	now       atomic.Uint64
	apiServer *httptest.Server
	closeSubs func()
}

func newNode(gen *genesis.Genesis, launchTime, logsLimit uint64) (*Node, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	logDB, err := logdb.NewMem()
	if err != nil {
		db.Close()
		return nil, err
	}
	n := &Node{
		db:        db,
		logDB:     logDB,
		genesis:   gen,
		logsLimit: logsLimit,
	}
	n.now.Store(launchTime)
	n.rt = runtime.New(state.NewStater(db), logDB).SetClock(n.now.Load)

	if _, err := gen.Apply(context.Background(), n.rt); err != nil {
		n.Close()
		return nil, err
	}
	return n, nil
}

func (n *Node) Runtime() *runtime.Runtime   { return n.rt }
func (n *Node) LogDB() *logdb.LogDB         { return n.logDB }
func (n *Node) Genesis() *genesis.Genesis   { return n.genesis }
func (n *Node) Administrator() thor.Address { return n.genesis.Administrator() }

// Now returns the clock reading.
func (n *Node) Now() uint64 {
	return n.now.Load()
}

// SetTime moves the clock. The runtime never goes behind its last committed invocation.
func (n *Node) SetTime(t uint64) {
	n.now.Store(t)
}

// Advance moves the clock forward by d.
func (n *Node) Advance(d time.Duration) {
	n.now.Add(uint64(d.Seconds()))
}

// Exec runs fn as one invocation by caller.
func (n *Node) Exec(caller thor.Address, op string, fn runtime.Func) (*tx.Receipt, error) {
	return n.rt.Exec(context.Background(), caller, op, fn)
}

// Start serves the API.
func (n *Node) Start() error {
	if n.apiServer != nil {
		return errors.New("node is already running")
	}
	handler, closeSubs := api.New(n.rt, n.logDB, api.Options{
		AllowedOrigins:  "*",
		EnableReqLogger: &atomic.Bool{},
		LogsLimit:       n.logsLimit,
	})
	n.apiServer = httptest.NewServer(handler)
	n.closeSubs = closeSubs
	return nil
}

// APIServer returns the node api server, nil until started.
func (n *Node) APIServer() *httptest.Server {
	return n.apiServer
}

// Close stops the API server and releases the stores.
func (n *Node) Close() {
	if n.apiServer != nil {
		n.closeSubs()
		n.apiServer.Close()
		n.apiServer = nil
	}
	n.logDB.Close()
	n.db.Close()
}
