// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/builtin/reverts"
	"github.com/vechain/tokenomy/builtin/solidity"
	"github.com/vechain/tokenomy/log"
	"github.com/vechain/tokenomy/metrics"
	"github.com/vechain/tokenomy/state"
	"github.com/vechain/tokenomy/thor"
	"github.com/vechain/tokenomy/tx"
	"github.com/vechain/tokenomy/xenv"
)

var (
	logger = log.WithContext("pkg", "runtime")

	headAddress = thor.BytesToAddress([]byte("Runtime"))
	slotSeq     = thor.BytesToBytes32([]byte("seq"))
	slotTime    = thor.BytesToBytes32([]byte("time"))

	metricOpCount    = metrics.LazyLoadCounterVec("runtime_op_count", []string{"op", "outcome"})
	metricOpDuration = metrics.LazyLoadHistogramVec("runtime_op_duration_ms", []string{"op"}, metrics.BucketOps)
	metricRevertKind = metrics.LazyLoadCounterVec("runtime_revert_count", []string{"kind"})
	metricLagging    = metrics.LazyLoadCounter("runtime_lagging_subscriber_count")
)

// EventWriter indexes the events of committed invocations.
type EventWriter interface {
	Insert(ctx context.Context, receipt *tx.Receipt) error
}

// Clock returns the current time in unix seconds.
type Clock func() uint64

// SystemClock reads the wall clock.
func SystemClock() uint64 {
	return uint64(time.Now().Unix())
}

// Func is a contract invocation body. A returned error discards all of its effects.
type Func func(env *xenv.Environment) error

// Runtime executes invocations one at a time against the committed state.
// Each invocation runs to completion: either all of its storage writes and events are committed,
// or none are.
type Runtime struct {
	mu     sync.RWMutex
	stater *state.Stater
	events EventWriter
	clock  Clock
	feed   receiptFeed
}

// New create a new runtime. events may be nil.
func New(stater *state.Stater, events EventWriter) *Runtime {
	return &Runtime{
		stater: stater,
		events: events,
		clock:  SystemClock,
	}
}

// SetClock replaces the clock.
func (rt *Runtime) SetClock(clock Clock) *Runtime {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.clock = clock
	return rt
}

type head struct {
	seq  *solidity.Raw[uint64]
	time *solidity.Raw[uint64]
}

func newHead(st *state.State) *head {
	sctx := solidity.NewContext(headAddress, st)
	return &head{
		seq:  solidity.NewRaw[uint64](sctx, slotSeq),
		time: solidity.NewRaw[uint64](sctx, slotTime),
	}
}

func (h *head) get() (seq uint64, time uint64, err error) {
	if seq, err = h.seq.Get(); err != nil {
		return 0, 0, errors.Wrap(err, "get head seq")
	}
	if time, err = h.time.Get(); err != nil {
		return 0, 0, errors.Wrap(err, "get head time")
	}
	return
}

// Head returns the sequence and time of the last committed invocation.
func (rt *Runtime) Head() (seq uint64, time uint64, err error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return newHead(rt.stater.NewState()).get()
}

// now never goes behind the last committed invocation.
func (rt *Runtime) now(last uint64) uint64 {
	if now := rt.clock(); now > last {
		return now
	}
	return last
}

// Exec runs fn as one atomic invocation by caller and commits it on success.
func (rt *Runtime) Exec(ctx context.Context, caller thor.Address, op string, fn Func) (*tx.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	startTime := time.Now()
	defer func() {
		metricOpDuration().ObserveWithLabels(time.Since(startTime).Milliseconds(), map[string]string{"op": op})
	}()

	st := rt.stater.NewState()
	h := newHead(st)
	seq, last, err := h.get()
	if err != nil {
		return nil, err
	}
	invCtx := &xenv.InvocationContext{
		Seq:    seq + 1,
		Time:   rt.now(last),
		Caller: caller,
		Op:     op,
	}

	checkpoint := st.NewCheckpoint()
	if err := fn(xenv.New(st, invCtx)); err != nil {
		st.RevertTo(checkpoint)
		if kind := reverts.KindOf(err); kind != 0 {
			metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": "reverted"})
			metricRevertKind().AddWithLabel(1, map[string]string{"kind": kind.String()})
			logger.Debug("invocation reverted", "op", op, "caller", caller, "err", err)
		} else {
			metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": "failed"})
			logger.Warn("invocation failed", "op", op, "caller", caller, "err", err)
		}
		return nil, err
	}

	if err := h.seq.Set(invCtx.Seq); err != nil {
		return nil, errors.Wrap(err, "set head seq")
	}
	if err := h.time.Set(invCtx.Time); err != nil {
		return nil, errors.Wrap(err, "set head time")
	}
	receipt := &tx.Receipt{
		Seq:    invCtx.Seq,
		Time:   invCtx.Time,
		Caller: caller,
		Op:     op,
		Events: st.Events(),
	}
	if err := st.Stage().Commit(); err != nil {
		metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": "failed"})
		return nil, errors.Wrap(err, "commit state")
	}
	metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": "committed"})

	if rt.events != nil {
		// the state is already committed, a lost index entry must not fail the invocation
		if err := rt.events.Insert(context.WithoutCancel(ctx), receipt); err != nil {
			logger.Error("failed to index events", "seq", receipt.Seq, "err", err)
		}
	}
	logger.Debug("invocation committed", "op", op, "seq", receipt.Seq, "events", len(receipt.Events))
	// queued under the lock to keep sequence order, never waits on subscribers
	rt.feed.send(receipt)
	return receipt, nil
}

// SubscribeReceipts delivers every committed receipt to ch, in sequence order.
// A subscriber falling more than ReceiptBacklog receipts behind is dropped and
// ErrSubscriberLagging is reported on its Err channel.
func (rt *Runtime) SubscribeReceipts(ch chan<- *tx.Receipt) event.Subscription {
	return rt.feed.subscribe(ch)
}

// Call runs fn against the committed state without committing anything.
// The environment carries the time a new invocation would run at.
func (rt *Runtime) Call(ctx context.Context, fn Func) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	st := rt.stater.NewState()
	seq, last, err := newHead(st).get()
	if err != nil {
		return err
	}
	return fn(xenv.New(st, &xenv.InvocationContext{
		Seq:  seq,
		Time: rt.now(last),
	}))
}
