// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/tx"
)

// ReceiptBacklog is the number of receipts queued per subscriber.
const ReceiptBacklog = 256

// ErrSubscriberLagging is reported on Err of a subscription whose backlog overflowed.
// The subscription is dropped, receipts committed afterwards are not delivered to it.
var ErrSubscriberLagging = errors.New("receipt subscriber lagging")

type receiptSub struct {
	queue  chan *tx.Receipt
	lagged chan struct{}
}

// receiptFeed fans committed receipts out to subscribers without ever blocking the publisher.
type receiptFeed struct {
	mu   sync.Mutex
	subs map[*receiptSub]struct{}
}

func (f *receiptFeed) subscribe(ch chan<- *tx.Receipt) event.Subscription {
	rs := &receiptSub{
		queue:  make(chan *tx.Receipt, ReceiptBacklog),
		lagged: make(chan struct{}),
	}
	f.mu.Lock()
	if f.subs == nil {
		f.subs = make(map[*receiptSub]struct{})
	}
	f.subs[rs] = struct{}{}
	f.mu.Unlock()

	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer f.remove(rs)
		for {
			select {
			case r := <-rs.queue:
				select {
				case ch <- r:
				case <-rs.lagged:
					return ErrSubscriberLagging
				case <-quit:
					return nil
				}
			case <-rs.lagged:
				return ErrSubscriberLagging
			case <-quit:
				return nil
			}
		}
	})
}

func (f *receiptFeed) remove(rs *receiptSub) {
	f.mu.Lock()
	delete(f.subs, rs)
	f.mu.Unlock()
}

// send queues r for every subscriber, dropping those whose backlog is full.
func (f *receiptFeed) send(r *tx.Receipt) (nsent int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for rs := range f.subs {
		select {
		case rs.queue <- r:
			nsent++
		default:
			delete(f.subs, rs)
			close(rs.lagged)
			metricLagging().Add(1)
			logger.Warn("dropped lagging receipt subscriber", "seq", r.Seq)
		}
	}
	return
}
