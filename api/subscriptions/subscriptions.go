// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/vechain/tokenomy/api/restutil"
	"github.com/vechain/tokenomy/log"
	"github.com/vechain/tokenomy/logdb"
	"github.com/vechain/tokenomy/metrics"
	"github.com/vechain/tokenomy/runtime"
	"github.com/vechain/tokenomy/tx"
)

const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second
	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second
	// send pings to peer with this period, must be less than pongWait
	pingPeriod = (pongWait * 7) / 10
	// receipts handed over by the runtime and not yet written to the peer
	receiptBacklog = 16
)

var (
	logger = log.WithContext("pkg", "subscriptions")

	metricActiveCount = metrics.LazyLoadGaugeVec("api_active_websocket_count", []string{"subject"})
)

type Subscriptions struct {
	rt        *runtime.Runtime
	upgrader  *websocket.Upgrader
	done      chan struct{}
	closeOnce sync.Once
}

type messageFunc func(r *tx.Receipt, criteria *logdb.EventCriteria) []any

// New creates the subscription endpoints. Origins follow the CORS setting, "*" allows any.
func New(rt *runtime.Runtime, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		rt: rt,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || strings.EqualFold(allowed, origin) {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

// Close ends all active subscriptions.
// It is safe to call more than once.
func (s *Subscriptions) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *Subscriptions) handle(subject string, messages messageFunc) restutil.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		criteria, err := parseCriteria(req)
		if err != nil {
			return err
		}
		// subscribe before the handshake completes so no receipt committed after it is missed
		ch := make(chan *tx.Receipt, receiptBacklog)
		sub := s.rt.SubscribeReceipts(ch)
		defer sub.Unsubscribe()

		conn, err := s.upgrader.Upgrade(w, req, nil)
		if err != nil {
			// the upgrader already replied
			logger.Debug("upgrade failed", "subject", subject, "err", err)
			return nil
		}
		defer conn.Close()

		labels := map[string]string{"subject": subject}
		metricActiveCount().AddWithLabel(1, labels)
		defer metricActiveCount().AddWithLabel(-1, labels)

		if err := s.pipe(conn, ch, sub, criteria, messages); err != nil {
			logger.Debug("subscription closed", "subject", subject, "err", err)
		}
		return nil
	}
}

// pipe forwards committed receipts to conn until the peer leaves or the server closes.
func (s *Subscriptions) pipe(
	conn *websocket.Conn,
	ch <-chan *tx.Receipt,
	sub event.Subscription,
	criteria *logdb.EventCriteria,
	messages messageFunc,
) error {
	closed := make(chan struct{})
	conn.SetReadLimit(1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			// incoming messages are discarded, reading drives the pong handler
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-s.done:
			return conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
		case <-closed:
			return nil
		case err := <-sub.Err():
			if errors.Is(err, runtime.ErrSubscriberLagging) {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "subscriber too slow"),
					time.Now().Add(writeWait))
			}
			return err
		case <-pingTicker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		case receipt := <-ch:
			for _, msg := range messages(receipt, criteria) {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(msg); err != nil {
					return err
				}
			}
		}
	}
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/event").
		Methods(http.MethodGet).
		Name("WS /subscriptions/event").
		HandlerFunc(restutil.WrapHandlerFunc(s.handle("event", eventMessages)))
	sub.Path("/receipt").
		Methods(http.MethodGet).
		Name("WS /subscriptions/receipt").
		HandlerFunc(restutil.WrapHandlerFunc(s.handle("receipt", receiptMessages)))
}
