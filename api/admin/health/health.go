// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/tokenomy/api/restutil"
)

// Head reports the last committed invocation.
type Head interface {
	Head() (seq uint64, time uint64, err error)
}

// Index reports the newest indexed invocation.
type Index interface {
	NewestSeq() (uint64, error)
}

type Status struct {
	Healthy     bool   `json:"healthy"`
	HeadSeq     uint64 `json:"headSeq"`
	HeadTime    uint64 `json:"headTime"`
	IndexedSeq  uint64 `json:"indexedSeq"`
	ErrorString string `json:"error,omitempty"`
}

type Health struct {
	head  Head
	index Index
}

// New creates the health endpoint. index may be nil.
func New(head Head, index Index) *Health {
	return &Health{head, index}
}

// Status reads the committed head and the event index.
func (h *Health) Status(_ context.Context) *Status {
	var st Status
	seq, ts, err := h.head.Head()
	if err != nil {
		st.ErrorString = err.Error()
		return &st
	}
	st.HeadSeq, st.HeadTime = seq, ts
	if h.index != nil {
		indexed, err := h.index.NewestSeq()
		if err != nil {
			st.ErrorString = err.Error()
			return &st
		}
		st.IndexedSeq = indexed
	}
	st.Healthy = true
	return &st
}

func (h *Health) handleGetHealth(w http.ResponseWriter, r *http.Request) error {
	st := h.Status(r.Context())
	if !st.Healthy {
		w.Header().Set("Content-Type", restutil.JSONContentType)
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	return restutil.WriteJSON(w, st)
}

func (h *Health) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /admin/health").
		HandlerFunc(restutil.WrapHandlerFunc(h.handleGetHealth))
}
