// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/tokenomy/api/admin/apilogs"
	"github.com/vechain/tokenomy/api/admin/health"
	"github.com/vechain/tokenomy/api/admin/loglevel"
)

// New returns the operator router: log level, request logging switch and health.
func New(logLevel *slog.LevelVar, apiLogs *atomic.Bool, head health.Head, index health.Index) http.HandlerFunc {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	loglevel.New(logLevel).Mount(sub, "/loglevel")
	apilogs.New(apiLogs).Mount(sub, "/apilogs")
	health.New(head, index).Mount(sub, "/health")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
