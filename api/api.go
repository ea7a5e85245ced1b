// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/tokenomy/api/administrator"
	"github.com/vechain/tokenomy/api/events"
	"github.com/vechain/tokenomy/api/middleware"
	"github.com/vechain/tokenomy/api/staking"
	"github.com/vechain/tokenomy/api/subscriptions"
	"github.com/vechain/tokenomy/api/tokens"
	"github.com/vechain/tokenomy/api/vesting"
	"github.com/vechain/tokenomy/log"
	"github.com/vechain/tokenomy/logdb"
	"github.com/vechain/tokenomy/runtime"
)

var logger = log.WithContext("pkg", "api")

const defaultLogsLimit = 1000

type Options struct {
	AllowedOrigins       string
	PprofOn              bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
	LogsLimit            uint64
}

// New return api router and a function ending long-lived subscriptions
func New(rt *runtime.Runtime, logDB *logdb.LogDB, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}
	logsLimit := opts.LogsLimit
	if logsLimit == 0 {
		logsLimit = defaultLogsLimit
	}
	reqLogger := opts.EnableReqLogger
	if reqLogger == nil {
		reqLogger = new(atomic.Bool)
	}

	router := mux.NewRouter()

	administrator.New(rt).
		Mount(router, "/admin")
	tokens.New(rt).
		Mount(router, "/tokens")
	vesting.New(rt).
		Mount(router, "/vesting")
	staking.New(rt).
		Mount(router, "/staking")
	if logDB != nil {
		events.New(logDB, logsLimit).
			Mount(router, "/logs/event")
	}
	subs := subscriptions.New(rt, origins)
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, reqLogger, opts.SlowQueriesThreshold))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	return handler.ServeHTTP, subs.Close
}
