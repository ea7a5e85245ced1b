// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/tokenomy/api/admin"
	"github.com/vechain/tokenomy/api/admin/health"
)

// StartAdminServer serves the operator endpoints on their own listener.
// It returns the base url and a function stopping the server.
func StartAdminServer(addr string, logLevel *slog.LevelVar, apiLogs *atomic.Bool, head health.Head, index health.Index) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", addr)
	}

	srv := &http.Server{
		Handler:           admin.New(logLevel, apiLogs, head, index),
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
	}
	var g errgroup.Group
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("admin server stopped", "err", err)
		}
		return nil
	})
	return "http://" + listener.Addr().String() + "/admin", func() {
		srv.Close()
		g.Wait()
	}, nil
}
