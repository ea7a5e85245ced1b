// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/beevik/ntp"
	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/tokenomy/genesis"
	"github.com/vechain/tokenomy/log"
	"github.com/vechain/tokenomy/logdb"
	"github.com/vechain/tokenomy/lvldb"
	"github.com/vechain/tokenomy/metrics"
	tokenomyrt "github.com/vechain/tokenomy/runtime"
)

func initLogger(ctx *cli.Context) *slog.LevelVar {
	logLevel := new(slog.LevelVar)
	logLevel.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))
	log.SetDefault(log.NewHandler(os.Stderr, logLevel, ctx.Bool(jsonLogsFlag.Name)))
	return logLevel
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

// selectGenesis loads the genesis file if given, otherwise the devnet opening now.
func selectGenesis(ctx *cli.Context) (*genesis.Genesis, *genesis.CustomGenesis, error) {
	var custom *genesis.CustomGenesis
	if path := ctx.String(genesisFlag.Name); path != "" {
		gen, err := genesis.LoadCustomGenesis(path)
		if err != nil {
			return nil, nil, err
		}
		custom = gen
	} else {
		launchTime := ctx.Uint64(launchTimeFlag.Name)
		if launchTime == 0 {
			launchTime = uint64(time.Now().Unix())
		}
		custom = genesis.DevnetGenesis(launchTime)
	}

	gene, err := genesis.NewCustomNet(custom)
	if err != nil {
		return nil, nil, errors.Wrap(err, "build genesis")
	}
	return gene, custom, nil
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.tokenomy")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.tokenomy")
		default:
			return filepath.Join(home, ".org.vechain.tokenomy")
		}
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	instanceDir := filepath.Join(dataDir, "instance-"+gene.Name())
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

// openDatabases opens the state and event stores, in memory unless persisting.
func openDatabases(ctx *cli.Context, gene *genesis.Genesis) (*lvldb.LevelDB, *logdb.LogDB, string, error) {
	if !ctx.Bool(persistFlag.Name) {
		mainDB, err := lvldb.NewMem()
		if err != nil {
			return nil, nil, "", errors.Wrap(err, "open main database")
		}
		logDB, err := logdb.NewMem()
		if err != nil {
			mainDB.Close()
			return nil, nil, "", errors.Wrap(err, "open log database")
		}
		return mainDB, logDB, "Memory", nil
	}

	instanceDir, err := makeInstanceDir(ctx, gene)
	if err != nil {
		return nil, nil, "", err
	}

	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	dir := filepath.Join(instanceDir, "main.db")
	mainDB, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: 500,
	})
	if err != nil {
		return nil, nil, "", errors.Wrapf(err, "open main database [%v]", dir)
	}

	dir = filepath.Join(instanceDir, "logs.db")
	logDB, err := logdb.New(dir)
	if err != nil {
		mainDB.Close()
		return nil, nil, "", errors.Wrapf(err, "open log database [%v]", dir)
	}
	return mainDB, logDB, instanceDir, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 16 {
		sizeMB = 16
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/4 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 4)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

// checkClockOffset warns when the local clock drifts, vesting and staking windows follow it.
func checkClockOffset(server string, tolerance time.Duration) {
	resp, err := ntp.Query(server)
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > tolerance {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}

// requestBodyLimit limits the request body size to 200k.
func requestBodyLimit(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 200*1024)
		h.ServeHTTP(w, r)
	})
}

// handleAPITimeout bounds request handling, websocket subscriptions excluded.
func handleAPITimeout(h http.Handler, timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			h.ServeHTTP(w, r)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

func startAPIServer(ctx *cli.Context, handler http.Handler) (string, func(), error) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	if timeout := ctx.Uint64(apiTimeoutFlag.Name); timeout > 0 {
		handler = handleAPITimeout(handler, time.Duration(timeout)*time.Millisecond)
	}
	handler = requestBodyLimit(handler)

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	return "http://" + listener.Addr().String() + "/", serve(srv, listener), nil
}

func startMetricsServer(addr string) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen metrics API addr [%v]", addr)
	}

	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	handler := handlers.CompressHandler(router)

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	return "http://" + listener.Addr().String() + "/metrics", serve(srv, listener), nil
}

func serve(srv *http.Server, listener net.Listener) func() {
	var g errgroup.Group
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("server stopped", "addr", listener.Addr(), "err", err)
		}
		return nil
	})
	return func() {
		srv.Close()
		g.Wait()
	}
}

func printStartupMessage(
	gene *genesis.Genesis,
	rt *tokenomyrt.Runtime,
	instanceDir string,
	apiURL string,
	metricsURL string,
	adminURL string,
) {
	writeStartupMessage(os.Stdout, gene, rt, instanceDir, apiURL, metricsURL, adminURL)
}

func writeStartupMessage(
	w io.Writer,
	gene *genesis.Genesis,
	rt *tokenomyrt.Runtime,
	instanceDir string,
	apiURL string,
	metricsURL string,
	adminURL string,
) {
	seq, ts, err := rt.Head()
	head := fmt.Sprintf("#%v @%v", seq, time.Unix(int64(ts), 0).UTC().Format(time.RFC3339))
	if err != nil {
		head = "unknown: " + err.Error()
	}
	orNA := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "n/a"
		}
		return s
	}

	fmt.Fprintf(w, `Starting %v
    Network       [ %v ]
    Administrator [ %v ]
    Head          [ %v ]
    Instance dir  [ %v ]
    API portal    [ %v ]
    Metrics       [ %v ]
    Admin         [ %v ]
`,
		"Tokenomy/"+fullVersion(),
		gene.Name(),
		gene.Administrator(),
		head,
		instanceDir,
		apiURL,
		orNA(metricsURL),
		orNA(adminURL),
	)
}
