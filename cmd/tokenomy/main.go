// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/vechain/tokenomy/api"
	"github.com/vechain/tokenomy/log"
	"github.com/vechain/tokenomy/metrics"
	"github.com/vechain/tokenomy/runtime"
	"github.com/vechain/tokenomy/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Tokenomy",
		Usage:     "Token ledger, vesting schedule and staking pool service",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			genesisFlag,
			launchTimeFlag,
			dataDirFlag,
			persistFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiLogsLimitFlag,
			apiSlowQueriesThresholdFlag,
			enableAPILogsFlag,
			pprofFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
			ntpServerFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "dump-genesis",
				Usage: "print the genesis in use as yaml",
				Flags: []cli.Flag{
					genesisFlag,
					launchTimeFlag,
				},
				Action: dumpGenesisAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)

	gene, _, err := selectGenesis(ctx)
	if err != nil {
		return err
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	mainDB, logDB, instanceDir, err := openDatabases(ctx, gene)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing log database..."); logDB.Close() }()
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	rt := runtime.New(state.NewStater(mainDB), logDB)
	if _, err := gene.Apply(exitSignal, rt); err != nil {
		return err
	}

	var apiLogs atomic.Bool
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler, closeSubs := api.New(rt, logDB, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		PprofOn:              ctx.Bool(pprofFlag.Name),
		EnableReqLogger:      &apiLogs,
		SlowQueriesThreshold: ctx.Duration(apiSlowQueriesThresholdFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		LogsLimit:            ctx.Uint64(apiLogsLimitFlag.Name),
	})
	defer func() { logger.Info("closing API subscriptions..."); closeSubs() }()

	apiURL, stopAPI, err := startAPIServer(ctx, handler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	var metricsURL string
	if ctx.Bool(enableMetricsFlag.Name) {
		if err := runtime.RegisterMetrics(rt); err != nil {
			return err
		}
		url, stop, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); stop() }()
		metricsURL = url
	}

	var adminURL string
	if ctx.Bool(enableAdminFlag.Name) {
		url, stop, err := api.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, &apiLogs, rt, logDB)
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); stop() }()
		adminURL = url
	}

	printStartupMessage(gene, rt, instanceDir, apiURL, metricsURL, adminURL)

	if server := ctx.String(ntpServerFlag.Name); server != "" {
		go checkClockOffset(server, time.Second)
	}

	<-exitSignal.Done()
	return nil
}

func dumpGenesisAction(ctx *cli.Context) error {
	_, custom, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(custom)
}
