// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/lockstake/api"
	"github.com/vechain/lockstake/api/admin"
	"github.com/vechain/lockstake/clock"
	"github.com/vechain/lockstake/health"
	"github.com/vechain/lockstake/journal"
	"github.com/vechain/lockstake/kv"
	"github.com/vechain/lockstake/log"
	"github.com/vechain/lockstake/metrics"
	"github.com/vechain/lockstake/runtime"
	"github.com/vechain/lockstake/staker/tier"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "stakerd")
)

const defaultMaxClockOffset = 10 * time.Second

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
		Name:      "stakerd",
		Usage:     "Tiered lock staking engine",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiEventsLimitFlag,
			enableAPILogsFlag,
			apiSlowQueriesThresholdFlag,
			apiLog5xxErrorsFlag,
			verbosityFlag,
			jsonLogsFlag,
			logFormatFlag,
			policyFileFlag,
			cacheFlag,
			disableSolvencyCheckFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
			ntpServerFlag,
			maxClockOffsetFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "solo",
				Usage: "staking engine for test & dev",
				Flags: []cli.Flag{
					dataDirFlag,
					apiAddrFlag,
					apiCorsFlag,
					apiTimeoutFlag,
					apiEventsLimitFlag,
					enableAPILogsFlag,
					verbosityFlag,
					jsonLogsFlag,
					logFormatFlag,
					policyFileFlag,
					cacheFlag,
					disableSolvencyCheckFlag,
					enableMetricsFlag,
					metricsAddrFlag,
					enableAdminFlag,
					adminAddrFlag,
					persistFlag,
					faucetFlag,
				},
				Action: soloAction,
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

	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}

	tiers, err := loadTiers(ctx)
	if err != nil {
		return err
	}
	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return err
	}
	mainDB, err := openMainDB(dataDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	jnl, err := openJournal(dataDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing journal..."); jnl.Close() }()

	seed, err := loadAuthoritySeed(dataDir)
	if err != nil {
		return err
	}

	return run(exitSignal, ctx, &node{
		logLevel: logLevel,
		store:    mainDB,
		journal:  jnl,
		tiers:    tiers,
		seed:     seed,
		dataDir:  dataDir,
		ntp:      ctx.String(ntpServerFlag.Name),
	})
}

func soloAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}

	tiers, err := loadTiers(ctx)
	if err != nil {
		return err
	}

	n := &node{
		logLevel: logLevel,
		tiers:    tiers,
		faucet:   ctx.Bool(faucetFlag.Name),
	}
	if ctx.Bool(persistFlag.Name) {
		if n.dataDir, err = makeDataDir(ctx); err != nil {
			return err
		}
		mainDB, err := openMainDB(n.dataDir)
		if err != nil {
			return err
		}
		defer func() { logger.Info("closing main database..."); mainDB.Close() }()
		if n.journal, err = openJournal(n.dataDir); err != nil {
			return err
		}
		if n.seed, err = loadAuthoritySeed(n.dataDir); err != nil {
			return err
		}
		n.store = mainDB
	} else {
		n.dataDir = "Memory"
		mainDB, err := openMemMainDB()
		if err != nil {
			return err
		}
		defer func() { logger.Info("closing main database..."); mainDB.Close() }()
		if n.journal, err = journal.NewMem(); err != nil {
			return err
		}
		if n.seed, err = newAuthoritySeed(); err != nil {
			return err
		}
		n.store = mainDB
	}
	defer func() { logger.Info("closing journal..."); n.journal.Close() }()

	return run(exitSignal, ctx, n)
}

type node struct {
	logLevel *slog.LevelVar
	store    kv.Store
	journal  *journal.Journal
	tiers    *tier.Table
	seed     []byte
	dataDir  string
	faucet   bool
	ntp      string
}

func run(exitSignal context.Context, ctx *cli.Context, n *node) error {
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	maxOffset := ctx.Duration(maxClockOffsetFlag.Name)
	if maxOffset == 0 {
		maxOffset = defaultMaxClockOffset
	}
	healthStatus := health.New(maxOffset)

	rt, err := runtime.New(n.store, n.journal, clock.NewSystem(), n.tiers, runtime.Options{
		SolvencyCheck: !ctx.Bool(disableSolvencyCheckFlag.Name),
		CacheSize:     ctx.Int(cacheFlag.Name),
		AuthoritySeed: n.seed,
		Health:        healthStatus,
	})
	if err != nil {
		return err
	}
	if _, err := rt.Initialize(exitSignal); err != nil {
		return err
	}

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))
	handler := api.New(rt, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		EventsLimit:          ctx.Uint64(apiEventsLimitFlag.Name),
		EnableReqLogger:      apiLogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		SoloMode:             n.faucet,
	})

	apiURL, stopAPI, err := startAPIServer(ctx.String(apiAddrFlag.Name), handler, time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		url, stop, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); stop() }()
		metricsURL = url
	}

	adminURL := ""
	if ctx.Bool(enableAdminFlag.Name) {
		url, stop, err := startAdminServer(ctx.String(adminAddrFlag.Name), admin.New(n.logLevel, healthStatus, apiLogs))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); stop() }()
		adminURL = url
	}

	printStartupMessage(n, rt, apiURL, metricsURL, adminURL)

	g, gctx := errgroup.WithContext(exitSignal)
	if n.ntp != "" {
		g.Go(func() error {
			watchClock(gctx, n.ntp, maxOffset, healthStatus)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})
	return g.Wait()
}

// watchClock checks the local clock against the NTP server until ctx is done.
func watchClock(ctx context.Context, host string, maxOffset time.Duration, h *health.Health) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		if offset, err := clock.CheckOffset(nil, host, maxOffset); err == nil {
			h.ClockOffset(offset)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
