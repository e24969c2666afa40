// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/lockstake/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the state database and the event journal",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8679",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	apiEventsLimitFlag = cli.Uint64Flag{
		Name:  "api-events-limit",
		Value: 1000,
		Usage: "limit the number of events returned by /events API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Usage: "all queries with duration (in milliseconds) over this threshold will be logged",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx-errors",
		Usage: "log all requests answered with a server error",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format, same as --log-format=json",
	}
	logFormatFlag = cli.StringFlag{
		Name:  "log-format",
		Value: string(log.FormatTerminal),
		Usage: "log output format (terminal, json, logfmt)",
	}
	policyFileFlag = cli.StringFlag{
		Name:  "policy-file",
		Usage: "YAML file with the lock policy tiers (built-in tiers if empty)",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 65536,
		Usage: "number of state slots kept in the read cache",
	}
	disableSolvencyCheckFlag = cli.BoolFlag{
		Name:  "disable-solvency-check",
		Usage: "let reward payouts fail at transfer time instead of checking the reserve first",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "enables admin server",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin service listening address",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Value: "pool.ntp.org",
		Usage: "NTP server used to check the local clock (disabled if empty)",
	}
	maxClockOffsetFlag = cli.DurationFlag{
		Name:  "max-clock-offset",
		Value: 0,
		Usage: "clock offset above which the node reports unhealthy (defaults to 10s)",
	}

	// solo mode only
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "state storage option, if set data will be saved to disk",
	}
	faucetFlag = cli.BoolFlag{
		Name:  "faucet",
		Usage: "enable the credit endpoint minting external balances",
	}
)
