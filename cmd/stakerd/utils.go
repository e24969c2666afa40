// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/lockstake/journal"
	"github.com/vechain/lockstake/log"
	"github.com/vechain/lockstake/lvldb"
	"github.com/vechain/lockstake/metrics"
	"github.com/vechain/lockstake/runtime"
	"github.com/vechain/lockstake/staker/tier"
)

const authoritySeedFile = "authority.key"

func initLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	logLevel := new(slog.LevelVar)
	logLevel.Set(log.FromLegacyLevel(int(ctx.Uint64(verbosityFlag.Name))))

	format, err := log.ParseFormat(ctx.String(logFormatFlag.Name))
	if err != nil {
		return nil, err
	}
	if ctx.Bool(jsonLogsFlag.Name) {
		format = log.FormatJSON
	}
	useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	log.SetDefault(log.NewLogger(log.NewHandler(format, os.Stderr, logLevel, useColor)))
	return logLevel, nil
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

func homeDir() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	usr, err := user.Current()
	if err != nil {
		return "", err
	}
	if usr.HomeDir != "" {
		return usr.HomeDir, nil
	}
	return os.Getwd()
}

func defaultDataDir() string {
	home, err := homeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".org.vechain.stakerd")
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

func loadTiers(ctx *cli.Context) (*tier.Table, error) {
	path := ctx.String(policyFileFlag.Name)
	if path == "" {
		return tier.Default(), nil
	}
	tiers, err := tier.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load policy file [%v]", path)
	}
	return tiers, nil
}

func openMainDB(dataDir string) (*lvldb.LevelDB, error) {
	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              16,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open main database [%v]", dir)
	}
	return db, nil
}

func openMemMainDB() (*lvldb.LevelDB, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, errors.Wrap(err, "open main database")
	}
	return db, nil
}

func openJournal(dataDir string) (*journal.Journal, error) {
	path := filepath.Join(dataDir, "journal.db")
	jnl, err := journal.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open journal [%v]", path)
	}
	return jnl, nil
}

func newAuthoritySeed() ([]byte, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// loadAuthoritySeed reads the seed the engine authorities are derived from,
// generating and storing a new one on first start.
func loadAuthoritySeed(dataDir string) ([]byte, error) {
	path := filepath.Join(dataDir, authoritySeedFile)
	data, err := os.ReadFile(path)
	if err == nil {
		seed, err := hexutil.Decode(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, errors.Wrapf(err, "decode authority seed [%v]", path)
		}
		return seed, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "read authority seed [%v]", path)
	}

	seed, err := newAuthoritySeed()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(hexutil.Encode(seed)), 0o600); err != nil {
		return nil, errors.Wrapf(err, "write authority seed [%v]", path)
	}
	return seed, nil
}

func handleAPITimeout(h http.Handler, timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestBodyLimit caps request bodies at 200KB.
func requestBodyLimit(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 200*1024)
		h.ServeHTTP(w, r)
	})
}

func startServer(addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen addr [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var g errgroup.Group
	g.Go(func() error {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			logger.Warn("server stopped", "addr", listener.Addr(), "error", err)
		}
		return nil
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		g.Wait()
	}, nil
}

func startAPIServer(addr string, handler http.Handler, timeout time.Duration) (string, func(), error) {
	if timeout > 0 {
		handler = handleAPITimeout(handler, timeout)
	}
	return startServer(addr, requestBodyLimit(handler))
}

func startMetricsServer(addr string) (string, func(), error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler())
	return startServer(addr, mux)
}

func startAdminServer(addr string, handler http.Handler) (string, func(), error) {
	return startServer(addr, handler)
}

func printStartupMessage(n *node, rt *runtime.Runtime, apiURL, metricsURL, adminURL string) {
	optional := func(url string) string {
		if url == "" {
			return "disabled"
		}
		return url
	}
	fmt.Printf(`Starting %v
    Tiers        [ %v ]
    Revision     [ %v ]
    Faucet       [ %v ]
    Instance dir [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
    Admin        [ %v ]
`,
		"Stakerd/"+fullVersion(),
		len(rt.Tiers().All()),
		rt.Revision(),
		n.faucet,
		n.dataDir,
		apiURL,
		optional(metricsURL),
		optional(adminURL))
}
