// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/lockstake/api/custody"
	"github.com/vechain/lockstake/api/events"
	"github.com/vechain/lockstake/api/middleware"
	"github.com/vechain/lockstake/api/positions"
	"github.com/vechain/lockstake/api/tiers"
	"github.com/vechain/lockstake/log"
	"github.com/vechain/lockstake/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	EventsLimit          uint64
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	Log5xxErrors         bool
	EnableMetrics        bool
	SoloMode             bool // enables the credit faucet
}

// New return api router
func New(rt *runtime.Runtime, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}
	if opts.EventsLimit == 0 {
		opts.EventsLimit = 1000
	}
	if opts.EnableReqLogger == nil {
		opts.EnableReqLogger = &atomic.Bool{}
	}

	router := mux.NewRouter()

	positions.New(rt).
		Mount(router, "/positions")
	custody.New(rt, opts.SoloMode).
		Mount(router, "/custody")
	tiers.New(rt.Tiers()).
		Mount(router, "/tiers")
	events.New(rt, opts.EventsLimit).
		Mount(router, "/events")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, opts.EnableReqLogger, opts.SlowQueriesThreshold, opts.Log5xxErrors))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	return handler.ServeHTTP
}
