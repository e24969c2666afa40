// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"time"

	"github.com/vechain/lockstake/cache"
	"github.com/vechain/lockstake/metrics"
	"github.com/vechain/lockstake/staker"
	"github.com/vechain/lockstake/staker/globalstats"
	"github.com/vechain/lockstake/staker/reverts"
)

var (
	metricOpCount        = metrics.LazyLoadCounterVec("staker_op_count", []string{"op", "outcome"})
	metricOpDuration     = metrics.LazyLoadHistogramVec("staker_op_duration_us", []string{"op"}, metrics.BucketOpMicros)
	metricCustodyBalance = metrics.LazyLoadGaugeVec("custody_balance", []string{"pool"})
	metricActive         = metrics.LazyLoadGauge("active_positions")
	metricCacheHitRate   = metrics.LazyLoadGauge("state_cache_hit_permille")
)

func observeOp(op string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		if kind := reverts.KindOf(err); kind != 0 {
			outcome = kind.String()
		} else {
			outcome = "error"
		}
	}
	metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": outcome})
	metricOpDuration().ObserveWithLabels(elapsed.Microseconds(), map[string]string{"op": op})
}

func observeBalances(b *staker.Balances, totals *globalstats.Totals) {
	if metrics.NoOp() {
		return
	}
	metricCustodyBalance().SetWithLabel(int64(b.Vault), map[string]string{"pool": "vault"})
	metricCustodyBalance().SetWithLabel(int64(b.Reserve), map[string]string{"pool": "reserve"})
	metricActive().Set(int64(totals.ActivePositions))
}

func observeCache(stats *cache.Stats) {
	if permille, moved := stats.Permille(); moved {
		metricCacheHitRate().Set(permille)
		hits, misses := stats.Counts()
		logger.Debug("slot cache", "hits", hits, "misses", misses, "permille", permille)
	}
}
