// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package journal

import (
	"strings"

	"github.com/vechain/lockstake/metrics"
)

var (
	metricQueryParameters = metrics.LazyLoadCounterVec("journal_query_parameters", []string{"parameters"})
	metricQueryOrder      = metrics.LazyLoadCounterVec("journal_query_order", []string{"order"})
	metricLimitBucket     = metrics.LazyLoadHistogram("journal_query_limit_bucket", []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
)

func metricsHandleFilter(filter *Filter) {
	if metrics.NoOp() {
		return
	}

	paramsUsed := make([]string, 0, 3)
	if len(filter.Holders) > 0 {
		paramsUsed = append(paramsUsed, "holder")
	}
	if len(filter.Kinds) > 0 {
		paramsUsed = append(paramsUsed, "kind")
	}
	if filter.Range != nil {
		paramsUsed = append(paramsUsed, "range")
	}
	metricQueryParameters().AddWithLabel(1, map[string]string{"parameters": strings.Join(paramsUsed, ",")})

	if filter.Order == DESC {
		metricQueryOrder().AddWithLabel(1, map[string]string{"order": "desc"})
	} else {
		metricQueryOrder().AddWithLabel(1, map[string]string{"order": "asc"})
	}

	if filter.Options != nil {
		limit := filter.Options.Limit
		if limit > 1000 {
			limit = 1001
		}
		metricLimitBucket().Observe(int64(limit))
	}
}
