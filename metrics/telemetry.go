// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"
)

// metrics is the process wide backend. It stays a no-op until
// InitializePrometheusMetrics is called.
var metrics = defaultNoopMetrics()

// Metrics is implemented by the meter backends.
type Metrics interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateGaugeVecMeter(name string, labels []string) GaugeVecMeter
	GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter
	GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter
	GetOrCreateHandler() http.Handler
}

// HTTPHandler serves the current backend's metrics.
func HTTPHandler() http.Handler {
	return metrics.GetOrCreateHandler()
}

// NoOp reports whether metrics collection is disabled.
func NoOp() bool {
	_, ok := metrics.(*noopMetrics)
	return ok
}

var (
	// BucketOpMicros covers engine operation latencies in microseconds.
	BucketOpMicros = []int64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10_000, 50_000}
	// BucketHTTPMillis covers API request latencies in milliseconds.
	BucketHTTPMillis = []int64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10_000}
)

type (
	// HistogramMeter aggregates observations into buckets.
	HistogramMeter interface {
		Observe(int64)
	}
	// HistogramVecMeter is a HistogramMeter partitioned by labels.
	HistogramVecMeter interface {
		ObserveWithLabels(int64, map[string]string)
	}
	// CountMeter only goes up.
	CountMeter interface {
		Add(int64)
	}
	// CountVecMeter is a CountMeter partitioned by labels.
	CountVecMeter interface {
		AddWithLabel(int64, map[string]string)
	}
	// GaugeMeter holds a value that can move both ways, like a pool balance.
	GaugeMeter interface {
		Add(int64)
		Set(int64)
	}
	// GaugeVecMeter is a GaugeMeter partitioned by labels.
	GaugeVecMeter interface {
		AddWithLabel(int64, map[string]string)
		SetWithLabel(int64, map[string]string)
	}
)

func histogram(name string, buckets []int64) HistogramMeter {
	return metrics.GetOrCreateHistogramMeter(name, buckets)
}

func histogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return metrics.GetOrCreateHistogramVecMeter(name, labels, buckets)
}

func counter(name string) CountMeter { return metrics.GetOrCreateCountMeter(name) }

func counterVec(name string, labels []string) CountVecMeter {
	return metrics.GetOrCreateCountVecMeter(name, labels)
}

func gauge(name string) GaugeMeter { return metrics.GetOrCreateGaugeMeter(name) }

func gaugeVec(name string, labels []string) GaugeVecMeter {
	return metrics.GetOrCreateGaugeVecMeter(name, labels)
}

// LazyLoad defers building a meter until its first use, so package level
// meter variables bind to whichever backend is active at that time.
func LazyLoad[T any](f func() T) func() T {
	return sync.OnceValue(f)
}

func LazyLoadHistogram(name string, buckets []int64) func() HistogramMeter {
	return LazyLoad(func() HistogramMeter { return histogram(name, buckets) })
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVecMeter {
	return LazyLoad(func() HistogramVecMeter { return histogramVec(name, labels, buckets) })
}

func LazyLoadCounter(name string) func() CountMeter {
	return LazyLoad(func() CountMeter { return counter(name) })
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return LazyLoad(func() CountVecMeter { return counterVec(name, labels) })
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return LazyLoad(func() GaugeMeter { return gauge(name) })
}

func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMeter {
	return LazyLoad(func() GaugeVecMeter { return gaugeVec(name, labels) })
}
