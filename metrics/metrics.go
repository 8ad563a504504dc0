// Package metrics tracks the process-lifetime request and cost counters.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_requests_total",
			Help: "Total number of served chat requests",
		},
		[]string{"mode"},
	)

	estimatedCostTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "concierge_estimated_cost_usd_total",
			Help: "Cumulative estimated vendor cost in USD (length/4 token heuristic)",
		},
	)
)

// Metrics holds the advisory counters. Never reset until process restart.
type Metrics struct {
	mu            sync.Mutex
	totalRequests int64
	estimatedCost float64
	startedAt     time.Time
}

// Snapshot is the JSON view exposed on /health and /stats.
type Snapshot struct {
	TotalRequests      int64   `json:"total_requests"`
	EstimatedTotalCost float64 `json:"estimated_total_cost"`
	UptimeSeconds      int64   `json:"uptime_seconds"`
}

// New creates the metrics holder.
func New() *Metrics {
	return &Metrics{startedAt: time.Now()}
}

// RecordRequest counts one served chat request and adds its estimated cost.
func (m *Metrics) RecordRequest(mode string, cost float64) {
	if cost < 0 {
		cost = 0
	}
	m.mu.Lock()
	m.totalRequests++
	m.estimatedCost += cost
	m.mu.Unlock()

	requestsTotal.WithLabelValues(mode).Inc()
	estimatedCostTotal.Add(cost)
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		TotalRequests:      m.totalRequests,
		EstimatedTotalCost: m.estimatedCost,
		UptimeSeconds:      int64(time.Since(m.startedAt).Seconds()),
	}
}
