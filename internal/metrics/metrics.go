// Package metrics exposes Prometheus collectors for bookkeeping events.
//
// A nil *Metrics is valid and records nothing, so services and handlers can
// be built without a registry in tests.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "cantineo"

// Metrics groups every collector the application updates.
type Metrics struct {
	mealsRecorded      prometheus.Counter
	mealsRemoved       prometheus.Counter
	paymentsRecorded   prometheus.Counter
	paymentAmount      prometheus.Counter
	mealsAllocated     prometheus.Counter
	employeesDeleted   prometheus.Counter
	failures           *prometheus.CounterVec
	outstandingBalance prometheus.Gauge
	requestDuration    *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		mealsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meals_recorded_total",
			Help:      "Meal records created.",
		}),
		mealsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meals_removed_total",
			Help:      "Meal records deleted by unselecting an employee for a day.",
		}),
		paymentsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_recorded_total",
			Help:      "Payment records created.",
		}),
		paymentAmount: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_amount_total",
			Help:      "Sum of recorded payment amounts, in currency units.",
		}),
		mealsAllocated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meals_allocated_total",
			Help:      "Meals marked paid by payment allocation.",
		}),
		employeesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "employees_deleted_total",
			Help:      "Employees removed together with their records.",
		}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Failed store-backed operations by name.",
		}, []string{"operation"}),
		outstandingBalance: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outstanding_balance",
			Help:      "Aggregate balance owed by all employees at the last report.",
		}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure and Connect status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}
}

// MealsChanged records meals created and removed for a day.
func (m *Metrics) MealsChanged(added, removed int) {
	if m == nil {
		return
	}
	m.mealsRecorded.Add(float64(added))
	m.mealsRemoved.Add(float64(removed))
}

// PaymentRecorded records one payment and the meals it paid for.
func (m *Metrics) PaymentRecorded(amount decimal.Decimal, allocated int) {
	if m == nil {
		return
	}
	m.paymentsRecorded.Inc()
	m.paymentAmount.Add(amount.InexactFloat64())
	m.mealsAllocated.Add(float64(allocated))
}

// EmployeeDeleted records one cascade delete.
func (m *Metrics) EmployeeDeleted() {
	if m == nil {
		return
	}
	m.employeesDeleted.Inc()
}

// Failure records a failed operation.
func (m *Metrics) Failure(operation string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(operation).Inc()
}

// SetOutstandingBalance publishes the latest aggregate balance.
func (m *Metrics) SetOutstandingBalance(balance decimal.Decimal) {
	if m == nil {
		return
	}
	m.outstandingBalance.Set(balance.InexactFloat64())
}

// ObserveRequest records the latency of one RPC.
func (m *Metrics) ObserveRequest(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(procedure, code).Observe(elapsed.Seconds())
}
