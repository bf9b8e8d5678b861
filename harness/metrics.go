// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package harness

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "slashfuzz"

// metrics mirror Stats onto a registry, so a long run can be watched from
// outside while it is still going.
type metrics struct {
	steps              prometheus.Counter
	sequencesDone      prometheus.Counter
	requestsAccepted   prometheus.Counter
	requestsRejected   prometheus.Counter
	executionsAccepted prometheus.Counter
	executionsRejected prometheus.Counter
	invariantChecks    prometheus.Counter
	violations         prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "steps_total",
			Help:      "Actions submitted across all sequences",
		}),
		sequencesDone: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sequences_completed_total",
			Help:      "Sequences that ran to their full length",
		}),
		requestsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "slash_requests_accepted_total",
			Help:      "Slash requests the system accepted",
		}),
		requestsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "slash_requests_rejected_total",
			Help:      "Slash requests the system rejected as expected",
		}),
		executionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "slash_executions_accepted_total",
			Help:      "Slash executions the system settled",
		}),
		executionsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "slash_executions_rejected_total",
			Help:      "Slash executions the system rejected as expected",
		}),
		invariantChecks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "invariant_checks_total",
			Help:      "Full sliding-window history checks that passed",
		}),
		violations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "violations_total",
			Help:      "Disagreements between the system and the model",
		}),
	}
	reg.MustRegister(
		m.steps,
		m.sequencesDone,
		m.requestsAccepted,
		m.requestsRejected,
		m.executionsAccepted,
		m.executionsRejected,
		m.invariantChecks,
		m.violations,
	)
	return m
}
