// Package metrics exposes Prometheus counters for account registration and bootstrap.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hongminglow/ideax-be/internal/models"
)

// Metrics owns a private registry so tests and multiple servers never collide on registration.
type Metrics struct {
	registry  *prometheus.Registry
	signups   *prometheus.CounterVec
	bootstrap *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ideax",
			Name:      "signup_total",
			Help:      "Sign-up attempts by role and outcome.",
		}, []string{"role", "outcome"}),
		bootstrap: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ideax",
			Name:      "bootstrap_total",
			Help:      "Admin bootstrap runs by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.signups,
		m.bootstrap,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// SignUp counts one registration attempt.
func (m *Metrics) SignUp(role models.Role, outcome string) {
	m.signups.WithLabelValues(string(role), outcome).Inc()
}

// Bootstrap counts one admin bootstrap run.
func (m *Metrics) Bootstrap(outcome string) {
	m.bootstrap.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
