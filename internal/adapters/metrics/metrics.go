package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the gateway's Prometheus collectors. A nil *Metrics is
// valid and turns every record call into a no-op, so components can be
// built without metrics in tests.
type Metrics struct {
	gateDecisions   *prometheus.CounterVec
	refreshTotal    *prometheus.CounterVec
	retryTotal      prometheus.Counter
	backendRequests *prometheus.CounterVec
	contactEvents   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gateDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_route_gate_decisions_total",
			Help: "Route gate terminal states by outcome.",
		}, []string{"outcome"}),
		refreshTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_session_refresh_total",
			Help: "Session refresh attempts by outcome.",
		}, []string{"outcome"}),
		retryTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gateway_authenticated_retries_total",
			Help: "Requests reissued after a successful refresh.",
		}),
		backendRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_backend_requests_total",
			Help: "Requests to the REST backend by status class.",
		}, []string{"class"}),
		contactEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_contact_events_total",
			Help: "Accepted contact and demo-request submissions.",
		}, []string{"kind"}),
	}
}

func (m *Metrics) GateDecision(outcome string) {
	if m == nil {
		return
	}
	m.gateDecisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Refresh(outcome string) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Retry() {
	if m == nil {
		return
	}
	m.retryTotal.Inc()
}

func (m *Metrics) BackendRequest(status int) {
	if m == nil {
		return
	}
	m.backendRequests.WithLabelValues(strconv.Itoa(status/100) + "xx").Inc()
}

func (m *Metrics) ContactEvent(kind string) {
	if m == nil {
		return
	}
	m.contactEvents.WithLabelValues(kind).Inc()
}
