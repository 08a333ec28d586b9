package metrics

import "github.com/prometheus/client_golang/prometheus"

// Gate outcomes.
const (
	OutcomeAuthorized   = "authorized"
	OutcomeForbidden    = "forbidden"
	OutcomeInvalidToken = "invalid_token"
)

// GateMetrics counts admin gate decisions.
type GateMetrics struct {
	decisions *prometheus.CounterVec
}

func NewGateMetrics(reg prometheus.Registerer) *GateMetrics {
	if reg == nil {
		return &GateMetrics{}
	}
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_gate_decisions_total",
		Help: "Admin gate decisions by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(decisions)
	return &GateMetrics{decisions: decisions}
}

// IncOutcome increments the counter for the supplied outcome.
func (g *GateMetrics) IncOutcome(outcome string) {
	if g == nil || g.decisions == nil {
		return
	}
	g.decisions.WithLabelValues(normalizeLabel(outcome)).Inc()
}
