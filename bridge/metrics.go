package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	modeValidation = "validation"
	modeDI         = "digital_identity"

	dropNoSession       = "no_session"
	dropChannelMismatch = "channel_mismatch"
)

// Metrics counts message routing outcomes. A single Metrics value can be
// shared by multiple bridge instances.
type Metrics struct {
	Routed         *prometheus.CounterVec
	Dropped        *prometheus.CounterVec
	DecodeFailures *prometheus.CounterVec
}

// NewMetrics builds the collectors and registers them on reg. A nil
// registerer leaves them unregistered, which is what tests and hosts
// without a metrics endpoint want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Routed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "identity_bridge",
			Name:      "messages_routed_total",
			Help:      "Messages decoded and dispatched to a native consumer.",
		}, []string{"mode"}),
		Dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "identity_bridge",
			Name:      "messages_dropped_total",
			Help:      "Messages dropped by the router before decoding.",
		}, []string{"reason"}),
		DecodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "identity_bridge",
			Name:      "decode_failures_total",
			Help:      "Messages that reached a decoder but could not be parsed.",
		}, []string{"mode"}),
	}
	if reg != nil {
		reg.MustRegister(m.Routed, m.Dropped, m.DecodeFailures)
	}
	return m
}
