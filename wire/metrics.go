package wire

import "github.com/prometheus/client_golang/prometheus"

// Metrics is an optional Prometheus instrumentation surface for the codec,
// grounded on the sibling pack repo golang-io-mqtt's Stat (stat.go): that
// repo registers package-level counters directly with the default
// registerer, but a library has no business doing that on behalf of its
// caller, so Metrics implements prometheus.Collector instead and the
// caller registers it (or not) on whichever registry it likes.
type Metrics struct {
	decoded     *prometheus.CounterVec
	encoded     *prometheus.CounterVec
	decodeError *prometheus.CounterVec
}

// NewMetrics builds an unregistered Metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		decoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mqttwire_packets_decoded_total",
			Help: "Packets successfully decoded, by packet type.",
		}, []string{"type"}),
		encoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mqttwire_packets_encoded_total",
			Help: "Packets successfully encoded, by packet type.",
		}, []string{"type"}),
		decodeError: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mqttwire_decode_errors_total",
			Help: "Decode failures, by v5 reason code they map to.",
		}, []string{"reason"}),
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.decoded.Describe(ch)
	m.encoded.Describe(ch)
	m.decodeError.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.decoded.Collect(ch)
	m.encoded.Collect(ch)
	m.decodeError.Collect(ch)
}

// ObserveDecoded records one successfully decoded packet of kind t.
func (m *Metrics) ObserveDecoded(t PacketType) {
	if m == nil {
		return
	}
	m.decoded.WithLabelValues(t.String()).Inc()
}

// ObserveEncoded records one successfully encoded packet of kind t.
func (m *Metrics) ObserveEncoded(t PacketType) {
	if m == nil {
		return
	}
	m.encoded.WithLabelValues(t.String()).Inc()
}

// ObserveDecodeError records one decode failure, bucketed by the reason
// code it maps to via ReasonCodeFor.
func (m *Metrics) ObserveDecodeError(err error) {
	if m == nil {
		return
	}
	m.decodeError.WithLabelValues(ReasonCodeFor(err).String()).Inc()
}

var _ prometheus.Collector = (*Metrics)(nil)
