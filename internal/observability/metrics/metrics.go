package metrics

import "github.com/prometheus/client_golang/prometheus"

// RelayMetrics exposes counters/histograms for the booking relay flows.
type RelayMetrics struct {
	inboundTotal        *prometheus.CounterVec
	outboundTotal       *prometheus.CounterVec
	paymentWebhookTotal *prometheus.CounterVec
	webhookLatency      *prometheus.HistogramVec
}

func NewRelayMetrics(reg prometheus.Registerer) *RelayMetrics {
	m := &RelayMetrics{
		inboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripuva",
			Subsystem: "relay",
			Name:      "inbound_message_total",
			Help:      "Total inbound WhatsApp webhook messages by intent",
		}, []string{"intent", "status"}),
		outboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripuva",
			Subsystem: "relay",
			Name:      "outbound_message_total",
			Help:      "Total outbound WhatsApp sends",
		}, []string{"kind", "status"}),
		paymentWebhookTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripuva",
			Subsystem: "relay",
			Name:      "payment_webhook_total",
			Help:      "Total Razorpay webhook deliveries",
		}, []string{"event", "status"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tripuva",
			Subsystem: "relay",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of inbound webhook processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.inboundTotal, m.outboundTotal, m.paymentWebhookTotal, m.webhookLatency)
	return m
}

func (m *RelayMetrics) ObserveInbound(intent, status string) {
	if m == nil {
		return
	}
	m.inboundTotal.WithLabelValues(intent, status).Inc()
}

func (m *RelayMetrics) ObserveOutbound(kind, status string) {
	if m == nil {
		return
	}
	m.outboundTotal.WithLabelValues(kind, status).Inc()
}

func (m *RelayMetrics) ObservePaymentWebhook(event, status string) {
	if m == nil {
		return
	}
	m.paymentWebhookTotal.WithLabelValues(event, status).Inc()
}

func (m *RelayMetrics) ObserveWebhookLatency(handler string, seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.WithLabelValues(handler).Observe(seconds)
}
