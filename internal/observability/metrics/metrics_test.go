package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRelayMetricsObserve(t *testing.T) {
	m := NewRelayMetrics(prometheus.NewRegistry())
	m.ObserveInbound("booking_request", "ok")
	m.ObserveOutbound("text", "sent")
	m.ObservePaymentWebhook("payment_link.paid", "accepted")
	m.ObserveWebhookLatency("whatsapp", 0.25)
}

func TestRelayMetricsNilSafe(t *testing.T) {
	var m *RelayMetrics
	m.ObserveInbound("greeting", "ok")
	m.ObserveOutbound("image", "failed")
	m.ObservePaymentWebhook("payment_link.paid", "ignored")
	m.ObserveWebhookLatency("razorpay", 0.1)
}
