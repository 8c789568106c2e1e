package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CheckoutAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fruitstore",
		Name:      "checkout_attempts_total",
		Help:      "Checkout session requests by payment method.",
	}, []string{"method"})

	WebhookEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fruitstore",
		Name:      "webhook_events_total",
		Help:      "Processor webhook deliveries by outcome.",
	}, []string{"result"})

	OrdersFinalized = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fruitstore",
		Name:      "orders_finalized_total",
		Help:      "Orders transitioned to completed.",
	})
)

func init() {
	prometheus.MustRegister(CheckoutAttempts, WebhookEvents, OrdersFinalized)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
