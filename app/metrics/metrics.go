// Package metrics exposes the application's prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersPolled counts backend poll cycles by outcome.
	OrdersPolled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comanda_order_polls_total",
		Help: "Backend order poll cycles by outcome.",
	}, []string{"outcome"})

	// TicketsRendered counts rendered print dispatches by target.
	TicketsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comanda_tickets_rendered_total",
		Help: "Ticket print dispatches by target.",
	}, []string{"target"})

	// DictationUploads counts merged dictation uploads by outcome.
	DictationUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comanda_dictation_uploads_total",
		Help: "Dictation audio uploads by outcome.",
	}, []string{"outcome"})

	// StatusUpdates counts order status change attempts by outcome.
	StatusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comanda_status_updates_total",
		Help: "Order status updates pushed to the backend by outcome.",
	}, []string{"outcome"})
)
