package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartItemsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_items_added_total",
		Help: "Total number of records added to carts.",
	})

	cartItemsRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_items_removed_total",
		Help: "Total number of cart entries removed.",
	})

	filterResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_filter_results",
		Help:    "Number of records returned per filtered catalog view.",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_sessions_active",
		Help: "Number of live storefront sessions.",
	})
)
