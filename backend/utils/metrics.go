package utils

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ActivitiesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cyberlevel_activities_started_total",
		Help: "Number of activity start events, restarts included.",
	})

	ActivitiesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cyberlevel_activities_completed_total",
		Help: "Number of first-time activity completions.",
	}, []string{"kind"})

	XPAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cyberlevel_xp_awarded_total",
		Help: "Total XP handed out on completions.",
	})

	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cyberlevel_orders_placed_total",
		Help: "Number of store orders placed.",
	})
)

// MetricsHandler exposes the Prometheus registry as a Fiber handler.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
