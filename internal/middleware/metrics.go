package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agriconnect_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"operation"})

	// LikeToggles counts like toggle outcomes by target and resulting state.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agriconnect_like_toggles_total",
		Help: "Total like toggles by target type and resulting state",
	}, []string{"target", "state"})

	// FollowToggles counts forum follow toggle outcomes by resulting state.
	FollowToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agriconnect_follow_toggles_total",
		Help: "Total forum follow toggles by resulting state",
	}, []string{"state"})

	// GateDenials counts forum-gate permission denials by operation.
	GateDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agriconnect_forum_gate_denials_total",
		Help: "Total forum interactions denied because the user does not follow the forum",
	}, []string{"operation"})

	// ActiveWebSockets is the gauge of open feed event connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agriconnect_websocket_connections",
		Help: "Number of active WebSocket connections",
	})

	// WebSocketDrops counts messages dropped due to client backpressure.
	WebSocketDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agriconnect_websocket_dropped_messages_total",
		Help: "Messages dropped because a client buffer was full or closed",
	}, []string{"reason"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-level Prometheus middleware handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
