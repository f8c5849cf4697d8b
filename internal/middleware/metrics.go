package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name. Incremented by
// the cache hook so degraded-cache operation stays visible.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pinfood_redis_errors_total",
		Help: "Total number of Redis command errors",
	},
	[]string{"command"},
)

// Engagement counters, labeled by outcome so toggles and conflicts can be
// graphed separately.
var (
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pinfood_posts_created_total",
		Help: "Total number of posts created",
	})
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pinfood_like_toggles_total",
		Help: "Total number of like toggle operations by resulting state",
	}, []string{"state"})
	SaveToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pinfood_save_toggles_total",
		Help: "Total number of save toggle operations by resulting state",
	}, []string{"state"})
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pinfood_comments_created_total",
		Help: "Total number of comments created",
	})
	FeedResolves = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pinfood_feed_resolve_posts",
		Help:    "Number of posts resolved per aggregation batch",
		Buckets: []float64{1, 5, 10, 20, 50, 100},
	})
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The instance is shared: fiberprometheus registers its collectors in the
// default registry, which tolerates only one registration per name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
