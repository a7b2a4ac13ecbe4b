package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts cache hits per resource (video, comments).
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "youtube_gateway_cache_hits_total",
		Help: "Number of cache hits by resource",
	}, []string{"resource"})

	// CacheMisses counts cache misses per resource.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "youtube_gateway_cache_misses_total",
		Help: "Number of cache misses by resource",
	}, []string{"resource"})

	// RateLimitRejected counts requests rejected by the rate limiter.
	RateLimitRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "youtube_gateway_rate_limit_rejected_total",
		Help: "Number of requests rejected because the client exceeded its window",
	})

	// UpstreamRequests counts calls to the YouTube API by endpoint and outcome.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "youtube_gateway_upstream_requests_total",
		Help: "Number of upstream YouTube API calls by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	// JobsEnqueued counts background pagination jobs published to the queue.
	JobsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "youtube_gateway_jobs_enqueued_total",
		Help: "Number of background jobs enqueued",
	})

	// JobsProcessed counts consumed background jobs by result (ok, invalid, error).
	JobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "youtube_gateway_jobs_processed_total",
		Help: "Number of background jobs processed by result",
	}, []string{"result"})
)
