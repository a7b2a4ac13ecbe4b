package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/redis/go-redis/v9"
	"youtube-gateway/domain/errs"
	"youtube-gateway/domain/repository"
	"youtube-gateway/infrastructure/cache"
	youtubeclient "youtube-gateway/infrastructure/clients/youtube"
	"youtube-gateway/infrastructure/configuration"
	"youtube-gateway/infrastructure/logger"
	"youtube-gateway/infrastructure/metrics"
	"youtube-gateway/infrastructure/persistence"
	"youtube-gateway/infrastructure/queue"
	httpHandler "youtube-gateway/interfaces/http"
	"youtube-gateway/server"
	"youtube-gateway/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	app := configuration.C.App

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		// Redis backs the cache, the rate limiter and the default queue;
		// without it the service cannot meet its contract.
		logger.GetLogger().WithField("error", err).Error("Cannot connect to Redis")
		os.Exit(1)
	}
	logger.GetLogger().Info("Redis client initialized successfully.")
	store := cache.NewRedisStore(redisClient)

	// Durable cache tier is optional; the service degrades to Redis-only.
	var durable repository.IVideoCache
	psqlDb, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("PostgreSQL not available - continuing without durable video cache")
	} else {
		if err := persistence.EnsureVideoCacheSchema(psqlDb); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring video cache schema")
		} else {
			durable = persistence.NewVideoCacheRepository(psqlDb)
		}
	}

	youtubeRepo, err := youtubeclient.NewYouTubeClient(ctx, &youtubeclient.Config{
		APIKey:  configuration.C.YouTube.APIKey,
		BaseURL: configuration.C.YouTube.BaseURL,
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to initialize YouTube client")
		os.Exit(1)
	}

	jobQueue, err := buildQueue(ctx, redisClient)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to initialize job queue")
		os.Exit(1)
	}

	videoTTL := time.Duration(configuration.C.YouTube.VideoCacheTTLSeconds) * time.Second
	commentsTTL := time.Duration(configuration.C.YouTube.CommentsCacheTTLSeconds) * time.Second

	youtubeUC := usecase.NewYouTubeUseCase(youtubeRepo, store, jobQueue, videoTTL, commentsTTL)
	if durable != nil {
		youtubeUC = youtubeUC.(*usecase.YouTubeUseCase).WithDurableCache(durable)
	}

	limiter := usecase.NewRateLimiter(
		store,
		time.Duration(configuration.C.RateLimit.WindowSeconds)*time.Second,
		configuration.C.RateLimit.MaxRequests,
	)

	youtubeHandler := httpHandler.NewYouTubeHandler(youtubeUC)
	docsHandler := httpHandler.NewDocsHandler()

	router := server.InitiateRouter(
		youtubeHandler,
		docsHandler,
		limiter,
		configuration.C.Docs.Username,
		configuration.C.Docs.Password,
		configuration.C.Cors.AllowOrigins,
	)

	// Pagination pre-warm worker. Invalid payloads are acked, not retried.
	g.Go(func() error {
		err := jobQueue.Consume(ctx, usecase.JobFetchNextPage, func(jobCtx context.Context, payload []byte) error {
			if err := youtubeUC.HandleFetchNextPage(jobCtx, payload); err != nil {
				if errors.Is(err, errs.ErrInvalidInput) {
					logger.GetLogger().WithField("error", err).Warn("Dropping invalid pagination job")
					metrics.JobsProcessed.WithLabelValues("invalid").Inc()
					return nil
				}
				metrics.JobsProcessed.WithLabelValues("error").Inc()
				return err
			}
			metrics.JobsProcessed.WithLabelValues("ok").Inc()
			return nil
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// buildQueue selects the job queue driver from configuration.
func buildQueue(ctx context.Context, redisClient *redis.Client) (repository.IQueue, error) {
	cfg := configuration.C.Queue
	switch cfg.Driver {
	case "pubsub":
		client, err := pubsub.NewClient(ctx, cfg.Pubsub.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
		}
		return queue.NewPubSubQueue(client, cfg.Pubsub.SubscriptionID), nil
	case "servicebus":
		return queue.NewServiceBusQueue(cfg.ServiceBus.Namespace, cfg.ServiceBus.QueueName)
	case "redis", "":
		return queue.NewRedisQueue(redisClient), nil
	default:
		return nil, fmt.Errorf("unknown queue driver: %s", cfg.Driver)
	}
}
