package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"youtube-gateway/domain/dto"
	"youtube-gateway/domain/errs"
	"youtube-gateway/domain/model"
	"youtube-gateway/domain/repository"
	"youtube-gateway/infrastructure/logger"
	"youtube-gateway/infrastructure/metrics"
)

const (
	videoKeyPrefix    = "video:"
	commentsKeyPrefix = "comments:"
	initialPageToken  = "initial"

	defaultMaxResults int64 = 20
	maxMaxResults     int64 = 100

	// JobFetchNextPage is the queue job that pre-warms the next comment page.
	JobFetchNextPage = "fetchNextPage"
)

// IYouTubeUseCase defines the interface for YouTube facade operations
type IYouTubeUseCase interface {
	GetVideoDetails(ctx context.Context, videoID string) (*model.VideoDetails, error)
	GetVideoComments(ctx context.Context, req *dto.CommentsRequest) (*dto.CommentsResponse, error)
	// HandleFetchNextPage processes a queued pagination job payload.
	HandleFetchNextPage(ctx context.Context, payload []byte) error
}

// YouTubeUseCase implements the cached YouTube facade
type YouTubeUseCase struct {
	youtubeRepo repository.IYouTube
	store       repository.ICacheStore
	queue       repository.IQueue
	durable     repository.IVideoCache // optional
	videoTTL    time.Duration
	commentsTTL time.Duration
}

// NewYouTubeUseCase creates a new YouTube use case instance
func NewYouTubeUseCase(
	youtubeRepo repository.IYouTube,
	store repository.ICacheStore,
	queue repository.IQueue,
	videoTTL, commentsTTL time.Duration,
) IYouTubeUseCase {
	return &YouTubeUseCase{
		youtubeRepo: youtubeRepo,
		store:       store,
		queue:       queue,
		videoTTL:    videoTTL,
		commentsTTL: commentsTTL,
	}
}

// WithDurableCache enables the durable video cache tier
func (u *YouTubeUseCase) WithDurableCache(durable repository.IVideoCache) *YouTubeUseCase {
	u.durable = durable
	return u
}

// GetVideoDetails returns video details, serving from cache when fresh
func (u *YouTubeUseCase) GetVideoDetails(ctx context.Context, videoID string) (*model.VideoDetails, error) {
	if videoID == "" {
		return nil, fmt.Errorf("videoId is required: %w", errs.ErrInvalidInput)
	}

	key := videoKeyPrefix + videoID
	if cached, ok := u.readCache(ctx, key, "video"); ok {
		var details model.VideoDetails
		if err := json.Unmarshal([]byte(cached), &details); err == nil {
			return &details, nil
		}
		logger.GetLogger().WithField("key", key).Warn("Corrupt cache entry, refetching")
	}

	// The durable tier survives Redis flushes; promote its hits back.
	if u.durable != nil {
		if details, err := u.durable.GetVideo(ctx, videoID); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Durable cache read failed")
		} else if details != nil {
			u.writeCache(ctx, key, details, u.videoTTL)
			return details, nil
		}
	}

	details, err := u.youtubeRepo.GetVideoDetails(ctx, videoID)
	if err != nil {
		return nil, err
	}

	u.writeCache(ctx, key, details, u.videoTTL)
	if u.durable != nil {
		if err := u.durable.UpsertVideo(ctx, videoID, details, u.videoTTL); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Durable cache write failed")
		}
	}
	return details, nil
}

// GetVideoComments returns one page of comments, serving from cache when fresh.
// On a fetch that reports a further page, a background job is enqueued to
// pre-warm that page's cache entry.
func (u *YouTubeUseCase) GetVideoComments(ctx context.Context, req *dto.CommentsRequest) (*dto.CommentsResponse, error) {
	if req == nil || req.VideoID == "" {
		return nil, fmt.Errorf("videoId is required: %w", errs.ErrInvalidInput)
	}
	if req.MaxResults == 0 {
		req.MaxResults = defaultMaxResults
	}
	if req.MaxResults < 1 || req.MaxResults > maxMaxResults {
		return nil, fmt.Errorf("maxResults must be between 1 and %d: %w", maxMaxResults, errs.ErrInvalidInput)
	}

	key := commentsKey(req.VideoID, req.PageToken)
	if cached, ok := u.readCache(ctx, key, "comments"); ok {
		var response dto.CommentsResponse
		if err := json.Unmarshal([]byte(cached), &response); err == nil {
			return &response, nil
		}
		logger.GetLogger().WithField("key", key).Warn("Corrupt cache entry, refetching")
	}

	response, err := u.youtubeRepo.GetVideoComments(ctx, req)
	if err != nil {
		return nil, err
	}

	u.writeCache(ctx, key, response, u.commentsTTL)

	if response.NextPageToken != nil {
		u.scheduleNextPage(ctx, req.VideoID, *response.NextPageToken, req.MaxResults)
	}
	return response, nil
}

// HandleFetchNextPage validates and processes a pagination pre-warm job.
// Invalid payloads return ErrInvalidInput so the consumer can drop them
// instead of retrying forever.
func (u *YouTubeUseCase) HandleFetchNextPage(ctx context.Context, payload []byte) error {
	var job dto.FetchNextPageJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return fmt.Errorf("malformed job payload: %w", errs.ErrInvalidInput)
	}
	if job.VideoID == "" {
		return fmt.Errorf("videoId is invalid or missing: %w", errs.ErrInvalidInput)
	}
	// A zero maxResults means the job carries no override; the default
	// applies downstream.
	if job.MaxResults < 0 || job.MaxResults > maxMaxResults {
		return fmt.Errorf("invalid maxResults value: %w", errs.ErrInvalidInput)
	}

	_, err := u.GetVideoComments(ctx, &dto.CommentsRequest{
		VideoID:    job.VideoID,
		MaxResults: job.MaxResults,
		PageToken:  job.PageToken,
	})
	if err != nil {
		return fmt.Errorf("failed to pre-warm comments page: %w", err)
	}
	return nil
}

// scheduleNextPage enqueues a pre-warm job for the next comments page.
// Enqueue failures are logged and swallowed; the client response never
// depends on the queue.
func (u *YouTubeUseCase) scheduleNextPage(ctx context.Context, videoID, pageToken string, maxResults int64) {
	payload, err := json.Marshal(dto.FetchNextPageJob{
		VideoID:    videoID,
		PageToken:  pageToken,
		MaxResults: maxResults,
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while marshalling pagination job")
		return
	}
	if err := u.queue.Enqueue(ctx, JobFetchNextPage, payload); err != nil {
		logger.GetLogger().
			WithField("videoId", videoID).
			WithField("error", err).
			Warn("Failed to enqueue pagination job")
		return
	}
	metrics.JobsEnqueued.Inc()
}

// readCache reads key from the hot store. Transport errors count as a miss so
// a degraded Redis never blocks reads.
func (u *YouTubeUseCase) readCache(ctx context.Context, key, resource string) (string, bool) {
	cached, err := u.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrCacheMiss) {
			logger.GetLogger().WithField("key", key).WithField("error", err).Warn("Cache read failed")
		}
		metrics.CacheMisses.WithLabelValues(resource).Inc()
		return "", false
	}
	metrics.CacheHits.WithLabelValues(resource).Inc()
	return cached, true
}

// writeCache stores v under key. Failures are logged and swallowed; a cache
// write must never fail the request.
func (u *YouTubeUseCase) writeCache(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.GetLogger().WithField("key", key).WithField("error", err).Error("Error while marshalling cache entry")
		return
	}
	if err := u.store.Set(ctx, key, string(raw), ttl); err != nil {
		logger.GetLogger().WithField("key", key).WithField("error", err).Warn("Cache write failed")
	}
}

func commentsKey(videoID, pageToken string) string {
	if pageToken == "" {
		pageToken = initialPageToken
	}
	return commentsKeyPrefix + videoID + ":" + pageToken
}
