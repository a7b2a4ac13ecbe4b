package repository

import (
	"context"
	"time"

	"youtube-gateway/domain/dto"
	"youtube-gateway/domain/model"
)

// IYouTube defines the interface for upstream YouTube data operations
type IYouTube interface {
	GetVideoDetails(ctx context.Context, videoID string) (*model.VideoDetails, error)
	GetVideoComments(ctx context.Context, req *dto.CommentsRequest) (*dto.CommentsResponse, error)
}

// IVideoCache defines a durable cache repository for video metadata. It backs
// the hot Redis tier so details survive a cache flush.
type IVideoCache interface {
	// GetVideo returns the cached video, or nil without error when absent or expired.
	GetVideo(ctx context.Context, videoID string) (*model.VideoDetails, error)
	// UpsertVideo stores or updates the cached video with a TTL from now.
	UpsertVideo(ctx context.Context, videoID string, video *model.VideoDetails, ttl time.Duration) error
}
