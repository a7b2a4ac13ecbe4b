package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"youtube-gateway/domain/dto"
	"youtube-gateway/domain/errs"
	"youtube-gateway/domain/model"
	"youtube-gateway/domain/repository"
	"youtube-gateway/infrastructure/metrics"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const defaultTimeout = 10 * time.Second

// Config represents YouTube API configuration
type Config struct {
	APIKey string `json:"api_key"`
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string `json:"base_url"`
	Timeout time.Duration
}

// Client represents the API-key YouTube Data API client
type Client struct {
	service *youtube.Service
	timeout time.Duration
}

// NewYouTubeClient creates a new read-only YouTube API client
func NewYouTubeClient(ctx context.Context, config *Config) (repository.IYouTube, error) {
	opts := []option.ClientOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(config.BaseURL))
	}
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{service: service, timeout: timeout}, nil
}

// GetVideoDetails retrieves details for a specific video
func (c *Client) GetVideoDetails(ctx context.Context, videoID string) (*model.VideoDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.service.Videos.List([]string{"snippet", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("videos.list", "error").Inc()
		return nil, mapAPIError(err)
	}
	metrics.UpstreamRequests.WithLabelValues("videos.list", "ok").Inc()

	if len(response.Items) == 0 {
		return nil, errs.ErrNotFound
	}

	video := convertVideo(response.Items[0])
	return video, nil
}

// GetVideoComments retrieves one page of top-level comments for a video
func (c *Client) GetVideoComments(ctx context.Context, req *dto.CommentsRequest) (*dto.CommentsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	call := c.service.CommentThreads.List([]string{"snippet"}).
		VideoId(req.VideoID).
		MaxResults(req.MaxResults).
		Context(ctx)
	if req.PageToken != "" {
		call = call.PageToken(req.PageToken)
	}

	response, err := call.Do()
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("commentThreads.list", "error").Inc()
		return nil, mapAPIError(err)
	}
	metrics.UpstreamRequests.WithLabelValues("commentThreads.list", "ok").Inc()

	comments := make([]dto.Comment, 0, len(response.Items))
	for _, item := range response.Items {
		comments = append(comments, convertComment(item))
	}

	result := &dto.CommentsResponse{Comments: comments}
	if response.NextPageToken != "" {
		token := response.NextPageToken
		result.NextPageToken = &token
	}
	if response.PageInfo != nil {
		result.PageInfo = dto.PageInfo{
			TotalResults:   response.PageInfo.TotalResults,
			ResultsPerPage: response.PageInfo.ResultsPerPage,
		}
	}
	return result, nil
}

// convertVideo converts an API video to our model
func convertVideo(video *youtube.Video) *model.VideoDetails {
	details := &model.VideoDetails{}
	if video.Snippet != nil {
		details.Title = video.Snippet.Title
		details.Description = video.Snippet.Description
		details.ChannelTitle = video.Snippet.ChannelTitle
		details.PublishedAt = video.Snippet.PublishedAt
		details.Thumbnails = convertThumbnails(video.Snippet.Thumbnails)
	}
	if video.Statistics != nil {
		details.ViewCount = video.Statistics.ViewCount
		details.LikeCount = video.Statistics.LikeCount
	}
	return details
}

func convertThumbnails(t *youtube.ThumbnailDetails) model.Thumbnails {
	out := model.Thumbnails{}
	if t == nil {
		return out
	}
	out.Default = convertThumbnail(t.Default)
	out.Medium = convertThumbnail(t.Medium)
	out.High = convertThumbnail(t.High)
	out.Standard = convertThumbnail(t.Standard)
	out.Maxres = convertThumbnail(t.Maxres)
	return out
}

func convertThumbnail(t *youtube.Thumbnail) *model.Thumbnail {
	if t == nil {
		return nil
	}
	return &model.Thumbnail{URL: t.Url, Width: t.Width, Height: t.Height}
}

// convertComment converts an API comment thread to our DTO. Threads with a
// missing top-level comment snippet keep zero values rather than failing.
func convertComment(thread *youtube.CommentThread) dto.Comment {
	comment := dto.Comment{ID: thread.Id}
	if thread.Snippet == nil {
		return comment
	}
	comment.ReplyCount = thread.Snippet.TotalReplyCount
	top := thread.Snippet.TopLevelComment
	if top == nil || top.Snippet == nil {
		return comment
	}
	comment.Text = top.Snippet.TextDisplay
	comment.Author = top.Snippet.AuthorDisplayName
	comment.PublishedAt = top.Snippet.PublishedAt
	comment.LikeCount = top.Snippet.LikeCount
	return comment
}

// mapAPIError translates upstream API failures into domain errors
func mapAPIError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound:
			return errs.ErrNotFound
		case http.StatusForbidden:
			return errs.ErrQuotaExceeded
		default:
			return &errs.UpstreamError{StatusCode: apiErr.Code, Err: err}
		}
	}
	return &errs.UpstreamError{Err: err}
}
