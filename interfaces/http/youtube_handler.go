package http

import (
	"errors"
	"net/http"
	"strconv"

	"youtube-gateway/domain/dto"
	"youtube-gateway/domain/errs"
	"youtube-gateway/infrastructure/logger"
	"youtube-gateway/usecase"

	"github.com/gin-gonic/gin"
)

// IYouTubeHandler defines the interface for YouTube HTTP handlers
type IYouTubeHandler interface {
	GetVideoDetails(ctx *gin.Context)
	GetVideoComments(ctx *gin.Context)
}

// YouTubeHandler implements the YouTube HTTP handlers
type YouTubeHandler struct {
	youtubeUseCase usecase.IYouTubeUseCase
}

// NewYouTubeHandler creates a new YouTube handler instance
func NewYouTubeHandler(youtubeUseCase usecase.IYouTubeUseCase) IYouTubeHandler {
	return &YouTubeHandler{
		youtubeUseCase: youtubeUseCase,
	}
}

// GetVideoDetails handles GET /youtube/video/:id
func (h *YouTubeHandler) GetVideoDetails(ctx *gin.Context) {
	videoID := ctx.Param("id")
	if videoID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}

	video, err := h.youtubeUseCase.GetVideoDetails(ctx.Request.Context(), videoID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, video)
}

// GetVideoComments handles GET /youtube/comments
func (h *YouTubeHandler) GetVideoComments(ctx *gin.Context) {
	req := &dto.CommentsRequest{
		VideoID:   ctx.Query("videoId"),
		PageToken: ctx.Query("pageToken"),
	}
	if req.VideoID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "videoId is required"})
		return
	}
	if raw := ctx.Query("maxResults"); raw != "" {
		val, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "maxResults must be a number"})
			return
		}
		req.MaxResults = val
	}

	response, err := h.youtubeUseCase.GetVideoComments(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// respondError maps domain errors to HTTP statuses
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
	case errors.Is(err, errs.ErrQuotaExceeded):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "API quota exceeded"})
	case errors.Is(err, errs.ErrRateLimited):
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Too Many Requests, Limit reached"})
	default:
		logger.GetLogger().WithField("error", err).Error("Error while fetching data")
		status := http.StatusInternalServerError
		var upstreamErr *errs.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.StatusCode >= http.StatusInternalServerError {
			status = upstreamErr.StatusCode
		}
		ctx.JSON(status, gin.H{"error": "Error fetching data"})
	}
}
