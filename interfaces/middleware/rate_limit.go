package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"youtube-gateway/domain/errs"
	"youtube-gateway/infrastructure/logger"
	"youtube-gateway/usecase"
)

// RateLimit counts every request against the client's fixed window before the
// handler runs. When the limiter's backing store is unreachable the request
// is rejected rather than admitted unmetered.
func RateLimit(limiter usecase.IRateLimiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := limiter.Admit(ctx.Request.Context(), ctx.ClientIP()); err != nil {
			if errors.Is(err, errs.ErrRateLimited) {
				ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
					"error": "Too Many Requests, Limit reached",
				})
				return
			}
			logger.GetLogger().WithField("error", err).Error("Rate limiter unavailable")
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "Service unavailable",
			})
			return
		}
		ctx.Next()
	}
}
