package server

import (
	"net/http"
	"time"

	httpHandler "youtube-gateway/interfaces/http"
	"youtube-gateway/interfaces/middleware"
	"youtube-gateway/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitiateRouter(
	youtubeHandler httpHandler.IYouTubeHandler,
	docsHandler httpHandler.IDocsHandler,
	limiter usecase.IRateLimiter,
	docsUsername, docsPassword string,
	allowOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:4200"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docs := router.Group("/docs")
	docs.Use(middleware.DocsBasicAuth(docsUsername, docsPassword))
	{
		docs.GET("", docsHandler.GetOpenAPI)
		docs.GET("/openapi.json", docsHandler.GetOpenAPI)
	}

	youtube := router.Group("/youtube")
	youtube.Use(middleware.RateLimit(limiter))
	{
		youtube.GET("/video/:id", youtubeHandler.GetVideoDetails)
		youtube.GET("/comments", youtubeHandler.GetVideoComments)
	}

	return router
}
