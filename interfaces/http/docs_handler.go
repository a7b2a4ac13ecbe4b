package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// openAPISpec describes the public surface of the gateway.
const openAPISpec = `{
  "openapi": "3.0.3",
  "info": {
    "title": "YouTube Gateway",
    "description": "Cached facade over the YouTube Data API",
    "version": "1.0.0"
  },
  "paths": {
    "/youtube/video/{id}": {
      "get": {
        "summary": "Get video details",
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Video details"},
          "404": {"description": "Video not found"},
          "403": {"description": "API quota exceeded"},
          "429": {"description": "Rate limit exceeded"}
        }
      }
    },
    "/youtube/comments": {
      "get": {
        "summary": "Get a page of video comments",
        "parameters": [
          {"name": "videoId", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "maxResults", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 100, "default": 20}},
          {"name": "pageToken", "in": "query", "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Comments page"},
          "400": {"description": "Invalid parameters"},
          "429": {"description": "Rate limit exceeded"}
        }
      }
    }
  }
}`

// IDocsHandler defines the interface for the API docs handler
type IDocsHandler interface {
	GetOpenAPI(ctx *gin.Context)
}

type DocsHandler struct{}

func NewDocsHandler() IDocsHandler {
	return &DocsHandler{}
}

// GetOpenAPI handles GET /docs/openapi.json
func (h *DocsHandler) GetOpenAPI(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "application/json", []byte(openAPISpec))
}
