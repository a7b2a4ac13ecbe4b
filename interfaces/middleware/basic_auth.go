package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DocsBasicAuth protects the API docs with a single shared credential.
func DocsBasicAuth(username, password string) gin.HandlerFunc {
	expected := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))

	return func(ctx *gin.Context) {
		authorization := ctx.Request.Header.Get("Authorization")
		if authorization == "" || !strings.HasPrefix(authorization, "Basic ") {
			unauthorized(ctx)
			return
		}
		provided := strings.TrimPrefix(authorization, "Basic ")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			unauthorized(ctx)
			return
		}
		ctx.Next()
	}
}

func unauthorized(ctx *gin.Context) {
	ctx.Header("WWW-Authenticate", `Basic realm="API Documentation", charset="UTF-8"`)
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}
