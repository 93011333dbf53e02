package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UnauthorizedTemplate is the view rendered in place of a gated page.
const UnauthorizedTemplate = "unauthorized.html"

// Capability decides whether a request may see administrative content.
type Capability func(r *http.Request) bool

// SharedSecret allows requests whose "key" query parameter equals secret.
// An empty secret allows nothing.
func SharedSecret(secret string) Capability {
	want := []byte(secret)
	return func(r *http.Request) bool {
		if len(want) == 0 {
			return false
		}
		got := []byte(r.URL.Query().Get("key"))
		return subtle.ConstantTimeCompare(got, want) == 1
	}
}

// AdminPageGate answers denied page requests with the unauthorized view (status 200),
// as if the request had been rewritten to /unauthorized.
func AdminPageGate(allow Capability) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if allow(ctx.Request) {
			ctx.Next()
			return
		}
		ctx.HTML(http.StatusOK, UnauthorizedTemplate, nil)
		ctx.Abort()
	}
}

// AdminAPIGate answers denied API requests with 401 and a JSON body.
func AdminAPIGate(allow Capability) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if allow(ctx.Request) {
			ctx.Next()
			return
		}
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}
