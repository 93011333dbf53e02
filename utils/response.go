package utils

import "github.com/gin-gonic/gin"

// Success writes {"success": true, <key>: data}. An empty key writes only the flag.
func Success(ctx *gin.Context, status int, key string, data interface{}) {
	body := gin.H{"success": true}
	if key != "" {
		body[key] = data
	}
	ctx.JSON(status, body)
}

// Error writes {"success": false, "error": message}. Messages are client facing; keep diagnostics in the log.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"success": false, "error": message})
}
