package utils

import "github.com/gin-gonic/gin"

// RespondWithError aborts the request with {"error": message}.
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}
