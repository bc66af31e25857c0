// Package handler provides HTTP handlers for the API server.
package handler

import "github.com/gin-gonic/gin"

// errorResponse sends a JSON error response with {detail: message} format.
func errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"detail": message})
}
