package handlers

import (
	"log"
	"net/http"

	"github.com/clockwise-dev/clockwise/internal/services"
	"github.com/gin-gonic/gin"
)

// All endpoints answer with a uniform envelope: {success, message?, data?}
// on success and {success: false, error} on failure. This is the only layer
// that turns service errors into status codes.

func respondData(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(ctx *gin.Context, status int, message string, data interface{}) {
	ctx.JSON(status, gin.H{"success": true, "message": message, "data": data})
}

func respondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"success": false, "error": message})
}

func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case services.IsPermissionDenied(err):
		respondError(ctx, http.StatusForbidden, err.Error())
	case services.IsNotFound(err):
		respondError(ctx, http.StatusNotFound, err.Error())
	case services.IsValidation(err):
		respondError(ctx, http.StatusBadRequest, err.Error())
	default:
		// Unexpected faults are logged server-side and never leaked.
		log.Printf("Unexpected service error: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
	}
}
