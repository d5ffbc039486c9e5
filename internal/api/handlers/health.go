package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	version string
	storage string
}

// NewHealthHandler reports the version and which preference store is active
func NewHealthHandler(version, storage string) *HealthHandler {
	return &HealthHandler{version: version, storage: storage}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": h.version,
		"service": serviceName,
		"storage": h.storage,
	})
}
