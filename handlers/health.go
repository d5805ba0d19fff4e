package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shootscout/utils"
)

// Healthz reports process liveness and the latest dependency health snapshot.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"deps":   utils.GetHealthStatus(),
	})
}
