package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/spycat-agency/service-mission/internal/common/response"
)

const (
	ServiceTitle   = "Cat Mission API"
	ServiceVersion = "1.0.0"
)

// RegisterRootRoute mounts GET /, which identifies the service.
func RegisterRootRoute(r *gin.RouterGroup) {
	r.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{"message": ServiceTitle, "version": ServiceVersion})
	})
}
