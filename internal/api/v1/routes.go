package v1

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public API surface at the engine root.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", h.Root)
	r.GET("/test", h.Health)
	r.POST("/recommend", h.Recommend)
	r.GET("/analytics", h.Analytics)
}
