package router

import (
	"bugdesk.app/api-server/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func ProjectRouter(rg *gin.RouterGroup, h *handler.ProjectHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:projectId", h.GetByID)
	rg.DELETE("/:projectId", h.Delete)
}
