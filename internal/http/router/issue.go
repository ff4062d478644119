package router

import (
	"bugdesk.app/api-server/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func IssueRouter(rg *gin.RouterGroup, h *handler.IssueHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/searchbynl", h.SearchByNaturalLanguage)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.GET("/:id/recommendedAssignees", h.RecommendedAssignees)
}
