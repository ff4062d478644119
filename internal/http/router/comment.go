package router

import (
	"bugdesk.app/api-server/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func IssueCommentRouter(rg *gin.RouterGroup, h *handler.CommentHandler) {
	rg.GET("", h.ListByIssue)
	rg.POST("", h.Add)
}

func CommentRouter(rg *gin.RouterGroup, h *handler.CommentHandler) {
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
