package router

import (
	"bugdesk.app/api-server/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func UserRouter(rg *gin.RouterGroup, h *handler.UserHandler) {
	rg.POST("/signup", h.Signup)
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
	rg.GET("", h.Me)
	rg.GET("/devs", h.ListDevelopers)
}
