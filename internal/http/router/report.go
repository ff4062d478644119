package router

import (
	"bugdesk.app/api-server/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func ReportRouter(rg *gin.RouterGroup, h *handler.ReportHandler) {
	rg.GET("/issues-per-status", h.IssuesPerStatus)
	rg.GET("/issues-per-fixer", h.IssuesPerFixer)
	rg.GET("/issues-per-day-in-month", h.IssuesPerDayInMonth)
	rg.GET("/issues-per-month", h.IssuesPerMonth)
	rg.GET("/issues-per-priority-in-month", h.IssuesPerPriorityInMonth)
	rg.GET("/issues-per-day-with-status-in-week", h.IssuesPerDayWithStatusInWeek)
	rg.GET("/issues-per-day-with-priority-in-week", h.IssuesPerDayWithPriorityInWeek)
	rg.GET("/issues-ordered-by-comments", h.IssuesOrderedByComments)
}
