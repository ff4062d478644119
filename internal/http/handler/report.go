package handler

import (
	"net/http"

	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/service"
	"bugdesk.app/api-server/internal/store"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

type reportFn func(projectID int64) ([]store.BucketCount, error)

func (h *ReportHandler) respond(c *gin.Context, fn reportFn) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	buckets, err := fn(projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	if buckets == nil {
		buckets = []store.BucketCount{}
	}
	c.JSON(http.StatusOK, buckets)
}

func (h *ReportHandler) IssuesPerStatus(c *gin.Context) {
	h.respond(c, func(projectID int64) ([]store.BucketCount, error) {
		return h.reportService.IssuesPerStatus(c.Request.Context(), projectID)
	})
}

func (h *ReportHandler) IssuesPerFixer(c *gin.Context) {
	h.respond(c, func(projectID int64) ([]store.BucketCount, error) {
		return h.reportService.IssuesPerFixer(c.Request.Context(), projectID)
	})
}

func (h *ReportHandler) IssuesPerDayInMonth(c *gin.Context) {
	h.respond(c, func(projectID int64) ([]store.BucketCount, error) {
		return h.reportService.IssuesPerDayInMonth(c.Request.Context(), projectID)
	})
}

func (h *ReportHandler) IssuesPerMonth(c *gin.Context) {
	h.respond(c, func(projectID int64) ([]store.BucketCount, error) {
		return h.reportService.IssuesPerMonth(c.Request.Context(), projectID)
	})
}

func (h *ReportHandler) IssuesPerPriorityInMonth(c *gin.Context) {
	h.respond(c, func(projectID int64) ([]store.BucketCount, error) {
		return h.reportService.IssuesPerPriorityInMonth(c.Request.Context(), projectID)
	})
}

func (h *ReportHandler) IssuesPerDayWithStatusInWeek(c *gin.Context) {
	status, err := model.ParseStatus(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respond(c, func(projectID int64) ([]store.BucketCount, error) {
		return h.reportService.IssuesPerDayWithStatusInWeek(c.Request.Context(), projectID, status)
	})
}

func (h *ReportHandler) IssuesPerDayWithPriorityInWeek(c *gin.Context) {
	priority, err := model.ParsePriority(c.Query("priority"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respond(c, func(projectID int64) ([]store.BucketCount, error) {
		return h.reportService.IssuesPerDayWithPriorityInWeek(c.Request.Context(), projectID, priority)
	})
}

func (h *ReportHandler) IssuesOrderedByComments(c *gin.Context) {
	h.respond(c, func(projectID int64) ([]store.BucketCount, error) {
		return h.reportService.IssuesOrderedByComments(c.Request.Context(), projectID)
	})
}
