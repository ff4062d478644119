package handler

import (
	"net/http"

	"bugdesk.app/api-server/internal/http/dto"
	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/service"
	"github.com/gin-gonic/gin"
)

type IssueHandler struct {
	issueService  service.IssueService
	searchService service.SearchService
}

func NewIssueHandler(issueService service.IssueService, searchService service.SearchService) *IssueHandler {
	return &IssueHandler{issueService: issueService, searchService: searchService}
}

func (h *IssueHandler) Create(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	var req dto.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	issue, err := h.issueService.Create(c.Request.Context(), actorID(c), projectID,
		req.Title, req.Description, model.Priority(req.Priority))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToIssueResponse(issue))
}

func (h *IssueHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	issues, err := h.issueService.ListByProject(c.Request.Context(), projectID, actorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIssueResponses(issues))
}

func (h *IssueHandler) GetByID(c *gin.Context) {
	issueID, ok := pathID(c, "id")
	if !ok {
		return
	}

	issue, err := h.issueService.GetByID(c.Request.Context(), issueID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIssueResponse(issue))
}

// Update routes the request through the workflow engine; which of the
// submitted fields take effect depends entirely on the actor's role.
func (h *IssueHandler) Update(c *gin.Context) {
	issueID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	issue, err := h.issueService.ApplyUpdate(c.Request.Context(), actorID(c), issueID, req.ToUpdateParams())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIssueResponse(issue))
}

func (h *IssueHandler) Search(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	var status *model.Status
	if raw := c.Query("status"); raw != "" {
		parsed, err := model.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status = &parsed
	}

	issues, err := h.issueService.Search(c.Request.Context(), projectID,
		c.Query("assignee"), c.Query("reporter"), status, actorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIssueResponses(issues))
}

func (h *IssueHandler) SearchByNaturalLanguage(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	userMessage := c.Query("userMessage")
	if userMessage == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userMessage is required"})
		return
	}

	issues, err := h.searchService.SearchByNaturalLanguage(c.Request.Context(), projectID, actorID(c), userMessage)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIssueResponses(issues))
}

func (h *IssueHandler) RecommendedAssignees(c *gin.Context) {
	issueID, ok := pathID(c, "id")
	if !ok {
		return
	}

	users, err := h.issueService.RecommendAssignees(c.Request.Context(), issueID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}
