package handler

import (
	"net/http"

	"bugdesk.app/api-server/internal/http/dto"
	"bugdesk.app/api-server/internal/service"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), actorID(c), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponses(projects))
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), actorID(c), projectID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}
