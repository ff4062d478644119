package dto

import "bugdesk.app/api-server/internal/model"

type CreateProjectRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type ProjectResponse struct {
	Name string `json:"name"`
	ID   int64  `json:"id,string"`
}

func ToProjectResponse(project *model.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:   project.ID,
		Name: project.Name,
	}
}

func ToProjectResponses(projects []model.Project) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i := range projects {
		out[i] = *ToProjectResponse(&projects[i])
	}
	return out
}
