package dto

import (
	"time"

	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/service"
)

type CreateIssueRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"omitempty,oneof=BLOCKER CRITICAL MAJOR MINOR TRIVIAL"`
}

// UpdateIssueRequest is sparse: absent fields mean "no change", which is why
// everything is a pointer. An explicit empty string is a change.
type UpdateIssueRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty" binding:"omitempty,oneof=BLOCKER CRITICAL MAJOR MINOR TRIVIAL"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=NEW ASSIGNED FIXED RESOLVED CLOSED REOPENED"`
	AssigneeID  *int64  `json:"assignee_id,string,omitempty"`
}

// ToUpdateParams converts the validated wire form into the service's view.
func (r UpdateIssueRequest) ToUpdateParams() service.UpdateParams {
	params := service.UpdateParams{
		Title:       r.Title,
		Description: r.Description,
		AssigneeID:  r.AssigneeID,
	}
	if r.Priority != nil {
		p := model.Priority(*r.Priority)
		params.Priority = &p
	}
	if r.Status != nil {
		s := model.Status(*r.Status)
		params.Status = &s
	}
	return params
}

type IssueResponse struct {
	ReportedAt  time.Time         `json:"reported_at"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Priority    string            `json:"priority"`
	Status      string            `json:"status"`
	Reporter    *UserResponse     `json:"reporter"`
	Fixer       *UserResponse     `json:"fixer,omitempty"`
	Assignee    *UserResponse     `json:"assignee,omitempty"`
	Comments    []CommentResponse `json:"comments,omitempty"`
	ID          int64             `json:"id,string"`
	ProjectID   int64             `json:"project_id,string"`
}

func ToIssueResponse(issue *model.Issue) *IssueResponse {
	return &IssueResponse{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		Priority:    string(issue.Priority),
		Status:      string(issue.Status),
		Reporter:    ToUserResponse(issue.Reporter),
		Fixer:       ToUserResponse(issue.Fixer),
		Assignee:    ToUserResponse(issue.Assignee),
		Comments:    ToCommentResponses(issue.Comments),
		ReportedAt:  issue.ReportedAt,
		ProjectID:   issue.ProjectID,
	}
}

func ToIssueResponses(issues []model.Issue) []IssueResponse {
	out := make([]IssueResponse, len(issues))
	for i := range issues {
		out[i] = *ToIssueResponse(&issues[i])
	}
	return out
}
