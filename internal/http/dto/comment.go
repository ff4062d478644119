package dto

import (
	"time"

	"bugdesk.app/api-server/internal/model"
)

type CommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

type CommentResponse struct {
	CreatedAt time.Time     `json:"created_at"`
	Content   string        `json:"content"`
	Author    *UserResponse `json:"author"`
	ID        int64         `json:"id,string"`
	IssueID   int64         `json:"issue_id,string"`
}

func ToCommentResponse(comment *model.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		IssueID:   comment.IssueID,
		Content:   comment.Content,
		Author:    ToUserResponse(comment.Author),
		CreatedAt: comment.CreatedAt,
	}
}

func ToCommentResponses(comments []model.Comment) []CommentResponse {
	if len(comments) == 0 {
		return nil
	}
	out := make([]CommentResponse, len(comments))
	for i := range comments {
		out[i] = *ToCommentResponse(&comments[i])
	}
	return out
}
