package handler

import (
	"net/http"

	"bugdesk.app/api-server/internal/http/dto"
	"bugdesk.app/api-server/internal/service"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) ListByIssue(c *gin.Context) {
	issueID, ok := pathID(c, "issueId")
	if !ok {
		return
	}

	comments, err := h.commentService.ListByIssue(c.Request.Context(), issueID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentResponses(comments))
}

func (h *CommentHandler) Add(c *gin.Context) {
	issueID, ok := pathID(c, "issueId")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	comment, err := h.commentService.Add(c.Request.Context(), actorID(c), issueID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), actorID(c), commentID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), actorID(c), commentID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
