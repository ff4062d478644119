package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bugdesk.app/api-server/common/id"
	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/store"
	"bugdesk.app/api-server/internal/workflow"
)

type CommentService interface {
	ListByIssue(ctx context.Context, issueID int64) ([]model.Comment, error)
	Add(ctx context.Context, actorID, issueID int64, content string) (*model.Comment, error)
	Update(ctx context.Context, actorID, commentID int64, content string) (*model.Comment, error)
	Delete(ctx context.Context, actorID, commentID int64) error
}

type commentService struct {
	commentStore store.CommentStore
	issueStore   store.IssueStore
	userStore    store.UserStore
	policy       workflow.RolePolicy
}

func NewCommentService(commentStore store.CommentStore, issueStore store.IssueStore, userStore store.UserStore, policy workflow.RolePolicy) CommentService {
	return &commentService{
		commentStore: commentStore,
		issueStore:   issueStore,
		userStore:    userStore,
		policy:       policy,
	}
}

func (s *commentService) ListByIssue(ctx context.Context, issueID int64) ([]model.Comment, error) {
	if exists, err := s.issueStore.Exists(ctx, issueID); err != nil {
		return nil, err
	} else if !exists {
		return nil, store.ErrNotFound
	}
	return s.commentStore.ListByIssue(ctx, issueID)
}

func (s *commentService) Add(ctx context.Context, actorID, issueID int64, content string) (*model.Comment, error) {
	actor, err := loadActor(ctx, s.userStore, actorID)
	if err != nil {
		return nil, err
	}
	if exists, err := s.issueStore.Exists(ctx, issueID); err != nil {
		return nil, err
	} else if !exists {
		return nil, store.ErrNotFound
	}

	comment := &model.Comment{
		ID:        id.New(),
		IssueID:   issueID,
		Author:    actor,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.commentStore.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

// Update is author-only; even admins do not rewrite other people's words.
func (s *commentService) Update(ctx context.Context, actorID, commentID int64, content string) (*model.Comment, error) {
	actor, err := loadActor(ctx, s.userStore, actorID)
	if err != nil {
		return nil, err
	}
	comment, err := s.commentStore.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Author.ID != actor.ID {
		return nil, fmt.Errorf("%w: only the author can update the comment", workflow.ErrUnauthorized)
	}

	comment.Content = content
	if err := s.commentStore.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actorID, commentID int64) error {
	actor, err := loadActor(ctx, s.userStore, actorID)
	if err != nil {
		return err
	}
	comment, err := s.commentStore.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	allowed, err := s.policy.CanDeleteComment(actor.ID, comment.Author.ID, actor.Role)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%w: not authorized to delete this comment", workflow.ErrUnauthorized)
	}

	if err := s.commentStore.Delete(ctx, commentID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "comment deleted", "comment_id", commentID, "actor_id", actorID)
	return nil
}
