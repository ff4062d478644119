package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bugdesk.app/api-server/common/id"
	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/recommend"
	"bugdesk.app/api-server/internal/store"
	"bugdesk.app/api-server/internal/workflow"
)

// IndexingTrigger re-indexes an issue's searchable text in the background.
type IndexingTrigger interface {
	Fire(issueID int64, title string)
}

// UpdateParams is the untrusted, sparse update as it arrives from the
// boundary. Nil means "leave the field alone".
type UpdateParams struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	Status      *model.Status
	AssigneeID  *int64
}

type IssueService interface {
	Create(ctx context.Context, actorID, projectID int64, title, description string, priority model.Priority) (*model.Issue, error)
	GetByID(ctx context.Context, issueID int64) (*model.Issue, error)
	ListByProject(ctx context.Context, projectID, viewerID int64) ([]model.Issue, error)
	ApplyUpdate(ctx context.Context, actorID, issueID int64, params UpdateParams) (*model.Issue, error)
	Search(ctx context.Context, projectID int64, assigneeUsername, reporterUsername string, status *model.Status, viewerID int64) ([]model.Issue, error)
	RecommendAssignees(ctx context.Context, issueID int64) ([]model.User, error)
}

type issueService struct {
	stores   store.StoreProvider
	tx       store.TxRunner
	projects ProjectService
	engine   *workflow.Engine
	policy   workflow.RolePolicy
	indexer  IndexingTrigger
}

func NewIssueService(
	stores store.StoreProvider,
	tx store.TxRunner,
	projects ProjectService,
	engine *workflow.Engine,
	policy workflow.RolePolicy,
	indexer IndexingTrigger,
) IssueService {
	return &issueService{
		stores:   stores,
		tx:       tx,
		projects: projects,
		engine:   engine,
		policy:   policy,
		indexer:  indexer,
	}
}

func (s *issueService) Create(ctx context.Context, actorID, projectID int64, title, description string, priority model.Priority) (*model.Issue, error) {
	actor, err := loadActor(ctx, s.stores.Users(), actorID)
	if err != nil {
		return nil, err
	}
	allowed, err := s.policy.CanCreateIssue(actor.Role)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: not authorized to create an issue", workflow.ErrUnauthorized)
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	issue := model.NewIssue(title, description, priority, actor, project.ID)
	issue.ID = id.New()
	if err := s.stores.Issues().Create(ctx, issue); err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}

	s.indexer.Fire(issue.ID, issue.Title)

	slog.InfoContext(ctx, "issue created",
		"issue_id", issue.ID,
		"project_id", projectID,
		"reporter_id", actor.ID,
	)
	return issue, nil
}

func (s *issueService) GetByID(ctx context.Context, issueID int64) (*model.Issue, error) {
	return s.stores.Issues().GetByID(ctx, issueID)
}

func (s *issueService) ListByProject(ctx context.Context, projectID, viewerID int64) ([]model.Issue, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.stores.Issues().ListByProject(ctx, projectID, viewerID)
}

// ApplyUpdate runs the role-gated workflow engine over the issue and
// persists the result. Re-indexing fires only when the engine actually
// changed the title or description.
func (s *issueService) ApplyUpdate(ctx context.Context, actorID, issueID int64, params UpdateParams) (*model.Issue, error) {
	var actor *model.User
	if actorID != 0 {
		var err error
		actor, err = s.stores.Users().GetByID(ctx, actorID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("getting actor: %w", err)
		}
	}

	req, err := s.resolveRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	// The load and write share one transaction so a concurrent update
	// cannot slip between the snapshot and the persisted result.
	var existing, updated *model.Issue
	err = s.tx.WithTx(ctx, func(stores store.StoreProvider) error {
		var err error
		existing, err = stores.Issues().GetByID(ctx, issueID)
		if err != nil {
			return err
		}
		updated, err = s.engine.Apply(actor, existing, req)
		if err != nil {
			return err
		}
		if err := stores.Issues().Update(ctx, updated); err != nil {
			return fmt.Errorf("updating issue: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if workflow.Diff(existing, updated) == workflow.ChangeText {
		s.indexer.Fire(updated.ID, updated.Title)
	}

	slog.InfoContext(ctx, "issue updated",
		"issue_id", issueID,
		"actor_id", actorID,
		"status", updated.Status,
	)
	return updated, nil
}

// resolveRequest turns the boundary's sparse update into the engine's view,
// resolving the assignee id into a user reference.
func (s *issueService) resolveRequest(ctx context.Context, params UpdateParams) (workflow.UpdateRequest, error) {
	req := workflow.UpdateRequest{
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		Status:      params.Status,
	}
	if params.AssigneeID != nil {
		assignee, err := s.stores.Users().GetByID(ctx, *params.AssigneeID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return workflow.UpdateRequest{}, fmt.Errorf("assignee: %w", store.ErrNotFound)
			}
			return workflow.UpdateRequest{}, fmt.Errorf("getting assignee: %w", err)
		}
		req.Assignee = assignee
	}
	return req, nil
}

func (s *issueService) Search(ctx context.Context, projectID int64, assigneeUsername, reporterUsername string, status *model.Status, viewerID int64) ([]model.Issue, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	var filter store.IssueFilter
	switch {
	case assigneeUsername != "":
		assignee, err := s.stores.Users().GetByUsername(ctx, assigneeUsername)
		if err != nil {
			return nil, err
		}
		filter.AssigneeID = &assignee.ID
	case reporterUsername != "":
		reporter, err := s.stores.Users().GetByUsername(ctx, reporterUsername)
		if err != nil {
			return nil, err
		}
		filter.ReporterID = &reporter.ID
	case status != nil:
		filter.Status = status
	default:
		return s.stores.Issues().ListByProject(ctx, projectID, viewerID)
	}

	return s.stores.Issues().Search(ctx, projectID, filter)
}

// RecommendAssignees suggests up to three distinct fixers of similar past
// issues, best match first.
func (s *issueService) RecommendAssignees(ctx context.Context, issueID int64) ([]model.User, error) {
	issue, err := s.stores.Issues().GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	rawIDs, err := s.stores.Embeddings().SimilarResolvedFixers(ctx, issue.ProjectID, issueID)
	if err != nil {
		return nil, fmt.Errorf("querying similar fixers: %w", err)
	}

	ranked := recommend.Rank(rawIDs, recommend.DefaultLimit)

	users := make([]model.User, 0, len(ranked))
	for _, fixerID := range ranked {
		user, err := s.stores.Users().GetByID(ctx, fixerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolving fixer %d: %w", fixerID, err)
		}
		users = append(users, *user)
	}
	return users, nil
}
