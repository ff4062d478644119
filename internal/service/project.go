package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bugdesk.app/api-server/common/id"
	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/store"
	"bugdesk.app/api-server/internal/workflow"
)

type ProjectService interface {
	Create(ctx context.Context, actorID int64, name string) (*model.Project, error)
	GetByID(ctx context.Context, projectID int64) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	Delete(ctx context.Context, actorID, projectID int64) error
}

type projectService struct {
	projectStore store.ProjectStore
	userStore    store.UserStore
	policy       workflow.RolePolicy
}

func NewProjectService(projectStore store.ProjectStore, userStore store.UserStore, policy workflow.RolePolicy) ProjectService {
	return &projectService{
		projectStore: projectStore,
		userStore:    userStore,
		policy:       policy,
	}
}

func (s *projectService) Create(ctx context.Context, actorID int64, name string) (*model.Project, error) {
	actor, err := loadActor(ctx, s.userStore, actorID)
	if err != nil {
		return nil, err
	}
	allowed, err := s.policy.CanCreateProject(actor.Role)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: not authorized to create a project", workflow.ErrUnauthorized)
	}

	project := &model.Project{ID: id.New(), Name: name}
	if err := s.projectStore.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	slog.InfoContext(ctx, "project created", "project_id", project.ID, "name", project.Name)
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, projectID int64) (*model.Project, error) {
	return s.projectStore.GetByID(ctx, projectID)
}

func (s *projectService) List(ctx context.Context) ([]model.Project, error) {
	return s.projectStore.List(ctx)
}

func (s *projectService) Delete(ctx context.Context, actorID, projectID int64) error {
	actor, err := loadActor(ctx, s.userStore, actorID)
	if err != nil {
		return err
	}
	allowed, err := s.policy.CanDeleteProject(actor.Role)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%w: not authorized to delete this project", workflow.ErrUnauthorized)
	}

	if err := s.projectStore.Delete(ctx, projectID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "project deleted", "project_id", projectID, "actor_id", actorID)
	return nil
}

// loadActor resolves the acting user. A zero or unknown id means the request
// carried no valid session, which is an authentication failure rather than a
// missing resource.
func loadActor(ctx context.Context, users store.UserStore, actorID int64) (*model.User, error) {
	if actorID == 0 {
		return nil, workflow.ErrNotLoggedIn
	}
	actor, err := users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, workflow.ErrNotLoggedIn
		}
		return nil, fmt.Errorf("getting actor: %w", err)
	}
	return actor, nil
}
