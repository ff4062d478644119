package service_test

import (
	"context"
	"sync"

	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/store"
)

type mockUserStore struct {
	getByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*model.User, error)
	createFn        func(ctx context.Context, user *model.User) error
	listFn          func(ctx context.Context) ([]model.User, error)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) List(ctx context.Context) ([]model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockIssueStore struct {
	getByIDFn       func(ctx context.Context, id int64) (*model.Issue, error)
	existsFn        func(ctx context.Context, id int64) (bool, error)
	createFn        func(ctx context.Context, issue *model.Issue) error
	updateFn        func(ctx context.Context, issue *model.Issue) error
	listByProjectFn func(ctx context.Context, projectID, viewerID int64) ([]model.Issue, error)
	searchFn        func(ctx context.Context, projectID int64, filter store.IssueFilter) ([]model.Issue, error)
	searchRawFn     func(ctx context.Context, query string) ([]model.Issue, error)
}

func (m *mockIssueStore) GetByID(ctx context.Context, id int64) (*model.Issue, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockIssueStore) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, nil
}

func (m *mockIssueStore) Create(ctx context.Context, issue *model.Issue) error {
	if m.createFn != nil {
		return m.createFn(ctx, issue)
	}
	return nil
}

func (m *mockIssueStore) Update(ctx context.Context, issue *model.Issue) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, issue)
	}
	return nil
}

func (m *mockIssueStore) ListByProject(ctx context.Context, projectID, viewerID int64) ([]model.Issue, error) {
	if m.listByProjectFn != nil {
		return m.listByProjectFn(ctx, projectID, viewerID)
	}
	return nil, nil
}

func (m *mockIssueStore) Search(ctx context.Context, projectID int64, filter store.IssueFilter) ([]model.Issue, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, projectID, filter)
	}
	return nil, nil
}

func (m *mockIssueStore) SearchRaw(ctx context.Context, query string) ([]model.Issue, error) {
	if m.searchRawFn != nil {
		return m.searchRawFn(ctx, query)
	}
	return nil, nil
}

type mockEmbeddingStore struct {
	embedIssueTitleFn       func(ctx context.Context, issueID int64, title string) error
	similarResolvedFixersFn func(ctx context.Context, projectID, issueID int64) ([]int64, error)
}

func (m *mockEmbeddingStore) EmbedIssueTitle(ctx context.Context, issueID int64, title string) error {
	if m.embedIssueTitleFn != nil {
		return m.embedIssueTitleFn(ctx, issueID, title)
	}
	return nil
}

func (m *mockEmbeddingStore) SimilarResolvedFixers(ctx context.Context, projectID, issueID int64) ([]int64, error) {
	if m.similarResolvedFixersFn != nil {
		return m.similarResolvedFixersFn(ctx, projectID, issueID)
	}
	return nil, nil
}

type mockProjectStore struct {
	getByIDFn func(ctx context.Context, id int64) (*model.Project, error)
	createFn  func(ctx context.Context, project *model.Project) error
	deleteFn  func(ctx context.Context, id int64) error
	listFn    func(ctx context.Context) ([]model.Project, error)
}

func (m *mockProjectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockProjectStore) Create(ctx context.Context, project *model.Project) error {
	if m.createFn != nil {
		return m.createFn(ctx, project)
	}
	return nil
}

func (m *mockProjectStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockProjectStore) List(ctx context.Context) ([]model.Project, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockCommentStore struct {
	getByIDFn     func(ctx context.Context, id int64) (*model.Comment, error)
	createFn      func(ctx context.Context, comment *model.Comment) error
	updateFn      func(ctx context.Context, comment *model.Comment) error
	deleteFn      func(ctx context.Context, id int64) error
	listByIssueFn func(ctx context.Context, issueID int64) ([]model.Comment, error)
}

func (m *mockCommentStore) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockCommentStore) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentStore) Update(ctx context.Context, comment *model.Comment) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCommentStore) ListByIssue(ctx context.Context, issueID int64) ([]model.Comment, error) {
	if m.listByIssueFn != nil {
		return m.listByIssueFn(ctx, issueID)
	}
	return nil, nil
}

// mockStores bundles the per-entity mocks behind the provider interface.
type mockStores struct {
	users      *mockUserStore
	projects   *mockProjectStore
	issues     *mockIssueStore
	comments   *mockCommentStore
	embeddings *mockEmbeddingStore
}

func newMockStores() *mockStores {
	return &mockStores{
		users:      &mockUserStore{},
		projects:   &mockProjectStore{},
		issues:     &mockIssueStore{},
		comments:   &mockCommentStore{},
		embeddings: &mockEmbeddingStore{},
	}
}

func (m *mockStores) Users() store.UserStore           { return m.users }
func (m *mockStores) Projects() store.ProjectStore     { return m.projects }
func (m *mockStores) Issues() store.IssueStore         { return m.issues }
func (m *mockStores) Comments() store.CommentStore     { return m.comments }
func (m *mockStores) Embeddings() store.EmbeddingStore { return m.embeddings }
func (m *mockStores) Reports() store.ReportStore       { return nil }

// WithTx hands the same mocks back; tests observe the calls either way.
func (m *mockStores) WithTx(_ context.Context, fn func(stores store.StoreProvider) error) error {
	return fn(m)
}

// recordingIndexer captures Fire calls for assertions.
type recordingIndexer struct {
	mu    sync.Mutex
	fired []int64
}

func (r *recordingIndexer) Fire(issueID int64, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, issueID)
}

func (r *recordingIndexer) firedFor(issueID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.fired {
		if id == issueID {
			return true
		}
	}
	return false
}
