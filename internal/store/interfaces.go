package store

import (
	"context"
	"errors"

	"bugdesk.app/api-server/internal/model"
)

var ErrNotFound = errors.New("not found")

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]model.User, error)
}

type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Project, error)
}

// IssueFilter narrows searches; nil fields are not applied.
type IssueFilter struct {
	AssigneeID *int64
	ReporterID *int64
	Status     *model.Status
}

type IssueStore interface {
	GetByID(ctx context.Context, id int64) (*model.Issue, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, issue *model.Issue) error
	Update(ctx context.Context, issue *model.Issue) error
	// ListByProject orders issues so the viewer's actionable ones come
	// first: NEW and RESOLVED for a project lead, own assignments for a
	// developer, own FIXED reports for a tester.
	ListByProject(ctx context.Context, projectID, viewerID int64) ([]model.Issue, error)
	Search(ctx context.Context, projectID int64, filter IssueFilter) ([]model.Issue, error)
	// SearchRaw runs an externally generated SELECT over the issues table.
	SearchRaw(ctx context.Context, query string) ([]model.Issue, error)
}

type CommentStore interface {
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) error
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id int64) error
	ListByIssue(ctx context.Context, issueID int64) ([]model.Comment, error)
}

type EmbeddingStore interface {
	EmbedIssueTitle(ctx context.Context, issueID int64, title string) error
	// SimilarResolvedFixers returns fixer ids of resolved or closed issues
	// in the project ordered by embedding similarity to the given issue,
	// best match first. A fixer can appear several times when several of
	// their past issues match; deduplication is the ranker's job, not the
	// query's.
	SimilarResolvedFixers(ctx context.Context, projectID, issueID int64) ([]int64, error)
}

// BucketCount is one row of an aggregate report, keyed by whatever the query
// grouped on (a status, a username, a day).
type BucketCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type ReportStore interface {
	CountPerStatus(ctx context.Context, projectID int64) ([]BucketCount, error)
	CountPerFixer(ctx context.Context, projectID int64) ([]BucketCount, error)
	CountPerDayInMonth(ctx context.Context, projectID int64) ([]BucketCount, error)
	CountPerMonth(ctx context.Context, projectID int64) ([]BucketCount, error)
	CountPerPriorityInMonth(ctx context.Context, projectID int64) ([]BucketCount, error)
	CountPerDayWithStatusInWeek(ctx context.Context, projectID int64, status model.Status) ([]BucketCount, error)
	CountPerDayWithPriorityInWeek(ctx context.Context, projectID int64, priority model.Priority) ([]BucketCount, error)
	CountCommentsPerIssue(ctx context.Context, projectID int64) ([]BucketCount, error)
}

// StoreProvider hands out the individual stores, either pool-backed or bound
// to one transaction inside WithTx.
type StoreProvider interface {
	Users() UserStore
	Projects() ProjectStore
	Issues() IssueStore
	Comments() CommentStore
	Embeddings() EmbeddingStore
	Reports() ReportStore
}

type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}
