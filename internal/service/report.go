package service

import (
	"context"
	"fmt"
	"time"

	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/store"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ReportService aggregates issue statistics per project. The monthly rollup
// barely moves, so it is served from a short-lived cache.
type ReportService interface {
	IssuesPerStatus(ctx context.Context, projectID int64) ([]store.BucketCount, error)
	IssuesPerFixer(ctx context.Context, projectID int64) ([]store.BucketCount, error)
	IssuesPerDayInMonth(ctx context.Context, projectID int64) ([]store.BucketCount, error)
	IssuesPerMonth(ctx context.Context, projectID int64) ([]store.BucketCount, error)
	IssuesPerPriorityInMonth(ctx context.Context, projectID int64) ([]store.BucketCount, error)
	IssuesPerDayWithStatusInWeek(ctx context.Context, projectID int64, status model.Status) ([]store.BucketCount, error)
	IssuesPerDayWithPriorityInWeek(ctx context.Context, projectID int64, priority model.Priority) ([]store.BucketCount, error)
	IssuesOrderedByComments(ctx context.Context, projectID int64) ([]store.BucketCount, error)
}

type reportService struct {
	reportStore store.ReportStore
	monthCache  *expirable.LRU[int64, []store.BucketCount]
}

func NewReportService(reportStore store.ReportStore) ReportService {
	return &reportService{
		reportStore: reportStore,
		monthCache:  expirable.NewLRU[int64, []store.BucketCount](64, nil, 5*time.Minute),
	}
}

func (s *reportService) IssuesPerStatus(ctx context.Context, projectID int64) ([]store.BucketCount, error) {
	return s.reportStore.CountPerStatus(ctx, projectID)
}

func (s *reportService) IssuesPerFixer(ctx context.Context, projectID int64) ([]store.BucketCount, error) {
	return s.reportStore.CountPerFixer(ctx, projectID)
}

func (s *reportService) IssuesPerDayInMonth(ctx context.Context, projectID int64) ([]store.BucketCount, error) {
	return s.reportStore.CountPerDayInMonth(ctx, projectID)
}

func (s *reportService) IssuesPerMonth(ctx context.Context, projectID int64) ([]store.BucketCount, error) {
	if cached, ok := s.monthCache.Get(projectID); ok {
		return cached, nil
	}
	buckets, err := s.reportStore.CountPerMonth(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("counting issues per month: %w", err)
	}
	s.monthCache.Add(projectID, buckets)
	return buckets, nil
}

func (s *reportService) IssuesPerPriorityInMonth(ctx context.Context, projectID int64) ([]store.BucketCount, error) {
	return s.reportStore.CountPerPriorityInMonth(ctx, projectID)
}

func (s *reportService) IssuesPerDayWithStatusInWeek(ctx context.Context, projectID int64, status model.Status) ([]store.BucketCount, error) {
	return s.reportStore.CountPerDayWithStatusInWeek(ctx, projectID, status)
}

func (s *reportService) IssuesPerDayWithPriorityInWeek(ctx context.Context, projectID int64, priority model.Priority) ([]store.BucketCount, error) {
	return s.reportStore.CountPerDayWithPriorityInWeek(ctx, projectID, priority)
}

func (s *reportService) IssuesOrderedByComments(ctx context.Context, projectID int64) ([]store.BucketCount, error) {
	return s.reportStore.CountCommentsPerIssue(ctx, projectID)
}
