package model

import (
	"fmt"
	"time"
)

type Priority string

const (
	PriorityBlocker  Priority = "BLOCKER"
	PriorityCritical Priority = "CRITICAL"
	PriorityMajor    Priority = "MAJOR"
	PriorityMinor    Priority = "MINOR"
	PriorityTrivial  Priority = "TRIVIAL"
)

func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityBlocker, PriorityCritical, PriorityMajor, PriorityMinor, PriorityTrivial:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("unknown priority %q", s)
	}
}

type Status string

const (
	StatusNew      Status = "NEW"
	StatusAssigned Status = "ASSIGNED"
	StatusFixed    Status = "FIXED"
	StatusResolved Status = "RESOLVED"
	StatusClosed   Status = "CLOSED"
	StatusReopened Status = "REOPENED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusAssigned, StatusFixed, StatusResolved, StatusClosed, StatusReopened:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// Issue is the aggregate the workflow engine operates on. Reporter is set at
// creation and never reassigned; fixer is only ever set by the developer
// FIXED transition; a non-nil assignee implies status ASSIGNED.
type Issue struct {
	ReportedAt  time.Time `json:"reported_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	Reporter    *User     `json:"reporter"`
	Fixer       *User     `json:"fixer,omitempty"`
	Assignee    *User     `json:"assignee,omitempty"`
	Comments    []Comment `json:"comments,omitempty"`
	ID          int64     `json:"id,string"`
	ProjectID   int64     `json:"project_id,string"`
}

// NewIssue applies the creation defaults: status NEW, priority MAJOR unless
// the reporter picked one.
func NewIssue(title, description string, priority Priority, reporter *User, projectID int64) *Issue {
	if priority == "" {
		priority = PriorityMajor
	}
	return &Issue{
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      StatusNew,
		Reporter:    reporter,
		ReportedAt:  time.Now(),
		ProjectID:   projectID,
	}
}

// Clone returns a deep enough copy for snapshot/diff purposes: user
// references are shared (they are read-only here) but the comments slice is
// copied so mutations on one side do not leak into the other.
func (i *Issue) Clone() *Issue {
	if i == nil {
		return nil
	}
	cp := *i
	if i.Comments != nil {
		cp.Comments = make([]Comment, len(i.Comments))
		copy(cp.Comments, i.Comments)
	}
	return &cp
}
