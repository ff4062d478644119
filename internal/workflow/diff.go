package workflow

import "bugdesk.app/api-server/internal/model"

// Change classifies the difference between an issue snapshot and its
// post-update state.
type Change int

const (
	// ChangeNone means no field differs; the update was a no-op.
	ChangeNone Change = iota
	// ChangeText means title or description differ. Text changes are the
	// sole trigger for re-embedding the issue in the search index.
	ChangeText
	// ChangeOther means only non-text fields differ (status, priority,
	// assignee, fixer, comments). No re-indexing is needed.
	ChangeOther
)

func (c Change) String() string {
	switch c {
	case ChangeNone:
		return "none"
	case ChangeText:
		return "text"
	case ChangeOther:
		return "other"
	default:
		return "unknown"
	}
}

// Diff compares two issue states field by field, by value. User references
// compare by id, comments by content. Text differences dominate the
// classification: if both the title and the assignee changed the result is
// still ChangeText, which is what decides re-indexing.
func Diff(before, after *model.Issue) Change {
	if textChanged(before, after) {
		return ChangeText
	}
	if otherChanged(before, after) {
		return ChangeOther
	}
	return ChangeNone
}

func textChanged(before, after *model.Issue) bool {
	return before.Title != after.Title || before.Description != after.Description
}

func otherChanged(before, after *model.Issue) bool {
	switch {
	case before.Priority != after.Priority,
		before.Status != after.Status,
		!sameUser(before.Reporter, after.Reporter),
		!sameUser(before.Fixer, after.Fixer),
		!sameUser(before.Assignee, after.Assignee),
		before.ProjectID != after.ProjectID,
		!sameComments(before.Comments, after.Comments):
		return true
	}
	return false
}

func sameUser(a, b *model.User) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID
}

func sameComments(a, b []model.Comment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Content != b[i].Content {
			return false
		}
	}
	return true
}
