package workflow

import "bugdesk.app/api-server/internal/model"

// UpdateRequest is a sparse view of an issue: nil means "leave the field
// alone", which is distinct from an explicit empty value. The engine never
// retains a reference to it past the Apply call.
type UpdateRequest struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	Status      *model.Status
	Assignee    *model.User
}

// ruleFunc applies one role's field-update table to a working copy of the
// issue. Fields outside the table are left untouched; attempted transitions
// outside the table are ignored, not errors.
type ruleFunc func(actor *model.User, issue *model.Issue, req UpdateRequest)

// Engine applies update requests to issues under per-role rules. It is
// stateless and safe for concurrent use; each call works on a clone of the
// issue it is given.
type Engine struct {
	rules map[model.Role]ruleFunc
}

func NewEngine() *Engine {
	return &Engine{
		rules: map[model.Role]ruleFunc{
			model.RoleAdmin:       applyAdmin,
			model.RoleProjectLead: applyProjectLead,
			model.RoleDeveloper:   applyDeveloper,
			model.RoleTester:      applyTester,
		},
	}
}

// Apply runs the actor's rule table against the existing issue and returns
// the updated state. The input issue is never mutated: on error the caller
// still holds the original, unmodified value.
//
// An update that the role rules reduce to a no-op fails with
// ErrIssueNotChanged rather than succeeding trivially.
func (e *Engine) Apply(actor *model.User, existing *model.Issue, req UpdateRequest) (*model.Issue, error) {
	if actor == nil {
		return nil, ErrNotLoggedIn
	}

	rule, ok := e.rules[actor.Role]
	if !ok {
		return nil, &UnknownRoleError{Role: actor.Role}
	}

	updated := existing.Clone()
	rule(actor, updated, req)

	if Diff(existing, updated) == ChangeNone {
		return nil, ErrIssueNotChanged
	}
	return updated, nil
}

// applyAdmin may touch every mutable field. Setting an assignee forces the
// status to ASSIGNED even when the same request carries another status: the
// assignment is the stronger signal and always wins.
func applyAdmin(_ *model.User, issue *model.Issue, req UpdateRequest) {
	if req.Title != nil {
		issue.Title = *req.Title
	}
	if req.Description != nil {
		issue.Description = *req.Description
	}
	applyTriage(issue, req)
}

// applyProjectLead is the triage subset of the admin table: priority,
// status, and assignment, with the same assignee-forces-ASSIGNED rule.
// Title and description stay with the reporter.
func applyProjectLead(_ *model.User, issue *model.Issue, req UpdateRequest) {
	applyTriage(issue, req)
}

func applyTriage(issue *model.Issue, req UpdateRequest) {
	if req.Priority != nil {
		issue.Priority = *req.Priority
	}
	if req.Status != nil {
		issue.Status = *req.Status
	}
	if req.Assignee != nil {
		issue.Assignee = req.Assignee
		issue.Status = model.StatusAssigned
	}
}

// applyDeveloper knows exactly one edge: marking the issue FIXED, which also
// credits the acting developer as the fixer. Everything else in the request
// is ignored.
func applyDeveloper(actor *model.User, issue *model.Issue, req UpdateRequest) {
	if req.Status != nil && *req.Status == model.StatusFixed {
		issue.Status = model.StatusFixed
		issue.Fixer = actor
	}
}

// applyTester acts only on issues the tester reported: they may rewrite
// title, description, and priority, and confirm a fix by moving the issue to
// RESOLVED. On anyone else's issue the request is a no-op.
func applyTester(actor *model.User, issue *model.Issue, req UpdateRequest) {
	if issue.Reporter == nil || issue.Reporter.ID != actor.ID {
		return
	}
	if req.Title != nil {
		issue.Title = *req.Title
	}
	if req.Description != nil {
		issue.Description = *req.Description
	}
	if req.Priority != nil {
		issue.Priority = *req.Priority
	}
	if req.Status != nil && *req.Status == model.StatusResolved {
		issue.Status = model.StatusResolved
	}
}
