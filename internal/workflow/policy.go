package workflow

import "bugdesk.app/api-server/internal/model"

// capability is one coarse-grained permission a role can hold. Fine-grained
// per-field issue rules live in the engine's rule table, not here.
type capability uint8

const (
	capCreateUser capability = iota
	capCreateProject
	capDeleteProject
	capCreateIssue
	capModerateComments
)

// capabilities is pure data: which role holds which capability. Roles not in
// the map are unknown and produce an error, never a silent false.
var capabilities = map[model.Role]map[capability]bool{
	model.RoleAdmin: {
		capCreateUser:       true,
		capCreateProject:    true,
		capDeleteProject:    true,
		capCreateIssue:      true,
		capModerateComments: true,
	},
	model.RoleProjectLead: {},
	model.RoleDeveloper:   {},
	model.RoleTester: {
		capCreateIssue: true,
	},
}

// RolePolicy answers capability questions for a role, independent of any
// specific issue's state. It is stateless and safe for concurrent use.
type RolePolicy struct{}

func NewRolePolicy() RolePolicy { return RolePolicy{} }

func (RolePolicy) has(role model.Role, c capability) (bool, error) {
	caps, ok := capabilities[role]
	if !ok {
		return false, &UnknownRoleError{Role: role}
	}
	return caps[c], nil
}

func (p RolePolicy) CanCreateUser(role model.Role) (bool, error) {
	return p.has(role, capCreateUser)
}

func (p RolePolicy) CanCreateProject(role model.Role) (bool, error) {
	return p.has(role, capCreateProject)
}

func (p RolePolicy) CanDeleteProject(role model.Role) (bool, error) {
	return p.has(role, capDeleteProject)
}

// CanCreateIssue is true for the bug-reporting roles only: ADMIN and TESTER.
func (p RolePolicy) CanCreateIssue(role model.Role) (bool, error) {
	return p.has(role, capCreateIssue)
}

// CanDeleteComment allows admins to delete any comment and authors to delete
// their own.
func (p RolePolicy) CanDeleteComment(actorID, commentAuthorID int64, role model.Role) (bool, error) {
	moderator, err := p.has(role, capModerateComments)
	if err != nil {
		return false, err
	}
	return moderator || actorID == commentAuthorID, nil
}

// IsDeveloper reports whether the role belongs in assignable-developer lists.
func (p RolePolicy) IsDeveloper(role model.Role) (bool, error) {
	if _, ok := capabilities[role]; !ok {
		return false, &UnknownRoleError{Role: role}
	}
	return role == model.RoleDeveloper, nil
}
