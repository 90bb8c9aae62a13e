package forum

import (
	"context"
	"net/http"
	"strconv"
)

// Role is a named position on the forum's permission ladder. Superadmin and
// admin are global; maintainer and contributor are project-scoped. Creator
// is not assignable — it is ownership of a particular project.
type Role string

const (
	RoleNone        Role = ""
	RoleUser        Role = "user"
	RoleContributor Role = "contributor"
	RoleMaintainer  Role = "maintainer"
	RoleCreator     Role = "creator"
	RoleAdmin       Role = "admin"
	RoleSuperadmin  Role = "superadmin"
)

// AvailableGlobalRoles lists the global roles the caller may grant or
// revoke. Only superadmins manage global roles.
func AvailableGlobalRoles(caller Role) []Role {
	if caller == RoleSuperadmin {
		return []Role{RoleAdmin, RoleSuperadmin}
	}
	return nil
}

// AvailableProjectRoles lists the project-scoped roles the caller may grant
// or revoke on a project.
func AvailableProjectRoles(caller Role) []Role {
	switch caller {
	case RoleSuperadmin, RoleAdmin, RoleCreator:
		return []Role{RoleContributor, RoleMaintainer}
	case RoleMaintainer:
		return []Role{RoleContributor}
	default:
		return nil
	}
}

// SelectRole keeps current if it is still offered, otherwise falls back to
// the first available option (or none when the list is empty).
func SelectRole(available []Role, current Role) Role {
	for _, r := range available {
		if r == current {
			return current
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return RoleNone
}

type roleChangeRequest struct {
	UserID   int    `json:"user_id"`
	UserName string `json:"user_name,omitempty"`
}

// AssignGlobalRole grants a global role to a user.
func (c *Client) AssignGlobalRole(ctx context.Context, role Role, userID int, userName string) error {
	_, err := c.postJSON(ctx, "/superadmin/roles/"+string(role), roleChangeRequest{UserID: userID, UserName: userName}, nil)
	return err
}

// RevokeGlobalRole removes a global role from a user.
func (c *Client) RevokeGlobalRole(ctx context.Context, role Role, userID int, userName string) error {
	body, err := jsonBody(roleChangeRequest{UserID: userID, UserName: userName})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodDelete, "/superadmin/roles/"+string(role), body, "application/json", nil)
	return err
}

// AddProjectRole grants a project-scoped role. The path segment is the
// pluralized role name, matching the backend's route table.
func (c *Client) AddProjectRole(ctx context.Context, projectID int, role Role, userID int, userName string) error {
	path := "/projects/" + strconv.Itoa(projectID) + "/" + string(role) + "s"
	_, err := c.postJSON(ctx, path, roleChangeRequest{UserID: userID, UserName: userName}, nil)
	return err
}

// RemoveProjectRole revokes a project-scoped role.
func (c *Client) RemoveProjectRole(ctx context.Context, projectID int, role Role, userID int) error {
	path := "/projects/" + strconv.Itoa(projectID) + "/" + string(role) + "s/" + strconv.Itoa(userID)
	_, err := c.do(ctx, http.MethodDelete, path, nil, "", nil)
	return err
}
