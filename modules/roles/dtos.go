package roles

import (
	"strconv"
	"strings"

	"github.com/gcet-osf/forumctl/pkg/forms"
)

// GlobalRoleDTO is the grant/revoke form for global roles.
type GlobalRoleDTO struct {
	UserID   string
	UserName string
}

func (d *GlobalRoleDTO) Validate() (int, error) {
	if strings.TrimSpace(d.UserID) == "" {
		return 0, &forms.ValidationError{Field: "userId", Reason: "Please fill the userId field."}
	}
	if strings.TrimSpace(d.UserName) == "" {
		return 0, &forms.ValidationError{Field: "userName", Reason: "Please fill the userName field."}
	}
	id, err := strconv.Atoi(strings.TrimSpace(d.UserID))
	if err != nil {
		return 0, &forms.ValidationError{Field: "userId", Reason: "User ID must be a valid number."}
	}
	return id, nil
}

// ProjectRoleDTO is the grant/revoke form for project-scoped roles.
type ProjectRoleDTO struct {
	ProjectID string
	UserID    string
	UserName  string
}

// Validate checks both identifiers parse as integers, with the combined
// message the form always showed.
func (d *ProjectRoleDTO) Validate() (projectID, userID int, err error) {
	pid, perr := strconv.Atoi(strings.TrimSpace(d.ProjectID))
	uid, uerr := strconv.Atoi(strings.TrimSpace(d.UserID))
	if perr != nil || uerr != nil {
		return 0, 0, &forms.ValidationError{Field: "projectId", Reason: "Project ID and User ID must be valid numbers."}
	}
	return pid, uid, nil
}
