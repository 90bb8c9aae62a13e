package projects

import (
	"strconv"
	"strings"

	"github.com/gcet-osf/forumctl/pkg/forms"
	"github.com/gcet-osf/forumctl/pkg/forum"
)

type CreateProjectDTO struct {
	Name        string
	Description string
}

func (d *CreateProjectDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &forms.ValidationError{Field: "name", Reason: "Project name is required."}
	}
	if strings.TrimSpace(d.Description) == "" {
		return &forms.ValidationError{Field: "description", Reason: "Project description is required."}
	}
	return nil
}

type EditProjectDTO struct {
	Name        string
	Description string
	Status      string

	// ThumbnailPath optionally points at a replacement image on disk.
	ThumbnailPath string
}

func (d *EditProjectDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &forms.ValidationError{Field: "name", Reason: "Project name is required"}
	}
	if !forum.ValidStatus(d.Status, forum.EditStatuses) {
		return &forms.ValidationError{Field: "status", Reason: "Status must be one of: " + strings.Join(forum.EditStatuses, ", ")}
	}
	return nil
}

type StatusChangeDTO struct {
	ProjectID string
	Status    string
}

// Validate checks the ID parses as an integer and the status is a member of
// the closed enumeration, before anything is sent.
func (d *StatusChangeDTO) Validate() (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(d.ProjectID))
	if err != nil {
		return 0, &forms.ValidationError{Field: "projectId", Reason: "Project ID must be a valid number."}
	}
	if !forum.ValidStatus(d.Status, forum.ProjectStatuses) {
		return 0, &forms.ValidationError{Field: "status", Reason: "Status must be one of: " + strings.Join(forum.ProjectStatuses, ", ")}
	}
	return id, nil
}
