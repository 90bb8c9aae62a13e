package forum

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/form"
)

// Project is an approved project as the listing endpoints return it. The
// backend exposes two shapes — the legacy listing uses a numeric p_id, the
// newer pages a string id — so both identifiers are carried.
type Project struct {
	ID           string    `json:"id,omitempty"`
	PID          int       `json:"p_id,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatorID    int       `json:"creator_id,omitempty"`
	CreatorName  string    `json:"creator_name,omitempty"`
	CreatorEmail string    `json:"creator_email,omitempty"`
	StartDate    string    `json:"start_date,omitempty"`
	Status       string    `json:"status"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
}

// Key returns the identifier used in URL paths for this project.
func (p Project) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return strconv.Itoa(p.PID)
}

// PendingProject is a submission waiting in the approval buffer.
type PendingProject struct {
	RID         int       `json:"r_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   int       `json:"creator_id"`
	CreatorName string    `json:"creator_name"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ProjectStatuses is the closed lifecycle enumeration enforced by the
// status-change endpoint.
var ProjectStatuses = []string{"in_progress", "completed", "upcoming"}

// EditStatuses is the enumeration the edit form offers.
var EditStatuses = []string{"draft", "active", "archived"}

func ValidStatus(status string, allowed []string) bool {
	for _, s := range allowed {
		if s == status {
			return true
		}
	}
	return false
}

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.getJSON(ctx, "/projects/api/getall", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (Project, error) {
	var out Project
	if err := c.getJSON(ctx, "/projects/api/"+id, &out); err != nil {
		return Project{}, err
	}
	return out, nil
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type createProjectResponse struct {
	PID int `json:"p_id"`
	RID int `json:"r_id"`
}

// CreateOutcome reports which of the two success paths a submission took:
// created outright (201, p_id) or parked in the approval buffer (202, r_id).
type CreateOutcome struct {
	Pending   bool
	ProjectID int
	RequestID int
}

// Message renders the outcome the way the create form always announced it.
func (o CreateOutcome) Message() string {
	if o.Pending {
		return fmt.Sprintf("Project submitted for review (Request ID: %d). Status: pending.", o.RequestID)
	}
	return fmt.Sprintf("Project approved (ID: %d). You can view it on the projects page.", o.ProjectID)
}

func (c *Client) CreateProject(ctx context.Context, name, description string) (CreateOutcome, error) {
	var resp createProjectResponse
	status, err := c.postJSON(ctx, "/projects", createProjectRequest{Name: name, Description: description}, &resp)
	if err != nil {
		return CreateOutcome{}, err
	}
	return CreateOutcome{
		Pending:   status == http.StatusAccepted,
		ProjectID: resp.PID,
		RequestID: resp.RID,
	}, nil
}

// EditProjectForm carries the multipart fields of the edit endpoint. The
// thumbnail is optional; nil means keep the stored one.
type EditProjectForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Status      string `form:"status"`

	ThumbnailName string    `form:"-"`
	Thumbnail     io.Reader `form:"-"`
}

var formEncoder = form.NewEncoder()

func (c *Client) EditProject(ctx context.Context, id string, f EditProjectForm) error {
	values, err := formEncoder.Encode(&f)
	if err != nil {
		return clientFault(err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, vals := range values {
		for _, v := range vals {
			if err := w.WriteField(key, v); err != nil {
				return clientFault(err)
			}
		}
	}
	if f.Thumbnail != nil {
		part, err := w.CreateFormFile("thumbnail", f.ThumbnailName)
		if err != nil {
			return clientFault(err)
		}
		if _, err := io.Copy(part, f.Thumbnail); err != nil {
			return clientFault(err)
		}
	}
	if err := w.Close(); err != nil {
		return clientFault(err)
	}

	_, err = c.do(ctx, http.MethodPost, "/projects/edit/"+id, &buf, w.FormDataContentType(), nil)
	return err
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/projects/api/delete/"+id, nil, "", nil)
	return err
}

// UpdateStatus changes a project's lifecycle status. Membership in the
// status enumeration is checked before anything goes on the wire.
func (c *Client) UpdateStatus(ctx context.Context, id, status string) error {
	if !ValidStatus(status, ProjectStatuses) {
		return clientFault(fmt.Errorf("invalid status %q", status))
	}
	data, err := formEncoder.Encode(&struct {
		Status string `form:"status"`
	}{Status: status})
	if err != nil {
		return clientFault(err)
	}
	_, err = c.do(ctx, http.MethodPatch, "/projects/"+id+"/status",
		bytes.NewReader([]byte(data.Encode())), "application/x-www-form-urlencoded", nil)
	return err
}

func (c *Client) ListPending(ctx context.Context) ([]PendingProject, error) {
	var out []PendingProject
	if err := c.getJSON(ctx, "/admin/pending", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveProject(ctx context.Context, rid int) error {
	_, err := c.postJSON(ctx, "/admin/approve/"+strconv.Itoa(rid), nil, nil)
	return err
}

func (c *Client) RejectProject(ctx context.Context, rid int) error {
	_, err := c.postJSON(ctx, "/admin/reject/"+strconv.Itoa(rid), nil, nil)
	return err
}
