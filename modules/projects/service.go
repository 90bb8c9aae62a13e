package projects

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gcet-osf/forumctl/pkg/configuration"
	"github.com/gcet-osf/forumctl/pkg/forum"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Query narrows and orders the project listing. Zero values are identities.
type Query struct {
	Search  string
	Status  string
	Creator string
	SortBy  forum.SortKey
	SortDir forum.SortDirection
}

type ProjectService struct {
	client *forum.Client
	logger *logrus.Logger
}

func NewProjectService(client *forum.Client, conf *configuration.Configuration) *ProjectService {
	return &ProjectService{client: client, logger: conf.Logger()}
}

// List fetches the full listing once and applies the query client-side,
// the way the listing page did.
func (s *ProjectService) List(ctx context.Context, q Query) ([]forum.Project, error) {
	items, err := s.client.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	items = forum.FilterStatus(items, q.Status)
	items = forum.FilterCreator(items, q.Creator)
	items = forum.Filter(items, q.Search)
	if q.SortBy != "" {
		dir := q.SortDir
		if dir == "" {
			dir = forum.Ascending
		}
		items = forum.Sort(items, q.SortBy, dir)
	}
	return items, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (forum.Project, error) {
	return s.client.GetProject(ctx, id)
}

// Create validates the draft and submits it. The outcome distinguishes a
// direct 201 approval from a 202 buffered submission.
func (s *ProjectService) Create(ctx context.Context, dto *CreateProjectDTO) (forum.CreateOutcome, error) {
	if err := dto.Validate(); err != nil {
		return forum.CreateOutcome{}, err
	}
	out, err := s.client.CreateProject(ctx, dto.Name, dto.Description)
	if err != nil {
		return forum.CreateOutcome{}, err
	}
	s.logger.WithFields(logrus.Fields{
		"pending":    out.Pending,
		"project_id": out.ProjectID,
		"request_id": out.RequestID,
	}).Info("project submitted")
	return out, nil
}

// Edit validates the draft and posts it as multipart form data, streaming
// the replacement thumbnail when one is given.
func (s *ProjectService) Edit(ctx context.Context, id string, dto *EditProjectDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	f := forum.EditProjectForm{
		Name:        dto.Name,
		Description: dto.Description,
		Status:      dto.Status,
	}
	if dto.ThumbnailPath != "" {
		file, err := os.Open(dto.ThumbnailPath)
		if err != nil {
			return errors.Wrap(err, "opening thumbnail")
		}
		defer func() { _ = file.Close() }()
		f.Thumbnail = file
		f.ThumbnailName = filepath.Base(dto.ThumbnailPath)
	}
	return s.client.EditProject(ctx, id, f)
}
