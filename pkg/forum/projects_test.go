package forum_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gcet-osf/forumctl/pkg/forum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectOutcomes(t *testing.T) {
	t.Parallel()

	t.Run("CreatedImmediately", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/projects", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			writeJSON(t, w, map[string]int{"p_id": 7})
		}))
		defer srv.Close()

		out, err := newTestClient(t, srv.URL).CreateProject(context.Background(), "Name", "Desc")
		require.NoError(t, err)
		assert.False(t, out.Pending)
		assert.Equal(t, 7, out.ProjectID)
		assert.Contains(t, out.Message(), "7")
		assert.NotContains(t, out.Message(), "pending")
	})

	t.Run("AcceptedPendingReview", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			writeJSON(t, w, map[string]int{"r_id": 42})
		}))
		defer srv.Close()

		out, err := newTestClient(t, srv.URL).CreateProject(context.Background(), "Name", "Desc")
		require.NoError(t, err)
		assert.True(t, out.Pending)
		assert.Equal(t, 42, out.RequestID)
		assert.Contains(t, out.Message(), "42")
		assert.Contains(t, out.Message(), "pending")
	})
}

// Creating a project and then fetching the list must show exactly one new
// item carrying the submitted fields.
func TestCreateThenListRoundTrip(t *testing.T) {
	t.Parallel()

	var (
		nextID   = 100
		projects []forum.Project
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/projects":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			nextID++
			projects = append(projects, forum.Project{
				PID:         nextID,
				Name:        body["name"],
				Description: body["description"],
				Status:      "upcoming",
			})
			w.WriteHeader(http.StatusCreated)
			writeJSON(t, w, map[string]int{"p_id": nextID})
		case r.Method == http.MethodGet && r.URL.Path == "/projects/api/getall":
			writeJSON(t, w, projects)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	before, err := c.ListProjects(context.Background())
	require.NoError(t, err)

	out, err := c.CreateProject(context.Background(), "CI/CD Pipeline", "Automated deployment")
	require.NoError(t, err)

	after, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)

	var matches []forum.Project
	for _, p := range after {
		if p.PID == out.ProjectID {
			matches = append(matches, p)
		}
	}
	require.Len(t, matches, 1)
	assert.Equal(t, "CI/CD Pipeline", matches[0].Name)
	assert.Equal(t, "Automated deployment", matches[0].Description)
	assert.Equal(t, "upcoming", matches[0].Status)
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	t.Run("InvalidStatusNeverReachesTheWire", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer srv.Close()

		err := newTestClient(t, srv.URL).UpdateStatus(context.Background(), "5", "bogus")
		require.Error(t, err)
		var re *forum.RequestError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, forum.ClientFault, re.Kind)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("PatchesFormEncodedStatus", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPatch, r.Method)
			require.Equal(t, "/projects/5/status", r.URL.Path)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "completed", r.PostFormValue("status"))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		require.NoError(t, newTestClient(t, srv.URL).UpdateStatus(context.Background(), "5", "completed"))
	})
}

func TestEditProjectMultipart(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/projects/edit/abc", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "New Name", r.FormValue("name"))
		assert.Equal(t, "active", r.FormValue("status"))

		file, header, err := r.FormFile("thumbnail")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "thumb.png", header.Filename)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestClient(t, srv.URL).EditProject(context.Background(), "abc", forum.EditProjectForm{
		Name:          "New Name",
		Description:   "desc",
		Status:        "active",
		ThumbnailName: "thumb.png",
		Thumbnail:     strings.NewReader("fake png bytes"),
	})
	require.NoError(t, err)
}

func TestModerationEndpoints(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	require.NoError(t, c.ApproveProject(context.Background(), 3))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/admin/approve/3", gotPath)

	require.NoError(t, c.RejectProject(context.Background(), 4))
	assert.Equal(t, "/admin/reject/4", gotPath)

	require.NoError(t, c.DeleteProject(context.Background(), "9"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/projects/api/delete/9", gotPath)
}

func TestProjectKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "uuid-1", forum.Project{ID: "uuid-1", PID: 3}.Key())
	assert.Equal(t, "3", forum.Project{PID: 3}.Key())
}
