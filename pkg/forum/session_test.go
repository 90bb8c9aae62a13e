package forum_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gcet-osf/forumctl/pkg/configuration"
	"github.com/gcet-osf/forumctl/pkg/forum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConf(t *testing.T, baseURL string) *configuration.Configuration {
	t.Helper()
	return &configuration.Configuration{
		BaseURL:      baseURL,
		AuthStyle:    configuration.AuthStyleBoth,
		Timeout:      5 * time.Second,
		SidCookieKey: "sid",
		TokenPath:    filepath.Join(t.TempDir(), "token"),
	}
}

func newTestClient(t *testing.T, baseURL string) *forum.Client {
	t.Helper()
	c, err := forum.NewClient(testConf(t, baseURL))
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestResolveSession(t *testing.T) {
	t.Parallel()

	t.Run("AllLookupsSucceed", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/getuser":
				writeJSON(t, w, map[string]string{"username": "alice", "email": "alice@example.com"})
			case "/api/isadmin":
				writeJSON(t, w, map[string]bool{"value": true})
			case "/api/issudo":
				writeJSON(t, w, map[string]bool{"value": false})
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		sess := newTestClient(t, srv.URL).ResolveSession(context.Background())
		assert.Equal(t, "alice", sess.Username)
		assert.Equal(t, "alice@example.com", sess.Email)
		assert.True(t, sess.IsAdmin)
		assert.False(t, sess.IsSudo)
		assert.True(t, sess.LoggedIn())
	})

	t.Run("FailedFlagLookupResolvesFalse", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/getuser":
				writeJSON(t, w, map[string]string{"username": "bob"})
			case "/api/isadmin":
				w.WriteHeader(http.StatusInternalServerError)
			case "/api/issudo":
				w.WriteHeader(http.StatusUnauthorized)
			}
		}))
		defer srv.Close()

		sess := newTestClient(t, srv.URL).ResolveSession(context.Background())
		assert.Equal(t, "bob", sess.Username)
		assert.False(t, sess.IsAdmin)
		assert.False(t, sess.IsSudo)
	})

	t.Run("FailedIdentityResolvesAnonymous", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/getuser":
				w.WriteHeader(http.StatusUnauthorized)
			default:
				writeJSON(t, w, map[string]bool{"value": true})
			}
		}))
		defer srv.Close()

		sess := newTestClient(t, srv.URL).ResolveSession(context.Background())
		assert.False(t, sess.LoggedIn())
		assert.Equal(t, "", sess.Username)
		// Flags still resolve on their own.
		assert.True(t, sess.IsAdmin)
	})

	t.Run("BackendDownFailsClosed", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		sess := newTestClient(t, srv.URL).ResolveSession(context.Background())
		assert.False(t, sess.LoggedIn())
		assert.False(t, sess.IsAdmin)
		assert.False(t, sess.IsSudo)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("CachesTokenAndCookie", func(t *testing.T) {
		t.Parallel()
		var sawCookie bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/login":
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "alice@example.com", body["email"])
				http.SetCookie(w, &http.Cookie{Name: "sid", Value: "c00kie"})
				writeJSON(t, w, map[string]string{"token": "t0ken"})
			case "/api/getuser":
				if c, err := r.Cookie("sid"); err == nil && c.Value == "c00kie" {
					sawCookie = true
					writeJSON(t, w, map[string]string{"username": "alice"})
					return
				}
				w.WriteHeader(http.StatusUnauthorized)
			default:
				writeJSON(t, w, map[string]bool{"value": false})
			}
		}))
		defer srv.Close()

		c := newTestClient(t, srv.URL)
		require.NoError(t, c.Login(context.Background(), "alice@example.com", "longenough1"))
		assert.Equal(t, "t0ken", c.Token())

		sess := c.ResolveSession(context.Background())
		assert.True(t, sess.LoggedIn())
		assert.True(t, sawCookie, "session cookie should ride on later requests")
	})

	t.Run("RejectionSurfacesServerMessage", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
		}))
		defer srv.Close()

		err := newTestClient(t, srv.URL).Login(context.Background(), "a@b.co", "wrong")
		require.Error(t, err)
		assert.Equal(t, "invalid credentials", forum.UserMessage(err))
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	t.Run("ClearsTokenEvenOnFailure", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := newTestClient(t, srv.URL)
		c.SetToken("stale")
		c.Logout(context.Background())
		assert.Equal(t, "", c.Token())
	})

	t.Run("ClearsTokenWhenBackendDown", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		c := newTestClient(t, srv.URL)
		c.SetToken("stale")
		c.Logout(context.Background())
		assert.Equal(t, "", c.Token())
	})
}
