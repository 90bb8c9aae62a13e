package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env.local"), []byte("FORUMCTL_TEST_ENV_LOAD=ok\n"), 0o644))
	t.Chdir(tmp)
	_ = os.Unsetenv("FORUMCTL_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	assert.Equal(t, 1, n, "only existing files are loaded")
	assert.Equal(t, "ok", os.Getenv("FORUMCTL_TEST_ENV_LOAD"))
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"FORUM_BASE_URL", "FORUM_AUTH_STYLE", "HTTP_TIMEOUT", "TOKEN_PATH", "SID_COOKIE_KEY", "LOG_LEVEL", "LOG_PATH"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())

	c := &Configuration{}
	require.NoError(t, c.load(nil))
	t.Cleanup(c.Unload)

	assert.Equal(t, "http://localhost:8080", c.BaseURL)
	assert.Equal(t, AuthStyleBoth, c.AuthStyle)
	assert.Equal(t, "sid", c.SidCookieKey)
	assert.NotEmpty(t, c.TokenPath, "token path falls back to the user config dir")
	assert.NotNil(t, c.Logger())
}

func TestLoadTrimsTrailingSlashAndRejectsBadAuthStyle(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("FORUM_BASE_URL", "http://forum.local:9000/")
	t.Setenv("FORUM_AUTH_STYLE", "Bearer")
	c := &Configuration{}
	require.NoError(t, c.load(nil))
	t.Cleanup(c.Unload)
	assert.Equal(t, "http://forum.local:9000", c.BaseURL)
	assert.Equal(t, AuthStyleBearer, c.AuthStyle, "style is case-folded")

	t.Setenv("FORUM_AUTH_STYLE", "basic")
	bad := &Configuration{}
	err := bad.load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORUM_AUTH_STYLE")
}

func TestLogrusLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]logrus.Level{
		"silent": logrus.PanicLevel,
		"error":  logrus.ErrorLevel,
		"warn":   logrus.WarnLevel,
		"info":   logrus.InfoLevel,
		"debug":  logrus.DebugLevel,
		"bogus":  logrus.ErrorLevel,
		"":       logrus.ErrorLevel,
	}
	for level, want := range cases {
		c := &Configuration{LogLevel: level}
		assert.Equal(t, want, c.LogrusLogLevel(), "level %q", level)
	}
}
