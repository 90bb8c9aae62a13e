package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gcet-osf/forumctl/pkg/logging"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

// AuthStyle selects how the cached credential is attached to requests.
// The backend historically accepted both a session cookie and a bearer
// header depending on the endpoint, so "both" is the default.
const (
	AuthStyleCookie = "cookie"
	AuthStyleBearer = "bearer"
	AuthStyleBoth   = "both"
)

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

func LoadEnv(envFiles []string) (int, error) {
	exists := make([]bool, len(envFiles))
	for i, file := range envFiles {
		if fs.FileExists(file) {
			exists[i] = true
		}
	}

	existingFiles := make([]string, 0, len(envFiles))
	for i, file := range envFiles {
		if exists[i] {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

type Configuration struct {
	// BaseURL selects the backend host every request is issued against.
	BaseURL   string        `env:"FORUM_BASE_URL" envDefault:"http://localhost:8080"`
	AuthStyle string        `env:"FORUM_AUTH_STYLE" envDefault:"both"`
	Timeout   time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// TokenPath is where the credential obtained at login is cached.
	// Empty means <user config dir>/forumctl/token.
	TokenPath    string `env:"TOKEN_PATH"`
	SidCookieKey string `env:"SID_COOKIE_KEY" envDefault:"sid"`

	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"error"`
	LogPath          string `env:"LOG_PATH"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	if c.logger == nil {
		c.logger = logging.ConsoleLogger(logrus.ErrorLevel)
	}
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.validateAuthStyle(); err != nil {
		return err
	}

	if c.LogPath != "" {
		f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
		if err != nil {
			return err
		}
		c.logFile = f
		c.logger = logger
	} else {
		c.logger = logging.ConsoleLogger(c.LogrusLogLevel())
	}

	if c.TokenPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		c.TokenPath = filepath.Join(dir, "forumctl", "token")
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	return nil
}

func (c *Configuration) validateAuthStyle() error {
	style := strings.ToLower(strings.TrimSpace(c.AuthStyle))
	if style == "" {
		style = AuthStyleBoth
	}
	switch style {
	case AuthStyleCookie, AuthStyleBearer, AuthStyleBoth:
	default:
		return fmt.Errorf("invalid FORUM_AUTH_STYLE=%q (expected cookie|bearer|both)", c.AuthStyle)
	}
	c.AuthStyle = style
	return nil
}

func (c *Configuration) Unload() {
	if c.logFile != nil {
		_ = c.logFile.Close()
		c.logFile = nil
	}
}
