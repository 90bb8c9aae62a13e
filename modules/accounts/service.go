package accounts

import (
	"context"

	"github.com/gcet-osf/forumctl/pkg/configuration"
	"github.com/gcet-osf/forumctl/pkg/forum"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// AccountService bridges the auth forms and the client: validate first,
// then talk to the backend, then cache or drop the credential.
type AccountService struct {
	client *forum.Client
	conf   *configuration.Configuration
	logger *logrus.Logger
}

func NewAccountService(client *forum.Client, conf *configuration.Configuration) *AccountService {
	return &AccountService{
		client: client,
		conf:   conf,
		logger: conf.Logger(),
	}
}

// Register creates an account. The backend keys accounts by username, and
// the form always sent the email address as the username.
func (s *AccountService) Register(ctx context.Context, dto *RegisterDTO) (string, error) {
	if err := dto.Validate(); err != nil {
		return "", err
	}
	if err := s.client.Register(ctx, dto.Email, dto.Password); err != nil {
		return "", err
	}
	return "Registration successful! Please login.", nil
}

// Login authenticates and caches the credential for later runs.
func (s *AccountService) Login(ctx context.Context, dto *LoginDTO) (forum.Session, error) {
	if err := dto.Validate(); err != nil {
		return forum.Session{}, err
	}
	if err := s.client.Login(ctx, dto.Email, dto.Password); err != nil {
		return forum.Session{}, err
	}
	if tok := s.client.Token(); tok != "" {
		if err := forum.SaveToken(s.conf.TokenPath, tok); err != nil {
			return forum.Session{}, errors.Wrap(err, "caching credential")
		}
	}
	return s.client.ResolveSession(ctx), nil
}

// Logout calls the endpoint fire-and-forget and drops the cached
// credential either way.
func (s *AccountService) Logout(ctx context.Context) {
	s.client.Logout(ctx)
	forum.ClearToken(s.conf.TokenPath)
	s.logger.Debug("logged out")
}

// Gate resolves the session for this run. The cached token, if any, must be
// installed on the client before calling.
func (s *AccountService) Gate(ctx context.Context) forum.Session {
	return s.client.ResolveSession(ctx)
}
