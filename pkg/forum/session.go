package forum

import (
	"context"
	"net/http"
	"sync"
)

// Session is the caller's identity and permission flags for the current run.
type Session struct {
	Username string
	Email    string
	Token    string
	IsAdmin  bool
	IsSudo   bool
}

func (s Session) LoggedIn() bool { return s.Username != "" }

// GlobalRole maps the permission flags onto the role ladder. Unknown or
// unresolved flags land on the weakest role (fail-closed).
func (s Session) GlobalRole() Role {
	switch {
	case s.IsSudo:
		return RoleSuperadmin
	case s.IsAdmin:
		return RoleAdmin
	case s.LoggedIn():
		return RoleUser
	default:
		return RoleNone
	}
}

type userResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type flagResponse struct {
	Value bool `json:"value"`
}

// ResolveSession issues the identity and permission lookups in parallel.
// Each lookup fails independently and silently: a failed flag resolves to
// false, a failed identity lookup to an anonymous session. No retry.
func (c *Client) ResolveSession(ctx context.Context) Session {
	var (
		wg      sync.WaitGroup
		user    userResponse
		isAdmin flagResponse
		isSudo  flagResponse
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		if err := c.getJSON(ctx, "/api/getuser", &user); err != nil {
			user = userResponse{}
		}
	}()
	go func() {
		defer wg.Done()
		if err := c.getJSON(ctx, "/api/isadmin", &isAdmin); err != nil {
			isAdmin.Value = false
		}
	}()
	go func() {
		defer wg.Done()
		if err := c.getJSON(ctx, "/api/issudo", &isSudo); err != nil {
			isSudo.Value = false
		}
	}()
	wg.Wait()

	return Session{
		Username: user.Username,
		Email:    user.Email,
		Token:    c.Token(),
		IsAdmin:  isAdmin.Value,
		IsSudo:   isSudo.Value,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates against the backend. The session cookie, if the
// backend sets one, lands in the client's jar; a token in the response body
// is cached for bearer transport.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	if _, err := c.postJSON(ctx, "/api/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}
	if resp.Token == "" && c.sessionCookie() == "" {
		c.logger.Warn("login succeeded but the backend returned no credential")
	}
	return nil
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, username, password string) error {
	_, err := c.postJSON(ctx, "/register", registerRequest{Username: username, Password: password}, nil)
	return err
}

// Logout is fire-and-forget: the endpoint is called, the cached credential
// is dropped, and any failure is swallowed.
func (c *Client) Logout(ctx context.Context) {
	_, _ = c.do(ctx, http.MethodPost, "/api/logout", nil, "", nil)
	c.SetToken("")
}
