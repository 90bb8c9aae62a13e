package forum

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gcet-osf/forumctl/pkg/configuration"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Client talks to the Project Forum REST backend. It carries the credential
// both as a session cookie (captured at login via the jar) and as a bearer
// header, because the backend historically accepted either depending on the
// endpoint. FORUM_AUTH_STYLE narrows that to one transport.
type Client struct {
	baseURL   string
	http      *http.Client
	authStyle string
	sidCookie string
	logger    *logrus.Logger

	mu    sync.RWMutex
	token string
}

func NewClient(conf *configuration.Configuration) (*Client, error) {
	// Bearer-only transport carries no jar, so session cookies set at login
	// never ride on later requests.
	var jar http.CookieJar
	if conf.AuthStyle != configuration.AuthStyleBearer {
		j, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		jar = j
	}
	return &Client{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		http: &http.Client{
			Timeout: conf.Timeout,
			Jar:     jar,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		authStyle: conf.AuthStyle,
		sidCookie: conf.SidCookieKey,
		logger:    conf.Logger(),
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// sessionCookie returns the value of the backend's session cookie when the
// jar holds one for the base URL.
func (c *Client) sessionCookie() string {
	if c.http.Jar == nil {
		return ""
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, ck := range c.http.Jar.Cookies(u) {
		if ck.Name == c.sidCookie {
			return ck.Value
		}
	}
	return ""
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do issues one request and decodes a JSON response into out (out may be
// nil). The returned status code is valid whenever the error is nil or of
// kind ServerRejected.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, clientFault(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.Token(); tok != "" && c.authStyle != configuration.AuthStyleCookie {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).Debug("request failed without a response")
		return 0, noResponse(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Debug("request rejected")
		return resp.StatusCode, serverRejected(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, clientFault(err)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	_, err := c.do(ctx, http.MethodGet, path, nil, "", out)
	return err
}

func jsonBody(in any) (io.Reader, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, clientFault(err)
	}
	return bytes.NewReader(data), nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, clientFault(err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, http.MethodPost, path, body, "application/json", out)
}
