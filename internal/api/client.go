package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

const userAgent = "gameconsole/1.0"

// Client talks to the game server's admin API. It always sends the session
// cookies it holds and adds the cached CSRF token to every non-GET request.
type Client struct {
	baseURL *url.URL
	http    *http.Client

	mu        sync.RWMutex
	csrfToken string
}

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", baseURL)
	}

	jar, err := newJar()
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Jar: jar},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func newJar() (http.CookieJar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

// BaseURL returns the server URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ResolveURL resolves a path or absolute URL against the server URL.
func (c *Client) ResolveURL(ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return c.baseURL.ResolveReference(r).String(), nil
}

// LoginURL is where unauthenticated users are sent.
func (c *Client) LoginURL() string {
	u, _ := c.ResolveURL(PathLogin)
	return u
}

// SetSessionCookie seeds the jar with a session cookie for the server
// origin, as a browser would hold after logging in.
func (c *Client) SetSessionCookie(name, value string) {
	if name == "" || value == "" {
		return
	}
	c.http.Jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:  name,
		Value: value,
		Path:  "/",
	}})
}

// Cookies returns the cookies the client would send to the server.
func (c *Client) Cookies() []*http.Cookie {
	return c.http.Jar.Cookies(c.baseURL)
}

// CSRFToken returns the cached token, or "" when none has been fetched.
func (c *Client) CSRFToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.csrfToken
}

// FetchCSRFToken retrieves and caches the CSRF token. Failures are logged
// and yield "", in which case requests go out without the header.
func (c *Client) FetchCSRFToken(ctx context.Context) string {
	var body csrfTokenResponse
	if err := c.getJSON(ctx, PathCSRFToken, &body); err != nil {
		log.Printf("Failed to fetch CSRF token: %v", err)
		return ""
	}

	c.mu.Lock()
	c.csrfToken = body.CSRFToken
	c.mu.Unlock()
	return body.CSRFToken
}

// Do sends req with the session cookies and, for non-GET requests, the
// cached CSRF token.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		if token := c.CSRFToken(); token != "" {
			req.Header.Set(HeaderCSRFToken, token)
		}
	}
	req.Header.Set("User-Agent", userAgent)
	return c.http.Do(req)
}

// NewRequest builds a request for a path relative to the server URL.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	target, err := c.ResolveURL(path)
	if err != nil {
		return nil, err
	}
	return http.NewRequestWithContext(ctx, method, target, body)
}

// Session checks whether the held cookies belong to a logged-in user. It
// returns ErrNotAuthenticated when the server says they do not.
func (c *Client) Session(ctx context.Context) (*Session, error) {
	var s Session
	if err := c.getJSON(ctx, PathSession, &s); err != nil {
		return nil, fmt.Errorf("session check failed: %w", err)
	}
	if !s.Authenticated {
		return nil, ErrNotAuthenticated
	}
	return &s, nil
}

// Logout ends the server session and always drops the local cookies, even
// when the request fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.resetSession()

	req, err := c.NewRequest(ctx, http.MethodPost, PathLogout, nil)
	if err != nil {
		return err
	}
	resp, err := c.Do(req)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return &StatusError{Method: http.MethodPost, Path: PathLogout, StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) resetSession() {
	var expired []*http.Cookie
	for _, cookie := range c.http.Jar.Cookies(c.baseURL) {
		expired = append(expired, &http.Cookie{Name: cookie.Name, Path: "/", MaxAge: -1})
	}
	c.http.Jar.SetCookies(c.baseURL, expired)

	c.mu.Lock()
	c.csrfToken = ""
	c.mu.Unlock()
}

// ExecuteCommand posts command to the execute endpoint. The reply is decoded
// whatever the status code, since the server reports logical failures as
// success:false bodies.
func (c *Client) ExecuteCommand(ctx context.Context, command string) (*ExecuteResponse, error) {
	payload, err := json.Marshal(ExecuteRequest{Command: command, Confirmed: true})
	if err != nil {
		return nil, err
	}

	req, err := c.NewRequest(ctx, http.MethodPost, PathExecute, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result ExecuteResponse
	if err := json.Unmarshal(data, &result); err != nil {
		if resp.StatusCode >= 300 {
			return nil, &StatusError{Method: http.MethodPost, Path: PathExecute, StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: http.MethodGet, Path: path, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// RequireSession runs the startup authentication check. Anything other than
// a confirmed session, including transport failures, sends the user to the
// login page through redirect and returns an error wrapping
// ErrNotAuthenticated.
func (c *Client) RequireSession(ctx context.Context, redirect func(string) error) (*Session, error) {
	s, err := c.Session(ctx)
	if err == nil {
		return s, nil
	}

	log.Printf("Session check failed: %v", err)
	if redirect != nil {
		if rerr := redirect(c.LoginURL()); rerr != nil {
			log.Printf("Failed to open login page: %v", rerr)
		}
	}
	if errors.Is(err, ErrNotAuthenticated) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
}
