package eventsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a typed HTTP client for the eventgate service. Unauthenticated
// operations hang off the Client; Login returns a Session for the
// authenticated surface.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Session is an authenticated view of the API carrying a bearer token.
type Session struct {
	client *Client
	token  string
}

// Token returns the session's bearer token, for callers that persist it.
func (s *Session) Token() string { return s.token }

// NewSessionFromToken builds a session around a previously issued token.
func (c *Client) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseError(resp.StatusCode, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Signup creates a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (SignupResponse, error) {
	var out SignupResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/signup", "", req, &out)
	return out, err
}

// Activate redeems an activation token.
func (c *Client) Activate(ctx context.Context, userID, token string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/activate", "",
		ActivateRequest{UserID: userID, Token: token}, nil)
}

// ResendActivation requests a fresh activation email. Always succeeds for
// well-formed input, regardless of whether the address is registered.
func (c *Client) ResendActivation(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/activate/resend", "",
		ResendActivationRequest{Email: email}, nil)
}

// Login authenticates and returns an authenticated session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", "",
		LoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, LoginResponse{}, err
	}
	return &Session{client: c, token: out.Token}, out, nil
}

// ListEvents returns events, optionally filtered by free-text query,
// category and date range (YYYY-MM-DD).
func (c *Client) ListEvents(ctx context.Context, query, categoryID, from, to string) (EventListResponse, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if categoryID != "" {
		q.Set("category_id", categoryID)
	}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	path := "/v1/events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out EventListResponse
	err := c.do(ctx, http.MethodGet, path, "", nil, &out)
	return out, err
}

// GetEvent returns a single event.
func (c *Client) GetEvent(ctx context.Context, eventID string) (EventResponse, error) {
	var out EventResponse
	err := c.do(ctx, http.MethodGet, "/v1/events/"+url.PathEscape(eventID), "", nil, &out)
	return out, err
}

// ListCategories returns all categories.
func (c *Client) ListCategories(ctx context.Context) (CategoryListResponse, error) {
	var out CategoryListResponse
	err := c.do(ctx, http.MethodGet, "/v1/categories", "", nil, &out)
	return out, err
}

// Profile returns the authenticated account.
func (s *Session) Profile(ctx context.Context) (ProfileResponse, error) {
	var out ProfileResponse
	err := s.client.do(ctx, http.MethodGet, "/v1/auth/me", s.token, nil, &out)
	return out, err
}

// CreateEvent adds a new event. Organizer or admin role required.
func (s *Session) CreateEvent(ctx context.Context, req EventRequest) (EventResponse, error) {
	var out EventResponse
	err := s.client.do(ctx, http.MethodPost, "/v1/events", s.token, req, &out)
	return out, err
}

// UpdateEvent replaces an event's details.
func (s *Session) UpdateEvent(ctx context.Context, eventID string, req EventRequest) (EventResponse, error) {
	var out EventResponse
	err := s.client.do(ctx, http.MethodPut, "/v1/events/"+url.PathEscape(eventID), s.token, req, &out)
	return out, err
}

// DeleteEvent removes an event and its registrations.
func (s *Session) DeleteEvent(ctx context.Context, eventID string) error {
	return s.client.do(ctx, http.MethodDelete, "/v1/events/"+url.PathEscape(eventID), s.token, nil, nil)
}

// RSVP registers the authenticated participant for an event. A duplicate
// registration returns ErrConflict with Registered already true server-side;
// callers can treat it as success.
func (s *Session) RSVP(ctx context.Context, eventID string) (RSVPResponse, error) {
	var out RSVPResponse
	err := s.client.do(ctx, http.MethodPost, "/v1/events/"+url.PathEscape(eventID)+"/rsvp", s.token, nil, &out)
	return out, err
}

// CancelRSVP withdraws the authenticated participant from an event.
func (s *Session) CancelRSVP(ctx context.Context, eventID string) error {
	return s.client.do(ctx, http.MethodDelete, "/v1/events/"+url.PathEscape(eventID)+"/rsvp", s.token, nil, nil)
}

// Attendees lists the users registered for an event. Organizer or admin
// role required.
func (s *Session) Attendees(ctx context.Context, eventID string) (AttendeeListResponse, error) {
	var out AttendeeListResponse
	err := s.client.do(ctx, http.MethodGet, "/v1/events/"+url.PathEscape(eventID)+"/attendees", s.token, nil, &out)
	return out, err
}

// CreateCategory adds a category. Organizer or admin role required.
func (s *Session) CreateCategory(ctx context.Context, req CategoryRequest) (CategoryResponse, error) {
	var out CategoryResponse
	err := s.client.do(ctx, http.MethodPost, "/v1/categories", s.token, req, &out)
	return out, err
}

// UpdateCategory renames a category.
func (s *Session) UpdateCategory(ctx context.Context, categoryID string, req CategoryRequest) (CategoryResponse, error) {
	var out CategoryResponse
	err := s.client.do(ctx, http.MethodPut, "/v1/categories/"+url.PathEscape(categoryID), s.token, req, &out)
	return out, err
}

// DeleteCategory removes a category; events referencing it are detached.
func (s *Session) DeleteCategory(ctx context.Context, categoryID string) error {
	return s.client.do(ctx, http.MethodDelete, "/v1/categories/"+url.PathEscape(categoryID), s.token, nil, nil)
}

// Dashboard returns the organizer dashboard counters.
func (s *Session) Dashboard(ctx context.Context) (DashboardResponse, error) {
	var out DashboardResponse
	err := s.client.do(ctx, http.MethodGet, "/v1/dashboard", s.token, nil, &out)
	return out, err
}

// ListRoles returns the role catalogue. Admin only.
func (s *Session) ListRoles(ctx context.Context) (RoleListResponse, error) {
	var out RoleListResponse
	err := s.client.do(ctx, http.MethodGet, "/v1/roles", s.token, nil, &out)
	return out, err
}

// ListUsers returns all accounts with their roles. Admin only.
func (s *Session) ListUsers(ctx context.Context) (UserListResponse, error) {
	var out UserListResponse
	err := s.client.do(ctx, http.MethodGet, "/v1/users", s.token, nil, &out)
	return out, err
}

// ChangeRole replaces the target user's role with exactly the named one.
// Admin only.
func (s *Session) ChangeRole(ctx context.Context, userID, role string) error {
	return s.client.do(ctx, http.MethodPut, "/v1/users/"+url.PathEscape(userID)+"/role", s.token,
		ChangeRoleRequest{Role: role}, nil)
}

// DeleteUser removes an account. Admin only.
func (s *Session) DeleteUser(ctx context.Context, userID string) error {
	return s.client.do(ctx, http.MethodDelete, "/v1/users/"+url.PathEscape(userID), s.token, nil, nil)
}
