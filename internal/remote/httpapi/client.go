package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/session"
)

const (
	// DefaultBaseURL is the default Workly REST API base URL.
	DefaultBaseURL = "http://localhost:8080/api/v1"

	maxErrorBodyBytes = 512
)

// ClientConfig is the configuration for the Workly REST API client.
type ClientConfig struct {
	// BaseURL is the API base URL (e.g. "http://localhost:8080/api/v1").
	BaseURL string
	// HTTPClient is the HTTP client used for the requests.
	HTTPClient *http.Client
	// Session provides the bearer token for every request.
	Session session.Provider
	Logger  log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Session == nil {
		return fmt.Errorf("session provider is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "remote.HTTP"})
	return nil
}

// Client implements remote.API using the Workly REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    session.Provider
	logger     log.Logger
}

// NewClient returns a new Workly REST API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		session:    cfg.Session,
		logger:     cfg.Logger,
	}, nil
}

// StatusError is returned when the API answers with a non 2xx status code.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is makes the status error match the remote and not found model errors.
func (e *StatusError) Is(target error) bool {
	switch target {
	case model.ErrRemote:
		return true
	case model.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// --- remote.BoardReader ---

// GetBoard returns the board of a project with its columns sorted by position.
func (c *Client) GetBoard(ctx context.Context, projectID int64) (*model.Board, error) {
	project, err := c.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("could not get project: %w", err)
	}

	var cols []ColumnJSON
	err = c.do(ctx, http.MethodGet, fmt.Sprintf("/columns/project/%d", projectID), nil, nil, &cols)
	if err != nil {
		return nil, fmt.Errorf("could not get columns: %w", err)
	}

	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Position < cols[j].Position })

	board := &model.Board{
		ProjectID: projectID,
		Title:     project.Title,
		Columns:   make([]model.Column, 0, len(cols)),
		SyncedAt:  time.Now().UTC(),
	}
	for _, col := range cols {
		sort.SliceStable(col.Tasks, func(i, j int) bool { return col.Tasks[i].Position < col.Tasks[j].Position })
		board.Columns = append(board.Columns, ColumnToModel(col))
	}

	return board, nil
}

// GetProject returns a project.
func (c *Client) GetProject(ctx context.Context, projectID int64) (*model.Project, error) {
	var p ProjectJSON
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", projectID), nil, nil, &p); err != nil {
		return nil, err
	}

	project := ProjectToModel(p)
	return &project, nil
}

// ListProjects returns the projects owned by the session user.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var ps []ProjectJSON
	if err := c.do(ctx, http.MethodGet, "/projects/mine", nil, nil, &ps); err != nil {
		return nil, err
	}

	projects := make([]model.Project, 0, len(ps))
	for _, p := range ps {
		projects = append(projects, ProjectToModel(p))
	}
	return projects, nil
}

// GetTask returns a task with all its details.
func (c *Client) GetTask(ctx context.Context, taskID int64) (*model.Task, error) {
	var t TaskJSON
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", taskID), nil, nil, &t); err != nil {
		return nil, err
	}

	task := TaskToModel(t)
	return &task, nil
}

// --- remote.PositionWriter ---

// SetColumnPosition sets the ordinal position of a column in its board.
func (c *Client) SetColumnPosition(ctx context.Context, columnID int64, position int) error {
	q := url.Values{"position": []string{strconv.Itoa(position)}}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/columns/%d/position", columnID), q, nil, nil)
}

// SetTaskPosition sets the ordinal position of a task in its column.
func (c *Client) SetTaskPosition(ctx context.Context, taskID int64, position int) error {
	q := url.Values{"position": []string{strconv.Itoa(position)}}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d/position", taskID), q, nil, nil)
}

// MoveTask reassigns a task to a different column.
func (c *Client) MoveTask(ctx context.Context, taskID, columnID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/move/%d", taskID, columnID), nil, nil, nil)
}

// --- remote.ColumnWriter ---

// CreateColumn creates a new column at the end of the project board.
func (c *Client) CreateColumn(ctx context.Context, projectID int64, title string) (*model.Column, error) {
	var col ColumnJSON
	body := CreateColumnJSON{Title: title, ProjectID: projectID}
	if err := c.do(ctx, http.MethodPost, "/columns", nil, body, &col); err != nil {
		return nil, err
	}

	m := ColumnToModel(col)
	return &m, nil
}

// RenameColumn changes the title of a column.
func (c *Client) RenameColumn(ctx context.Context, projectID, columnID int64, title string) (*model.Column, error) {
	var col ColumnJSON
	body := CreateColumnJSON{Title: title, ProjectID: projectID}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/columns/%d", columnID), nil, body, &col); err != nil {
		return nil, err
	}

	m := ColumnToModel(col)
	return &m, nil
}

// DeleteColumn removes a column and its tasks.
func (c *Client) DeleteColumn(ctx context.Context, columnID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/columns/%d", columnID), nil, nil, nil)
}

// --- remote.TaskWriter ---

// CreateTask creates a pending task at the end of a column.
func (c *Client) CreateTask(ctx context.Context, columnID int64, title string) (*model.Task, error) {
	var t TaskJSON
	body := CreateTaskJSON{Title: title, Status: statusPending, ColumnID: columnID}
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, body, &t); err != nil {
		return nil, err
	}

	task := TaskToModel(t)
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), nil, nil, nil)
}

// do executes an authenticated request, the credential is resolved before any
// network call so a missing session never reaches the server.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token, err := c.session.Token(ctx)
	if err != nil {
		return fmt.Errorf("could not get credential: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debugf("%s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, err, model.ErrRemote)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(errBody)),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode %s %s response: %w", method, path, err)
	}

	return nil
}
