// Package publish commits the content artifact to the site repository through
// the GitHub contents API. A successful commit triggers the site's own build
// and deploy pipeline.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/constants"
)

var (
	// ErrConflict is returned when the hosting API rejects a commit because the
	// revision it was based on is no longer current.
	ErrConflict = errors.New("remote file changed since its revision was fetched")
)

// maxErrorBody bounds how much of an upstream error body is kept.
const maxErrorBody = 4 << 10

// APIError describes a non-success response from the hosting API.
type APIError struct {
	Op         string
	StatusCode int
	Status     string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

// Unwrap maps revision mismatches onto ErrConflict.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusConflict || e.StatusCode == http.StatusUnprocessableEntity {
		return ErrConflict
	}
	return nil
}

// Target addresses one file on one branch of a repository.
type Target struct {
	Owner  string
	Repo   string
	Branch string
	Path   string
}

// Committer is the author identity recorded on content commits.
type Committer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CommitRequest is the body of a contents PUT.
type CommitRequest struct {
	Message   string    `json:"message"`
	Content   string    `json:"content"`
	SHA       string    `json:"sha"`
	Branch    string    `json:"branch"`
	Committer Committer `json:"committer"`
}

// fileResponse is the subset of the contents GET response we need.
type fileResponse struct {
	SHA string `json:"sha"`
}

// Client talks to the contents endpoints of a GitHub-compatible API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a contents API client.
//
// Parameters:
//   - baseURL: API root, e.g. https://api.github.com
//   - token: Personal access token with contents write access
//   - httpClient: HTTP client to use; nil selects one with the default upstream timeout
//
// Returns:
//   - A configured Client
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.GitHubRequestTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

func (c *Client) contentsURL(t Target) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.baseURL, url.PathEscape(t.Owner), url.PathEscape(t.Repo), escapePath(t.Path))
}

// escapePath escapes each segment of a repository path but keeps the slashes.
func escapePath(p string) string {
	segments := strings.Split(strings.TrimLeft(p, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(constants.HeaderAuthorization, "token "+c.token)
	req.Header.Set(constants.HeaderAccept, constants.ContentTypeGitHubJSON)
	if body != nil {
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}
	return req, nil
}

func readAPIError(op string, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(body),
	}
}

// FileSHA returns the current blob revision of the target file on its branch.
func (c *Client) FileSHA(ctx context.Context, t Target) (string, error) {
	endpoint := c.contentsURL(t) + "?ref=" + url.QueryEscape(t.Branch)
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build revision request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch file revision: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", readAPIError("Failed to get file SHA", resp)
	}

	var file fileResponse
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return "", fmt.Errorf("decode file revision: %w", err)
	}
	if file.SHA == "" {
		return "", fmt.Errorf("fetch file revision: response carried no sha")
	}
	return file.SHA, nil
}

// PutFile commits new content for the target file.
func (c *Client) PutFile(ctx context.Context, t Target, commit CommitRequest) error {
	payload, err := json.Marshal(commit)
	if err != nil {
		return fmt.Errorf("encode commit: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, c.contentsURL(t), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build commit request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("commit file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := readAPIError("Failed to update file", resp)
		log.Warn().
			Int("status", apiErr.StatusCode).
			Str("repo", t.Owner+"/"+t.Repo).
			Str("branch", t.Branch).
			Msg("Content commit rejected")
		return apiErr
	}
	return nil
}
