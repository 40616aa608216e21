// Package storyclient talks to the story server's HTTP API.
package storyclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"nightfall/internal/config"
	"nightfall/internal/logger"
	"nightfall/internal/model"
)

const (
	storyPath         = "/api/story"
	imageCheckTimeout = 10 * time.Second
	maxErrorBody      = 64 << 10
)

var errEmptyStory = errors.New("Failed to retrieve story.")

// APIError is a non-200 response from the story endpoint.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return e.Message + " (" + e.Details + ")"
	}
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Fetch requests a new story. Images that cannot be reached are dropped.
func (c *Client) Fetch(ctx context.Context) (model.Story, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+storyPath, nil)
	if err != nil {
		return model.Story{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", config.AppName+"/"+config.AppVersion)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("story fetch failed", "module", "client", "action", "fetch", "resource", "story", "result", "failed", "error", err)
		return model.Story{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := decodeError(resp)
		logger.Warn("story fetch failed", "module", "client", "action", "fetch", "resource", "story", "result", "failed", "status_code", resp.StatusCode, "error", apiErr)
		return model.Story{}, apiErr
	}

	var story model.Story
	if err := json.NewDecoder(resp.Body).Decode(&story); err != nil {
		return model.Story{}, fmt.Errorf("decode story: %w", err)
	}
	if story.Title == "" && story.Body == "" {
		return model.Story{}, errEmptyStory
	}

	story.Images = c.ReachableImages(ctx, story.Images)
	logger.Info("story fetched", "module", "client", "action", "fetch", "resource", "story", "result", "ok",
		"generation_id", resp.Header.Get("X-Generation-Id"), "images", len(story.Images), "duration_ms", time.Since(start).Milliseconds())
	return story, nil
}

// ReachableImages checks every URL concurrently with a HEAD request and
// returns the reachable ones in their original order.
func (c *Client) ReachableImages(ctx context.Context, urls []string) []string {
	ok := make([]bool, len(urls))
	var g errgroup.Group
	for i, u := range urls {
		g.Go(func() error {
			ok[i] = c.reachable(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]string, 0, len(urls))
	for i, u := range urls {
		if ok[i] {
			out = append(out, u)
		} else {
			logger.Debug("image dropped", "module", "client", "action", "fetch", "resource", "image", "result", "failed", "url", u)
		}
	}
	return out
}

func (c *Client) reachable(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, imageCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
		apiErr.Details = payload.Details
	}
	return apiErr
}
