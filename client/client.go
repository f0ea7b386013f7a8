// Package client is the Go consumer of the progression API. It fetches the
// authoritative course snapshot and keeps a local copy reconciled with the
// server through periodic polling.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/aulavivo/backend/core/progress"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CourseLessons fetches the server's snapshot of the user's progress in the
// course: lessons in canonical order, each joined with its progress record.
func (c *Client) CourseLessons(ctx context.Context, courseID, userID int) (progress.CourseProgressView, error) {
	var view progress.CourseProgressView

	url := fmt.Sprintf("%s/v1/courses/%d/lessons?userId=%d", c.baseURL, courseID, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return view, errors.Wrap(err, "building request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return view, errors.Wrap(err, "fetching course lessons")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return view, errors.Errorf("fetching course lessons: %s", resp.Status)
	}
	if err = json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return view, errors.Wrap(err, "decoding course lessons")
	}
	return view, nil
}
