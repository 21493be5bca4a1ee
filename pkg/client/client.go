// Package client talks to the profanity service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"profanity/pkg/models"
)

const defaultTimeout = 10 * time.Second

// StatusError is returned when the service answers with an unexpected status.
type StatusError struct {
	Code int
	Msg  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("profanity service returned status %d: %s", e.Code, e.Msg)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Check reports whether text contains profanity.
func (c *Client) Check(ctx context.Context, text string) (bool, error) {
	var verdict models.Verdict
	code, err := c.post(ctx, "/check", models.Comment{Text: text}, &verdict, http.StatusOK, http.StatusUnprocessableEntity)
	if err != nil {
		return false, err
	}

	return code == http.StatusUnprocessableEntity, nil
}

// Censor returns text with its profanities masked by the service's default
// censor character.
func (c *Client) Censor(ctx context.Context, text string) (string, error) {
	var comment models.Comment
	if _, err := c.post(ctx, "/censor", models.Comment{Text: text}, &comment, http.StatusOK); err != nil {
		return "", err
	}

	return comment.Text, nil
}

// Profanities returns every profanity found in text.
func (c *Client) Profanities(ctx context.Context, text string) ([]string, error) {
	var verdict models.Verdict
	if _, err := c.post(ctx, "/profanities", models.Comment{Text: text}, &verdict, http.StatusOK); err != nil {
		return nil, err
	}

	if verdict.Profanities == nil {
		return []string{}, nil
	}
	return verdict.Profanities, nil
}

// post sends body as JSON and decodes the response into out when its status
// is one of accepted.
func (c *Client) post(ctx context.Context, path string, body, out any, accepted ...int) (int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return 0, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error calling profanity service: %w", err)
	}
	defer resp.Body.Close()

	ok := false
	for _, code := range accepted {
		if resp.StatusCode == code {
			ok = true
			break
		}
	}
	if !ok {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, &StatusError{Code: resp.StatusCode, Msg: strings.TrimSpace(string(msg))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("error decoding response: %w", err)
	}

	return resp.StatusCode, nil
}
