// Package tutor talks to the hint and evaluation service that reviews a
// snapshot of the board against a problem statement.
package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

var (
	ErrNoProblem = errors.New("tutor: no problem statement")
	ErrStatus    = errors.New("tutor: unexpected response status")
	ErrNotFound  = errors.New("tutor: no service found")
)

const (
	hintPath   = "/give-hint"
	submitPath = "/submit-work"

	snapshotName = "screenshot.png"
	maxReplySize = 1 << 20
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type hintReply struct {
	Hint string `json:"hint"`
}

// Hint asks for a nudge on problem given the board snapshot (PNG bytes).
func (c *Client) Hint(ctx context.Context, snapshot []byte, problem string) (string, error) {
	var reply hintReply
	if err := c.post(ctx, hintPath, snapshot, problem, &reply); err != nil {
		return "", err
	}
	return reply.Hint, nil
}

// Evaluate submits the board snapshot as the answer to problem.
func (c *Client) Evaluate(ctx context.Context, snapshot []byte, problem string) (*Evaluation, error) {
	var ev Evaluation
	if err := c.post(ctx, submitPath, snapshot, problem, &ev); err != nil {
		return nil, err
	}
	if ev.Problem == "" {
		ev.Problem = problem
	}
	return &ev, nil
}

func (c *Client) post(ctx context.Context, path string, snapshot []byte, problem string, out any) error {
	problem = strings.TrimSpace(problem)
	if problem == "" {
		return ErrNoProblem
	}

	body, contentType, err := form(snapshot, problem)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Printf("[TUTOR] %s failed: %v", path, err)
		return fmt.Errorf("tutor request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("[TUTOR] %s returned %s", path, resp.Status)
		return fmt.Errorf("%w: %s: %s", ErrStatus, resp.Status, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReplySize)).Decode(out); err != nil {
		return fmt.Errorf("decoding %s reply: %w", path, err)
	}
	log.Printf("[TUTOR] %s answered in %v", path, time.Since(start).Round(time.Millisecond))
	return nil
}

func form(snapshot []byte, problem string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", snapshotName)
	if err != nil {
		return nil, "", err
	}
	if _, err := fw.Write(snapshot); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("problem", problem); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
