package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/starrystar99/KWU-EE-Chatbot-RAG/model"
)

// Error wraps any failure of a single gateway operation: transport error,
// non-success status, or a body that does not parse into the expected shape.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "gateway: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client talks to the chatbot backend. One attempt per call, no retries;
// the HTTP client timeout is the only bound on a hung request.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchHistory returns the stored (user, bot) exchanges in original order.
func (c *Client) FetchHistory(ctx context.Context) ([]model.HistoryTurn, error) {
	const op = "fetch history"
	var out struct {
		ChatHistory []model.HistoryTurn `json:"chat_history"`
	}
	if err := c.getJSON(ctx, op, "/api/chat/history", &out); err != nil {
		return nil, err
	}
	return out.ChatHistory, nil
}

// SendChatQuery submits a free-text question and returns the bot's answer.
func (c *Client) SendChatQuery(ctx context.Context, query string) (string, error) {
	const op = "send chat query"
	var out struct {
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, op, "/api/chat/", map[string]string{"query": query}, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// ResetHistory deletes the remote transcript. The response body is ignored.
func (c *Client) ResetHistory(ctx context.Context) error {
	const op = "reset history"
	body, err := c.do(ctx, op, http.MethodPost, "/api/chat/reset_chat", "", nil)
	if err != nil {
		return err
	}
	body.Close()
	return nil
}

// DetectEmptySlots uploads a timetable image and returns the free times per
// day, preserving the backend's day order.
func (c *Client) DetectEmptySlots(ctx context.Context, image model.Attachment) ([]model.FreeSlotDay, error) {
	const op = "detect empty slots"
	raw, err := c.postImage(ctx, op, "/api/image/detect_empty_slots", image)
	if err != nil {
		return nil, err
	}
	days, err := parseFreeSlots(raw)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	return days, nil
}

// RecommendFromImage uploads the same timetable image and returns course
// recommendations keyed by time.
func (c *Client) RecommendFromImage(ctx context.Context, image model.Attachment) ([]model.ImageCourse, error) {
	const op = "recommend from image"
	raw, err := c.postImage(ctx, op, "/api/recommend/", image)
	if err != nil {
		return nil, err
	}
	var out struct {
		Courses []model.ImageCourse `json:"추천 강의"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	return out.Courses, nil
}

// RecommendFromManualSlots returns course recommendations for manually
// selected (day, period) slots.
func (c *Client) RecommendFromManualSlots(ctx context.Context, slots []model.TimeSlot) ([]model.ManualCourse, error) {
	const op = "recommend from manual slots"
	var out struct {
		Courses []model.ManualCourse `json:"추천 강의"`
	}
	req := map[string]any{"available_times": slots}
	if err := c.postJSON(ctx, op, "/api/recommend/manual", req, &out); err != nil {
		return nil, err
	}
	return out.Courses, nil
}

// Health pings the backend. Used at startup only; failure is advisory.
func (c *Client) Health(ctx context.Context) error {
	const op = "health"
	body, err := c.do(ctx, op, http.MethodGet, "/api/health", "", nil)
	if err != nil {
		return err
	}
	body.Close()
	return nil
}

// ---- helpers ----

func (c *Client) do(ctx context.Context, op, method, path, contentType string, body io.Reader) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &Error{Op: op, Err: fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(b)))}
	}
	return resp.Body, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	body, err := c.do(ctx, op, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return &Error{Op: op, Err: err}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	body, err := c.do(ctx, op, http.MethodPost, path, "application/json", bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return &Error{Op: op, Err: err}
	}
	return nil
}

// postImage sends the attachment as a multipart form with field name "file"
// and returns the raw response body.
func (c *Client) postImage(ctx context.Context, op, path string, image model.Attachment) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", image.Name)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	if err := w.Close(); err != nil {
		return nil, &Error{Op: op, Err: err}
	}

	body, err := c.do(ctx, op, http.MethodPost, path, w.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	return raw, nil
}
