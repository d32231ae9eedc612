// Package client drives the relay the way the browser form does: one request
// record per action, dispatched to the matching method and path.
package client

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
	"time"

	"github.com/franzego/slackrelay/internal/models"
)

// Action is one of SendAction, UpdateAction, DeleteAction or RetrieveAction.
type Action interface {
	// Name is the action label shown to the operator.
	Name() string
	request() (method, path string, body interface{})
}

type SendAction struct {
	Channel       string
	Text          string
	ScheduledTime *time.Time
}

type UpdateAction struct {
	Channel string
	TS      string
	Text    string
}

type DeleteAction struct {
	Channel            string
	TS                 string
	ScheduledMessageID string
}

type RetrieveAction struct {
	Channel string
	TS      string
}

func (SendAction) Name() string     { return "send" }
func (UpdateAction) Name() string   { return "update" }
func (DeleteAction) Name() string   { return "delete" }
func (RetrieveAction) Name() string { return "retrieve" }

func (a SendAction) request() (string, string, interface{}) {
	body := models.SendMessageRequest{Channel: a.Channel, Text: a.Text}
	if a.ScheduledTime != nil {
		body.ScheduledTime = a.ScheduledTime.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	}
	return http.MethodPost, "/api/messages/send", body
}

func (a UpdateAction) request() (string, string, interface{}) {
	return http.MethodPut, "/api/messages/update", models.UpdateMessageRequest{Channel: a.Channel, TS: a.TS, Text: a.Text}
}

func (a DeleteAction) request() (string, string, interface{}) {
	return http.MethodDelete, "/api/messages/delete", models.DeleteMessageRequest{
		Channel:            a.Channel,
		TS:                 a.TS,
		ScheduledMessageID: a.ScheduledMessageID,
	}
}

func (a RetrieveAction) request() (string, string, interface{}) {
	return http.MethodGet, "/api/messages/" + url.PathEscape(a.Channel) + "/" + url.PathEscape(a.TS), nil
}

// Banner is the confirmation shown after a successful action.
func Banner(a Action) string {
	switch a.(type) {
	case SendAction:
		return "Message sent successfully!"
	case UpdateAction:
		return "Message updated successfully!"
	case DeleteAction:
		return "Message deleted successfully!"
	case RetrieveAction:
		return "Message retrieved successfully!"
	}
	return "Action completed successfully!"
}

// Error is a relay reply with success:false or a non-2xx status.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// Result is the relay's JSON reply, kept raw for display.
type Result struct {
	StatusCode int
	Body       json.RawMessage
}

// Pretty renders the body indented by two spaces.
func (r *Result) Pretty() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Body, "", "  "); err != nil {
		return string(r.Body)
	}
	return buf.String()
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

func (c *Client) Do(ctx context.Context, a Action) (*Result, error) {
	method, path, body := a.request()
	return c.call(ctx, method, path, body)
}

func (c *Client) Reschedule(ctx context.Context, channel, scheduledMessageID, newText string, newTime time.Time) (*Result, error) {
	return c.call(ctx, http.MethodPut, "/api/messages/reschedule", models.RescheduleMessageRequest{
		Channel:            channel,
		ScheduledMessageID: scheduledMessageID,
		NewText:            newText,
		NewScheduledTime:   newTime.UTC().Format(time.RFC3339),
	})
}

func (c *Client) ListScheduled(ctx context.Context, channel string) (*Result, error) {
	return c.call(ctx, http.MethodGet, "/api/messages/scheduled/"+url.PathEscape(channel), nil)
}

func (c *Client) call(ctx context.Context, method, path string, body interface{}) (*Result, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, relayError(resp.StatusCode, raw)
	}
	return &Result{StatusCode: resp.StatusCode, Body: raw}, nil
}

// relayError prefers the relay's error field and falls back to the status.
func relayError(status int, raw []byte) error {
	var reply models.APIResponse
	if err := json.Unmarshal(raw, &reply); err == nil && reply.Error != "" {
		return &Error{StatusCode: status, Message: reply.Error}
	}
	return &Error{StatusCode: status, Message: fmt.Sprintf("Request failed with status code %d", status)}
}

// IsRelayError reports whether err came back from the relay rather than the
// transport.
func IsRelayError(err error) bool {
	var relayErr *Error
	return errors.As(err, &relayErr)
}
