package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/franzego/slackrelay/internal/config"
	"github.com/franzego/slackrelay/pkg/circuitbreaker"
	"github.com/sony/gobreaker"
)

// ScheduledListLimit is the page size asked of chat.scheduledMessages.list.
const ScheduledListLimit = 50

// SlackClient calls the Slack Web API with a single bot token. It holds no
// mutable state besides the breaker and is safe for concurrent use.
type SlackClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

type HistoryParams struct {
	Channel   string
	Latest    string
	Inclusive bool
	Limit     int
}

type HistoryResponse struct {
	Messages []json.RawMessage `json:"messages"`
	HasMore  bool              `json:"has_more"`
}

func NewSlackClient(cfg config.SlackConfig) *SlackClient {
	c := &SlackClient{
		baseURL: cfg.BaseURL,
		token:   cfg.BotToken,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
	if cfg.BreakerEnabled {
		c.cb = circuitbreaker.NewCircuitBreaker("slack-api", func(err error) bool {
			return err == nil || IsAPIError(err)
		})
	}
	return c
}

func (s *SlackClient) PostMessage(ctx context.Context, channel, text string) (json.RawMessage, error) {
	return s.call(ctx, "chat.postMessage", url.Values{
		"channel": {channel},
		"text":    {text},
	})
}

// ScheduleMessage queues text for delivery at postAt (Unix seconds).
func (s *SlackClient) ScheduleMessage(ctx context.Context, channel, text string, postAt int64) (json.RawMessage, error) {
	return s.call(ctx, "chat.scheduleMessage", url.Values{
		"channel": {channel},
		"text":    {text},
		"post_at": {strconv.FormatInt(postAt, 10)},
	})
}

func (s *SlackClient) UpdateMessage(ctx context.Context, channel, ts, text string) (json.RawMessage, error) {
	return s.call(ctx, "chat.update", url.Values{
		"channel": {channel},
		"ts":      {ts},
		"text":    {text},
	})
}

func (s *SlackClient) DeleteMessage(ctx context.Context, channel, ts string) (json.RawMessage, error) {
	return s.call(ctx, "chat.delete", url.Values{
		"channel": {channel},
		"ts":      {ts},
	})
}

func (s *SlackClient) DeleteScheduledMessage(ctx context.Context, channel, scheduledMessageID string) (json.RawMessage, error) {
	return s.call(ctx, "chat.deleteScheduledMessage", url.Values{
		"channel":              {channel},
		"scheduled_message_id": {scheduledMessageID},
	})
}

func (s *SlackClient) History(ctx context.Context, params HistoryParams) (*HistoryResponse, error) {
	form := url.Values{"channel": {params.Channel}}
	if params.Latest != "" {
		form.Set("latest", params.Latest)
	}
	if params.Inclusive {
		form.Set("inclusive", "true")
	}
	if params.Limit > 0 {
		form.Set("limit", strconv.Itoa(params.Limit))
	}
	raw, err := s.call(ctx, "conversations.history", form)
	if err != nil {
		return nil, err
	}
	var history HistoryResponse
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, fmt.Errorf("slack conversations.history: decode messages: %w", err)
	}
	return &history, nil
}

// ScheduledMessages returns the raw scheduled_messages array for channel, or
// an empty array when Slack omits it.
func (s *SlackClient) ScheduledMessages(ctx context.Context, channel string, limit int) (json.RawMessage, error) {
	raw, err := s.call(ctx, "chat.scheduledMessages.list", url.Values{
		"channel": {channel},
		"limit":   {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}
	var list struct {
		ScheduledMessages json.RawMessage `json:"scheduled_messages"`
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("slack chat.scheduledMessages.list: decode messages: %w", err)
	}
	if len(list.ScheduledMessages) == 0 || string(list.ScheduledMessages) == "null" {
		return json.RawMessage("[]"), nil
	}
	return list.ScheduledMessages, nil
}

// AuthTest checks that the token is accepted.
func (s *SlackClient) AuthTest(ctx context.Context) error {
	_, err := s.call(ctx, "auth.test", url.Values{})
	return err
}

func (s *SlackClient) call(ctx context.Context, method string, form url.Values) (json.RawMessage, error) {
	if s.cb == nil {
		return s.do(ctx, method, form)
	}
	result, err := s.cb.Execute(func() (interface{}, error) {
		return s.do(ctx, method, form)
	})
	if err != nil {
		return nil, err
	}
	return result.(json.RawMessage), nil
}

func (s *SlackClient) do(ctx context.Context, method string, form url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+method, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("slack %s: build request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("slack %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{
			Method:     method,
			StatusCode: resp.StatusCode,
			RetryAfter: resp.Header.Get("Retry-After"),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("slack %s: read response: %w", method, err)
	}
	var envelope struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("slack %s: decode response: %w", method, err)
	}
	if !envelope.OK {
		return nil, &SlackError{Method: method, Code: envelope.Error}
	}
	return json.RawMessage(body), nil
}
