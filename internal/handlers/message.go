package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/franzego/slackrelay/internal/logging"
	"github.com/franzego/slackrelay/internal/middleware"
	"github.com/franzego/slackrelay/internal/models"
	"github.com/franzego/slackrelay/internal/services"
	"github.com/gin-gonic/gin"
)

const errMissingDeleteTarget = "Provide ts or scheduled_message_id"

// MessageService is the upstream surface the relay translates onto.
// *services.SlackClient implements it.
type MessageService interface {
	PostMessage(ctx context.Context, channel, text string) (json.RawMessage, error)
	ScheduleMessage(ctx context.Context, channel, text string, postAt int64) (json.RawMessage, error)
	UpdateMessage(ctx context.Context, channel, ts, text string) (json.RawMessage, error)
	DeleteMessage(ctx context.Context, channel, ts string) (json.RawMessage, error)
	DeleteScheduledMessage(ctx context.Context, channel, scheduledMessageID string) (json.RawMessage, error)
	History(ctx context.Context, params services.HistoryParams) (*services.HistoryResponse, error)
	ScheduledMessages(ctx context.Context, channel string, limit int) (json.RawMessage, error)
}

type MessageHandler struct {
	slack  MessageService
	logger *logging.Logger
}

func NewMessageHandler(slack MessageService, logger *logging.Logger) *MessageHandler {
	return &MessageHandler{
		slack:  slack,
		logger: logger,
	}
}

// Upstream calls run on a background context: a client that hangs up does
// not cancel a call already issued to Slack.

func (m *MessageHandler) SendMessage(c *gin.Context) {
	ctx := context.Background()
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		m.badRequest(c, err.Error())
		return
	}

	if req.ScheduledTime != "" {
		postAt, err := parsePostAt(req.ScheduledTime)
		if err != nil {
			m.badRequest(c, err.Error())
			return
		}
		result, err := m.slack.ScheduleMessage(ctx, req.Channel, req.Text, postAt)
		if err != nil {
			m.upstreamFailure(c, "Error sending/scheduling message", err)
			return
		}
		c.JSON(http.StatusOK, models.APIResponse{
			Success: true,
			Type:    models.SendTypeScheduled,
			Data:    result,
		})
		return
	}

	result, err := m.slack.PostMessage(ctx, req.Channel, req.Text)
	if err != nil {
		m.upstreamFailure(c, "Error sending/scheduling message", err)
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Type:    models.SendTypeImmediate,
		Data:    result,
	})
}

// GetMessage returns the message at or before ts, or null.
func (m *MessageHandler) GetMessage(c *gin.Context) {
	ctx := context.Background()
	history, err := m.slack.History(ctx, services.HistoryParams{
		Channel:   c.Param("channel"),
		Latest:    c.Param("ts"),
		Inclusive: true,
		Limit:     1,
	})
	if err != nil {
		m.upstreamFailure(c, "Error fetching message", err)
		return
	}

	var message json.RawMessage
	if len(history.Messages) > 0 {
		message = history.Messages[0]
	}
	c.JSON(http.StatusOK, models.RetrieveResponse{
		Success: true,
		Data:    message,
	})
}

func (m *MessageHandler) UpdateMessage(c *gin.Context) {
	ctx := context.Background()
	var req models.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		m.badRequest(c, err.Error())
		return
	}

	result, err := m.slack.UpdateMessage(ctx, req.Channel, req.TS, req.Text)
	if err != nil {
		m.upstreamFailure(c, "Error updating message", err)
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    result,
	})
}

// DeleteMessage removes a scheduled message when scheduled_message_id is
// given, otherwise the sent message at ts. scheduled_message_id wins if both
// are present.
func (m *MessageHandler) DeleteMessage(c *gin.Context) {
	ctx := context.Background()
	var req models.DeleteMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		m.badRequest(c, err.Error())
		return
	}

	var (
		result json.RawMessage
		err    error
	)
	switch {
	case req.ScheduledMessageID != "":
		result, err = m.slack.DeleteScheduledMessage(ctx, req.Channel, req.ScheduledMessageID)
	case req.TS != "":
		result, err = m.slack.DeleteMessage(ctx, req.Channel, req.TS)
	default:
		m.badRequest(c, errMissingDeleteTarget)
		return
	}
	if err != nil {
		m.upstreamFailure(c, "Error deleting message", err)
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    result,
	})
}

// RescheduleMessage deletes the scheduled message and schedules a new one.
// The two calls are not atomic: if scheduling fails, the original is already
// gone.
func (m *MessageHandler) RescheduleMessage(c *gin.Context) {
	ctx := context.Background()
	var req models.RescheduleMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		m.badRequest(c, err.Error())
		return
	}
	postAt, err := parsePostAt(req.NewScheduledTime)
	if err != nil {
		m.badRequest(c, err.Error())
		return
	}

	if _, err := m.slack.DeleteScheduledMessage(ctx, req.Channel, req.ScheduledMessageID); err != nil {
		m.upstreamFailure(c, "Error rescheduling message", err)
		return
	}
	result, err := m.slack.ScheduleMessage(ctx, req.Channel, req.NewText, postAt)
	if err != nil {
		m.logger.Warnw("scheduled message deleted but not recreated",
			"channel", req.Channel,
			"scheduled_message_id", req.ScheduledMessageID,
			"correlation_id", middleware.GetCorrelationID(c),
		)
		m.upstreamFailure(c, "Error rescheduling message", err)
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Rescheduled successfully",
		Data:    result,
	})
}

func (m *MessageHandler) ListScheduled(c *gin.Context) {
	ctx := context.Background()
	messages, err := m.slack.ScheduledMessages(ctx, c.Param("channelId"), services.ScheduledListLimit)
	if err != nil {
		m.upstreamFailure(c, "Error fetching scheduled messages", err)
		return
	}
	c.JSON(http.StatusOK, models.ScheduledListResponse{
		Success:  true,
		Messages: messages,
	})
}

func (m *MessageHandler) badRequest(c *gin.Context, msg string) {
	m.logger.Infow("rejected request",
		"path", c.FullPath(),
		"reason", msg,
		"correlation_id", middleware.GetCorrelationID(c),
	)
	c.JSON(http.StatusBadRequest, models.APIResponse{
		Success: false,
		Error:   msg,
	})
}

// upstreamFailure logs err and answers 500 with its message, whatever kind of
// failure it was.
func (m *MessageHandler) upstreamFailure(c *gin.Context, what string, err error) {
	m.logger.WithError(err).Errorw(what,
		"path", c.FullPath(),
		"correlation_id", middleware.GetCorrelationID(c),
	)
	c.JSON(http.StatusInternalServerError, models.APIResponse{
		Success: false,
		Error:   err.Error(),
	})
}

var postAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parsePostAt converts an ISO-8601 time to Unix seconds, truncating any
// sub-second part. Times without a zone are read as UTC.
func parsePostAt(value string) (int64, error) {
	for _, layout := range postAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, fmt.Errorf("invalid scheduled time %q: expected ISO-8601", value)
}
