package models

import "encoding/json"

const (
	SendTypeScheduled = "scheduled"
	SendTypeImmediate = "immediate"
)

type SendMessageRequest struct {
	Channel string `json:"channel" binding:"required"`
	Text    string `json:"text" binding:"required"`
	// ISO-8601; empty or null sends immediately
	ScheduledTime string `json:"scheduledTime,omitempty"`
}

type UpdateMessageRequest struct {
	Channel string `json:"channel" binding:"required"`
	TS      string `json:"ts" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

// DeleteMessageRequest targets a scheduled message when ScheduledMessageID is
// set, otherwise the sent message identified by TS.
type DeleteMessageRequest struct {
	Channel            string `json:"channel" binding:"required"`
	TS                 string `json:"ts,omitempty"`
	ScheduledMessageID string `json:"scheduled_message_id,omitempty"`
}

type RescheduleMessageRequest struct {
	Channel            string `json:"channel" binding:"required"`
	ScheduledMessageID string `json:"scheduled_message_id" binding:"required"`
	NewText            string `json:"newText" binding:"required"`
	NewScheduledTime   string `json:"newScheduledTime" binding:"required"`
}

type APIResponse struct {
	Success bool            `json:"success"`
	Type    string          `json:"type,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// RetrieveResponse always carries data, null when no message matched.
type RetrieveResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type ScheduledListResponse struct {
	Success  bool            `json:"success"`
	Messages json.RawMessage `json:"messages"`
}
