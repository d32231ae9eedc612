package client

import (
	"context"
	"fmt"
	"time"
)

// Form holds what an operator has filled in. Fields an action does not use
// are ignored when the action is built.
type Form struct {
	Action        string
	Channel       string
	Text          string
	ScheduledTime *time.Time
	MessageTS     string

	Loading   bool
	LastError string
}

// Build turns the form into the selected action, checking only that the
// fields that action marks as required are filled in.
func (f *Form) Build() (Action, error) {
	if f.Channel == "" {
		return nil, fmt.Errorf("channel is required")
	}
	switch f.Action {
	case "send", "":
		if f.Text == "" {
			return nil, fmt.Errorf("text is required to send")
		}
		return SendAction{Channel: f.Channel, Text: f.Text, ScheduledTime: f.ScheduledTime}, nil
	case "update":
		if f.Text == "" || f.MessageTS == "" {
			return nil, fmt.Errorf("text and ts are required to update")
		}
		return UpdateAction{Channel: f.Channel, TS: f.MessageTS, Text: f.Text}, nil
	case "delete":
		if f.MessageTS == "" {
			return nil, fmt.Errorf("ts is required to delete")
		}
		return DeleteAction{Channel: f.Channel, TS: f.MessageTS}, nil
	case "retrieve":
		if f.MessageTS == "" {
			return nil, fmt.Errorf("ts is required to retrieve")
		}
		return RetrieveAction{Channel: f.Channel, TS: f.MessageTS}, nil
	}
	return nil, fmt.Errorf("invalid action %q", f.Action)
}

// Submit sends the form through c. A successful send clears the text and
// scheduled time; a failure records LastError and leaves the form as it was.
func (f *Form) Submit(ctx context.Context, c *Client) (Action, *Result, error) {
	f.Loading = true
	f.LastError = ""
	defer func() { f.Loading = false }()

	action, err := f.Build()
	if err != nil {
		f.LastError = err.Error()
		return nil, nil, err
	}
	result, err := c.Do(ctx, action)
	if err != nil {
		f.LastError = err.Error()
		return action, nil, err
	}
	if _, ok := action.(SendAction); ok {
		f.Text = ""
		f.ScheduledTime = nil
	}
	return action, result, nil
}
