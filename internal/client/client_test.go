package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

func newRelay(t *testing.T, status int, reply string) (*Client, *[]recorded) {
	t.Helper()
	var seen []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{Method: r.Method, Path: r.URL.EscapedPath()}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}
		seen = append(seen, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL + "/"), &seen
}

func TestDo_DispatchTable(t *testing.T) {
	when := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		action Action
		method string
		path   string
		body   map[string]interface{}
	}{
		{SendAction{Channel: "C1", Text: "hi"}, "POST", "/api/messages/send", map[string]interface{}{"channel": "C1", "text": "hi"}},
		{SendAction{Channel: "C1", Text: "hi", ScheduledTime: &when}, "POST", "/api/messages/send",
			map[string]interface{}{"channel": "C1", "text": "hi", "scheduledTime": "2030-01-01T09:00:00.000Z"}},
		{UpdateAction{Channel: "C1", TS: "1.2", Text: "bye"}, "PUT", "/api/messages/update", map[string]interface{}{"channel": "C1", "ts": "1.2", "text": "bye"}},
		{DeleteAction{Channel: "C1", TS: "1.2"}, "DELETE", "/api/messages/delete", map[string]interface{}{"channel": "C1", "ts": "1.2"}},
		{RetrieveAction{Channel: "C 1", TS: "1.2"}, "GET", "/api/messages/C%201/1.2", nil},
	}
	for _, tc := range cases {
		t.Run(tc.action.Name(), func(t *testing.T) {
			c, seen := newRelay(t, http.StatusOK, `{"success":true}`)

			result, err := c.Do(context.Background(), tc.action)
			require.NoError(t, err)
			assert.JSONEq(t, `{"success":true}`, string(result.Body))

			require.Len(t, *seen, 1)
			got := (*seen)[0]
			assert.Equal(t, tc.method, got.Method)
			assert.Equal(t, tc.path, got.Path)
			assert.Equal(t, tc.body, got.Body)
		})
	}
}

func TestDo_RelayError(t *testing.T) {
	c, _ := newRelay(t, http.StatusBadRequest, `{"success":false,"error":"Provide ts or scheduled_message_id"}`)

	_, err := c.Do(context.Background(), DeleteAction{Channel: "C1"})
	require.Error(t, err)
	assert.True(t, IsRelayError(err))
	assert.Equal(t, "Provide ts or scheduled_message_id", err.Error())
}

func TestDo_NonJSONError(t *testing.T) {
	c, _ := newRelay(t, http.StatusBadGateway, `bad gateway`)

	_, err := c.Do(context.Background(), RetrieveAction{Channel: "C1", TS: "1.2"})
	assert.EqualError(t, err, "Request failed with status code 502")
}

func TestRescheduleAndList(t *testing.T) {
	c, seen := newRelay(t, http.StatusOK, `{"success":true,"messages":[]}`)
	ctx := context.Background()

	_, err := c.Reschedule(ctx, "C1", "Q1", "later", time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = c.ListScheduled(ctx, "C1")
	require.NoError(t, err)

	require.Len(t, *seen, 2)
	assert.Equal(t, "PUT", (*seen)[0].Method)
	assert.Equal(t, "2030-01-02T00:00:00Z", (*seen)[0].Body["newScheduledTime"])
	assert.Equal(t, "/api/messages/scheduled/C1", (*seen)[1].Path)
}

func TestResultPretty(t *testing.T) {
	r := &Result{Body: json.RawMessage(`{"success":true}`)}
	assert.Equal(t, "{\n  \"success\": true\n}", r.Pretty())
}

func TestBanner(t *testing.T) {
	assert.Equal(t, "Message sent successfully!", Banner(SendAction{}))
	assert.Equal(t, "Message retrieved successfully!", Banner(RetrieveAction{}))
}
