package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CapturesAndFails(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder()

	require.NoError(t, r.SendEmail(ctx, "a@example.com", "subject", "body"))
	require.NoError(t, r.SendSMS(ctx, "+1555", "ping"))

	emails := r.Emails()
	require.Len(t, emails, 1)
	assert.Equal(t, "a@example.com", emails[0].Recipient)
	assert.Equal(t, "subject", emails[0].Subject)

	sms := r.SMS()
	require.Len(t, sms, 1)
	assert.Equal(t, "ping", sms[0].Body)

	r.FailEmail = errors.New("down")
	assert.Error(t, r.SendEmail(ctx, "a@example.com", "s", "b"))
	assert.Len(t, r.Emails(), 1, "failed sends are not recorded")
}

func TestHTTPNotifier_SendEmail(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/email", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	n := NewHTTPNotifier(server.URL, "noreply@fleetflow.com")
	require.NoError(t, n.SendEmail(context.Background(), "ops@example.com", "Renewal", "Please review"))

	assert.Equal(t, map[string]string{
		"from":    "noreply@fleetflow.com",
		"to":      "ops@example.com",
		"subject": "Renewal",
		"body":    "Please review",
	}, got)
}

func TestHTTPNotifier_SendSMS(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sms", r.URL.Path)
	}))
	defer server.Close()

	n := NewHTTPNotifier(server.URL, "noreply@fleetflow.com")
	assert.NoError(t, n.SendSMS(context.Background(), "+1555", "contract overdue"))
}

func TestHTTPNotifier_GatewayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := NewHTTPNotifier(server.URL, "noreply@fleetflow.com")
	assert.Error(t, n.SendEmail(context.Background(), "ops@example.com", "s", "b"))
}
