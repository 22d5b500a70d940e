package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMailerSend(t *testing.T) {
	var got message
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewHTTPMailer(srv.URL, "key-1", "Trekkers <noreply@example.com>")
	require.NoError(t, m.Send(context.Background(), "sita@example.com", "Hello", "<p>hi</p>"))

	assert.Equal(t, "Bearer key-1", auth)
	assert.Equal(t, message{From: "Trekkers <noreply@example.com>", To: "sita@example.com", Subject: "Hello", HTML: "<p>hi</p>"}, got)
}

func TestHTTPMailerReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	err := NewHTTPMailer(srv.URL, "key", "from@example.com").Send(context.Background(), "a@example.com", "s", "b")
	assert.ErrorContains(t, err, "422")
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, m.Send(context.Background(), "a@example.com", "Password Reset", "<a>link</a>"))
	assert.Contains(t, buf.String(), "Password Reset")
}
