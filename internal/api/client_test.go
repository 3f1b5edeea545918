// internal/api/client_test.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorlink-client/internal/common/errors"
	"tutorlink-client/internal/common/logger"
	"tutorlink-client/internal/session"
)

// ==========================
// Test Fixtures
// ==========================

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewMemoryStore()
	err := store.Save(context.Background(), &session.Session{
		AccessToken: "test-token",
		UserID:      "user-1",
		UserRole:    "tutor",
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)

	client := NewClient(server.URL, 5*time.Second, store, nil, logger.NewNoOpLogger())
	return client, server
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

// ==========================
// Request plumbing
// ==========================

func TestClientAttachesAuthAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeJSON(t, w, http.StatusOK, map[string]string{"ok": "yes"})
	}))

	_, err := client.get(context.Background(), "/ping", "ping")

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClientWithoutSessionSendsNoAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, map[string]string{"ok": "yes"})
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 5*time.Second, session.NewMemoryStore(), nil, logger.NewNoOpLogger())
	_, err := client.get(context.Background(), "/ping", "ping")

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

// ==========================
// Error taxonomy mapping
// ==========================

func TestClientMapsStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     interface{}
		wantCode errors.ErrorCode
		wantMsg  string
	}{
		{
			name:     "401 unauthorized",
			status:   http.StatusUnauthorized,
			body:     map[string]string{"message": "token expired"},
			wantCode: errors.ErrCodeUnauthorized,
			wantMsg:  "Please sign in to continue",
		},
		{
			name:     "404 passes server message through",
			status:   http.StatusNotFound,
			body:     map[string]string{"message": "Tutor profile not found"},
			wantCode: errors.ErrCodeNotFound,
			wantMsg:  "Tutor profile not found",
		},
		{
			name:     "400 validation with server message",
			status:   http.StatusBadRequest,
			body:     map[string]string{"error": "references must include a phone number"},
			wantCode: errors.ErrCodeValidationFailed,
			wantMsg:  "references must include a phone number",
		},
		{
			name:     "500 without message collapses to generic",
			status:   http.StatusInternalServerError,
			body:     map[string]string{},
			wantCode: errors.ErrCodeServerError,
			wantMsg:  errors.GenericFailureMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, tt.body)
			}))

			_, err := client.get(context.Background(), "/thing", "thing")

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
			assert.Equal(t, tt.wantMsg, errors.UserMessage(err))
		})
	}
}

func TestClientTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, time.Second, session.NewMemoryStore(), nil, logger.NewNoOpLogger())
	_, err := client.get(context.Background(), "/thing", "thing")

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNetworkError, errors.CodeOf(err))
	assert.Equal(t, errors.GenericFailureMessage, errors.UserMessage(err), "raw transport errors never reach the user")
}
