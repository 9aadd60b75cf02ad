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

	"github.com/iudanet/fitsync/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.BaseURL())
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var req api.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "lifter", req.Username)
		assert.Equal(t, "correct-horse-battery", req.Password)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.RegisterResponse{UserID: "user-123", Message: "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Register(context.Background(), api.RegisterRequest{Username: "lifter", Password: "correct-horse-battery"})

	require.NoError(t, err)
	assert.Equal(t, "user-123", resp.UserID)
}

func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		responseBody   any
		name           string
		expectedErrMsg string
		statusCode     int
	}{
		{
			name:           "decoded error message",
			statusCode:     http.StatusConflict,
			responseBody:   api.ErrorResponse{Error: "conflict", Message: "username already taken"},
			expectedErrMsg: "server error (409): username already taken",
		},
		{
			name:           "decoded error without message",
			statusCode:     http.StatusBadRequest,
			responseBody:   api.ErrorResponse{Error: "invalid request body"},
			expectedErrMsg: "server error (400): invalid request body",
		},
		{
			name:           "plain text body",
			statusCode:     http.StatusInternalServerError,
			responseBody:   "Internal Server Error",
			expectedErrMsg: "request failed with status 500: Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if errResp, ok := tt.responseBody.(api.ErrorResponse); ok {
					_ = json.NewEncoder(w).Encode(errResp)
				} else {
					_, _ = w.Write([]byte(tt.responseBody.(string)))
				}
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Login(context.Background(), api.LoginRequest{Username: "lifter"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErrMsg)

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.statusCode, se.StatusCode)
		})
	}
}

func TestClient_GetUserData(t *testing.T) {
	updated := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/users/user-1/data", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(api.UserDataRecord{
			UserID:      "user-1",
			UpdatedAt:   updated,
			WorkoutData: json.RawMessage(`[{"id":"w1"}]`),
		})
	}))
	defer server.Close()

	rec, err := NewClient(server.URL).GetUserData(context.Background(), "token-abc", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", rec.UserID)
	assert.True(t, updated.Equal(rec.UpdatedAt))
	assert.JSONEq(t, `[{"id":"w1"}]`, string(rec.WorkoutData))
}

func TestClient_GetUserData_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "not found", Message: "user data not found"})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).GetUserData(context.Background(), "t", "user-1")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestClient_PushUserData_OmitsMissingColumns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "body_weight_data")
		assert.NotContains(t, body, "workout_data")
		assert.NotContains(t, body, "nutrition_data")

		_ = json.NewEncoder(w).Encode(api.UserDataPushResponse{Columns: []string{"body_weight_data"}})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).PushUserData(context.Background(), "t", "user-1",
		api.UserDataPushRequest{BodyWeightData: json.RawMessage(`[]`)})
	require.NoError(t, err)
	assert.Equal(t, []string{"body_weight_data"}, resp.Columns)
}

func TestClient_CreateUserData_EmptyBody(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	require.NoError(t, NewClient(server.URL).CreateUserData(context.Background(), "t", "user-1"))
	assert.True(t, called)
}

func TestClient_Health_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewClient(url).Health(context.Background())
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}
