package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/fitsync/internal/client/api"
	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/syncerr"
	"github.com/iudanet/fitsync/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func staticToken(token string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) { return token, nil })
}

func TestPush_SendsOnlyPatchedColumns(t *testing.T) {
	mock := &APIMock{
		PushUserDataFunc: func(ctx context.Context, token, userID string, req api.UserDataPushRequest) (*api.UserDataPushResponse, error) {
			return &api.UserDataPushResponse{Columns: []string{"body_weight_data"}, UpdatedAt: time.Now()}, nil
		},
	}
	c := NewClient(mock, staticToken("tok"), setupTestLogger())

	entries := []models.BodyWeightEntry{{ID: "b1", WeightKg: 81.5, RecordedAt: time.Date(2024, 2, 1, 7, 0, 0, 0, time.UTC)}}
	err := c.Push(context.Background(), "user-1", models.BodyWeightPayload{Entries: entries}.Patch())
	require.NoError(t, err)

	calls := mock.PushUserDataCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "tok", calls[0].Token)
	assert.Equal(t, "user-1", calls[0].UserID)
	assert.Empty(t, calls[0].Req.WorkoutData)
	assert.Empty(t, calls[0].Req.NutritionData)
	assert.Empty(t, calls[0].Req.CustomExercises)

	var sent []models.BodyWeightEntry
	require.NoError(t, json.Unmarshal(calls[0].Req.BodyWeightData, &sent))
	assert.Equal(t, "b1", sent[0].ID)
}

func TestPush_EmptyPatchIsNoop(t *testing.T) {
	mock := &APIMock{}
	c := NewClient(mock, staticToken("tok"), setupTestLogger())

	assert.NoError(t, c.Push(context.Background(), "user-1", models.UserDataPatch{}))
	assert.Empty(t, mock.PushUserDataCalls())
}

func TestPush_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want syncerr.Kind
	}{
		{name: "server error", err: &clientapi.StatusError{StatusCode: http.StatusBadGateway}, want: syncerr.KindTransient},
		{name: "rate limited", err: &clientapi.StatusError{StatusCode: http.StatusTooManyRequests}, want: syncerr.KindTransient},
		{name: "rejected payload", err: &clientapi.StatusError{StatusCode: http.StatusUnprocessableEntity}, want: syncerr.KindPermanent},
		{name: "forbidden", err: &clientapi.StatusError{StatusCode: http.StatusForbidden}, want: syncerr.KindPermanent},
		{name: "expired token", err: &clientapi.StatusError{StatusCode: http.StatusUnauthorized}, want: syncerr.KindUnauthorized},
		{name: "network", err: errors.New("dial tcp: connection refused"), want: syncerr.KindTransient},
		{name: "timeout", err: context.DeadlineExceeded, want: syncerr.KindTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &APIMock{
				PushUserDataFunc: func(ctx context.Context, token, userID string, req api.UserDataPushRequest) (*api.UserDataPushResponse, error) {
					return nil, tt.err
				},
			}
			c := NewClient(mock, staticToken("tok"), setupTestLogger())

			err := c.Push(context.Background(), "user-1", models.Snapshot{}.Patch())
			require.Error(t, err)
			assert.Equal(t, tt.want, syncerr.KindOf(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestPush_NoToken(t *testing.T) {
	mock := &APIMock{}
	tokens := TokenFunc(func(context.Context) (string, error) { return "", errors.New("not logged in") })
	c := NewClient(mock, tokens, setupTestLogger())

	err := c.Push(context.Background(), "user-1", models.WorkoutPayload{}.Patch())
	require.Error(t, err)
	assert.Equal(t, syncerr.KindUnauthorized, syncerr.KindOf(err))
	assert.Empty(t, mock.PushUserDataCalls())
}

func TestPull_FirstLoginCreatesRecord(t *testing.T) {
	mock := &APIMock{
		GetUserDataFunc: func(ctx context.Context, token, userID string) (*api.UserDataRecord, error) {
			return nil, &clientapi.StatusError{StatusCode: http.StatusNotFound, Message: "user data not found"}
		},
		CreateUserDataFunc: func(ctx context.Context, token, userID string) error {
			return nil
		},
	}
	c := NewClient(mock, staticToken("tok"), setupTestLogger())

	data, err := c.Pull(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Nil(t, data)
	require.Len(t, mock.CreateUserDataCalls(), 1)
	assert.Equal(t, "user-1", mock.CreateUserDataCalls()[0].UserID)
}

func TestPull_CreateFails(t *testing.T) {
	mock := &APIMock{
		GetUserDataFunc: func(ctx context.Context, token, userID string) (*api.UserDataRecord, error) {
			return nil, &clientapi.StatusError{StatusCode: http.StatusNotFound}
		},
		CreateUserDataFunc: func(ctx context.Context, token, userID string) error {
			return &clientapi.StatusError{StatusCode: http.StatusServiceUnavailable}
		},
	}
	c := NewClient(mock, staticToken("tok"), setupTestLogger())

	data, err := c.Pull(context.Background(), "user-1")
	assert.Nil(t, data)
	require.Error(t, err)
	assert.Equal(t, syncerr.KindTransient, syncerr.KindOf(err))
}

func TestPull_OtherFailureReturnsNothing(t *testing.T) {
	mock := &APIMock{
		GetUserDataFunc: func(ctx context.Context, token, userID string) (*api.UserDataRecord, error) {
			return nil, &clientapi.StatusError{StatusCode: http.StatusInternalServerError}
		},
	}
	c := NewClient(mock, staticToken("tok"), setupTestLogger())

	data, err := c.Pull(context.Background(), "user-1")
	assert.Nil(t, data)
	require.Error(t, err)
	assert.Equal(t, syncerr.KindTransient, syncerr.KindOf(err))
	assert.Empty(t, mock.CreateUserDataCalls())
}

func TestPull_DecodesColumns(t *testing.T) {
	updated := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	mock := &APIMock{
		GetUserDataFunc: func(ctx context.Context, token, userID string) (*api.UserDataRecord, error) {
			return &api.UserDataRecord{
				UserID:         userID,
				UpdatedAt:      updated,
				WorkoutData:    json.RawMessage(`[{"id":"w1","name":"Legs","started_at":"2024-06-30T17:00:00Z","exercises":[]}]`),
				BodyWeightData: json.RawMessage(`null`),
				NutritionData:  json.RawMessage(`null`),
			}, nil
		},
	}
	c := NewClient(mock, staticToken("tok"), setupTestLogger())

	data, err := c.Pull(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.True(t, updated.Equal(data.UpdatedAt))
	require.Len(t, data.Workouts, 1)
	assert.Equal(t, 2024, data.Workouts[0].StartedAt.Year())
	assert.Nil(t, data.BodyWeight)
	assert.Nil(t, data.Nutrition)
	assert.Nil(t, data.CustomExercises)
}

func TestPull_MalformedRecordIsPermanent(t *testing.T) {
	mock := &APIMock{
		GetUserDataFunc: func(ctx context.Context, token, userID string) (*api.UserDataRecord, error) {
			return &api.UserDataRecord{UserID: userID, WorkoutData: json.RawMessage(`{"not":"a list"}`)}, nil
		},
	}
	c := NewClient(mock, staticToken("tok"), setupTestLogger())

	data, err := c.Pull(context.Background(), "user-1")
	assert.Nil(t, data)
	assert.Equal(t, syncerr.KindPermanent, syncerr.KindOf(err))
}

// Клиент поверх настоящего HTTP клиента и httptest сервера
func TestClient_OverHTTP(t *testing.T) {
	var stored api.UserDataPushRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.Method {
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&stored))
			_ = json.NewEncoder(w).Encode(api.UserDataPushResponse{Columns: []string{"workout_data"}})
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(api.UserDataRecord{UserID: "user-1", WorkoutData: stored.WorkoutData})
		}
	}))
	defer server.Close()

	c := NewClient(clientapi.NewClient(server.URL), staticToken("tok"), setupTestLogger())
	ctx := context.Background()

	sessions := []models.WorkoutSession{{ID: "w1", Name: "Pull day", StartedAt: time.Now().UTC().Truncate(time.Second)}}
	require.NoError(t, c.Push(ctx, "user-1", models.WorkoutPayload{Sessions: sessions}.Patch()))

	data, err := c.Pull(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, data.Workouts, 1)
	assert.Equal(t, "Pull day", data.Workouts[0].Name)
	assert.True(t, sessions[0].StartedAt.Equal(data.Workouts[0].StartedAt))
}
