// Package remote pushes and pulls the per-user record on the sync server.
// It is the only place that knows the server's error shapes: every failure
// leaves as a *syncerr.Error so the queue and scheduler stay protocol-agnostic.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	clientapi "github.com/iudanet/fitsync/internal/client/api"
	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/syncerr"
	"github.com/iudanet/fitsync/pkg/api"
)

//go:generate moq -out api_mock.go . API

// API часть HTTP клиента, нужная для синхронизации
type API interface {
	GetUserData(ctx context.Context, token, userID string) (*api.UserDataRecord, error)
	CreateUserData(ctx context.Context, token, userID string) error
	PushUserData(ctx context.Context, token, userID string, req api.UserDataPushRequest) (*api.UserDataPushResponse, error)
}

// TokenSource выдает access token текущей сессии
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc адаптер функции к TokenSource
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Client stateless клиент push/pull
type Client struct {
	api    API
	tokens TokenSource
	logger *slog.Logger
}

// NewClient создает клиент синхронизации
func NewClient(apiClient API, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		api:    apiClient,
		tokens: tokens,
		logger: logger,
	}
}

// Push делает upsert колонок из patch для userID. Колонки, которых нет в
// patch, на сервере не меняются.
func (c *Client) Push(ctx context.Context, userID string, patch models.UserDataPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return syncerr.New(syncerr.KindUnauthorized, "push", err)
	}

	req, err := encodePatch(patch)
	if err != nil {
		return syncerr.New(syncerr.KindInvalid, "push", err)
	}

	resp, err := c.api.PushUserData(ctx, token, userID, req)
	if err != nil {
		classified := classify("push", err)
		c.logger.Warn("remote push failed",
			slog.String("user_id", userID),
			slog.Any("slices", patch.Slices()),
			slog.String("kind", classified.Kind.String()),
			slog.Any("error", err))
		return classified
	}

	if resp != nil {
		c.logger.Debug("remote push completed",
			slog.String("user_id", userID),
			slog.Any("columns", resp.Columns),
			slog.Time("updated_at", resp.UpdatedAt))
	}
	return nil
}

// Pull возвращает запись пользователя. Для нового пользователя создает пустую
// запись и возвращает (nil, nil). При любой другой ошибке данные тоже nil,
// а ошибка объясняет причину.
func (c *Client) Pull(ctx context.Context, userID string) (*models.UserData, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, syncerr.New(syncerr.KindUnauthorized, "pull", err)
	}

	rec, err := c.api.GetUserData(ctx, token, userID)
	if err != nil {
		if !clientapi.IsNotFound(err) {
			classified := classify("pull", err)
			c.logger.Warn("remote pull failed",
				slog.String("user_id", userID),
				slog.String("kind", classified.Kind.String()),
				slog.Any("error", err))
			return nil, classified
		}

		// Первый вход: заводим пустую запись
		if err := c.api.CreateUserData(ctx, token, userID); err != nil {
			classified := classify("create record", err)
			c.logger.Warn("failed to create remote record", slog.String("user_id", userID), slog.Any("error", err))
			return nil, classified
		}
		c.logger.Info("created empty remote record", slog.String("user_id", userID))
		return nil, nil
	}

	data, err := decodeRecord(rec)
	if err != nil {
		c.logger.Warn("remote record is malformed", slog.String("user_id", userID), slog.Any("error", err))
		return nil, syncerr.New(syncerr.KindPermanent, "pull", err)
	}

	return data, nil
}

func classify(op string, err error) *syncerr.Error {
	var se *clientapi.StatusError
	if errors.As(err, &se) {
		return syncerr.New(syncerr.FromStatus(se.StatusCode), op, err)
	}
	// Все, что не дошло до ответа сервера, считаем сетевой ошибкой
	kind := syncerr.KindOf(err)
	if kind == syncerr.KindUnknown {
		kind = syncerr.KindTransient
	}
	return syncerr.New(kind, op, err)
}

func encodePatch(p models.UserDataPatch) (api.UserDataPushRequest, error) {
	var (
		req api.UserDataPushRequest
		err error
	)
	if p.Workouts != nil {
		if req.WorkoutData, err = json.Marshal(*p.Workouts); err != nil {
			return req, fmt.Errorf("failed to marshal workouts: %w", err)
		}
	}
	if p.CustomExercises != nil {
		if req.CustomExercises, err = json.Marshal(*p.CustomExercises); err != nil {
			return req, fmt.Errorf("failed to marshal custom exercises: %w", err)
		}
	}
	if p.Nutrition != nil {
		if req.NutritionData, err = json.Marshal(*p.Nutrition); err != nil {
			return req, fmt.Errorf("failed to marshal nutrition: %w", err)
		}
	}
	if p.BodyWeight != nil {
		if req.BodyWeightData, err = json.Marshal(*p.BodyWeight); err != nil {
			return req, fmt.Errorf("failed to marshal body weight: %w", err)
		}
	}
	return req, nil
}

func decodeRecord(rec *api.UserDataRecord) (*models.UserData, error) {
	data := &models.UserData{UserID: rec.UserID, UpdatedAt: rec.UpdatedAt}

	if err := decodeColumn(rec.WorkoutData, &data.Workouts); err != nil {
		return nil, fmt.Errorf("workout_data: %w", err)
	}
	if err := decodeColumn(rec.CustomExercises, &data.CustomExercises); err != nil {
		return nil, fmt.Errorf("custom_exercises: %w", err)
	}
	if err := decodeColumn(rec.BodyWeightData, &data.BodyWeight); err != nil {
		return nil, fmt.Errorf("body_weight_data: %w", err)
	}
	if !isNull(rec.NutritionData) {
		var log models.NutritionLog
		if err := json.Unmarshal(rec.NutritionData, &log); err != nil {
			return nil, fmt.Errorf("nutrition_data: %w", err)
		}
		data.Nutrition = &log
	}

	return data, nil
}

func decodeColumn(raw json.RawMessage, dst any) error {
	if isNull(raw) {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
