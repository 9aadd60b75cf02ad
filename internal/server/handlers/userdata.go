package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/fitsync/internal/server/storage"
	"github.com/iudanet/fitsync/internal/validation"
	"github.com/iudanet/fitsync/pkg/api"
)

// maxPushBody ограничение тела PUT: журнал целиком, а не дельта
const maxPushBody = 8 << 20

// UserDataHandler обслуживает запись пользователя /api/v1/users/{userID}/data
type UserDataHandler struct {
	logger  *slog.Logger
	storage storage.UserDataStorage
	now     func() time.Time
}

// NewUserDataHandler создает handler записи пользователя
func NewUserDataHandler(logger *slog.Logger, storage storage.UserDataStorage) *UserDataHandler {
	return &UserDataHandler{
		logger:  logger,
		storage: storage,
		now:     time.Now,
	}
}

// Get обрабатывает GET: 404, если запись еще не создана
func (h *UserDataHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	record, err := h.storage.GetUserData(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			sendError(w, h.logger, "user data not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user data", slog.String("user_id", userID), slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(w, h.logger, api.UserDataRecord{
		UpdatedAt:       record.UpdatedAt,
		UserID:          record.UserID,
		WorkoutData:     nullable(record.Columns[storage.ColumnWorkoutData]),
		CustomExercises: nullable(record.Columns[storage.ColumnCustomExercises]),
		NutritionData:   nullable(record.Columns[storage.ColumnNutritionData]),
		BodyWeightData:  nullable(record.Columns[storage.ColumnBodyWeightData]),
	}, http.StatusOK)
}

// Put обрабатывает PUT: upsert только присланных колонок
func (h *UserDataHandler) Put(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req api.UserDataPushRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxPushBody)).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode push request", slog.String("user_id", userID), slog.Any("error", err))
		sendError(w, h.logger, "invalid request body", http.StatusBadRequest)
		return
	}

	columns, err := pushColumns(req)
	if err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	updatedAt := h.now().UTC()
	written, err := h.storage.UpsertUserData(ctx, userID, columns, updatedAt)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to upsert user data", slog.String("user_id", userID), slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user data updated",
		slog.String("user_id", userID),
		slog.Any("columns", written))

	sendJSON(w, h.logger, api.UserDataPushResponse{
		UpdatedAt: updatedAt,
		Columns:   written,
	}, http.StatusOK)
}

// Create обрабатывает POST: пустая запись, повторный вызов ничего не меняет
func (h *UserDataHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	created, err := h.storage.CreateUserData(ctx, userID, h.now())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create user data", slog.String("user_id", userID), slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		h.logger.InfoContext(ctx, "user data record created", slog.String("user_id", userID))
	}
	w.WriteHeader(status)
}

// authorize пускает только к своей записи
func (h *UserDataHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	pathID := r.PathValue("userID")
	if err := validation.ValidateUserID(pathID); err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return "", false
	}

	userID, ok := GetUserID(r.Context())
	if !ok {
		sendError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	if userID != pathID {
		h.logger.WarnContext(r.Context(), "access to another user's data denied",
			slog.String("user_id", userID),
			slog.String("requested_user_id", pathID))
		sendError(w, h.logger, "forbidden", http.StatusForbidden)
		return "", false
	}
	return userID, true
}

// pushColumns колонки запроса; каждая должна быть валидным JSON
func pushColumns(req api.UserDataPushRequest) (map[string]json.RawMessage, error) {
	fields := []struct {
		value  json.RawMessage
		column string
	}{
		{req.WorkoutData, storage.ColumnWorkoutData},
		{req.CustomExercises, storage.ColumnCustomExercises},
		{req.NutritionData, storage.ColumnNutritionData},
		{req.BodyWeightData, storage.ColumnBodyWeightData},
	}

	columns := make(map[string]json.RawMessage, len(fields))
	for _, f := range fields {
		if len(f.value) == 0 {
			continue
		}
		if !json.Valid(f.value) {
			return nil, fmt.Errorf("%s is not valid JSON", f.column)
		}
		columns[f.column] = f.value
	}
	if len(columns) == 0 {
		return nil, errors.New("request writes no columns")
	}
	return columns, nil
}

// nullable nil колонка уходит как JSON null
func nullable(v json.RawMessage) json.RawMessage {
	if len(v) == 0 {
		return json.RawMessage("null")
	}
	return v
}
