package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/iudanet/fitsync/internal/server/storage"
)

// GetUserData returns the record of the user
func (s *Storage) GetUserData(ctx context.Context, userID string) (*storage.UserDataRecord, error) {
	query := s.rebind(`
		SELECT workout_data, custom_exercises, nutrition_data, body_weight_data, updated_at
		FROM user_data
		WHERE user_id = ?
	`)

	var (
		values    [4]sql.NullString
		updatedAt time.Time
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&values[0], &values[1], &values[2], &values[3], &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get user data: %w", err)
	}

	record := &storage.UserDataRecord{
		UserID:    userID,
		UpdatedAt: updatedAt,
		Columns:   make(map[string]json.RawMessage, len(storage.DataColumns)),
	}
	for i, column := range storage.DataColumns {
		if values[i].Valid {
			record.Columns[column] = json.RawMessage(values[i].String)
		}
	}
	return record, nil
}

// UpsertUserData пишет только переданные колонки. Остальные колонки
// существующей строки не меняются, у новой строки они NULL.
func (s *Storage) UpsertUserData(ctx context.Context, userID string, columns map[string]json.RawMessage, updatedAt time.Time) ([]string, error) {
	var written []string
	for _, column := range storage.DataColumns {
		if _, ok := columns[column]; ok {
			written = append(written, column)
		}
	}
	for column := range columns {
		if !slices.Contains(storage.DataColumns, column) {
			return nil, fmt.Errorf("unknown user data column %q", column)
		}
	}
	if len(written) == 0 {
		return nil, storage.ErrNoColumns
	}

	names := append([]string{"user_id", "updated_at"}, written...)
	args := []any{userID, updatedAt.UTC()}
	set := []string{"updated_at = excluded.updated_at"}
	for _, column := range written {
		args = append(args, string(columns[column]))
		set = append(set, column+" = excluded."+column)
	}

	query := s.rebind(fmt.Sprintf(
		`INSERT INTO user_data (%s) VALUES (%s) ON CONFLICT (user_id) DO UPDATE SET %s`,
		strings.Join(names, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", "),
		strings.Join(set, ", "),
	))

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to upsert user data: %w", err)
	}
	return written, nil
}

// CreateUserData creates an empty record
func (s *Storage) CreateUserData(ctx context.Context, userID string, createdAt time.Time) (bool, error) {
	query := s.rebind(`
		INSERT INTO user_data (user_id, updated_at)
		VALUES (?, ?)
		ON CONFLICT (user_id) DO NOTHING
	`)

	result, err := s.db.ExecContext(ctx, query, userID, createdAt.UTC())
	if err != nil {
		return false, fmt.Errorf("failed to create user data: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}
