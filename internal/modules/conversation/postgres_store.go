// README: Conversation store backed by the conversation_turns table (migrations/0001_conversation_turns.sql).
package conversation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts the turn and counts the table inside one transaction so the
// returned length includes the new row.
func (s *PostgresStore) Append(ctx context.Context, t Turn) (int, error) {
	var n int
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO conversation_turns (user_id, role, message, created_at)
			VALUES (NULLIF($1, ''), $2, $3, $4)
		`, t.UserID, string(t.Role), t.Message, t.Timestamp); err != nil {
			return err
		}
		return tx.QueryRow(ctx, `SELECT COUNT(*) FROM conversation_turns`).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n, nil
}

func (s *PostgresStore) List(ctx context.Context, userID string) ([]Turn, error) {
	query := `SELECT user_id, role, message, created_at FROM conversation_turns ORDER BY id`
	args := []any{}
	if userID != "" {
		query = `SELECT user_id, role, message, created_at FROM conversation_turns WHERE user_id = $1 ORDER BY id`
		args = append(args, userID)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	turns := []Turn{}
	for rows.Next() {
		var (
			t    Turn
			uid  *string
			role string
		)
		if err := rows.Scan(&uid, &role, &t.Message, &t.Timestamp); err != nil {
			return nil, err
		}
		if uid != nil {
			t.UserID = *uid
		}
		t.Role = Role(role)
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

func (s *PostgresStore) Clear(ctx context.Context, userID string) error {
	var err error
	if userID == "" {
		_, err = s.db.Exec(ctx, `DELETE FROM conversation_turns`)
	} else {
		_, err = s.db.Exec(ctx, `DELETE FROM conversation_turns WHERE user_id = $1`, userID)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
