package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionRecord is a finished game session.
type SessionRecord struct {
	ID        string
	User      string
	Score     int // Final score shown at game over
	Collected int // Coins bought this session
	Spent     int // Steps spent this session
	Misses    int
	Duration  time.Duration
	CreatedAt time.Time
}

// SaveSession records a finished session and returns its id.
// A random id is assigned when rec.ID is empty.
func (s *Store) SaveSession(rec SessionRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, user_name, score, collected, spent, misses, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.User, rec.Score, rec.Collected, rec.Spent, rec.Misses,
		int(rec.Duration/time.Second),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}
	return rec.ID, nil
}

// RecentSessions returns a user's latest sessions, newest first.
func (s *Store) RecentSessions(user string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, user_name, score, collected, spent, misses, duration_secs, created_at
		 FROM sessions
		 WHERE user_name = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		user, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var secs int
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.User, &rec.Score, &rec.Collected, &rec.Spent,
			&rec.Misses, &secs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Duration = time.Duration(secs) * time.Second
		rec.CreatedAt = parseTime(createdAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// BestScore returns a user's highest session score, or 0.
func (s *Store) BestScore(user string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM sessions WHERE user_name = ?",
		user,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}
