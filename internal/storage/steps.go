package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DayKey formats a date as the daily_steps key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// RecordDailySteps stores the step total for a user's day. A later value
// for the same day replaces the earlier one.
func (s *Store) RecordDailySteps(user string, day time.Time, steps int) error {
	_, err := s.db.Exec(
		`INSERT INTO daily_steps (user_name, day, steps) VALUES (?, ?, ?)
		 ON CONFLICT(user_name, day) DO UPDATE SET steps = excluded.steps, updated_at = CURRENT_TIMESTAMP`,
		user, DayKey(day), steps,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record steps: %w", err)
	}
	return nil
}

// DailySteps returns the step total for a user's day, or 0 when nothing
// was recorded.
func (s *Store) DailySteps(user string, day time.Time) (int, error) {
	var steps int
	err := s.db.QueryRow(
		"SELECT steps FROM daily_steps WHERE user_name = ? AND day = ?",
		user, DayKey(day),
	).Scan(&steps)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query steps: %w", err)
	}
	return steps, nil
}

// DayTotal is one row of the step log.
type DayTotal struct {
	Day   string
	Steps int
}

// StepHistory returns up to limit most recent days, newest first.
func (s *Store) StepHistory(user string, limit int) ([]DayTotal, error) {
	if limit <= 0 {
		limit = 7
	}
	rows, err := s.db.Query(
		`SELECT day, steps FROM daily_steps
		 WHERE user_name = ?
		 ORDER BY day DESC
		 LIMIT ?`,
		user, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query step history: %w", err)
	}
	defer rows.Close()

	var out []DayTotal
	for rows.Next() {
		var d DayTotal
		if err := rows.Scan(&d.Day, &d.Steps); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
