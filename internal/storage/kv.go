package storage

import (
	"database/sql"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stepcoins/internal/kv"
)

// KV is a kv.Store backed by the kv_values table. Reads and writes never
// fail from the caller's view: errors are logged and reads fall back to 0.
type KV struct {
	db        *sql.DB
	namespace string
	logger    *log.Logger
}

// KV returns a key-value view scoped to namespace.
func (s *Store) KV(namespace string, logger *log.Logger) *KV {
	if logger == nil {
		logger = log.Default()
	}
	return &KV{db: s.db, namespace: namespace, logger: logger}
}

// Get implements kv.Store.
func (k *KV) Get(key string) int {
	var v int
	err := k.db.QueryRow(
		"SELECT value FROM kv_values WHERE namespace = ? AND name = ?",
		k.namespace, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0
	}
	if err != nil {
		k.logger.Error("kv read failed", "namespace", k.namespace, "key", key, "error", err)
		return 0
	}
	return v
}

// Set implements kv.Store.
func (k *KV) Set(key string, value int) {
	_, err := k.db.Exec(
		`INSERT INTO kv_values (namespace, name, value) VALUES (?, ?, ?)
		 ON CONFLICT(namespace, name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		k.namespace, key, value,
	)
	if err != nil {
		k.logger.Error("kv write failed", "namespace", k.namespace, "key", key, "error", err)
	}
}

var _ kv.Store = (*KV)(nil)
