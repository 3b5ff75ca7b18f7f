package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"switchyard/internal/config"
	"switchyard/internal/logging"
	"switchyard/internal/overlay"
)

const (
	keyOverlay     = "overlay"
	keyStageLayout = "stage_layout"
)

// Store persists editor state in a single sqlite database so a restarted
// session comes back with the same overlays and default layout. Values are
// stored as JSON blobs keyed by name; the schema stays trivial on purpose.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore opens (creating if needed) the settings database under the
// configured state directory.
func NewStore(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.SettingsDBPath())
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:     db,
		logger: logging.NewComponentLogger(logger, "settings-store"),
	}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
        CREATE TABLE IF NOT EXISTS settings (
            key        TEXT PRIMARY KEY,
            value      TEXT NOT NULL,
            updated_at TEXT NOT NULL DEFAULT (datetime('now'))
        )`)
	if err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Overlay loads the persisted overlay settings. A missing row or an
// unreadable blob falls back to defaults; persistence problems must never
// keep a session from starting.
func (s *Store) Overlay(ctx context.Context) overlay.Settings {
	raw, err := s.get(ctx, keyOverlay)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("overlay settings unreadable, using defaults", logging.Error(err))
		}
		return overlay.DefaultSettings()
	}
	settings := overlay.DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.logger.Warn("overlay settings corrupt, using defaults", logging.Error(err))
		return overlay.DefaultSettings()
	}
	return settings
}

// SaveOverlay persists the overlay settings snapshot.
func (s *Store) SaveOverlay(ctx context.Context, settings overlay.Settings) error {
	blob, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal overlay settings: %w", err)
	}
	return s.put(ctx, keyOverlay, string(blob))
}

// StageLayout returns the persisted default layout mode, or fallback when
// none is stored.
func (s *Store) StageLayout(ctx context.Context, fallback string) string {
	raw, err := s.get(ctx, keyStageLayout)
	if err != nil {
		return fallback
	}
	return raw
}

// SaveStageLayout persists the layout mode restored on next start.
func (s *Store) SaveStageLayout(ctx context.Context, mode string) error {
	return s.put(ctx, keyStageLayout, mode)
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	return value, err
}

func (s *Store) put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO settings (key, value, updated_at) VALUES (?, ?, datetime('now'))
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}
