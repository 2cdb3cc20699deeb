package links

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"tally/internal/config"
	"tally/internal/ledger"
	"tally/internal/services"
)

const linkColumns = "id, video_id, product_id, display_name, created_at, updated_at"

// Store manages content-link persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the link database under the configured
// data directory. The data directory is locked exclusively for the life of
// the store; a second opener fails instead of racing the first.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "tally.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire data directory lock: %w", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConflict, "links", "open",
			"data directory is locked by another tally process", nil)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "links.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
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
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection and releases the directory lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// Upsert records a confirmed association. Repeating the same pair is
// idempotent; a non-empty display name replaces the stored override, an
// empty one leaves it intact.
func (s *Store) Upsert(ctx context.Context, link ledger.ContentLink) (*ledger.ContentLink, error) {
	videoID := strings.TrimSpace(link.VideoID)
	productID := strings.TrimSpace(link.ProductID)
	if videoID == "" || productID == "" {
		return nil, services.Wrap(services.ErrValidation, "links", "upsert", "video id and product id are required", nil)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO content_links (video_id, product_id, display_name, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT (video_id, product_id) DO UPDATE SET
             display_name = CASE WHEN excluded.display_name IS NOT NULL THEN excluded.display_name
                                 ELSE content_links.display_name END,
             updated_at = excluded.updated_at`,
		videoID,
		productID,
		nullableString(strings.TrimSpace(link.DisplayName)),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert link: %w", err)
	}

	return s.get(ctx, videoID, productID)
}

// SaveAll upserts a batch of links inside one transaction.
func (s *Store) SaveAll(ctx context.Context, batch []ledger.ContentLink) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin links tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	for _, link := range batch {
		videoID := strings.TrimSpace(link.VideoID)
		productID := strings.TrimSpace(link.ProductID)
		if videoID == "" || productID == "" {
			continue
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO content_links (video_id, product_id, display_name, created_at, updated_at)
             VALUES (?, ?, ?, ?, ?)
             ON CONFLICT (video_id, product_id) DO UPDATE SET
                 display_name = CASE WHEN excluded.display_name IS NOT NULL THEN excluded.display_name
                                     ELSE content_links.display_name END,
                 updated_at = excluded.updated_at`,
			videoID,
			productID,
			nullableString(strings.TrimSpace(link.DisplayName)),
			timestamp,
			timestamp,
		); err != nil {
			return fmt.Errorf("upsert link %s/%s: %w", videoID, productID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit links: %w", err)
	}
	return nil
}

// All returns every persisted link in deterministic order.
func (s *Store) All(ctx context.Context) ([]ledger.ContentLink, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+linkColumns+` FROM content_links ORDER BY video_id, product_id`)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()
	return collectLinks(rows)
}

// ForVideo returns the links recorded for one video identifier.
func (s *Store) ForVideo(ctx context.Context, videoID string) ([]ledger.ContentLink, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+linkColumns+` FROM content_links WHERE video_id = ? ORDER BY product_id`, videoID)
	if err != nil {
		return nil, fmt.Errorf("list links for video: %w", err)
	}
	defer rows.Close()
	return collectLinks(rows)
}

// Rename sets the display-name override on every link of a video. An empty
// name clears the override.
func (s *Store) Rename(ctx context.Context, videoID, displayName string) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE content_links SET display_name = ?, updated_at = ? WHERE video_id = ?`,
		nullableString(strings.TrimSpace(displayName)),
		time.Now().UTC().Format(time.RFC3339Nano),
		videoID,
	)
	if err != nil {
		return fmt.Errorf("rename link: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rename link rows: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "links", "rename", "no links for video "+videoID, nil)
	}
	return nil
}

// Delete removes one confirmed pair.
func (s *Store) Delete(ctx context.Context, videoID, productID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM content_links WHERE video_id = ? AND product_id = ?`, videoID, productID)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete link rows: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "links", "delete", videoID+"/"+productID, nil)
	}
	return nil
}

func (s *Store) get(ctx context.Context, videoID, productID string) (*ledger.ContentLink, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+linkColumns+` FROM content_links WHERE video_id = ? AND product_id = ?`,
		videoID, productID)
	link, err := scanLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "links", "get", videoID+"/"+productID, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("get link: %w", err)
	}
	return link, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(row rowScanner) (*ledger.ContentLink, error) {
	var (
		link        ledger.ContentLink
		displayName sql.NullString
		createdAt   string
		updatedAt   string
	)
	if err := row.Scan(&link.ID, &link.VideoID, &link.ProductID, &displayName, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	link.DisplayName = displayName.String
	if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		link.CreatedAt = parsed
	}
	if parsed, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		link.UpdatedAt = parsed
	}
	return &link, nil
}

func collectLinks(rows *sql.Rows) ([]ledger.ContentLink, error) {
	var out []ledger.ContentLink
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		out = append(out, *link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return out, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
