// Package sqlite persists knowledge-base bundles in a single SQLite file.
//
// A bundle holds the manifest (embedding model, dimensionality, build
// timestamp, layout version) plus every index entry with its chunk text,
// citation offsets and vector. Save writes a fresh database and renames
// it over the target, so a failed build never corrupts a previously
// persisted bundle and readers always see a complete file.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/clearbrook-labs/claimlens/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.BundleStore = (*Store)(nil)

// Store reads and writes bundles at a fixed filesystem path.
// Connections are opened per operation so that Save can atomically
// replace the file underneath future Loads.
type Store struct {
	path string
}

// NewStore creates a bundle store at the given path. If path is empty,
// defaults to ~/.claimlens/data/knowledge.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".claimlens", "data", "knowledge.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{path: path}, nil
}

// Path returns the bundle file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases resources. Connections are per-operation, so there is
// nothing to tear down.
func (s *Store) Close() error {
	return nil
}

// Save persists a snapshot, atomically replacing any previous bundle.
// The snapshot is written to a temporary database first; only a fully
// written bundle is renamed into place.
func (s *Store) Save(ctx context.Context, snap *domain.Snapshot) error {
	tmpPath := s.path + ".tmp"

	// A leftover temp file from a crashed build is stale; drop it.
	_ = os.Remove(tmpPath)

	if err := s.writeBundle(ctx, tmpPath, snap); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing bundle: %w", err)
	}
	return nil
}

// writeBundle writes a complete bundle database at path.
func (s *Store) writeBundle(ctx context.Context, path string, snap *domain.Snapshot) error {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("opening bundle database: %w", err)
	}
	defer db.Close()

	if err := migrate(db, migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	builtAt := snap.Manifest.BuiltAt
	if builtAt.IsZero() {
		builtAt = time.Now()
	}
	version := snap.Manifest.Version
	if version == "" {
		version = domain.BundleVersion
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO manifest (id, model, dimensions, built_at, version) VALUES (1, ?, ?, ?, ?)`,
		snap.Manifest.Model, snap.Manifest.Dimensions, builtAt.UTC().Format(time.RFC3339Nano), version)
	if err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (chunk_id, document_id, position, content, start_offset, end_offset, overlap, vector)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer stmt.Close()

	for i := range snap.Entries {
		chunk := &snap.Entries[i].Chunk
		_, err := stmt.ExecContext(ctx,
			chunk.ID, chunk.DocumentID, chunk.Position, chunk.Content,
			chunk.Start, chunk.End, chunk.Overlap,
			float32SliceToBytes(snap.Entries[i].Vector))
		if err != nil {
			return fmt.Errorf("writing entry %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing bundle: %w", err)
	}
	return nil
}

// Load reads the current bundle. Entries come back in insertion order.
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no bundle at %s", domain.ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("checking bundle: %w", err)
	}

	db, err := sql.Open("sqlite", s.path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening bundle database: %w", err)
	}
	defer db.Close()

	snap := &domain.Snapshot{}
	var builtAt string
	row := db.QueryRowContext(ctx, `SELECT model, dimensions, built_at, version FROM manifest WHERE id = 1`)
	if err := row.Scan(&snap.Manifest.Model, &snap.Manifest.Dimensions, &builtAt, &snap.Manifest.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: bundle has no manifest", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	if snap.Manifest.BuiltAt, err = time.Parse(time.RFC3339Nano, builtAt); err != nil {
		return nil, fmt.Errorf("parsing build timestamp: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT chunk_id, document_id, position, content, start_offset, end_offset, overlap, vector
		FROM entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry domain.IndexEntry
		var blob []byte
		if err := rows.Scan(
			&entry.Chunk.ID, &entry.Chunk.DocumentID, &entry.Chunk.Position,
			&entry.Chunk.Content, &entry.Chunk.Start, &entry.Chunk.End,
			&entry.Chunk.Overlap, &blob); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entry.Vector = bytesToFloat32Slice(blob)
		if len(entry.Vector) != snap.Manifest.Dimensions {
			return nil, &domain.DimensionMismatchError{
				Want: snap.Manifest.Dimensions,
				Got:  len(entry.Vector),
			}
		}
		snap.Entries = append(snap.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	return snap, nil
}

// migrate runs all pending migrations.
func migrate(db *sql.DB, fsys embed.FS) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// float32SliceToBytes converts a []float32 to a little-endian byte slice.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
