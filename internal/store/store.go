// Package store archives parsed dumps in a sqlite database so they can be
// listed and exported later.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/leveldump/internal/dump"
	"github.com/banshee-data/leveldump/internal/monitoring"
	"github.com/banshee-data/leveldump/internal/timeutil"
)

var (
	// ErrDumpNotFound is returned when a dump id is not in the archive.
	ErrDumpNotFound = errors.New("dump not found")
	// ErrNonFinite is returned by SaveDump for a point with a NaN or infinite
	// coordinate; sqlite cannot store them in a REAL column.
	ErrNonFinite = errors.New("non-finite coordinate")
)

// Store is a sqlite-backed dump archive.
type Store struct {
	*sql.DB
	clock timeutil.Clock
}

// DumpInfo describes one archived dump.
type DumpInfo struct {
	ID         string
	Name       string
	SourcePath string
	Levels     int
	Points     int
	CreatedAt  time.Time
}

// Open opens (or creates) the archive at path. Call MigrateUp before use.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite pragmas are per connection; a single connection keeps them applied.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &Store{DB: db, clock: timeutil.RealClock{}}, nil
}

// SaveDump stores levels under a new id and returns it. Nothing is stored
// if any point has a non-finite coordinate.
func (s *Store) SaveDump(name, sourcePath string, levels dump.Levels) (id string, err error) {
	if err := checkFinite(levels); err != nil {
		return "", err
	}
	id = uuid.NewString()

	tx, err := s.Begin()
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.Exec(`INSERT INTO dumps (dump_id, name, source_path, level_count, point_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, sourcePath, len(levels), levels.PointCount(), s.clock.Now().UnixNano())
	if err != nil {
		return "", fmt.Errorf("insert dump: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO dump_points (dump_id, level, seq, x, y) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare point insert: %w", err)
	}
	defer stmt.Close()

	for _, level := range levels.IDs() {
		for seq, p := range levels[level] {
			if _, err = stmt.Exec(id, level, seq, p.X, p.Y); err != nil {
				return "", fmt.Errorf("insert point %d of level %d: %w", seq, level, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("commit dump: %w", err)
	}
	monitoring.Debugf("archived dump %s (%q, %d points)", id, name, levels.PointCount())
	return id, nil
}

func checkFinite(levels dump.Levels) error {
	for _, level := range levels.IDs() {
		for seq, p := range levels[level] {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				return fmt.Errorf("%w: point %d of level %d is (%v, %v)", ErrNonFinite, seq, level, p.X, p.Y)
			}
		}
	}
	return nil
}

// LoadDump reads an archived dump back with the original point order.
func (s *Store) LoadDump(id string) (dump.Levels, error) {
	var exists int
	err := s.QueryRow(`SELECT 1 FROM dumps WHERE dump_id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrDumpNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.Query(`SELECT level, x, y FROM dump_points WHERE dump_id = ? ORDER BY level, seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	levels := make(dump.Levels)
	for rows.Next() {
		var level int
		var p dump.Point
		if err := rows.Scan(&level, &p.X, &p.Y); err != nil {
			return nil, err
		}
		levels.Append(level, p)
	}
	return levels, rows.Err()
}

// ListDumps returns the archived dumps, newest first.
func (s *Store) ListDumps() ([]DumpInfo, error) {
	rows, err := s.Query(`SELECT dump_id, name, source_path, level_count, point_count, created_at
		FROM dumps ORDER BY created_at DESC, dump_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DumpInfo
	for rows.Next() {
		var info DumpInfo
		var created int64
		if err := rows.Scan(&info.ID, &info.Name, &info.SourcePath, &info.Levels, &info.Points, &created); err != nil {
			return nil, err
		}
		info.CreatedAt = time.Unix(0, created)
		out = append(out, info)
	}
	return out, rows.Err()
}
