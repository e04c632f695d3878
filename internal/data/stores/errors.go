package stores

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/kv"
	"github.com/hay-kot/tvconsole/internal/data/db"
)

// corruptMessages are driver messages that mean the catalog file itself is
// unusable, as opposed to a failed statement.
var corruptMessages = []string{
	"database disk image is malformed",
	"file is not a database",
	"database corruption",
}

// IsBusyError reports whether err is SQLITE_BUSY.
func IsBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_BUSY
	}
	return false
}

// IsCorruptionError reports whether err means tvconsole.db can not be read
// and should be moved aside with RecoverFromCorruption.
func IsCorruptionError(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CANTOPEN:
			return true
		}
	}
	msg := err.Error()
	for _, m := range corruptMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// IsNotFoundError reports whether err is a missing catalog entity or kv key.
func IsNotFoundError(err error) bool {
	return errors.Is(err, catalog.ErrNotFound) ||
		errors.Is(err, kv.ErrNotFound) ||
		errors.Is(err, sql.ErrNoRows)
}

// lookupErr annotates a single-row query error with op. A missing row also
// matches notFound so callers can test for the domain sentinel.
func lookupErr(op string, notFound, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w: %w", op, notFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Recovery records where RecoverFromCorruption moved a catalog database.
type Recovery struct {
	Backup string   // path of the moved tvconsole.db, empty when there was none
	Moved  []string // every file moved, the database first
}

// sidecars are the files SQLite keeps next to the database in WAL mode. They
// must move with it, otherwise SQLite replays them into the fresh database.
var sidecars = []string{"", "-wal", "-shm"}

// RecoverFromCorruption moves tvconsole.db and its WAL and SHM files in
// dataDir aside as tvconsole.db.corrupt.<timestamp>[-wal|-shm] so that the
// next db.Open creates an empty catalog. Missing files are skipped. A sidecar
// that can not be renamed is deleted instead.
func RecoverFromCorruption(dataDir string) (Recovery, error) {
	dbPath := filepath.Join(dataDir, db.FileName)
	stamp := time.Now().Format("20060102-150405")
	backup := filepath.Join(dataDir, fmt.Sprintf("%s.corrupt.%s", db.FileName, stamp))

	var rec Recovery
	for _, suffix := range sidecars {
		src, dst := dbPath+suffix, backup+suffix
		if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err := os.Rename(src, dst); err != nil {
			if suffix == "" {
				return rec, fmt.Errorf("move corrupt database: %w", err)
			}
			if rmErr := os.Remove(src); rmErr != nil {
				return rec, fmt.Errorf("move or remove %s: %w", filepath.Base(src), err)
			}
			continue
		}

		if suffix == "" {
			rec.Backup = dst
		}
		rec.Moved = append(rec.Moved, dst)
	}
	return rec, nil
}
