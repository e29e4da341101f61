// Package savedata is the savegame-side blob container: named binary
// payloads keyed by data id, zstd-compressed, in a single sqlite file. It
// stands in for the host's serializable-data manager, including the data id
// a legacy predecessor wrote under.
package savedata

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

// DataID is the blob name this mod saves under; LegacyDataID is the name
// the predecessor mod used, read once for migration.
const (
	DataID       = "VehicleSelector"
	LegacyDataID = "TransferController"
)

type Container struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func Open(path string) (*Container, error) {
	if path == "" {
		return nil, fmt.Errorf("empty savedata path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		_ = db.Close()
		return nil, err
	}
	return &Container{db: db, enc: enc, dec: dec}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS blobs (
		data_id    TEXT PRIMARY KEY,
		updated_at TEXT NOT NULL,
		payload    BLOB NOT NULL
	);`)
	return err
}

// Save upserts the payload under dataID, compressed.
func (c *Container) Save(ctx context.Context, dataID string, payload []byte) error {
	if dataID == "" {
		return fmt.Errorf("empty data id")
	}
	compressed := c.enc.EncodeAll(payload, nil)
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO blobs (data_id, updated_at, payload) VALUES (?, ?, ?)
		 ON CONFLICT(data_id) DO UPDATE SET updated_at=excluded.updated_at, payload=excluded.payload;`,
		dataID, time.Now().UTC().Format(time.RFC3339), compressed)
	if err != nil {
		return fmt.Errorf("save %s: %w", dataID, err)
	}
	return nil
}

// Load returns the decompressed payload under dataID; ok is false when no
// blob with that name exists.
func (c *Container) Load(ctx context.Context, dataID string) (payload []byte, ok bool, err error) {
	var compressed []byte
	row := c.db.QueryRowContext(ctx, `SELECT payload FROM blobs WHERE data_id = ?;`, dataID)
	if err := row.Scan(&compressed); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load %s: %w", dataID, err)
	}
	payload, err = c.dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, false, fmt.Errorf("decompress %s: %w", dataID, err)
	}
	return payload, true, nil
}

// Delete removes the blob under dataID if present.
func (c *Container) Delete(ctx context.Context, dataID string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM blobs WHERE data_id = ?;`, dataID)
	return err
}

// DataIDs lists the stored blob names in lexical order.
func (c *Container) DataIDs(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT data_id FROM blobs ORDER BY data_id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (c *Container) Close() error {
	c.dec.Close()
	c.enc.Close()
	return c.db.Close()
}
