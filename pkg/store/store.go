package store

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type txContextKey string

const txKey txContextKey = "trx"

// Config is filled by the caller; the store reads nothing from the
// environment itself.
type Config struct {
	Path  string
	Debug bool
}

// Store wraps the single on-device database handle. There is one logical
// writer; sqlite's own locking serializes the transactional unit of work.
type Store struct {
	db   *gorm.DB
	path string
}

var (
	openMu sync.Mutex
	opened = make(map[string]*Store)
)

// Open opens (or creates) the database file. Calling Open again for a path
// that is already open returns the existing handle, it is not an error.
// Foreign keys are switched on at the connection level so cascade deletes
// are enforced by the engine, not by application code.
func Open(cfg Config) (*Store, error) {
	openMu.Lock()
	defer openMu.Unlock()

	if s, ok := opened[cfg.Path]; ok {
		return s, nil
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", cfg.Path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		db = db.Debug()
	}

	// A single writer connection keeps concurrent Record calls from
	// tripping over sqlite's database-is-locked errors.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	s := &Store{db: db, path: cfg.Path}
	opened[cfg.Path] = s
	return s, nil
}

// New wraps an existing gorm handle. Used by tests.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate applies the schema additively: missing tables and missing
// columns are created, existing ones are left alone, so re-running it on
// an already-provisioned file never fails.
func (s *Store) AutoMigrate(models ...any) error {
	return s.db.AutoMigrate(models...)
}

// WithinTransaction runs fn inside one database transaction. The tx handle
// rides the context, so repository calls made through DB(ctx) join it and
// the whole unit commits or rolls back together.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ctx = context.WithValue(ctx, txKey, tx)
		return fn(ctx)
	})
}

// DB returns the context's transaction handle when one is in flight,
// otherwise the root handle.
func (s *Store) DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return s.db.WithContext(ctx)
}

func (s *Store) Close() error {
	openMu.Lock()
	if s.path != "" {
		delete(opened, s.path)
	}
	openMu.Unlock()

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
