// Package postgres provides a TypeRegistry backed by a PostgreSQL table.
//
// The prefix table is loaded into memory on Connect, so lookups after that
// are deterministic map reads with no I/O. Call Refresh to pick up table
// changes.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	notification "github.com/Javivb/notifications-engine-dreamole-19"
)

// Compile-time check
var _ notification.TypeRegistry = (*Registry)(nil)

// Registry implements notification.TypeRegistry using PostgreSQL.
type Registry struct {
	db        *sqlx.DB
	opts      *options
	logger    *slog.Logger
	connected int32

	mu       sync.RWMutex
	prefixes map[string]notification.TypeTag
}

// New creates a new PostgreSQL registry with the provided database
// connection. Call Connect() to initialize the schema and load the prefix
// table.
func New(db *sqlx.DB, opts ...Option) *Registry {
	o := newOptions(opts...)
	return &Registry{
		db:       db,
		opts:     o,
		logger:   o.logger,
		prefixes: make(map[string]notification.TypeTag),
	}
}

// NewFromDB creates a new PostgreSQL registry from a standard sql.DB
// connection.
func NewFromDB(db *sql.DB, opts ...Option) *Registry {
	return New(sqlx.NewDb(db, "postgres"), opts...)
}

// Connect initializes the schema and loads the prefix table into memory.
func (r *Registry) Connect(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&r.connected, 0, 1) {
		return fmt.Errorf("postgres registry: already connected")
	}

	if r.db == nil {
		atomic.StoreInt32(&r.connected, 0)
		return fmt.Errorf("postgres registry: db is required")
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.timeout)
	defer cancel()

	if err := r.db.PingContext(ctx); err != nil {
		atomic.StoreInt32(&r.connected, 0)
		return fmt.Errorf("postgres ping: %w", err)
	}

	if err := r.ensureSchema(ctx); err != nil {
		atomic.StoreInt32(&r.connected, 0)
		return fmt.Errorf("ensure schema: %w", err)
	}

	if err := r.Refresh(ctx); err != nil {
		atomic.StoreInt32(&r.connected, 0)
		return err
	}

	r.logger.Info("connected to PostgreSQL type registry", "table", r.opts.table)
	return nil
}

// Close marks the registry as disconnected.
// The caller is responsible for closing the database connection.
func (r *Registry) Close(ctx context.Context) error {
	atomic.StoreInt32(&r.connected, 0)
	return nil
}

// ensureSchema creates the prefix table if it does not exist.
func (r *Registry) ensureSchema(ctx context.Context) error {
	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key_prefix  TEXT PRIMARY KEY,
			entity_type TEXT NOT NULL
		)
	`, pq.QuoteIdentifier(r.opts.table))

	if _, err := r.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// Refresh reloads the prefix table from the database.
func (r *Registry) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.opts.timeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT key_prefix, entity_type FROM %s`, pq.QuoteIdentifier(r.opts.table))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("load prefixes: %w", err)
	}
	defer rows.Close()

	prefixes := make(map[string]notification.TypeTag)
	for rows.Next() {
		var prefix, entityType string
		if err := rows.Scan(&prefix, &entityType); err != nil {
			return fmt.Errorf("scan prefix row: %w", err)
		}
		prefixes[prefix] = notification.TypeTag(entityType)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate prefix rows: %w", err)
	}

	r.mu.Lock()
	r.prefixes = prefixes
	r.mu.Unlock()

	r.logger.Debug("loaded type registry prefixes", "count", len(prefixes))
	return nil
}

// TypeOf returns the type tag registered for the given key prefix.
// It reads the in-memory snapshot; Connect or Refresh must have run first.
func (r *Registry) TypeOf(keyPrefix string) (notification.TypeTag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tag, ok := r.prefixes[keyPrefix]
	return tag, ok
}
