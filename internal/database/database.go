package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"quizhub/internal/config"
)

// DB wraps the connection pool and exposes the storage helpers used by the
// repositories. Queries are written with ? placeholders and rebound for the
// active driver.
type DB struct {
	db *sqlx.DB
}

func Open(cfg config.DatabaseConfig) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", cfg.Driver, err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("database: ping %s: %w", cfg.Driver, err)
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		// sqlite allows a single writer; one connection avoids SQLITE_BUSY churn.
		conn.SetMaxOpenConns(1)
	default:
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(25)
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	log.Printf("database: connected (%s)", cfg.Driver)
	return New(conn), nil
}

// New wraps an existing connection. The driver name of conn decides the
// placeholder style and how inserted ids are returned.
func New(conn *sqlx.DB) *DB {
	return &DB{db: conn}
}

func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	err := d.db.Close()
	log.Println("database: connection closed")
	return err
}

func (d *DB) Driver() string {
	return d.db.DriverName()
}

// Execute runs one INSERT in its own transaction and returns the new row id.
func (d *DB) Execute(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	err := d.WithTx(ctx, func(tx *sqlx.Tx) error {
		if d.Driver() == config.DriverPostgres {
			return tx.QueryRowxContext(ctx, tx.Rebind(query+" RETURNING id"), args...).Scan(&id)
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// Exec runs one UPDATE or DELETE in its own transaction and returns the
// number of affected rows.
func (d *DB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	var affected int64
	err := d.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected, err
}

// Query scans every row of a read statement into dest, a pointer to a slice.
func (d *DB) Query(ctx context.Context, dest any, query string, args ...any) error {
	if err := d.db.SelectContext(ctx, dest, d.db.Rebind(query), args...); err != nil {
		return classify(err)
	}
	return nil
}

// Get scans a single row into dest. A missing row is ErrNotFound.
func (d *DB) Get(ctx context.Context, dest any, query string, args ...any) error {
	err := d.db.GetContext(ctx, dest, d.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return classify(err)
	}
	return nil
}

// WithTx runs fn in a transaction, committing when fn returns nil and
// rolling back otherwise.
func (d *DB) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return classify(err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("database: rollback failed: %v", rbErr)
		}
		return classify(err)
	}

	if err := tx.Commit(); err != nil {
		return classify(err)
	}
	return nil
}
