// Package database is the query executor: it owns the pooled connection to
// PostgreSQL, puts a deadline on every statement, and scopes transactions so
// that exactly one of commit or rollback finishes before a connection goes
// back to the pool.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taskboard/internal/logger"
)

// Options tunes the pool and deadlines.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
	QueryTimeout    time.Duration
}

type DB struct {
	gorm         *gorm.DB
	log          *log.Logger
	queryTimeout time.Duration
}

// Open connects to PostgreSQL, configures the pool and pings it. An
// unreachable database is an error here rather than on the first request.
func Open(ctx context.Context, dsn string, opts Options, l *log.Logger) (*DB, error) {
	g, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.NewGorm(l),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := g.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return New(g, opts.QueryTimeout, l), nil
}

// New wraps an existing gorm handle. Tests use it with a sqlmock connection.
func New(g *gorm.DB, queryTimeout time.Duration, l *log.Logger) *DB {
	if l == nil {
		l = logger.Discard()
	}
	return &DB{gorm: g, log: l.WithPrefix("db"), queryTimeout: queryTimeout}
}

func (d *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.queryTimeout)
}

// Run executes fn against the pool under the statement deadline. Errors come
// back classified by MapError.
func (d *DB) Run(ctx context.Context, fn func(db *gorm.DB) error) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	return mapWithContext(ctx, fn(d.gorm.WithContext(ctx)))
}

// Query runs one parameterized statement and scans every row into dest.
// Arguments are bound by the driver, never spliced into statement.
func (d *DB) Query(ctx context.Context, dest any, statement string, args ...any) error {
	return d.Run(ctx, func(db *gorm.DB) error {
		return db.Raw(statement, args...).Scan(dest).Error
	})
}

// Transaction begins a transaction on a dedicated connection and hands it to
// work. A nil return commits; an error or panic rolls back. Commit and
// rollback have both completed by the time Transaction returns.
func (d *DB) Transaction(ctx context.Context, work func(tx *gorm.DB) error) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	tx := d.gorm.WithContext(ctx).Begin()
	if tx.Error != nil {
		d.log.Error("failed to begin transaction", "err", tx.Error)
		return mapWithContext(ctx, fmt.Errorf("begin transaction: %w", tx.Error))
	}
	d.log.Debug("transaction started")

	defer func() {
		if p := recover(); p != nil {
			if err := d.rollback(tx); err != nil {
				d.log.Error("failed to roll back transaction after panic", "err", err, "panic", p)
			} else {
				d.log.Error("rolled back transaction after panic", "panic", p)
			}
			panic(p)
		}
	}()

	if err := work(tx); err != nil {
		if rbErr := d.rollback(tx); rbErr != nil {
			d.log.Error("failed to roll back transaction", "rollback_err", rbErr, "err", err)
			return mapWithContext(ctx, errors.Join(err, fmt.Errorf("rollback: %w", rbErr)))
		}
		d.log.Debug("transaction rolled back", "err", err)
		return mapWithContext(ctx, err)
	}

	if err := tx.Commit().Error; err != nil {
		d.log.Error("failed to commit transaction", "err", err)
		return mapWithContext(ctx, fmt.Errorf("commit transaction: %w", err))
	}
	d.log.Debug("transaction committed")
	return nil
}

// rollback treats a transaction the driver already aborted (deadline hit) as
// rolled back.
func (d *DB) rollback(tx *gorm.DB) error {
	err := tx.Rollback().Error
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
