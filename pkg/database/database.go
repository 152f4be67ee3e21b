package database

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shuldan/modular/pkg/contracts"
	"github.com/shuldan/modular/pkg/errors"
)

// ConnectionConfig describes one named connection.
type ConnectionConfig struct {
	Name            string
	Driver          string        `validate:"required,sqldriver"`
	DSN             string        `validate:"required"`
	MaxOpenConns    int           `validate:"gte=0"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
	ConnMaxIdleTime time.Duration `validate:"gte=0"`
	PingTimeout     time.Duration `validate:"gte=0"`
	RetryAttempts   int           `validate:"gte=0"`
	RetryDelay      time.Duration `validate:"gte=0"`
}

func defaultConnectionConfig(name string) ConnectionConfig {
	return ConnectionConfig{
		Name:            name,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 5 * time.Minute,
		PingTimeout:     5 * time.Second,
		RetryAttempts:   3,
		RetryDelay:      time.Second,
	}
}

// connectionFromConfig reads a connection section:
//
//	driver: postgres
//	dsn: postgres://app@localhost/app
//	pool:
//	  max_open_connections: 25
//	  max_idle_connections: 5
//	  conn_max_lifetime: 1h
//	  conn_max_idle_time: 5m
//	ping_timeout: 5s
//	retry:
//	  attempts: 3
//	  delay: 1s
func connectionFromConfig(name string, cfg contracts.Config) ConnectionConfig {
	c := defaultConnectionConfig(name)
	c.Driver = cfg.GetString("driver")
	c.DSN = cfg.GetString("dsn")
	c.MaxOpenConns = cfg.GetInt("pool.max_open_connections", c.MaxOpenConns)
	c.MaxIdleConns = cfg.GetInt("pool.max_idle_connections", c.MaxIdleConns)
	c.ConnMaxLifetime = cfg.GetDuration("pool.conn_max_lifetime", c.ConnMaxLifetime)
	c.ConnMaxIdleTime = cfg.GetDuration("pool.conn_max_idle_time", c.ConnMaxIdleTime)
	c.PingTimeout = cfg.GetDuration("ping_timeout", c.PingTimeout)
	c.RetryAttempts = cfg.GetInt("retry.attempts", c.RetryAttempts)
	c.RetryDelay = cfg.GetDuration("retry.delay", c.RetryDelay)
	return c
}

// validate reports the first rule c breaks.
func (c ConnectionConfig) validate() error {
	err := rules.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return ErrInvalidConnection.WithDetail("name", c.Name).WithDetail("field", "-").WithDetail("rule", err.Error())
	}

	fe := fieldErrs[0]
	switch {
	case fe.Field() == "Driver" && fe.Tag() == "required":
		return ErrDriverNotSpecified.WithDetail("name", c.Name)
	case fe.Field() == "Driver":
		return ErrUnknownDriver.WithDetail("name", c.Name).WithDetail("driver", c.Driver)
	case fe.Field() == "DSN":
		return ErrDSNNotSpecified.WithDetail("name", c.Name)
	default:
		return ErrInvalidConnection.
			WithDetail("name", c.Name).
			WithDetail("field", fe.Field()).
			WithDetail("rule", fe.Tag()+"="+fe.Param())
	}
}

// Connection is one pooled *sql.DB opened from a ConnectionConfig.
type Connection struct {
	mu     sync.RWMutex
	config ConnectionConfig
	db     *sql.DB
}

func newConnection(cfg ConnectionConfig) *Connection {
	cfg.Driver = normalizeDriver(cfg.Driver)
	return &Connection{config: cfg}
}

func (c *Connection) Name() string {
	return c.config.Name
}

func (c *Connection) Driver() string {
	return c.config.Driver
}

// Connect opens the pool and pings it, retrying up to RetryAttempts more
// times. It is a no-op when already connected.
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return nil
	}

	var (
		db  *sql.DB
		err error
	)
	for attempt := 0; attempt <= c.config.RetryAttempts; attempt++ {
		db, err = sql.Open(c.config.Driver, c.config.DSN)
		if err == nil {
			db.SetMaxOpenConns(c.config.MaxOpenConns)
			db.SetMaxIdleConns(c.config.MaxIdleConns)
			db.SetConnMaxLifetime(c.config.ConnMaxLifetime)
			db.SetConnMaxIdleTime(c.config.ConnMaxIdleTime)

			pingCtx, cancel := context.WithTimeout(ctx, c.config.PingTimeout)
			err = db.PingContext(pingCtx)
			cancel()

			if err == nil {
				c.db = db
				return nil
			}
			_ = db.Close()
		}

		if attempt < c.config.RetryAttempts {
			select {
			case <-ctx.Done():
				return ErrFailedToOpenDatabase.
					WithDetail("name", c.config.Name).
					WithDetail("attempts", attempt+1).
					WithCause(ctx.Err())
			case <-time.After(c.config.RetryDelay):
			}
		}
	}

	return ErrFailedToOpenDatabase.
		WithDetail("name", c.config.Name).
		WithDetail("attempts", c.config.RetryAttempts+1).
		WithCause(err)
}

// DB returns the pool, or nil before Connect succeeded.
func (c *Connection) DB() *sql.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

func (c *Connection) Ping(ctx context.Context) error {
	db := c.DB()
	if db == nil {
		return ErrDatabaseNotConnected.WithDetail("name", c.config.Name)
	}
	return db.PingContext(ctx)
}

// Transaction runs fn inside a transaction, committing when fn returns nil
// and rolling back otherwise.
func (c *Connection) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	db := c.DB()
	if db == nil {
		return ErrDatabaseNotConnected.WithDetail("name", c.config.Name)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ErrTransactionFailed.WithDetail("reason", "begin failed").WithCause(err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return ErrTransactionFailed.
				WithDetail("reason", "rollback failed").
				WithCause(errors.Join(err, rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return ErrTransactionFailed.WithDetail("reason", "commit failed").WithCause(err)
	}
	return nil
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
