package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/shuldan/modular/pkg/contracts"
	"github.com/shuldan/modular/pkg/modular"
)

const (
	ModuleName            = "database"
	defaultConnectionName = "primary"
)

// Listener is notified once every connection of the module is open and
// every module finished Init.
type Listener interface {
	OnDatabaseReady(db *Module) error
}

type Option func(*Module)

// WithConnection declares a connection in code. Connections found in
// configuration are opened as well; a name may only be used once.
func WithConnection(cfg ConnectionConfig) Option {
	return func(m *Module) {
		m.declared = append(m.declared, cfg)
	}
}

// WithConfigKey changes the configuration section read in Init.
func WithConfigKey(key string) Option {
	return func(m *Module) {
		m.configKey = key
	}
}

func WithConnectTimeout(d time.Duration) Option {
	return func(m *Module) {
		m.connectTimeout = d
	}
}

// Module opens the SQL connections described under "database":
//
//	database:
//	  default: primary
//	  connections:
//	    primary:
//	      driver: sqlite3
//	      dsn: ":memory:"
type Module struct {
	modular.Base

	config         contracts.Config
	declared       []ConnectionConfig
	configKey      string
	connectTimeout time.Duration
	defaultName    string
	pool           *pool
}

func NewModule(opts ...Option) modular.Type {
	return modular.Provide(func() *Module {
		m := &Module{
			configKey:      ModuleName,
			connectTimeout: 30 * time.Second,
			defaultName:    defaultConnectionName,
			pool:           newPool(),
		}
		for _, opt := range opts {
			opt(m)
		}
		return m
	}).Named(ModuleName)
}

func (m *Module) Needs() []modular.Need {
	return []modular.Need{modular.OptionalSlot(&m.config)}
}

// ValidateModule checks connections declared in code. Configured ones are
// checked in Init, once configuration is loaded.
func (m *Module) ValidateModule(result *modular.ValidationResult) {
	seen := make(map[string]bool)
	for _, c := range m.declared {
		if seen[c.Name] {
			result.AddError("connection %q declared twice", c.Name)
		}
		seen[c.Name] = true
		if err := c.validate(); err != nil {
			result.AddError("%v", err)
		}
	}
}

func (m *Module) Init() error {
	connections, err := m.collect()
	if err != nil {
		return err
	}
	if len(connections) == 0 {
		return ErrNoConnections
	}

	for _, c := range connections {
		if err := m.pool.add(newConnection(c)); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.connectTimeout)
	defer cancel()
	return m.pool.connectAll(ctx)
}

// Start announces the open connections to every Listener.
func (m *Module) Start() error {
	report := modular.Dispatch(m.Manager(), m, "database ready", func(l Listener) error {
		return l.OnDatabaseReady(m)
	})
	if report.Failed() {
		m.Logger().Warn("database ready listeners failed", "failures", len(report.Failures))
	}
	return nil
}

func (m *Module) collect() ([]ConnectionConfig, error) {
	connections := append([]ConnectionConfig(nil), m.declared...)
	if m.config == nil {
		return connections, nil
	}

	section, ok := m.config.GetSub(m.configKey)
	if !ok {
		return connections, nil
	}
	m.defaultName = section.GetString("default", m.defaultName)

	configured, ok := section.GetSub("connections")
	if !ok {
		return connections, nil
	}
	for _, name := range sortedKeys(configured.All()) {
		sub, ok := configured.GetSub(name)
		if !ok {
			continue
		}
		c := connectionFromConfig(name, sub)
		if err := c.validate(); err != nil {
			return nil, err
		}
		connections = append(connections, c)
	}
	return connections, nil
}

func (m *Module) PrintDetails() {
	for _, conn := range m.pool.all() {
		m.Logger().Info("database connection open",
			"connection", conn.Name(),
			"driver", conn.Driver(),
			"default", conn.Name() == m.defaultName,
		)
	}
}

// Connection returns a named connection.
func (m *Module) Connection(name string) (*Connection, error) {
	conn, ok := m.pool.get(name)
	if !ok {
		return nil, ErrConnectionNotFound.WithDetail("name", name)
	}
	return conn, nil
}

// DB returns the pool of the default connection.
func (m *Module) DB() (*sql.DB, error) {
	conn, err := m.Connection(m.defaultName)
	if err != nil {
		return nil, err
	}
	db := conn.DB()
	if db == nil {
		return nil, ErrDatabaseNotConnected.WithDetail("name", m.defaultName)
	}
	return db, nil
}

func (m *Module) Connections() []*Connection {
	return m.pool.all()
}

// Close closes every connection.
func (m *Module) Close() error {
	return m.pool.closeAll()
}
