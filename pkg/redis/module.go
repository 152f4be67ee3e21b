package redis

import (
	"context"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/shuldan/modular/pkg/contracts"
	"github.com/shuldan/modular/pkg/modular"
)

const ModuleName = "redis"

// Listener is notified once the client is ready.
type Listener interface {
	OnRedisReady(client goredis.UniversalClient) error
}

// Module owns one go-redis universal client. A single address yields a
// plain client, several a cluster client and master_name a failover client.
type Module struct {
	modular.Base

	config      contracts.Config
	configKey   string
	base        goredis.UniversalOptions
	hasBase     bool
	ping        bool
	pingTimeout time.Duration

	options goredis.UniversalOptions
	client  goredis.UniversalClient
}

func NewModule(opts ...Option) modular.Type {
	return modular.Provide(func() *Module {
		m := &Module{
			configKey:   ModuleName,
			ping:        true,
			pingTimeout: 2 * time.Second,
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

func (m *Module) ValidateModule(result *modular.ValidationResult) {
	if !m.hasBase {
		return
	}
	if err := validateOptions(m.base); err != nil {
		result.AddError("%v", err)
	}
}

func (m *Module) Init() error {
	opts := m.base
	if m.config != nil {
		if section, ok := m.config.GetSub(m.configKey); ok {
			m.applyConfig(section, &opts)
		}
	}
	if err := validateOptions(opts); err != nil {
		return err
	}

	m.options = opts
	m.client = goredis.NewUniversalClient(&opts)

	if m.ping {
		ctx, cancel := context.WithTimeout(context.Background(), m.pingTimeout)
		defer cancel()
		if err := m.Ping(ctx); err != nil {
			_ = m.client.Close()
			m.client = nil
			return err
		}
	}
	return nil
}

// Start hands the client to every Listener.
func (m *Module) Start() error {
	report := modular.Dispatch(m.Manager(), m, "redis ready", func(l Listener) error {
		return l.OnRedisReady(m.client)
	})
	if report.Failed() {
		m.Logger().Warn("redis ready listeners failed", "failures", len(report.Failures))
	}
	return nil
}

func (m *Module) PrintDetails() {
	m.Logger().Info("redis client configured",
		"addrs", strings.Join(m.options.Addrs, ","),
		"db", m.options.DB,
		"failover", m.options.MasterName != "",
		"pinged", m.ping,
	)
}

// Client returns the client, or nil before Init.
func (m *Module) Client() goredis.UniversalClient {
	return m.client
}

func (m *Module) Ping(ctx context.Context) error {
	if m.client == nil {
		return ErrNotInitialized
	}
	if err := m.client.Ping(ctx).Err(); err != nil {
		return ErrPingFailed.
			WithDetail("addrs", strings.Join(m.options.Addrs, ",")).
			WithCause(err)
	}
	return nil
}

func (m *Module) Close() error {
	if m.client == nil {
		return nil
	}
	return m.client.Close()
}
