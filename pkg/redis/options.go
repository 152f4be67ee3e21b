package redis

import (
	"time"

	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"

	"github.com/shuldan/modular/pkg/contracts"
)

type Option func(*Module)

// WithOptions sets client options in code. Values found in configuration
// override them.
func WithOptions(opts goredis.UniversalOptions) Option {
	return func(m *Module) {
		m.base = opts
		m.hasBase = true
	}
}

// WithConfigKey changes the configuration section read in Init.
func WithConfigKey(key string) Option {
	return func(m *Module) {
		m.configKey = key
	}
}

// WithPing controls the connectivity check run from Init.
func WithPing(enabled bool, timeout time.Duration) Option {
	return func(m *Module) {
		m.ping = enabled
		if timeout > 0 {
			m.pingTimeout = timeout
		}
	}
}

// applyConfig overlays a "redis" section:
//
//	addrs: [localhost:6379]   # or addr: localhost:6379
//	username: app
//	password: secret
//	db: 0
//	master_name: mymaster
//	pool_size: 10
//	dial_timeout: 5s
//	read_timeout: 3s
//	write_timeout: 3s
//	ping: true
//	ping_timeout: 2s
func (m *Module) applyConfig(cfg contracts.Config, opts *goredis.UniversalOptions) {
	if addrs := cfg.GetStringSlice("addrs"); len(addrs) > 0 {
		opts.Addrs = addrs
	} else if addr := cfg.GetString("addr"); addr != "" {
		opts.Addrs = []string{addr}
	}
	opts.Username = cfg.GetString("username", opts.Username)
	opts.Password = cfg.GetString("password", opts.Password)
	opts.DB = cfg.GetInt("db", opts.DB)
	opts.MasterName = cfg.GetString("master_name", opts.MasterName)
	opts.PoolSize = cfg.GetInt("pool_size", opts.PoolSize)
	opts.DialTimeout = cfg.GetDuration("dial_timeout", opts.DialTimeout)
	opts.ReadTimeout = cfg.GetDuration("read_timeout", opts.ReadTimeout)
	opts.WriteTimeout = cfg.GetDuration("write_timeout", opts.WriteTimeout)

	m.ping = cfg.GetBool("ping", m.ping)
	m.pingTimeout = cfg.GetDuration("ping_timeout", m.pingTimeout)
}

var rules = validator.New()

func validateOptions(opts goredis.UniversalOptions) error {
	if len(opts.Addrs) == 0 {
		return ErrNoAddress
	}
	for _, addr := range opts.Addrs {
		if err := rules.Var(addr, "required,hostname_port"); err != nil {
			return ErrInvalidAddress.WithDetail("addr", addr).WithCause(err)
		}
	}
	if opts.DB < 0 {
		return ErrInvalidDB.WithDetail("db", opts.DB)
	}
	return nil
}
