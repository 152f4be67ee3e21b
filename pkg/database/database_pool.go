package database

import (
	"context"
	"sync"

	"github.com/shuldan/modular/pkg/errors"
)

// pool keeps connections by name in declaration order.
type pool struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	order       []string
}

func newPool() *pool {
	return &pool{connections: make(map[string]*Connection)}
}

func (p *pool) add(conn *Connection) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.connections[conn.Name()]; exists {
		return ErrDuplicateConnection.WithDetail("name", conn.Name())
	}
	p.connections[conn.Name()] = conn
	p.order = append(p.order, conn.Name())
	return nil
}

func (p *pool) get(name string) (*Connection, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	conn, ok := p.connections[name]
	return conn, ok
}

func (p *pool) all() []*Connection {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*Connection, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.connections[name])
	}
	return out
}

// connectAll stops at the first failure and closes what was opened.
func (p *pool) connectAll(ctx context.Context) error {
	for _, conn := range p.all() {
		if err := conn.Connect(ctx); err != nil {
			_ = p.closeAll()
			return err
		}
	}
	return nil
}

func (p *pool) closeAll() error {
	var errs []error
	for _, conn := range p.all() {
		if err := conn.Close(); err != nil {
			errs = append(errs, ErrCloseDatabase.WithDetail("name", conn.Name()).WithCause(err))
		}
	}
	return errors.Join(errs...)
}
