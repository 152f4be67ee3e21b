package modular

import (
	"github.com/google/uuid"

	"github.com/shuldan/modular/pkg/contracts"
	"github.com/shuldan/modular/pkg/logger"
)

// Item is a short-lived object created by a module at runtime. Items take
// part in event dispatch and module lookup but never enter the registry.
type Item interface {
	Init() error
	ID() uuid.UUID

	bindItem(m *Manager, self Item) bool
	itemLogger() contracts.Logger
}

// ItemBase is embedded by Item implementations.
type ItemBase struct {
	manager *Manager
	self    Item
	id      uuid.UUID
	logger  contracts.Logger
}

func (i *ItemBase) bindItem(m *Manager, self Item) bool {
	if i.manager != nil {
		return false
	}
	i.manager = m
	i.self = self
	i.id = uuid.New()
	i.logger = m.logger.With("item", i.id.String())
	return true
}

func (i *ItemBase) itemLogger() contracts.Logger {
	if i.logger == nil {
		return logger.Nop()
	}
	return i.logger
}

func (i *ItemBase) Manager() *Manager {
	return i.manager
}

func (i *ItemBase) ID() uuid.UUID {
	return i.id
}

func (i *ItemBase) Logger() contracts.Logger {
	return i.itemLogger()
}

func (i *ItemBase) GetModule(key Key) (Module, error) {
	if i.manager == nil {
		return nil, ErrModuleNotFound.WithDetail("type", key.String())
	}
	return i.manager.GetModule(key)
}

// Dispose stops event delivery to the item. The manager reference is kept.
func (i *ItemBase) Dispose() {
	if i.manager == nil || i.self == nil {
		return
	}
	i.manager.dispatcher.RemoveListener(i.self)
}

// CreateItem binds item to m, subscribes it to dispatch and runs its Init.
// A failed Init unsubscribes the item again.
func CreateItem[I Item](m *Manager, item I) (I, error) {
	var zero I
	if isNil(item) {
		return zero, ErrItemInit.WithDetail("item", "<nil>")
	}
	if !item.bindItem(m, item) {
		return zero, ErrItemBound.WithDetail("item", item.ID().String())
	}

	m.dispatcher.AddListener(item)
	if err := item.Init(); err != nil {
		m.dispatcher.RemoveListener(item)
		return zero, ErrItemInit.WithDetail("item", item.ID().String()).WithCause(err)
	}
	item.itemLogger().Trace("item created")
	return item, nil
}

// NewItem allocates a T and creates it with CreateItem.
func NewItem[T any, PT interface {
	*T
	Item
}](m *Manager) (PT, error) {
	return CreateItem(m, PT(new(T)))
}
