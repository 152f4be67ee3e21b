package main

import (
	"context"
	"database/sql"

	"github.com/shuldan/modular/pkg/database"
	"github.com/shuldan/modular/pkg/modular"
)

// Greeting is the capability visitors subscribe to.
type Greeting interface {
	OnGreeting(from string) error
}

type auditModule struct {
	modular.Base
	db *database.Module
}

func (a *auditModule) Needs() []modular.Need {
	return []modular.Need{modular.Slot(&a.db)}
}

func (a *auditModule) Init() error {
	conn, err := a.db.Connection("primary")
	if err != nil {
		return err
	}
	return conn.Transaction(context.Background(), func(tx *sql.Tx) error {
		_, err := tx.Exec("CREATE TABLE IF NOT EXISTS greetings (visitor TEXT)")
		return err
	})
}

func (a *auditModule) OnDatabaseReady(db *database.Module) error {
	a.Logger().Info("database ready", "connections", len(db.Connections()))
	return nil
}

func (a *auditModule) greet(from string) error {
	report := modular.Dispatch(a.Manager(), a, "greeting", func(g Greeting) error {
		return g.OnGreeting(from)
	})
	a.Logger().Info("greeting delivered", "visitors", report.Delivered, "failed", len(report.Failures))
	return report.Err()
}

func (a *auditModule) count() (int, error) {
	db, err := a.db.DB()
	if err != nil {
		return 0, err
	}
	var n int
	err = db.QueryRow("SELECT COUNT(*) FROM greetings").Scan(&n)
	return n, err
}

type visitor struct {
	modular.ItemBase
	name string
	db   *sql.DB
}

func (v *visitor) Init() error {
	db, err := modular.Get[*database.Module](v.Manager())
	if err != nil {
		return err
	}
	v.db, err = db.DB()
	return err
}

func (v *visitor) OnGreeting(from string) error {
	_, err := v.db.Exec("INSERT INTO greetings (visitor) VALUES (?)", v.name)
	v.Logger().Info("greeted", "visitor", v.name, "from", from)
	return err
}

// runDemo greets every visitor, disposes one of them and greets again.
func runDemo(m *modular.Manager, names []string) (int, error) {
	audit, err := modular.Get[*auditModule](m)
	if err != nil {
		return 0, err
	}

	var last *visitor
	for _, name := range names {
		if last, err = modular.CreateItem(m, &visitor{name: name}); err != nil {
			return 0, err
		}
	}
	if err := audit.greet("audit"); err != nil {
		return 0, err
	}
	if last != nil {
		last.Dispose()
	}
	if err := audit.greet("audit"); err != nil {
		return 0, err
	}
	return audit.count()
}
