package database

import "github.com/shuldan/modular/pkg/errors"

var newDatabaseCode = errors.WithPrefix("DATABASE")

var (
	ErrNoConnections        = newDatabaseCode().New("no database connections configured")
	ErrDriverNotSpecified   = newDatabaseCode().New("connection {{.name}}: driver not specified")
	ErrDSNNotSpecified      = newDatabaseCode().New("connection {{.name}}: dsn not specified")
	ErrUnknownDriver        = newDatabaseCode().New("connection {{.name}}: driver {{.driver}} is not available")
	ErrInvalidConnection    = newDatabaseCode().New("connection {{.name}}: field {{.field}} breaks rule {{.rule}}")
	ErrDuplicateConnection  = newDatabaseCode().New("connection {{.name}} is declared twice")
	ErrConnectionNotFound   = newDatabaseCode().New("connection {{.name}} not found")
	ErrFailedToOpenDatabase = newDatabaseCode().New("failed to open connection {{.name}} after {{.attempts}} attempts")
	ErrDatabaseNotConnected = newDatabaseCode().New("connection {{.name}} is not connected")
	ErrTransactionFailed    = newDatabaseCode().New("transaction failed: {{.reason}}")
	ErrCloseDatabase        = newDatabaseCode().New("failed to close connection {{.name}}")
)
