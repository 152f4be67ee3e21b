package database

import (
	"database/sql"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// normalizeDriver maps configuration spellings to registered driver names.
func normalizeDriver(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "mysql", "mariadb":
		return "mysql"
	case "postgres", "postgresql", "pg":
		return "postgres"
	case "sqlite", "sqlite3":
		return "sqlite3"
	default:
		return driver
	}
}

func driverAvailable(driver string) bool {
	return slices.Contains(sql.Drivers(), driver)
}

var rules = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("sqldriver", func(fl validator.FieldLevel) bool {
		return driverAvailable(normalizeDriver(fl.Field().String()))
	})
	return v
}
