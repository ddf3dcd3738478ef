package db

import (
	"github.com/jmoiron/sqlx"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectOf reports the SQL dialect spoken by the driver behind db.
// Unknown drivers (sqlmock in tests) are treated as SQLite.
func DialectOf(db *sqlx.DB) Dialect {
	if sqlx.BindType(db.DriverName()) == sqlx.DOLLAR {
		return DialectPostgres
	}
	return DialectSQLite
}

// ColumnsQuery returns the query listing a table's column names, taking the
// table name as its only argument.
func ColumnsQuery(d Dialect) string {
	if d == DialectPostgres {
		return `SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ?`
	}
	return `SELECT name FROM pragma_table_info(?)`
}
