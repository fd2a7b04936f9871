package database

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"
)

// ColumnType is the logical type of a managed column, mapped to an
// engine-specific SQL type by each dialect.
type ColumnType string

const (
	ColumnText    ColumnType = "text"
	ColumnInteger ColumnType = "integer"
)

// Dialect defines the interface for database-specific operations
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (e.g., ? to $1 for postgres)
	RewriteQuery(query string) string

	// SupportsLastInsertId returns true if the driver supports LastInsertId()
	SupportsLastInsertId() bool

	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// SQLType maps a logical column type to the engine's type name
	SQLType(t ColumnType) string

	// ListColumns returns the live column names of a table, in no
	// particular order. An empty slice means the table has no known
	// columns (absent table included).
	ListColumns(db *sql.DB, table string) ([]string, error)

	// InsertIgnoreQuery builds an INSERT statement (with ? placeholders)
	// that silently skips rows conflicting on the primary key
	InsertIgnoreQuery(table string, columns []string) string

	// RenameTableQuery builds the statement that renames old to new
	RenameTableQuery(oldName, newName string) string
}

// DialectConfig holds configuration for database connection
type DialectConfig struct {
	// For SQLite
	Path string

	// For PostgreSQL/MySQL
	URL string
}

// placeholderRegexp matches ? placeholders not inside quotes
var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

// placeholders returns n comma-separated ? placeholders
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
