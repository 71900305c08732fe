package sqlstore

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	driverSQLite   = "sqlite3"
	driverPostgres = "pgx"
)

// dialect carries what differs between the supported databases: the
// placeholder style and the schema.
type dialect struct {
	name     string
	numbered bool
	schema   []string
}

var sqliteDialect = dialect{
	name: driverSQLite,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS tasks (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            description TEXT,
            status TEXT NOT NULL DEFAULT 'PENDING',
            due_date DATETIME,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);`,
	},
}

var postgresDialect = dialect{
	name:     driverPostgres,
	numbered: true,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS tasks (
            id BIGSERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT,
            status VARCHAR(16) NOT NULL DEFAULT 'PENDING',
            due_date TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);`,
	},
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "", driverSQLite, "sqlite":
		return sqliteDialect, nil
	case driverPostgres, "postgres", "postgresql":
		return postgresDialect, nil
	default:
		return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// rebind rewrites ? placeholders to $1, $2, ... for dialects that need it.
// Queries in this package never carry a literal question mark.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
