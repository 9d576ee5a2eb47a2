package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Schema returns the DDL statements for the given driver.
func Schema(driver string) ([]string, error) {
	name := "schema/mysql.sql"
	if driver == DriverSQLite {
		name = "schema/sqlite.sql"
	}
	content, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}

	var statements []string
	for _, stmt := range strings.Split(string(content), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements, nil
}

// Migrate creates the tables used by the generation pipeline when they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements, err := Schema(db.DriverName())
	if err != nil {
		return err
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}

// IsDuplicateKey reports whether err is a unique-constraint violation from either supported driver.
func IsDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
