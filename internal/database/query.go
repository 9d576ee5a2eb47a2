package database

import (
	"fmt"
	"strings"
)

// BuildMultiRowInsert builds "INSERT INTO table (cols) VALUES (?, ...), (?, ...)" for rowCount rows.
func BuildMultiRowInsert(table string, columns []string, rowCount int) string {
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	rows := make([]string, rowCount)
	for i := range rows {
		rows[i] = placeholder
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, strings.Join(columns, ", "), strings.Join(rows, ", "))
}
