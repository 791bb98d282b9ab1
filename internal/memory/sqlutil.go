package memory

import (
	"database/sql"
	"fmt"
)

// checkRowsErr reports errors hit during a rows.Next() loop.
func checkRowsErr(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}
	return nil
}
