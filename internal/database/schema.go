package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Column describes one required column of a managed table. Every column is
// nullable on disk: rows copied forward from older shapes may predate the
// column, and ALTER TABLE ADD COLUMN cannot add NOT NULL to a populated
// table anyway. Required-ness is enforced by validation at write time.
type Column struct {
	Name string
	Type ColumnType
}

// TableSchema is the required shape of a managed table. The primary key is
// always a text `id` column and is implicit.
type TableSchema struct {
	Name    string
	Columns []Column
}

// RequiredColumns returns the full required column list, id first
func (t TableSchema) RequiredColumns() []string {
	cols := make([]string, 0, len(t.Columns)+1)
	cols = append(cols, "id")
	for _, c := range t.Columns {
		cols = append(cols, c.Name)
	}
	return cols
}

// SchemaStatus reports the outcome of EnsureSchema. A non-empty
// StillMissing means the table is not safe to read or write.
type SchemaStatus struct {
	Conformant   bool     `json:"conformant"`
	Rebuilt      bool     `json:"rebuilt"`
	StillMissing []string `json:"still_missing,omitempty"`
}

// columnAddResult records the outcome of one additive column attempt
type columnAddResult struct {
	column  string
	outcome string // "added", "present" or "failed"
	err     error
}

const (
	lockTable = "schema_locks"

	// rebuild locks older than this are considered abandoned by a
	// crashed process and may be reclaimed
	lockStaleAfter = time.Minute
)

// EnsureSchema brings a managed table into conformance with its required
// column set without losing rows. It is idempotent and safe to call on
// every request: when the table already conforms it costs one
// introspection query. Columns that cannot be added in place trigger a
// shadow-table rebuild; a rebuild lost to a concurrent writer reports the
// table as not ready so the caller refuses the operation and retries on a
// later request.
func (db *DB) EnsureSchema(table TableSchema) (SchemaStatus, error) {
	// Bootstrap: a missing table starts as a bare primary key and is
	// grown column by column like any other non-conformant table
	createStmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (id %s PRIMARY KEY)",
		table.Name, db.Dialect.SQLType(ColumnText))
	if _, err := db.Exec(createStmt); err != nil {
		return SchemaStatus{StillMissing: table.RequiredColumns()},
			fmt.Errorf("failed to create table %s: %w", table.Name, err)
	}

	missing := db.missingColumns(table)
	if len(missing) == 0 {
		return SchemaStatus{Conformant: true}, nil
	}

	// Additive pass: each column is attempted independently and failures
	// are swallowed. The rebuild decision comes from re-introspection,
	// not from these results.
	for _, res := range db.addMissingColumns(table, missing) {
		if res.outcome == "failed" {
			log.Printf("Schema: could not add %s.%s: %v", table.Name, res.column, res.err)
		}
	}

	missing = db.missingColumns(table)
	if len(missing) == 0 {
		return SchemaStatus{Conformant: true}, nil
	}

	claimed, err := db.claimRebuildLock(table.Name)
	if err != nil {
		return SchemaStatus{StillMissing: missing},
			fmt.Errorf("failed to claim rebuild lock for %s: %w", table.Name, err)
	}
	if !claimed {
		// Another writer is rebuilding; report not-ready and let a
		// later request find the repaired table
		return SchemaStatus{StillMissing: missing}, nil
	}
	defer db.releaseRebuildLock(table.Name)

	if err := db.rebuildTable(table); err != nil {
		return SchemaStatus{StillMissing: missing},
			fmt.Errorf("failed to rebuild table %s: %w", table.Name, err)
	}

	missing = db.missingColumns(table)
	return SchemaStatus{
		Conformant:   len(missing) == 0,
		Rebuilt:      true,
		StillMissing: missing,
	}, nil
}

// LiveColumns returns the current column names of a table (empty when the
// table is absent or introspection fails)
func (db *DB) LiveColumns(table string) []string {
	cols, err := db.Dialect.ListColumns(db.DB, table)
	if err != nil {
		log.Printf("Schema: introspection of %s failed: %v", table, err)
		return nil
	}
	return cols
}

// missingColumns returns required columns absent from the live table.
// An introspection failure conservatively reports every column missing.
func (db *DB) missingColumns(table TableSchema) []string {
	have := make(map[string]bool)
	for _, c := range db.LiveColumns(table.Name) {
		have[c] = true
	}

	var missing []string
	for _, c := range table.RequiredColumns() {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// addMissingColumns attempts one ALTER TABLE ADD COLUMN per missing
// column. Failures do not abort the loop.
func (db *DB) addMissingColumns(table TableSchema, missing []string) []columnAddResult {
	wanted := make(map[string]bool, len(missing))
	for _, c := range missing {
		wanted[c] = true
	}

	results := make([]columnAddResult, 0, len(table.Columns))
	for _, col := range table.Columns {
		if !wanted[col.Name] {
			results = append(results, columnAddResult{column: col.Name, outcome: "present"})
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s",
			table.Name, col.Name, db.Dialect.SQLType(col.Type))
		if _, err := db.Exec(stmt); err != nil {
			results = append(results, columnAddResult{column: col.Name, outcome: "failed", err: err})
			continue
		}
		results = append(results, columnAddResult{column: col.Name, outcome: "added"})
	}
	return results
}

// claimRebuildLock takes the single-writer gate for a table rebuild via an
// advisory row. Returns false when another writer holds it.
func (db *DB) claimRebuildLock(table string) (bool, error) {
	createStmt := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (table_name %s PRIMARY KEY, locked_at %s)",
		lockTable, db.Dialect.SQLType(ColumnText), db.Dialect.SQLType(ColumnInteger))
	if _, err := db.Exec(createStmt); err != nil {
		return false, err
	}

	now := time.Now().UnixMilli()

	// Clear a lock abandoned by a crashed rebuild
	stale := now - lockStaleAfter.Milliseconds()
	if _, err := db.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE table_name = ? AND locked_at < ?", lockTable),
		table, stale); err != nil {
		return false, err
	}

	res, err := db.Exec(
		db.Dialect.InsertIgnoreQuery(lockTable, []string{"table_name", "locked_at"}),
		table, now)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// releaseRebuildLock drops the advisory row
func (db *DB) releaseRebuildLock(table string) {
	if _, err := db.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE table_name = ?", lockTable), table); err != nil {
		log.Printf("Schema: failed to release rebuild lock for %s: %v", table, err)
	}
}

// rebuildTable creates a shadow table with the full required shape, copies
// every row forward, then swaps the shadow in place of the original. Row
// ids are preserved so references held elsewhere stay valid.
func (db *DB) rebuildTable(table TableSchema) error {
	shadow := "_new_" + table.Name

	defs := make([]string, 0, len(table.Columns)+1)
	defs = append(defs, fmt.Sprintf("id %s PRIMARY KEY", db.Dialect.SQLType(ColumnText)))
	for _, c := range table.Columns {
		defs = append(defs, fmt.Sprintf("%s %s", c.Name, db.Dialect.SQLType(c.Type)))
	}
	// IF NOT EXISTS: a prior interrupted rebuild may have left the shadow
	// behind, possibly already holding copied rows
	createStmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		shadow, strings.Join(defs, ", "))
	if _, err := db.Exec(createStmt); err != nil {
		return fmt.Errorf("failed to create shadow table: %w", err)
	}

	if err := db.copyShared(table, shadow); err != nil {
		log.Printf("Schema: set-based copy of %s failed (%v), falling back to row copy", table.Name, err)
		if err := db.copyRowByRow(table, shadow); err != nil {
			return fmt.Errorf("row-by-row copy failed: %w", err)
		}
	}

	if _, err := db.Exec(fmt.Sprintf("DROP TABLE %s", table.Name)); err != nil {
		return fmt.Errorf("failed to drop original table: %w", err)
	}
	if _, err := db.Exec(db.Dialect.RenameTableQuery(shadow, table.Name)); err != nil {
		return fmt.Errorf("failed to rename shadow table: %w", err)
	}
	return nil
}

// copyShared copies forward the columns present in both shapes with a
// single set-based statement
func (db *DB) copyShared(table TableSchema, shadow string) error {
	have := make(map[string]bool)
	for _, c := range db.LiveColumns(table.Name) {
		have[c] = true
	}

	shared := make([]string, 0, len(table.Columns)+1)
	for _, c := range table.RequiredColumns() {
		if have[c] {
			shared = append(shared, c)
		}
	}
	if len(shared) == 0 {
		return fmt.Errorf("no shared columns between %s and %s", table.Name, shadow)
	}

	cols := strings.Join(shared, ", ")
	_, err := db.Exec(fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s",
		shadow, cols, cols, table.Name))
	return err
}

// copyRowByRow copies rows one at a time, defaulting columns absent on the
// source row to NULL. Conflicting ids (from a partial earlier copy) are
// skipped rather than failing the rebuild.
func (db *DB) copyRowByRow(table TableSchema, shadow string) error {
	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s", table.Name))
	if err != nil {
		// An unreadable source means there is nothing to carry forward
		log.Printf("Schema: could not read %s for row copy: %v", table.Name, err)
		return nil
	}
	defer rows.Close()

	srcCols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read source columns: %w", err)
	}

	required := table.RequiredColumns()
	insert := db.Dialect.InsertIgnoreQuery(shadow, required)

	type pending []interface{}
	var copied []pending
	for rows.Next() {
		vals := make([]interface{}, len(srcCols))
		ptrs := make([]interface{}, len(srcCols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("failed to scan source row: %w", err)
		}

		byName := make(map[string]interface{}, len(srcCols))
		for i, name := range srcCols {
			byName[name] = vals[i]
		}

		args := make(pending, 0, len(required))
		for _, col := range required {
			v := byName[col] // nil for columns the old shape lacked
			if col == "id" && v == nil {
				v = uuid.NewString()
			}
			args = append(args, v)
		}
		copied = append(copied, args)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate source rows: %w", err)
	}
	// The cursor must be closed before writing: SQLite holds a read lock
	// on the table for the duration of the scan
	rows.Close()

	for _, args := range copied {
		if _, err := db.Exec(insert, args...); err != nil {
			return fmt.Errorf("failed to insert copied row: %w", err)
		}
	}
	return nil
}
