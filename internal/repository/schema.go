package repository

import "readnest/internal/database"

// Required shapes of the managed tables. The schema layer reconciles the
// live tables against these descriptors; repositories assume a caller has
// done so before reading or writing.
var (
	ChildrenTable = database.TableSchema{
		Name: "children",
		Columns: []database.Column{
			{Name: "household_id", Type: database.ColumnText},
			{Name: "name", Type: database.ColumnText},
			{Name: "primary_unit", Type: database.ColumnText},
			{Name: "created_at", Type: database.ColumnInteger},
			{Name: "updated_at", Type: database.ColumnInteger},
		},
	}

	GoalsTable = database.TableSchema{
		Name: "goals",
		Columns: []database.Column{
			{Name: "child_id", Type: database.ColumnText},
			{Name: "unit", Type: database.ColumnText},
			{Name: "target_value", Type: database.ColumnInteger},
			{Name: "starts_on", Type: database.ColumnText},
			{Name: "ends_on", Type: database.ColumnText},
			{Name: "created_by", Type: database.ColumnText},
			{Name: "created_at", Type: database.ColumnInteger},
		},
	}

	ReadingEntriesTable = database.TableSchema{
		Name: "reading_entries",
		Columns: []database.Column{
			{Name: "child_id", Type: database.ColumnText},
			{Name: "date", Type: database.ColumnText},
			{Name: "pages", Type: database.ColumnInteger},
			{Name: "minutes", Type: database.ColumnInteger},
			{Name: "book_title", Type: database.ColumnText},
			{Name: "book_author", Type: database.ColumnText},
			{Name: "notes", Type: database.ColumnText},
			{Name: "photo_key", Type: database.ColumnText},
			{Name: "status", Type: database.ColumnText},
			{Name: "created_by", Type: database.ColumnText},
			{Name: "created_at", Type: database.ColumnInteger},
			{Name: "updated_at", Type: database.ColumnInteger},
			{Name: "deleted_at", Type: database.ColumnInteger},
		},
	}

	HomeworkEntriesTable = database.TableSchema{
		Name: "homework_entries",
		Columns: []database.Column{
			{Name: "child_id", Type: database.ColumnText},
			{Name: "date", Type: database.ColumnText},
			{Name: "title", Type: database.ColumnText},
			{Name: "notes", Type: database.ColumnText},
			{Name: "photo_key", Type: database.ColumnText},
			{Name: "created_at", Type: database.ColumnInteger},
			{Name: "updated_at", Type: database.ColumnInteger},
			{Name: "deleted_at", Type: database.ColumnInteger},
		},
	}
)

// ManagedTables lists every descriptor, in creation order
var ManagedTables = []database.TableSchema{
	ChildrenTable,
	GoalsTable,
	ReadingEntriesTable,
	HomeworkEntriesTable,
}
