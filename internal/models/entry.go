package models

// ReadingEntry is one logged reading session. Timestamps are wall-clock
// milliseconds; DeletedAt non-nil marks the row soft-deleted and excludes
// it from every read and aggregate.
type ReadingEntry struct {
	ID         string  `json:"id"`
	ChildID    string  `json:"child_id"`
	Date       string  `json:"date"` // YYYY-MM-DD, no time component
	Pages      int     `json:"pages"`
	Minutes    int     `json:"minutes"`
	BookTitle  *string `json:"book_title,omitempty"`
	BookAuthor *string `json:"book_author,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	PhotoKey   *string `json:"photo_key,omitempty"`
	Status     string  `json:"status,omitempty"`
	CreatedBy  string  `json:"created_by,omitempty"`
	CreatedAt  int64   `json:"created_at"`
	UpdatedAt  int64   `json:"updated_at"`
	DeletedAt  *int64  `json:"deleted_at,omitempty"`

	// Joined for list views
	ChildName string `json:"child_name,omitempty"`
}

// HomeworkEntry is one homework submission. Same lifecycle as ReadingEntry
// but without numeric measures.
type HomeworkEntry struct {
	ID        string  `json:"id"`
	ChildID   string  `json:"child_id"`
	Date      string  `json:"date"`
	Title     *string `json:"title,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	PhotoKey  *string `json:"photo_key,omitempty"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
	DeletedAt *int64  `json:"deleted_at,omitempty"`

	ChildName string `json:"child_name,omitempty"`
}
