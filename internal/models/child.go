package models

// Child represents a child profile in the system. Children are created by
// the seeding path and are immutable as far as the API is concerned.
type Child struct {
	ID          string `json:"id"`
	HouseholdID string `json:"household_id,omitempty"`
	Name        string `json:"name"`
	PrimaryUnit string `json:"primary_unit,omitempty"` // "pages" or "minutes"
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

// LeaderboardRow is one child's monthly page total
type LeaderboardRow struct {
	ChildID string `json:"id"`
	Name    string `json:"name"`
	Pages   int64  `json:"pages"`
}
