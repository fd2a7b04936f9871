package models

// Goal units
const (
	UnitPages   = "pages"
	UnitMinutes = "minutes"
)

// Goal is a target value for one child over a validity interval
// [StartsOn, EndsOn). A nil EndsOn means open-ended. Overlap is not
// prevented by the store; resolution picks one goal deterministically.
type Goal struct {
	ID          string  `json:"id"`
	ChildID     string  `json:"child_id"`
	Unit        string  `json:"unit"` // pages or minutes
	TargetValue int     `json:"target_value"`
	StartsOn    string  `json:"starts_on"`
	EndsOn      *string `json:"ends_on,omitempty"`
	CreatedBy   string  `json:"created_by,omitempty"`
	CreatedAt   int64   `json:"created_at"`
}

// DailyStat is one day of a child's aggregated activity joined against the
// goal applicable on that day. Unit and Goal are nil when no goal covers
// the date, in which case Met is always false.
type DailyStat struct {
	Date    string  `json:"date"`
	Pages   int64   `json:"pages"`
	Minutes int64   `json:"minutes"`
	Unit    *string `json:"unit"`
	Goal    *int    `json:"goal"`
	Met     bool    `json:"met"`
}
