package models

// Note is the import/export payload shape of a note row. Record-level
// persistence lives in the UI layer's SQL driver; these structs only ride
// through export and import envelopes.
type Note struct {
	ID              *int64   `json:"id"`
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Tags            []string `json:"tags"`
	IsFavorite      int      `json:"is_favorite"`
	IsDeleted       int      `json:"is_deleted"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	ReminderDate    *string  `json:"reminder_date"`
	ReminderEnabled int      `json:"reminder_enabled"`
}
