package models

// ChatMessage is the import/export payload shape of a note-scoped chat
// message row.
type ChatMessage struct {
	ID        *int64 `json:"id"`
	NoteID    int64  `json:"note_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}
