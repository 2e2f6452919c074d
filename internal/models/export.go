package models

// ExportData is the JSON envelope emitted by database export and accepted by
// import. Record population is the UI layer's responsibility.
type ExportData struct {
	Version      string        `json:"version"`
	ExportedAt   string        `json:"exported_at"`
	Notes        []Note        `json:"notes"`
	ChatMessages []ChatMessage `json:"chat_messages"`
}
