package model

// A Item represents a database record.
type Item struct {
	Base `msgpack:",inline" storm:"inline"`

	UserID string `json:"user_id" msgpack:"user_id" storm:"index"`
	Name   string `json:"name"    msgpack:"name"`
	Notes  string `json:"notes"   msgpack:"notes"`
}

// GetUserID returns the ID of the item's owner.
func (m *Item) GetUserID() string {
	return m.UserID
}
