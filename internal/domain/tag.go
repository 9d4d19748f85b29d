package domain

// Tag is a board-wide label attached to messages.
// Name is unique and case-sensitive. Color is fixed at creation and never changes.
type Tag struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	MessageCount int    `json:"message_count,omitempty"` // Only populated by the tag browser listing
}

// MessageTag is the many-to-many link between a message and a tag.
type MessageTag struct {
	MessageID int64 `json:"message_id"`
	TagID     int64 `json:"tag_id"`
}
