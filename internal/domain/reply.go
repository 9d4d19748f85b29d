package domain

import "time"

// Reply is an answer to a message. Replies have no tags and no retention cap;
// they are removed explicitly or together with their parent message.
type Reply struct {
	ID        int64     `json:"id"`
	MessageID int64     `json:"message_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
