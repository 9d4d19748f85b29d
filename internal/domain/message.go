package domain

import "time"

// Message is a single board entry. Content is Markdown source.
type Message struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []*Tag    `json:"tags"`
}

// TagIDs returns the ids of the tags attached to the message.
func (m *Message) TagIDs() []int64 {
	ids := make([]int64, 0, len(m.Tags))
	for _, t := range m.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// MessageIDs collects the ids of the given messages, preserving order.
func MessageIDs(messages []*Message) []int64 {
	ids := make([]int64, len(messages))
	for i, m := range messages {
		ids[i] = m.ID
	}
	return ids
}
