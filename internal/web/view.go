package web

import (
	"github.com/listenupapp/board-server/internal/domain"
)

// HomeView is the data behind the home page template.
type HomeView struct {
	Page        *domain.MessagePage
	Tags        []*domain.Tag
	ActiveTag   *domain.Tag
	Replies     map[int64][]*domain.Reply
	MaxMessages int
	PollLimit   int
}

// PrevPath links to the previous page, keeping filters.
func (v *HomeView) PrevPath() string {
	return ListPath(v.Page.CurrentPage-1, v.Page.SearchTerm, v.Page.TagFilter)
}

// NextPath links to the next page, keeping filters.
func (v *HomeView) NextPath() string {
	return ListPath(v.Page.CurrentPage+1, v.Page.SearchTerm, v.Page.TagFilter)
}

// Filtered reports whether a search or tag filter is active.
func (v *HomeView) Filtered() bool {
	return v.Page.SearchTerm != "" || v.Page.TagFilter != nil
}

// RepliesFor returns the replies of one message.
func (v *HomeView) RepliesFor(messageID int64) []*domain.Reply {
	if v.Replies == nil {
		return nil
	}
	return v.Replies[messageID]
}

// MessageItem pairs a message with the page it is rendered on, so nested
// forms can carry the current page and filters.
type MessageItem struct {
	View    *HomeView
	Message *domain.Message
}
