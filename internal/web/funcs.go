package web

import (
	"html/template"
	"strconv"
	"time"

	"github.com/listenupapp/board-server/internal/domain"
)

const displayTimeLayout = "2006-01-02 15:04:05"

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"listPath":   ListPath,
		"tagPath":    tagPath,
		"formatTime": formatTime,
		"isoTime":    isoTime,
		"tagParam":   tagParam,
		"isActive":   isActive,
		"item":       item,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(displayTimeLayout)
}

func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func tagParam(tag *int64) string {
	if tag == nil {
		return ""
	}
	return strconv.FormatInt(*tag, 10)
}

func tagPath(search string, id int64) string {
	return ListPath(1, search, &id)
}

func isActive(filter *int64, id int64) bool {
	return filter != nil && *filter == id
}

func item(v *HomeView, m *domain.Message) MessageItem {
	return MessageItem{View: v, Message: m}
}
