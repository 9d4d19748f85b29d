package web

import (
	"net/url"
	"strconv"
	"strings"
)

// ListPath builds the URL of a listing page. Page 1 is the bare "/" so the
// home page has a single canonical address; search and tag filters ride along.
func ListPath(page int, search string, tag *int64) string {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if s := strings.TrimSpace(search); s != "" {
		q.Set("q", s)
	}
	if tag != nil {
		q.Set("tag", strconv.FormatInt(*tag, 10))
	}

	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
