package api

import "github.com/listenupapp/board-server/internal/http/response"

// Cache-Control header values.
const (
	// CacheNoStore keeps polling clients from ever seeing a stale feed.
	CacheNoStore = response.CacheNoStore
)

// Request id header, echoed on every response.
const headerRequestID = "X-Request-Id"

// Rejection hint sent with 429 responses, in seconds.
const retryAfterSeconds = "2"
