package store

// Limits for the incremental feed.
const (
	MinSinceLimit = 1
	MaxSinceLimit = 100
)

// MessageFilter narrows the board feed. Both filters combine with AND.
type MessageFilter struct {
	Search string // Literal substring matched against content; empty means no filter
	TagID  *int64 // Only messages carrying this tag; nil means no filter
}

// IsZero reports whether the filter matches every message.
func (f MessageFilter) IsZero() bool {
	return f.Search == "" && f.TagID == nil
}

// MessageQuery is a filtered, offset-paginated read of the board feed.
type MessageQuery struct {
	Filter MessageFilter
	Limit  int
	Offset int
}

// SinceParams requests messages strictly newer than SinceID, ascending by id.
type SinceParams struct {
	SinceID int64 // Zero or negative means no lower bound
	Limit   int
}

// Validate clamps the limit into [MinSinceLimit, MaxSinceLimit] and drops a
// non-positive lower bound.
func (p *SinceParams) Validate() {
	if p.Limit < MinSinceLimit {
		p.Limit = MinSinceLimit
	}
	if p.Limit > MaxSinceLimit {
		p.Limit = MaxSinceLimit
	}
	if p.SinceID < 0 {
		p.SinceID = 0
	}
}
