package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/board-server/internal/domain"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/tags",
		Summary:     "List tags",
		Description: "Returns every tag with its message count, most used first",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/tags/{id}",
		Summary:     "Get tag",
		Description: "Returns a tag by ID",
		Tags:        []string{"Tags"},
	}, s.handleGetTag)
}

// === DTOs ===

// ListTagsResponse contains a list of tags.
type ListTagsResponse struct {
	Tags []*domain.Tag `json:"tags" doc:"Tags ordered by message count desc, then name"`
}

// ListTagsOutput wraps the list tags response for Huma.
type ListTagsOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         ListTagsResponse
}

// GetTagInput contains parameters for getting a tag.
type GetTagInput struct {
	ID int64 `path:"id" doc:"Tag ID"`
}

// TagOutput wraps the tag response for Huma.
type TagOutput struct {
	Body *domain.Tag
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	tags, err := s.services.Tag.ListTags(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list tags", err)
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}

	return &ListTagsOutput{
		CacheControl: CacheNoStore,
		Body:         ListTagsResponse{Tags: tags},
	}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *GetTagInput) (*TagOutput, error) {
	tag, err := s.services.Tag.GetTag(ctx, input.ID)
	if err != nil {
		return nil, s.fail(ctx, "get tag", err)
	}
	return &TagOutput{Body: tag}, nil
}
