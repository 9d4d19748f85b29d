package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/board-server/internal/domain"
)

func (s *Server) registerReplyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listReplies",
		Method:      http.MethodGet,
		Path:        "/api/messages/{id}/replies",
		Summary:     "List replies",
		Description: "Returns the replies to a message, oldest first",
		Tags:        []string{"Replies"},
	}, s.handleListReplies)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createReply",
		Method:        http.MethodPost,
		Path:          "/api/messages/{id}/replies",
		Summary:       "Reply to a message",
		Tags:          []string{"Replies"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateReply)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteReply",
		Method:      http.MethodDelete,
		Path:        "/api/replies/{id}",
		Summary:     "Delete reply",
		Description: "Deletes a reply. Deleting a missing id succeeds",
		Tags:        []string{"Replies"},
	}, s.handleDeleteReply)
}

// === DTOs ===

// MessageRepliesInput identifies the parent message. Kept raw so a
// non-numeric id yields an empty list.
type MessageRepliesInput struct {
	ID string `path:"id" doc:"Message ID"`
}

// RepliesResponse contains the replies to a message.
type RepliesResponse struct {
	Replies []*domain.Reply `json:"replies" doc:"Replies, oldest first"`
	Count   int             `json:"count" doc:"Number of replies"`
}

// RepliesOutput wraps the replies response for Huma.
type RepliesOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         RepliesResponse
}

// CreateReplyRequest is the request body for replying.
type CreateReplyRequest struct {
	Content string `json:"content" doc:"Markdown reply text"`
}

// CreateReplyInput wraps the create reply request for Huma.
type CreateReplyInput struct {
	ID   string `path:"id" doc:"Message ID"`
	Body CreateReplyRequest
}

// ReplyOutput wraps a single reply for Huma.
type ReplyOutput struct {
	Body *domain.Reply
}

// === Handlers ===

func (s *Server) handleListReplies(ctx context.Context, input *MessageRepliesInput) (*RepliesOutput, error) {
	replies, err := s.services.Reply.ListReplies(ctx, input.ID)
	if err != nil {
		return nil, s.fail(ctx, "list replies", err)
	}
	if replies == nil {
		replies = []*domain.Reply{}
	}

	return &RepliesOutput{
		CacheControl: CacheNoStore,
		Body:         RepliesResponse{Replies: replies, Count: len(replies)},
	}, nil
}

func (s *Server) handleCreateReply(ctx context.Context, input *CreateReplyInput) (*ReplyOutput, error) {
	reply, err := s.services.Reply.CreateReply(ctx, input.ID, input.Body.Content)
	if err != nil {
		return nil, s.fail(ctx, "create reply", err)
	}
	return &ReplyOutput{Body: reply}, nil
}

func (s *Server) handleDeleteReply(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	deleted, err := s.services.Reply.DeleteReply(ctx, input.ID)
	if err != nil {
		return nil, s.fail(ctx, "delete reply", err)
	}
	return &DeleteOutput{Body: DeleteResponse{Deleted: deleted}}, nil
}
