package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/board-server/internal/domain"
	"github.com/listenupapp/board-server/internal/logger"
	"github.com/listenupapp/board-server/internal/normalize"
	"github.com/listenupapp/board-server/internal/service"
)

func (s *Server) registerMessageRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMessagesSince",
		Method:      http.MethodGet,
		Path:        "/api/messages",
		Summary:     "Poll for new messages",
		Description: "Returns messages with an id greater than since_id, oldest first",
		Tags:        []string{"Messages"},
	}, s.handleListMessagesSince)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBoardPage",
		Method:      http.MethodGet,
		Path:        "/api/board",
		Summary:     "Get a board page",
		Description: "Returns one page of the feed, newest first, optionally filtered by search term and tag",
		Tags:        []string{"Messages"},
	}, s.handleGetBoardPage)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createMessage",
		Method:        http.MethodPost,
		Path:          "/api/messages",
		Summary:       "Post a message",
		Description:   "Stores a message, links its tags and enforces the retention cap",
		Tags:          []string{"Messages"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateMessage)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMessage",
		Method:      http.MethodGet,
		Path:        "/api/messages/{id}",
		Summary:     "Get message",
		Description: "Returns a single message with its tags",
		Tags:        []string{"Messages"},
	}, s.handleGetMessage)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteMessage",
		Method:      http.MethodDelete,
		Path:        "/api/messages/{id}",
		Summary:     "Delete message",
		Description: "Deletes a message with its tag links and replies. Deleting a missing id succeeds",
		Tags:        []string{"Messages"},
	}, s.handleDeleteMessage)
}

// === DTOs ===

// ListMessagesSinceInput contains the polling parameters. Both are parsed
// leniently: a bad since_id means from the beginning, a bad limit the default.
type ListMessagesSinceInput struct {
	SinceID string `query:"since_id" doc:"Only return messages with a greater id"`
	Limit   string `query:"limit" doc:"Maximum number of messages (1-100, default page size)"`
}

// MessagesResponse contains a list of messages.
type MessagesResponse struct {
	Messages []*domain.Message `json:"messages" doc:"Messages in ascending id order"`
}

// MessagesOutput wraps the messages response for Huma.
type MessagesOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         MessagesResponse
}

// BoardPageInput contains the listing parameters.
type BoardPageInput struct {
	Query string `query:"q" doc:"Literal substring to search for"`
	Page  string `query:"page" doc:"1-based page number"`
	Tag   string `query:"tag" doc:"Only messages carrying this tag id"`
}

// BoardPageOutput wraps a board page for Huma.
type BoardPageOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         *domain.MessagePage
}

// CreateMessageRequest is the request body for posting a message.
type CreateMessageRequest struct {
	Content string   `json:"content" doc:"Markdown message text; HTML is converted to Markdown"`
	Tags    []string `json:"tags,omitempty" maxItems:"32" doc:"Tag names to attach"`
}

// CreateMessageInput wraps the create message request for Huma.
type CreateMessageInput struct {
	Body CreateMessageRequest
}

// MessageOutput wraps a single message for Huma.
type MessageOutput struct {
	Body *domain.Message
}

// MessageIDInput identifies a message by numeric id.
type MessageIDInput struct {
	ID int64 `path:"id" doc:"Message ID"`
}

// DeleteInput identifies the target of a delete. The id is kept raw so a
// non-numeric id answers deleted=false instead of a validation error.
type DeleteInput struct {
	ID string `path:"id" doc:"Numeric ID"`
}

// DeleteResponse reports whether a delete was carried out.
type DeleteResponse struct {
	Deleted bool `json:"deleted" doc:"False when the id was not numeric"`
}

// DeleteOutput wraps the delete response for Huma.
type DeleteOutput struct {
	Body DeleteResponse
}

// === Handlers ===

func (s *Server) handleListMessagesSince(ctx context.Context, input *ListMessagesSinceInput) (*MessagesOutput, error) {
	messages, err := s.services.Message.FetchMessagesSince(ctx, input.SinceID, input.Limit)
	if err != nil {
		return nil, s.fail(ctx, "fetch messages since", err)
	}
	if messages == nil {
		messages = []*domain.Message{}
	}

	return &MessagesOutput{
		CacheControl: CacheNoStore,
		Body:         MessagesResponse{Messages: messages},
	}, nil
}

func (s *Server) handleGetBoardPage(ctx context.Context, input *BoardPageInput) (*BoardPageOutput, error) {
	page, err := s.services.Message.ListMessages(ctx, input.Query, input.Page, input.Tag)
	if err != nil {
		return nil, s.fail(ctx, "list messages", err)
	}
	if page.Messages == nil {
		page.Messages = []*domain.Message{}
	}

	return &BoardPageOutput{CacheControl: CacheNoStore, Body: page}, nil
}

func (s *Server) handleCreateMessage(ctx context.Context, input *CreateMessageInput) (*MessageOutput, error) {
	names := make([]string, 0, len(input.Body.Tags))
	for _, t := range input.Body.Tags {
		names = append(names, normalize.SplitTags(t)...)
	}

	m, err := s.services.Message.CreateMessage(ctx, input.Body.Content, names)
	if err != nil {
		if m == nil || errors.Is(err, service.ErrEmptyContent) {
			return nil, s.fail(ctx, "create message", err)
		}
		// Stored, but retention failed; the next create retries the prune.
		logger.FromContext(ctx, s.logger).Error("Retention failed after create", "message_id", m.ID, "error", err)
	}
	if m.Tags == nil {
		m.Tags = []*domain.Tag{}
	}

	return &MessageOutput{Body: m}, nil
}

func (s *Server) handleGetMessage(ctx context.Context, input *MessageIDInput) (*MessageOutput, error) {
	m, err := s.services.Message.GetMessage(ctx, input.ID)
	if err != nil {
		return nil, s.fail(ctx, "get message", err)
	}
	return &MessageOutput{Body: m}, nil
}

func (s *Server) handleDeleteMessage(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	deleted, err := s.services.Message.DeleteMessage(ctx, input.ID)
	if err != nil {
		return nil, s.fail(ctx, "delete message", err)
	}
	return &DeleteOutput{Body: DeleteResponse{Deleted: deleted}}, nil
}
