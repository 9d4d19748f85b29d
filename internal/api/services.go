package api

import (
	"github.com/listenupapp/board-server/internal/service"
)

// Services groups the board services used by the API server.
type Services struct {
	Message *service.MessageService
	Tag     *service.TagService
	Reply   *service.ReplyService
}
