package api

import (
	"errors"
	"net/http"

	"github.com/listenupapp/board-server/internal/domain"
	"github.com/listenupapp/board-server/internal/http/response"
	"github.com/listenupapp/board-server/internal/logger"
	"github.com/listenupapp/board-server/internal/normalize"
	"github.com/listenupapp/board-server/internal/service"
	"github.com/listenupapp/board-server/internal/web"
)

// handleHome renders the board.
// GET /?q=&page=&tag=
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx, s.logger)
	query := r.URL.Query()

	page, err := s.services.Message.ListMessages(ctx, query.Get("q"), query.Get("page"), query.Get("tag"))
	if err != nil {
		response.HandleError(w, err, log)
		return
	}

	tags, err := s.services.Tag.ListTags(ctx)
	if err != nil {
		response.HandleError(w, err, log)
		return
	}

	replies, err := s.services.Reply.RepliesBatch(ctx, domain.MessageIDs(page.Messages))
	if err != nil {
		response.HandleError(w, err, log)
		return
	}

	limits := s.services.Message.Limits()
	view := &web.HomeView{
		Page:        page,
		Tags:        tags,
		ActiveTag:   activeTag(tags, page.TagFilter),
		Replies:     replies,
		MaxMessages: limits.MaxMessages,
		PollLimit:   limits.PageSize,
	}

	body, err := s.renderer.Render(web.HomeTemplate, view)
	if err != nil {
		response.HandleError(w, err, log)
		return
	}

	w.Header().Set("Cache-Control", CacheNoStore)
	response.HTML(w, http.StatusOK, body, log)
}

// activeTag finds the filtered tag among the listed ones. A filter on an
// unknown id has no active tag and simply matches nothing.
func activeTag(tags []*domain.Tag, filter *int64) *domain.Tag {
	if filter == nil {
		return nil
	}
	for _, t := range tags {
		if t.ID == *filter {
			return t
		}
	}
	return nil
}

// handleSubmit creates a message from the compose form.
// POST /submit (message, tags)
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	ctx := r.Context()
	log := logger.FromContext(ctx, s.logger)

	tags := normalize.SplitTags(r.PostFormValue("tags"))
	m, err := s.services.Message.CreateMessage(ctx, r.PostFormValue("message"), tags)
	switch {
	case errors.Is(err, service.ErrEmptyContent):
		// Blank submissions are ignored.
	case err != nil && m != nil:
		// Stored, but retention failed. The next submission retries it.
		log.Error("Retention failed after submit", "message_id", m.ID, "error", err)
	case err != nil:
		response.HandleError(w, err, log)
		return
	}

	response.Redirect(w, r, "/")
}

// handleDelete removes a message and returns to a page that still exists.
// POST /delete (id, page, q, tag)
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	ctx := r.Context()
	log := logger.FromContext(ctx, s.logger)

	if _, err := s.services.Message.DeleteMessage(ctx, r.PostFormValue("id")); err != nil {
		response.HandleError(w, err, log)
		return
	}

	location, err := s.returnPath(r)
	if err != nil {
		response.HandleError(w, err, log)
		return
	}
	response.Redirect(w, r, location)
}

// handleReply adds a reply to a message.
// POST /reply (message_id, content, page, q, tag)
func (s *Server) handleReply(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	ctx := r.Context()
	log := logger.FromContext(ctx, s.logger)

	_, err := s.services.Reply.CreateReply(ctx, r.PostFormValue("message_id"), r.PostFormValue("content"))
	switch {
	case errors.Is(err, service.ErrEmptyContent), errors.Is(err, service.ErrInvalidID):
	case errors.Is(err, service.ErrMessageNotFound):
		// The message was pruned or deleted while the form was open.
		log.Debug("Reply to missing message dropped", "message_id", r.PostFormValue("message_id"))
	case err != nil:
		response.HandleError(w, err, log)
		return
	}

	location, err := s.returnPath(r)
	if err != nil {
		response.HandleError(w, err, log)
		return
	}
	response.Redirect(w, r, location)
}

// handleReplyDelete removes a reply.
// POST /reply/delete (id, page, q, tag)
func (s *Server) handleReplyDelete(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	ctx := r.Context()
	log := logger.FromContext(ctx, s.logger)

	if _, err := s.services.Reply.DeleteReply(ctx, r.PostFormValue("id")); err != nil {
		response.HandleError(w, err, log)
		return
	}

	location, err := s.returnPath(r)
	if err != nil {
		response.HandleError(w, err, log)
		return
	}
	response.Redirect(w, r, location)
}

// handleNotFound answers unknown routes.
func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	response.NotFound(w)
}

// parseForm parses the posted form, writing the error response itself
// when it fails.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.RequestTooLarge(w)
			return false
		}
		response.BadRequest(w, "Malformed form data")
		return false
	}
	return true
}

// returnPath rebuilds the listing the form was posted from. The page is
// clamped against the current total, so deleting the last message of the
// last page lands on the new last page. The total is unfiltered, which can
// overshoot a filtered listing; the home handler clamps again on render.
func (s *Server) returnPath(r *http.Request) (string, error) {
	total, err := s.services.Message.TotalCount(r.Context())
	if err != nil {
		return "", err
	}

	limits := s.services.Message.Limits()
	_, page := domain.PageBounds(total, limits.PageSize, limits.MaxPages, normalize.Page(r.PostFormValue("page")))

	return web.ListPath(page, r.PostFormValue("q"), normalize.OptionalID(r.PostFormValue("tag"))), nil
}
