package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/board-server/internal/color"
	"github.com/listenupapp/board-server/internal/config"
	"github.com/listenupapp/board-server/internal/logger"
	"github.com/listenupapp/board-server/internal/metrics"
	"github.com/listenupapp/board-server/internal/service"
)

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewTagService(storeHandle.Store, color.Random, m, log.Logger), nil
}

// ProvideMessageService provides the message service.
func ProvideMessageService(i do.Injector) (*service.MessageService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tags := do.MustInvoke[*service.TagService](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	limits := service.BoardLimits{
		PageSize:    cfg.Board.PageSize,
		MaxMessages: cfg.Board.MaxMessages,
		MaxPages:    cfg.Board.MaxPages,
	}
	return service.NewMessageService(storeHandle.Store, tags, limits, m, log.Logger), nil
}

// ProvideReplyService provides the reply service.
func ProvideReplyService(i do.Injector) (*service.ReplyService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewReplyService(storeHandle.Store, m, log.Logger), nil
}
