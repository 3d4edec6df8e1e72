package game

import (
	"github.com/champfut/champfutbot/champfutbot"
	gm "github.com/champfut/champfutbot/champfutbot/game"
	"github.com/champfut/champfutbot/champfutbot/handlers"
	"github.com/disgoorg/disgo/handler"
)

// Handler wires the football match commands to the match registry.
type Handler struct {
	bot *champfutbot.Bot
}

func NewHandler(b *champfutbot.Bot) *Handler {
	return &Handler{bot: b}
}

func (h *Handler) Register(r handler.Router) {
	r.Route("/game", func(r handler.Router) {
		r.Command("/start", handlers.WrapWithLogging("game-start", h.HandleStart))
		r.Command("/add", handlers.WrapWithLogging("game-add", h.HandleAdd))
		r.Command("/remove", handlers.WrapWithLogging("game-remove", h.HandleRemove))
		r.Command("/bet", handlers.WrapWithLogging("game-bet", h.HandleBet))
		r.Command("/cancel", handlers.WrapWithLogging("game-cancel", h.HandleCancel))
		r.Autocomplete("/add", h.HandleCardAutocomplete)
		r.Autocomplete("/remove", h.HandleCardAutocomplete)
		r.Autocomplete("/bet", h.HandleCardAutocomplete)
	})

	r.Component(gm.ComponentLock, handlers.WrapComponentWithLogging("game-lock", h.HandleLockButton))
	r.Component(gm.ComponentReset, handlers.WrapComponentWithLogging("game-reset", h.HandleResetButton))
	r.Component(gm.ComponentCancel, handlers.WrapComponentWithLogging("game-cancel-button", h.HandleCancelButton))
	r.Component(componentCancelConfirm, handlers.WrapComponentWithLogging("game-cancel-confirm", h.HandleCancelConfirm))
	r.Component(componentResetConfirm, handlers.WrapComponentWithLogging("game-reset-confirm", h.HandleResetConfirm))
	r.Component(componentAddConfirm, handlers.WrapComponentWithLogging("game-add-confirm", h.HandleAddConfirm))
	r.Component(componentDismiss, handlers.WrapComponentWithLogging("game-dismiss", h.HandleDismiss))
}
