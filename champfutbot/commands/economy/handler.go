package economy

import (
	"github.com/champfut/champfutbot/champfutbot"
	"github.com/champfut/champfutbot/champfutbot/handlers"
	"github.com/disgoorg/disgo/handler"
)

// Handler wires the coins economy commands to the bot's services.
type Handler struct {
	bot *champfutbot.Bot
}

func NewHandler(b *champfutbot.Bot) *Handler {
	return &Handler{bot: b}
}

func (h *Handler) Register(r handler.Router) {
	r.Route("/cfcoins", func(r handler.Router) {
		r.Command("/daily", handlers.WrapWithLogging("cfcoins-daily", h.HandleDaily))
		r.Command("/weekly", handlers.WrapWithLogging("cfcoins-weekly", h.HandleWeekly))
		r.Command("/wallet", handlers.WrapWithLogging("cfcoins-wallet", h.HandleWallet))
		r.Command("/shop", handlers.WrapWithLogging("cfcoins-shop", h.HandleShop))
		r.Command("/buy", handlers.WrapWithLogging("cfcoins-buy", h.HandleBuy))
		r.Command("/open", handlers.WrapWithLogging("cfcoins-open", h.HandleOpen))
		r.Command("/sell", handlers.WrapWithLogging("cfcoins-sell", h.HandleSell))
		r.Command("/giftcoins", handlers.WrapWithLogging("cfcoins-giftcoins", h.HandleGiftCoins))
		r.Command("/giftpacks", handlers.WrapWithLogging("cfcoins-giftpacks", h.HandleGiftPacks))
		r.Command("/adminaddcoins", handlers.WrapWithLogging("cfcoins-adminaddcoins", h.HandleAdminAddCoins))
		r.Command("/adminremovecoins", handlers.WrapWithLogging("cfcoins-adminremovecoins", h.HandleAdminRemoveCoins))
		r.Command("/adminaddpacks", handlers.WrapWithLogging("cfcoins-adminaddpacks", h.HandleAdminAddPacks))
		r.Command("/adminremovepacks", handlers.WrapWithLogging("cfcoins-adminremovepacks", h.HandleAdminRemovePacks))
		r.Autocomplete("/sell", h.HandleSellAutocomplete)
	})

	r.Command("/collection", handlers.WrapWithLogging("collection", h.HandleCollection))
}
