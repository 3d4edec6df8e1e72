package champfutbot

import (
	"context"
	"log/slog"
	"time"

	"github.com/champfut/champfutbot/champfutbot/database"
	"github.com/champfut/champfutbot/champfutbot/database/repositories"
	"github.com/champfut/champfutbot/champfutbot/economy"
	"github.com/champfut/champfutbot/champfutbot/game"
	"github.com/champfut/champfutbot/champfutbot/services"
	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string

	DB                     *database.DB
	UserRepository         repositories.UserRepository
	CardRepository         repositories.CardRepository
	CardInstanceRepository repositories.CardInstanceRepository

	Opener        *economy.Opener
	SearchService *services.SearchService
	SpacesService *services.SpacesService
	ActionLogger  *services.ActionLogger
	GameRegistry  *game.Registry
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds, gateway.IntentGuildMessages)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("ChampFut Bot is now ready",
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("the transfer market"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}
