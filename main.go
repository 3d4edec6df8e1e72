package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/champfut/champfutbot/champfutbot"
	"github.com/champfut/champfutbot/champfutbot/commands"
	economycmd "github.com/champfut/champfutbot/champfutbot/commands/economy"
	gamecmd "github.com/champfut/champfutbot/champfutbot/commands/game"
	"github.com/champfut/champfutbot/champfutbot/database"
	"github.com/champfut/champfutbot/champfutbot/database/repositories"
	"github.com/champfut/champfutbot/champfutbot/economy"
	"github.com/champfut/champfutbot/champfutbot/game"
	"github.com/champfut/champfutbot/champfutbot/logger"
	"github.com/champfut/champfutbot/champfutbot/services"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// Initialize custom logger
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting ChampFut Discord Bot",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := champfutbot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	slog.Info("Initializing database schema...")
	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	slog.Info("Database schema initialized successfully")

	defer db.Close()

	b := champfutbot.New(*cfg, version, commit)
	b.DB = db

	spacesService, err := services.NewSpacesService(
		cfg.Spaces.Key,
		cfg.Spaces.Secret,
		cfg.Spaces.Region,
		cfg.Spaces.Bucket,
		cfg.Spaces.CardRoot,
	)
	if err != nil {
		slog.Error("Failed to initialize Spaces service", slog.Any("error", err))
		os.Exit(-1)
	}
	b.SpacesService = spacesService

	// Initialize repositories
	b.UserRepository = repositories.NewUserRepository(db.BunDB())
	b.CardRepository = repositories.NewCardRepository(db.BunDB())
	b.CardInstanceRepository = repositories.NewCardInstanceRepository(db.BunDB())

	// Domain services
	b.Opener = economy.NewOpener(b.CardRepository, b.CardInstanceRepository, b.UserRepository)
	b.SearchService = services.NewSearchService(b.CardInstanceRepository)
	b.GameRegistry = game.NewRegistry()

	h := handler.New()
	economycmd.NewHandler(b).Register(h)
	gamecmd.NewHandler(b).Register(h)

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	// Needs the client's rest handle, so wired after SetupBot.
	b.ActionLogger = services.NewActionLogger(b.Client.Rest(), cfg.Bot.LogChannelID)

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("error_details", fmt.Sprintf("%+v", err)),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...")
}
