package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/champfut/champfutbot/champfutbot/database/models"
	"github.com/champfut/champfutbot/champfutbot/database/repositories"
	gm "github.com/champfut/champfutbot/champfutbot/game"
	"github.com/champfut/champfutbot/champfutbot/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
)

// HandleStart opens a new match between the caller and the chosen opponent.
func (h *Handler) HandleStart(e *handler.CommandEvent) error {
	guildID := e.GuildID()
	if guildID == nil {
		return utils.EH.CreateError(e, "This command can only be used in a server.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	data := e.SlashCommandInteractionData()
	opponent := data.User("opponent")

	if opponent.ID == e.User().ID {
		return utils.EH.CreateError(e, "❌ You cannot challenge yourself!")
	}
	if opponent.Bot {
		return utils.EH.CreateError(e, "❌ You cannot challenge a bot!")
	}

	if h.bot.GameRegistry.InMatch(*guildID, e.ChannelID(), e.User().ID) {
		return utils.EH.CreateError(e, "❌ You are already in a match in this channel!")
	}
	if h.bot.GameRegistry.InMatch(*guildID, e.ChannelID(), opponent.ID) {
		return utils.EH.CreateError(e, "❌ That user is already in a match in this channel!")
	}

	if _, err := h.bot.UserRepository.GetOrCreate(ctx, e.User().ID.String(), e.User().Username); err != nil {
		return h.dbError(e, err)
	}
	if _, err := h.bot.UserRepository.GetOrCreate(ctx, opponent.ID.String(), opponent.Username); err != nil {
		return h.dbError(e, err)
	}

	p1 := gm.NewParticipant(e.User().ID, e.User().Username)
	p2 := gm.NewParticipant(opponent.ID, opponent.Username)
	match := gm.NewMatch(*guildID, e.ChannelID(), p1, p2,
		h.bot.CardInstanceRepository,
		gm.NewRestMessenger(h.bot.Client.Rest()),
		gm.DefaultOptions())

	// The match message outlives this interaction.
	if err := match.Start(context.Background()); err != nil {
		slog.Error("Failed to start match",
			slog.String("type", "game"),
			slog.String("guild_id", guildID.String()),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to start the match. Please try again later.")
	}

	h.bot.GameRegistry.Add(match)

	slog.Info("Match created",
		slog.String("type", "game"),
		slog.String("guild_id", guildID.String()),
		slog.String("player1", e.User().ID.String()),
		slog.String("player2", opponent.ID.String()))

	return e.CreateMessage(discord.MessageCreate{
		Content: fmt.Sprintf("⚽ Match created! Build your team with `/game add` before the timer runs out, %s.", e.User().Mention()),
		Flags:   discord.MessageFlagEphemeral,
	})
}

// HandleAdd rosters one of the caller's cards at a position. Favorites go
// through a confirmation prompt before they join.
func (h *Handler) HandleAdd(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	data := e.SlashCommandInteractionData()
	pos, ok := gm.ParsePosition(data.String("position"))
	if !ok {
		return utils.EH.CreateError(e, "❌ Invalid position! Choose GK, DF, MF, or FW.")
	}

	instance, errMsg := h.resolveOwnedInstance(ctx, e.User().ID, data.String("card"))
	if errMsg != "" {
		return utils.EH.CreateError(e, errMsg)
	}
	if !instance.Tradeable {
		return utils.EH.CreateError(e, "❌ This card is not tradeable and cannot join a match.")
	}
	if instance.Favorite {
		return e.CreateMessage(confirmPrompt(
			fmt.Sprintf("⚠️ **%s** is one of your favorites. Roster it anyway?", instance.DisplayName()),
			addConfirmID(pos, instance.ID)))
	}

	match, p, err := h.findMatch(e)
	if err != nil {
		return err
	}

	if err := match.AddToTeam(ctx, p, pos, instance); err != nil {
		return utils.EH.CreateError(e, matchErrorMessage(err))
	}

	return e.CreateMessage(discord.MessageCreate{
		Content: fmt.Sprintf("✅ Added **%s** to your team as **%s**.", instance.DisplayName(), pos),
		Flags:   discord.MessageFlagEphemeral,
	})
}

// HandleRemove takes a card back off the caller's roster.
func (h *Handler) HandleRemove(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	match, p, err := h.findMatch(e)
	if err != nil {
		return err
	}

	data := e.SlashCommandInteractionData()
	instanceID, parseErr := strconv.ParseInt(data.String("card"), 10, 64)
	if parseErr != nil {
		return utils.EH.CreateError(e, "Card not found in your collection.")
	}

	removed, err := match.RemoveFromTeam(ctx, p, instanceID)
	if err != nil {
		return utils.EH.CreateError(e, matchErrorMessage(err))
	}

	return e.CreateMessage(discord.MessageCreate{
		Content: fmt.Sprintf("✅ Removed **%s** from your team.", removed.DisplayName()),
		Flags:   discord.MessageFlagEphemeral,
	})
}

// HandleBet wagers one of the caller's cards on the match outcome.
func (h *Handler) HandleBet(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	match, p, err := h.findMatch(e)
	if err != nil {
		return err
	}

	data := e.SlashCommandInteractionData()
	instance, errMsg := h.resolveOwnedInstance(ctx, e.User().ID, data.String("card"))
	if errMsg != "" {
		return utils.EH.CreateError(e, errMsg)
	}

	if instance.Favorite {
		return utils.EH.CreateError(e, "❌ You cannot wager a favorited card!")
	}
	if !instance.Tradeable {
		return utils.EH.CreateError(e, "❌ This card is not tradeable and cannot be wagered.")
	}

	if err := match.PlaceBet(ctx, p, instance); err != nil {
		return utils.EH.CreateError(e, matchErrorMessage(err))
	}

	return e.CreateMessage(discord.MessageCreate{
		Content: fmt.Sprintf("✅ Wagered **%s** on the match. Winner takes it!", instance.DisplayName()),
		Flags:   discord.MessageFlagEphemeral,
	})
}

// HandleCancel asks for confirmation before cancelling the caller's match.
func (h *Handler) HandleCancel(e *handler.CommandEvent) error {
	if _, _, err := h.findMatch(e); err != nil {
		return err
	}

	return e.CreateMessage(confirmPrompt(
		"⚠️ Are you sure you want to cancel the match? All rostered and wagered cards will be released.",
		componentCancelConfirm))
}

// HandleLockButton freezes the caller's team. The simulation starts once
// both sides are locked.
func (h *Handler) HandleLockButton(e *handler.ComponentEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	match, p := h.findMatchForComponent(e)
	if match == nil {
		return utils.EH.CreateEphemeralError(e, "❌ You are not part of this match!")
	}

	if _, err := match.Lock(ctx, p); err != nil {
		return utils.EH.CreateEphemeralError(e, matchErrorMessage(err))
	}

	return e.UpdateMessage(discord.MessageUpdate{
		Embeds: &[]discord.Embed{match.BuildingEmbed()},
	})
}

// HandleResetButton asks for confirmation before clearing the caller's
// roster and wagers.
func (h *Handler) HandleResetButton(e *handler.ComponentEvent) error {
	match, _ := h.findMatchForComponent(e)
	if match == nil {
		return utils.EH.CreateEphemeralError(e, "❌ You are not part of this match!")
	}

	return e.CreateMessage(confirmPrompt(
		"⚠️ Reset your team? All rostered and wagered cards will be released.",
		componentResetConfirm))
}

// HandleCancelButton asks for confirmation before cancelling the match.
func (h *Handler) HandleCancelButton(e *handler.ComponentEvent) error {
	match, _ := h.findMatchForComponent(e)
	if match == nil {
		return utils.EH.CreateEphemeralError(e, "❌ You are not part of this match!")
	}

	return e.CreateMessage(confirmPrompt(
		"⚠️ Are you sure you want to cancel the match? All rostered and wagered cards will be released.",
		componentCancelConfirm))
}

// HandleCardAutocomplete suggests cards from the caller's collection.
func (h *Handler) HandleCardAutocomplete(e *handler.AutocompleteEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := e.Data.String("card")
	instances, err := h.bot.SearchService.SearchOwnedInstances(ctx, e.User().ID.String(), query, 25)
	if err != nil {
		return e.AutocompleteResult(nil)
	}

	choices := make([]discord.AutocompleteChoice, 0, len(instances))
	for _, inst := range instances {
		name := fmt.Sprintf("#%d %s | ATK %d HP %d", inst.ID, inst.DisplayName(), inst.Attack(), inst.Health())
		if len(name) > 100 {
			name = name[:100]
		}
		choices = append(choices, discord.AutocompleteChoiceString{
			Name:  name,
			Value: strconv.FormatInt(inst.ID, 10),
		})
	}
	return e.AutocompleteResult(choices)
}

func (h *Handler) findMatch(e *handler.CommandEvent) (*gm.Match, *gm.Participant, error) {
	guildID := e.GuildID()
	if guildID == nil {
		return nil, nil, utils.EH.CreateError(e, "This command can only be used in a server.")
	}
	match, p := h.bot.GameRegistry.Find(*guildID, e.ChannelID(), e.User().ID)
	if match == nil {
		return nil, nil, utils.EH.CreateError(e, "❌ You are not in a match in this channel. Start one with `/game start`.")
	}
	return match, p, nil
}

func (h *Handler) findMatchForComponent(e *handler.ComponentEvent) (*gm.Match, *gm.Participant) {
	guildID := e.GuildID()
	if guildID == nil {
		return nil, nil
	}
	return h.bot.GameRegistry.Find(*guildID, e.ChannelID(), e.User().ID)
}

func (h *Handler) resolveOwnedInstance(ctx context.Context, userID snowflake.ID, raw string) (instance *models.CardInstance, errMsg string) {
	instanceID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, "Card not found in your collection."
	}
	inst, err := h.bot.CardInstanceRepository.GetByID(ctx, instanceID)
	if err != nil || inst.UserID != userID.String() {
		return nil, "Card not found in your collection."
	}
	return inst, ""
}

func (h *Handler) dbError(e *handler.CommandEvent, err error) error {
	slog.Error("Failed to load user",
		slog.String("type", "db"),
		slog.Any("error", err))
	return utils.EH.CreateErrorEmbed(e, "Failed to get user data. Please try again later.")
}

func matchErrorMessage(err error) string {
	switch {
	case errors.Is(err, gm.ErrTeamLocked):
		return "❌ Your team is locked and can no longer be edited!"
	case errors.Is(err, gm.ErrAlreadyLocked):
		return "❌ Your team is already locked!"
	case errors.Is(err, gm.ErrAlreadyInTeam):
		return "❌ That card is already in your team!"
	case errors.Is(err, gm.ErrPositionFull):
		return "❌ That position is already full!"
	case errors.Is(err, gm.ErrNotInTeam):
		return "❌ That card is not in your team!"
	case errors.Is(err, gm.ErrAlreadyBet):
		return "❌ You already wagered that card!"
	case errors.Is(err, gm.ErrIncompleteTeam):
		return "❌ You need at least one card in every position: GK, DF, MF, FW!"
	case errors.Is(err, gm.ErrMatchOver):
		return "❌ This match has already finished."
	case errors.Is(err, repositories.ErrInstanceLocked):
		return "❌ That card is locked by another match or trade!"
	default:
		return "❌ Something went wrong. Please try again."
	}
}
