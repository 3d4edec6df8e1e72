package economy

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"time"

	"github.com/champfut/champfutbot/champfutbot/config"
	"github.com/champfut/champfutbot/champfutbot/economy"
	"github.com/champfut/champfutbot/champfutbot/services"
	"github.com/champfut/champfutbot/champfutbot/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// HandleSell converts a card instance into coins and removes it from the
// collection. Favorited, untradeable, and locked cards cannot be sold.
func (h *Handler) HandleSell(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data := e.SlashCommandInteractionData()
	instanceID, err := strconv.ParseInt(data.String("card"), 10, 64)
	if err != nil {
		return utils.EH.CreateError(e, "Card not found in your collection.")
	}

	instance, err := h.bot.CardInstanceRepository.GetByID(ctx, instanceID)
	if err != nil || instance.UserID != e.User().ID.String() {
		return utils.EH.CreateError(e, "Card not found in your collection.")
	}

	if instance.Favorite {
		return utils.EH.CreateError(e, "❌ You cannot sell a favorited card! Remove it from favorites first.")
	}
	if !instance.Tradeable {
		return utils.EH.CreateError(e, "❌ This card is not tradeable and cannot be sold.")
	}
	if instance.Locked {
		return utils.EH.CreateError(e, "❌ This card is locked by an ongoing match or trade.")
	}

	rarity := instance.Rarity()
	coins := h.bot.Opener.Roll(func(rnd *rand.Rand) int64 {
		return economy.SellValue(rarity, rnd)
	})

	cardName := instance.DisplayName()
	cardTag := fmt.Sprintf("#%X", instance.ID)

	if err := h.bot.CardInstanceRepository.Delete(ctx, instance.ID); err != nil {
		slog.Error("Failed to delete sold card",
			slog.String("type", "db"),
			slog.Int64("instance_id", instance.ID),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to sell the card. Please try again later.")
	}

	if err := h.bot.UserRepository.AddCoins(ctx, e.User().ID.String(), coins); err != nil {
		slog.Error("Failed to credit sale",
			slog.String("type", "db"),
			slog.String("discord_id", e.User().ID.String()),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to sell the card. Please try again later.")
	}

	balance, _ := h.bot.UserRepository.GetBalance(ctx, e.User().ID.String())

	h.bot.ActionLogger.Log("💵 Card Sold",
		fmt.Sprintf("%s sold a card", e.User().Mention()),
		config.SuccessColor,
		services.Field{Name: "User", Value: fmt.Sprintf("%s (%s)", e.User().Username, e.User().ID), Inline: true},
		services.Field{Name: "Card", Value: fmt.Sprintf("%s %s", cardName, cardTag), Inline: true},
		services.Field{Name: "Rarity", Value: fmt.Sprintf("%g", rarity), Inline: true},
		services.Field{Name: "Coins Earned", Value: fmt.Sprintf("%d CF coins", coins), Inline: true},
		services.Field{Name: "New Balance", Value: fmt.Sprintf("%d CF coins", balance), Inline: true},
	)

	inline := true
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "💵 Card Sold!",
			Description: fmt.Sprintf("You sold **%s** %s for **%d CF coins**!", cardName, cardTag, coins),
			Color:       config.SuccessColor,
			Fields: []discord.EmbedField{
				{Name: "🎯 Rarity", Value: fmt.Sprintf("%g", rarity), Inline: &inline},
				{Name: "💳 New Balance", Value: fmt.Sprintf("%d CF coins", balance), Inline: &inline},
			},
			Author: &discord.EmbedAuthor{
				Name:    e.User().Username,
				IconURL: e.User().EffectiveAvatarURL(),
			},
		}},
	})
}

// HandleSellAutocomplete suggests cards from the caller's collection.
func (h *Handler) HandleSellAutocomplete(e *handler.AutocompleteEvent) error {
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
