package economy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/champfut/champfutbot/champfutbot/config"
	"github.com/champfut/champfutbot/champfutbot/database/repositories"
	"github.com/champfut/champfutbot/champfutbot/economy"
	"github.com/champfut/champfutbot/champfutbot/services"
	"github.com/champfut/champfutbot/champfutbot/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// HandleBuy purchases a pack, debiting the price atomically.
func (h *Handler) HandleBuy(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data := e.SlashCommandInteractionData()
	packType, ok := economy.ParsePackType(data.String("pack_type"))
	if !ok {
		return utils.EH.CreateError(e, "Invalid pack type! Choose: normal, epic, mythic, or legendary.")
	}
	info := economy.PackTypes[packType]

	discordID := e.User().ID.String()
	if _, err := h.bot.UserRepository.GetOrCreate(ctx, discordID, e.User().Username); err != nil {
		slog.Error("Failed to get user",
			slog.String("type", "db"),
			slog.String("discord_id", discordID),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to get user data. Please try again later.")
	}

	if err := h.bot.UserRepository.PurchasePack(ctx, discordID, string(packType), info.Price); err != nil {
		if errors.Is(err, repositories.ErrInsufficientFunds) {
			balance, _ := h.bot.UserRepository.GetBalance(ctx, discordID)
			return utils.EH.CreateError(e, fmt.Sprintf(
				"❌ You don't have enough CF coins! You need **%d** CF coins but only have **%d**.",
				info.Price, balance))
		}
		slog.Error("Failed to purchase pack",
			slog.String("type", "db"),
			slog.String("discord_id", discordID),
			slog.String("pack_type", string(packType)),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to purchase the pack. Please try again later.")
	}

	user, err := h.bot.UserRepository.GetByDiscordID(ctx, discordID)
	if err != nil {
		slog.Error("Failed to reload user after purchase",
			slog.String("type", "db"),
			slog.String("discord_id", discordID),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to load your wallet. Please try again later.")
	}

	h.bot.ActionLogger.Log("🎉 Pack Purchased",
		fmt.Sprintf("%s bought a pack", e.User().Mention()),
		info.Color,
		services.Field{Name: "User", Value: fmt.Sprintf("%s (%s)", e.User().Username, e.User().ID), Inline: true},
		services.Field{Name: "Pack Type", Value: fmt.Sprintf("%s %s", info.Emoji, info.Name), Inline: true},
		services.Field{Name: "Price Paid", Value: fmt.Sprintf("%d CF coins", info.Price), Inline: true},
		services.Field{Name: "Remaining Balance", Value: fmt.Sprintf("%d CF coins", user.Balance), Inline: true},
		services.Field{Name: "Total Packs of This Type", Value: fmt.Sprintf("%d", user.PackCount(string(packType))), Inline: true},
	)

	inline := true
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "🎉 Pack Purchased!",
			Description: fmt.Sprintf("You bought a **%s** %s!", info.Name, info.Emoji),
			Color:       info.Color,
			Fields: []discord.EmbedField{
				{Name: "💰 Price Paid", Value: fmt.Sprintf("%d CF coins", info.Price), Inline: &inline},
				{Name: "💳 Remaining Balance", Value: fmt.Sprintf("%d CF coins", user.Balance), Inline: &inline},
				{Name: "📦 Total Packs of This Type", Value: fmt.Sprintf("%d", user.PackCount(string(packType)))},
			},
			Footer: &discord.EmbedFooter{Text: "Use /cfcoins open to open your pack!"},
			Author: &discord.EmbedAuthor{
				Name:    e.User().Username,
				IconURL: e.User().EffectiveAvatarURL(),
			},
		}},
	})
}

// HandleOpen opens a pack with a staged walkout reveal: rarity first, then
// the card, then its stats, then the full card with artwork.
func (h *Handler) HandleOpen(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data := e.SlashCommandInteractionData()
	packType, ok := economy.ParsePackType(data.String("pack_type"))
	if !ok {
		return utils.EH.CreateError(e, "Invalid pack type! Choose: normal, epic, mythic, or legendary.")
	}
	info := economy.PackTypes[packType]

	discordID := e.User().ID.String()
	user, err := h.bot.UserRepository.GetOrCreate(ctx, discordID, e.User().Username)
	if err != nil {
		slog.Error("Failed to get user",
			slog.String("type", "db"),
			slog.String("discord_id", discordID),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to get user data. Please try again later.")
	}

	if user.PackCount(string(packType)) < 1 {
		return utils.EH.CreateError(e, fmt.Sprintf("❌ You don't have any %ss to open!", info.Name))
	}

	instance, err := h.bot.Opener.Open(ctx, discordID, packType)
	if err != nil {
		if errors.Is(err, economy.ErrNoCardsInRange) {
			return utils.EH.CreateError(e,
				"❌ No cards are available in this rarity range. Your pack was not consumed.")
		}
		slog.Error("Failed to open pack",
			slog.String("type", "db"),
			slog.String("discord_id", discordID),
			slog.String("pack_type", string(packType)),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to open the pack. Please try again later.")
	}
	card := instance.Card

	if err := e.DeferCreateMessage(false); err != nil {
		return err
	}

	embed := discord.Embed{
		Title:  fmt.Sprintf("%s Opening %s...", info.Emoji, info.Name),
		Color:  0x2F3136,
		Footer: &discord.EmbedFooter{Text: "CF Coins Pack System"},
	}

	step := func() error {
		_, err := e.UpdateInteractionResponse(discord.MessageUpdate{Embeds: &[]discord.Embed{embed}})
		return err
	}
	if err := step(); err != nil {
		return err
	}

	time.Sleep(config.WalkoutStepDelay)
	embed.Description = fmt.Sprintf("✨ **Rarity:** `%g`", card.Rarity)
	if err := step(); err != nil {
		return err
	}

	time.Sleep(config.WalkoutStepDelay)
	embed.Description += fmt.Sprintf("\n💳 **Card:** **%s**", card.Name)
	if err := step(); err != nil {
		return err
	}

	time.Sleep(config.WalkoutStepDelay)
	embed.Description += fmt.Sprintf("\n💖 **Health:** `%d`\n⚽ **Attack:** `%d`",
		instance.Health(), instance.Attack())
	if err := step(); err != nil {
		return err
	}

	time.Sleep(config.WalkoutStepDelay)
	embed.Title = fmt.Sprintf("🎁 You got **%s**!", card.Name)
	embed.Color = info.Color
	embed.Author = &discord.EmbedAuthor{
		Name:    e.User().Username,
		IconURL: e.User().EffectiveAvatarURL(),
	}
	if url := h.bot.SpacesService.CardImageURL(card.ImageKey); url != "" {
		embed.Image = &discord.EmbedResource{URL: url}
	}
	if err := step(); err != nil {
		return err
	}

	h.bot.ActionLogger.Log("🎁 Pack Opened",
		fmt.Sprintf("%s opened a pack", e.User().Mention()),
		info.Color,
		services.Field{Name: "User", Value: fmt.Sprintf("%s (%s)", e.User().Username, e.User().ID), Inline: true},
		services.Field{Name: "Pack Type", Value: fmt.Sprintf("%s %s", info.Emoji, info.Name), Inline: true},
		services.Field{Name: "Card Received", Value: card.Name, Inline: true},
		services.Field{Name: "Rarity", Value: fmt.Sprintf("%g", card.Rarity), Inline: true},
		services.Field{Name: "Health", Value: fmt.Sprintf("%d", instance.Health()), Inline: true},
		services.Field{Name: "Attack", Value: fmt.Sprintf("%d", instance.Attack()), Inline: true},
	)

	return nil
}

// HandleGiftPacks moves one pack from the caller to another user.
func (h *Handler) HandleGiftPacks(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data := e.SlashCommandInteractionData()
	target := data.User("user")
	packType, ok := economy.ParsePackType(data.String("pack_type"))
	if !ok {
		return utils.EH.CreateError(e, "Invalid pack type! Choose: normal, epic, mythic, or legendary.")
	}
	info := economy.PackTypes[packType]

	if target.ID == e.User().ID {
		return utils.EH.CreateError(e, "❌ You cannot gift packs to yourself!")
	}
	if target.Bot {
		return utils.EH.CreateError(e, "❌ You cannot gift packs to a bot!")
	}

	senderID := e.User().ID.String()
	if _, err := h.bot.UserRepository.GetOrCreate(ctx, target.ID.String(), target.Username); err != nil {
		slog.Error("Failed to get gift recipient",
			slog.String("type", "db"),
			slog.String("discord_id", target.ID.String()),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to gift the pack. Please try again later.")
	}

	if err := h.bot.UserRepository.TransferPack(ctx, senderID, target.ID.String(), string(packType)); err != nil {
		if errors.Is(err, repositories.ErrNoPacks) {
			return utils.EH.CreateError(e, fmt.Sprintf("❌ You don't have any %ss to gift!", info.Name))
		}
		slog.Error("Failed to transfer pack",
			slog.String("type", "db"),
			slog.String("from", senderID),
			slog.String("to", target.ID.String()),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to gift the pack. Please try again later.")
	}

	sender, err := h.bot.UserRepository.GetByDiscordID(ctx, senderID)
	if err != nil {
		slog.Error("Failed to reload sender after gift",
			slog.String("type", "db"),
			slog.String("discord_id", senderID),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to load your wallet. Please try again later.")
	}

	h.bot.ActionLogger.Log("🎁 Pack Gifted",
		fmt.Sprintf("%s gifted a pack to %s", e.User().Mention(), target.Mention()),
		info.Color,
		services.Field{Name: "Sender", Value: fmt.Sprintf("%s (%s)", e.User().Username, e.User().ID), Inline: true},
		services.Field{Name: "Receiver", Value: fmt.Sprintf("%s (%s)", target.Username, target.ID), Inline: true},
		services.Field{Name: "Pack Type", Value: fmt.Sprintf("%s %s", info.Emoji, info.Name), Inline: true},
		services.Field{Name: "Sender Remaining Packs", Value: fmt.Sprintf("%d", sender.PackCount(string(packType))), Inline: true},
	)

	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "🎁 Pack Gifted!",
			Description: fmt.Sprintf("You gifted a **%s** %s to %s!", info.Name, info.Emoji, target.Mention()),
			Color:       info.Color,
			Fields: []discord.EmbedField{{
				Name:  "📦 Your Remaining Packs",
				Value: fmt.Sprintf("%d %ss", sender.PackCount(string(packType)), info.Name),
			}},
			Author: &discord.EmbedAuthor{
				Name:    e.User().Username,
				IconURL: e.User().EffectiveAvatarURL(),
			},
		}},
	})
}
