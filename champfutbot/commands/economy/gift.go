package economy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/champfut/champfutbot/champfutbot/config"
	"github.com/champfut/champfutbot/champfutbot/database/repositories"
	"github.com/champfut/champfutbot/champfutbot/services"
	"github.com/champfut/champfutbot/champfutbot/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// HandleGiftCoins transfers coins between users atomically.
func (h *Handler) HandleGiftCoins(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data := e.SlashCommandInteractionData()
	target := data.User("user")
	amount := int64(data.Int("amount"))

	if target.ID == e.User().ID {
		return utils.EH.CreateError(e, "❌ You cannot gift coins to yourself!")
	}
	if target.Bot {
		return utils.EH.CreateError(e, "❌ You cannot gift coins to a bot!")
	}
	if amount <= 0 {
		return utils.EH.CreateError(e, "❌ You must gift at least 1 CF coin!")
	}

	senderID := e.User().ID.String()
	if _, err := h.bot.UserRepository.GetOrCreate(ctx, target.ID.String(), target.Username); err != nil {
		slog.Error("Failed to get gift recipient",
			slog.String("type", "db"),
			slog.String("discord_id", target.ID.String()),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to gift coins. Please try again later.")
	}

	if err := h.bot.UserRepository.TransferCoins(ctx, senderID, target.ID.String(), amount); err != nil {
		if errors.Is(err, repositories.ErrInsufficientFunds) {
			balance, _ := h.bot.UserRepository.GetBalance(ctx, senderID)
			return utils.EH.CreateError(e, fmt.Sprintf(
				"❌ You don't have enough CF coins! You have **%d** CF coins but tried to gift **%d**.",
				balance, amount))
		}
		slog.Error("Failed to transfer coins",
			slog.String("type", "db"),
			slog.String("from", senderID),
			slog.String("to", target.ID.String()),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to gift coins. Please try again later.")
	}

	senderBalance, _ := h.bot.UserRepository.GetBalance(ctx, senderID)
	receiverBalance, _ := h.bot.UserRepository.GetBalance(ctx, target.ID.String())

	h.bot.ActionLogger.Log("💝 Coins Gifted",
		fmt.Sprintf("%s gifted coins to %s", e.User().Mention(), target.Mention()),
		config.SuccessColor,
		services.Field{Name: "Sender", Value: fmt.Sprintf("%s (%s)", e.User().Username, e.User().ID), Inline: true},
		services.Field{Name: "Receiver", Value: fmt.Sprintf("%s (%s)", target.Username, target.ID), Inline: true},
		services.Field{Name: "Amount", Value: fmt.Sprintf("%d CF coins", amount), Inline: true},
		services.Field{Name: "Sender New Balance", Value: fmt.Sprintf("%d CF coins", senderBalance), Inline: true},
		services.Field{Name: "Receiver New Balance", Value: fmt.Sprintf("%d CF coins", receiverBalance), Inline: true},
	)

	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "💝 Coins Gifted!",
			Description: fmt.Sprintf("You gifted **%d CF coins** to %s!", amount, target.Mention()),
			Color:       config.SuccessColor,
			Fields: []discord.EmbedField{{
				Name:  "💳 Your New Balance",
				Value: fmt.Sprintf("%d CF coins", senderBalance),
			}},
			Author: &discord.EmbedAuthor{
				Name:    e.User().Username,
				IconURL: e.User().EffectiveAvatarURL(),
			},
		}},
	})
}
