package economy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/champfut/champfutbot/champfutbot/config"
	"github.com/champfut/champfutbot/champfutbot/economy"
	"github.com/champfut/champfutbot/champfutbot/services"
	"github.com/champfut/champfutbot/champfutbot/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// HandleAdminAddCoins credits coins to any user.
func (h *Handler) HandleAdminAddCoins(e *handler.CommandEvent) error {
	if !h.bot.Cfg.Bot.IsAdmin(e.User().ID) {
		return utils.EH.CreateError(e, "❌ You don't have permission to use this command!")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data := e.SlashCommandInteractionData()
	target := data.User("user")
	amount := int64(data.Int("amount"))
	if amount <= 0 {
		return utils.EH.CreateError(e, "❌ Amount must be greater than 0!")
	}

	user, err := h.bot.UserRepository.GetOrCreate(ctx, target.ID.String(), target.Username)
	if err != nil {
		return h.adminDBError(e, "adjust coins", err)
	}
	oldBalance := user.Balance

	if err := h.bot.UserRepository.AddCoins(ctx, target.ID.String(), amount); err != nil {
		return h.adminDBError(e, "adjust coins", err)
	}
	newBalance := oldBalance + amount

	h.bot.ActionLogger.Log("🔧 Admin: Coins Added",
		fmt.Sprintf("Admin %s added coins to %s", e.User().Mention(), target.Mention()),
		config.OrangeColor,
		services.Field{Name: "Admin", Value: fmt.Sprintf("%s (%s)", e.User().Username, e.User().ID), Inline: true},
		services.Field{Name: "Target User", Value: fmt.Sprintf("%s (%s)", target.Username, target.ID), Inline: true},
		services.Field{Name: "Amount Added", Value: fmt.Sprintf("%d CF coins", amount), Inline: true},
		services.Field{Name: "Old Balance", Value: fmt.Sprintf("%d CF coins", oldBalance), Inline: true},
		services.Field{Name: "New Balance", Value: fmt.Sprintf("%d CF coins", newBalance), Inline: true},
	)

	return h.adminBalanceResponse(e, "✅ Coins Added",
		fmt.Sprintf("Added **%d CF coins** to %s", amount, target.Mention()),
		config.SuccessColor, oldBalance, newBalance)
}

// HandleAdminRemoveCoins debits coins from any user, flooring at zero.
func (h *Handler) HandleAdminRemoveCoins(e *handler.CommandEvent) error {
	if !h.bot.Cfg.Bot.IsAdmin(e.User().ID) {
		return utils.EH.CreateError(e, "❌ You don't have permission to use this command!")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data := e.SlashCommandInteractionData()
	target := data.User("user")
	amount := int64(data.Int("amount"))
	if amount <= 0 {
		return utils.EH.CreateError(e, "❌ Amount must be greater than 0!")
	}

	user, err := h.bot.UserRepository.GetOrCreate(ctx, target.ID.String(), target.Username)
	if err != nil {
		return h.adminDBError(e, "adjust coins", err)
	}
	oldBalance := user.Balance

	if err := h.bot.UserRepository.RemoveCoins(ctx, target.ID.String(), amount); err != nil {
		return h.adminDBError(e, "adjust coins", err)
	}
	newBalance := oldBalance - amount
	if newBalance < 0 {
		newBalance = 0
	}

	h.bot.ActionLogger.Log("🔧 Admin: Coins Removed",
		fmt.Sprintf("Admin %s removed coins from %s", e.User().Mention(), target.Mention()),
		config.ErrorColor,
		services.Field{Name: "Admin", Value: fmt.Sprintf("%s (%s)", e.User().Username, e.User().ID), Inline: true},
		services.Field{Name: "Target User", Value: fmt.Sprintf("%s (%s)", target.Username, target.ID), Inline: true},
		services.Field{Name: "Amount Removed", Value: fmt.Sprintf("%d CF coins", amount), Inline: true},
		services.Field{Name: "Old Balance", Value: fmt.Sprintf("%d CF coins", oldBalance), Inline: true},
		services.Field{Name: "New Balance", Value: fmt.Sprintf("%d CF coins", newBalance), Inline: true},
	)

	return h.adminBalanceResponse(e, "✅ Coins Removed",
		fmt.Sprintf("Removed **%d CF coins** from %s", amount, target.Mention()),
		config.ErrorColor, oldBalance, newBalance)
}

// HandleAdminAddPacks grants packs to any user.
func (h *Handler) HandleAdminAddPacks(e *handler.CommandEvent) error {
	if !h.bot.Cfg.Bot.IsAdmin(e.User().ID) {
		return utils.EH.CreateError(e, "❌ You don't have permission to use this command!")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data := e.SlashCommandInteractionData()
	target := data.User("user")
	packType, ok := economy.ParsePackType(data.String("pack_type"))
	if !ok {
		return utils.EH.CreateError(e, "Invalid pack type!")
	}
	amount := int64(data.Int("amount"))
	if amount <= 0 {
		return utils.EH.CreateError(e, "❌ Amount must be greater than 0!")
	}
	info := economy.PackTypes[packType]

	user, err := h.bot.UserRepository.GetOrCreate(ctx, target.ID.String(), target.Username)
	if err != nil {
		return h.adminDBError(e, "adjust packs", err)
	}
	oldAmount := user.PackCount(string(packType))

	if err := h.bot.UserRepository.AddPacks(ctx, target.ID.String(), string(packType), amount); err != nil {
		return h.adminDBError(e, "adjust packs", err)
	}
	newAmount := oldAmount + amount

	h.bot.ActionLogger.Log("🔧 Admin: Packs Added",
		fmt.Sprintf("Admin %s added packs to %s", e.User().Mention(), target.Mention()),
		config.OrangeColor,
		services.Field{Name: "Admin", Value: fmt.Sprintf("%s (%s)", e.User().Username, e.User().ID), Inline: true},
		services.Field{Name: "Target User", Value: fmt.Sprintf("%s (%s)", target.Username, target.ID), Inline: true},
		services.Field{Name: "Pack Type", Value: fmt.Sprintf("%s %s", info.Emoji, info.Name), Inline: true},
		services.Field{Name: "Amount Added", Value: fmt.Sprintf("%d packs", amount), Inline: true},
		services.Field{Name: "Old Amount", Value: fmt.Sprintf("%d packs", oldAmount), Inline: true},
		services.Field{Name: "New Amount", Value: fmt.Sprintf("%d packs", newAmount), Inline: true},
	)

	return h.adminPackResponse(e, "✅ Packs Added",
		fmt.Sprintf("Added **%d %ss** %s to %s", amount, info.Name, info.Emoji, target.Mention()),
		info.Color, oldAmount, newAmount)
}

// HandleAdminRemovePacks removes packs from any user, flooring at zero.
func (h *Handler) HandleAdminRemovePacks(e *handler.CommandEvent) error {
	if !h.bot.Cfg.Bot.IsAdmin(e.User().ID) {
		return utils.EH.CreateError(e, "❌ You don't have permission to use this command!")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data := e.SlashCommandInteractionData()
	target := data.User("user")
	packType, ok := economy.ParsePackType(data.String("pack_type"))
	if !ok {
		return utils.EH.CreateError(e, "Invalid pack type!")
	}
	amount := int64(data.Int("amount"))
	if amount <= 0 {
		return utils.EH.CreateError(e, "❌ Amount must be greater than 0!")
	}
	info := economy.PackTypes[packType]

	user, err := h.bot.UserRepository.GetOrCreate(ctx, target.ID.String(), target.Username)
	if err != nil {
		return h.adminDBError(e, "adjust packs", err)
	}
	oldAmount := user.PackCount(string(packType))

	if err := h.bot.UserRepository.RemovePacks(ctx, target.ID.String(), string(packType), amount); err != nil {
		return h.adminDBError(e, "adjust packs", err)
	}
	newAmount := oldAmount - amount
	if newAmount < 0 {
		newAmount = 0
	}

	h.bot.ActionLogger.Log("🔧 Admin: Packs Removed",
		fmt.Sprintf("Admin %s removed packs from %s", e.User().Mention(), target.Mention()),
		config.ErrorColor,
		services.Field{Name: "Admin", Value: fmt.Sprintf("%s (%s)", e.User().Username, e.User().ID), Inline: true},
		services.Field{Name: "Target User", Value: fmt.Sprintf("%s (%s)", target.Username, target.ID), Inline: true},
		services.Field{Name: "Pack Type", Value: fmt.Sprintf("%s %s", info.Emoji, info.Name), Inline: true},
		services.Field{Name: "Amount Removed", Value: fmt.Sprintf("%d packs", amount), Inline: true},
		services.Field{Name: "Old Amount", Value: fmt.Sprintf("%d packs", oldAmount), Inline: true},
		services.Field{Name: "New Amount", Value: fmt.Sprintf("%d packs", newAmount), Inline: true},
	)

	return h.adminPackResponse(e, "✅ Packs Removed",
		fmt.Sprintf("Removed **%d %ss** %s from %s", amount, info.Name, info.Emoji, target.Mention()),
		config.ErrorColor, oldAmount, newAmount)
}

func (h *Handler) adminDBError(e *handler.CommandEvent, action string, err error) error {
	slog.Error("Admin command failed",
		slog.String("type", "db"),
		slog.String("action", action),
		slog.Any("error", err))
	return utils.EH.CreateError(e, fmt.Sprintf("Failed to %s. Please try again later.", action))
}

func (h *Handler) adminBalanceResponse(e *handler.CommandEvent, title, description string, color int, oldBalance, newBalance int64) error {
	inline := true
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       title,
			Description: description,
			Color:       color,
			Fields: []discord.EmbedField{
				{Name: "Old Balance", Value: fmt.Sprintf("%d CF coins", oldBalance), Inline: &inline},
				{Name: "New Balance", Value: fmt.Sprintf("%d CF coins", newBalance), Inline: &inline},
			},
			Footer: &discord.EmbedFooter{Text: fmt.Sprintf("Admin: %s", e.User().Username)},
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}

func (h *Handler) adminPackResponse(e *handler.CommandEvent, title, description string, color int, oldAmount, newAmount int64) error {
	inline := true
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       title,
			Description: description,
			Color:       color,
			Fields: []discord.EmbedField{
				{Name: "Old Amount", Value: fmt.Sprintf("%d packs", oldAmount), Inline: &inline},
				{Name: "New Amount", Value: fmt.Sprintf("%d packs", newAmount), Inline: &inline},
			},
			Footer: &discord.EmbedFooter{Text: fmt.Sprintf("Admin: %s", e.User().Username)},
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}
