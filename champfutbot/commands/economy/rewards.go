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

// HandleDaily claims the daily coin reward.
func (h *Handler) HandleDaily(e *handler.CommandEvent) error {
	return h.claimReward(e, "daily")
}

// HandleWeekly claims the weekly coin reward.
func (h *Handler) HandleWeekly(e *handler.CommandEvent) error {
	return h.claimReward(e, "weekly")
}

func (h *Handler) claimReward(e *handler.CommandEvent, kind string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Account age comes straight out of the snowflake.
	if time.Since(e.User().ID.Time()) < economy.MinAccountAge {
		return utils.EH.CreateError(e, "Your account must be at least 14 days old to use this command.")
	}

	user, err := h.bot.UserRepository.GetOrCreate(ctx, e.User().ID.String(), e.User().Username)
	if err != nil {
		slog.Error("Failed to get user",
			slog.String("type", "db"),
			slog.String("discord_id", e.User().ID.String()),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to get user data. Please try again later.")
	}

	cooldown := economy.DailyCooldown
	lastClaim := user.LastDaily
	if kind == "weekly" {
		cooldown = economy.WeeklyCooldown
		lastClaim = user.LastWeekly
	}

	if time.Since(lastClaim) < cooldown {
		next := lastClaim.Add(cooldown)
		return utils.EH.CreateErrorEmbed(e,
			fmt.Sprintf("You already claimed your %s reward. Come back <t:%d:R>.", kind, next.Unix()))
	}

	var coins int64
	if kind == "weekly" {
		coins = h.bot.Opener.Roll(economy.WeeklyReward)
	} else {
		coins = h.bot.Opener.Roll(economy.DailyReward)
	}

	if err := h.bot.UserRepository.AddCoins(ctx, user.DiscordID, coins); err != nil {
		slog.Error("Failed to add reward coins",
			slog.String("type", "db"),
			slog.String("discord_id", user.DiscordID),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to claim your reward. Please try again later.")
	}

	if kind == "weekly" {
		err = h.bot.UserRepository.UpdateLastWeekly(ctx, user.DiscordID)
	} else {
		err = h.bot.UserRepository.UpdateLastDaily(ctx, user.DiscordID)
	}
	if err != nil {
		slog.Error("Failed to update claim timestamp",
			slog.String("type", "db"),
			slog.String("discord_id", user.DiscordID),
			slog.Any("error", err))
	}

	newBalance := user.Balance + coins

	title := "💰 Daily CF Coins Claimed!"
	footer := "Come back in 24 hours for your next daily reward!"
	color := config.SuccessColor
	logTitle := "💰 Daily Claim"
	if kind == "weekly" {
		title = "🎉 Weekly CF Coins Claimed!"
		footer = "Come back in 7 days for your next weekly reward!"
		color = config.GoldColor
		logTitle = "🎉 Weekly Claim"
	}

	h.bot.ActionLogger.Log(logTitle,
		fmt.Sprintf("%s claimed their %s reward", e.User().Mention(), kind),
		color,
		services.Field{Name: "User", Value: fmt.Sprintf("%s (%s)", e.User().Username, e.User().ID), Inline: true},
		services.Field{Name: "Coins Claimed", Value: fmt.Sprintf("%d CF coins", coins), Inline: true},
		services.Field{Name: "New Balance", Value: fmt.Sprintf("%d CF coins", newBalance), Inline: true},
	)

	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       title,
			Description: fmt.Sprintf("You received **%d CF coins**!", coins),
			Color:       color,
			Fields: []discord.EmbedField{{
				Name:  "💳 Your Balance",
				Value: fmt.Sprintf("%d CF coins", newBalance),
			}},
			Footer: &discord.EmbedFooter{Text: footer},
			Author: &discord.EmbedAuthor{
				Name:    e.User().Username,
				IconURL: e.User().EffectiveAvatarURL(),
			},
		}},
	})
}
