package economy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/champfut/champfutbot/champfutbot/config"
	"github.com/champfut/champfutbot/champfutbot/economy"
	"github.com/champfut/champfutbot/champfutbot/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// HandleWallet shows the user's coin balance and pack inventory.
func (h *Handler) HandleWallet(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := h.bot.UserRepository.GetOrCreate(ctx, e.User().ID.String(), e.User().Username)
	if err != nil {
		slog.Error("Failed to get user",
			slog.String("type", "db"),
			slog.String("discord_id", e.User().ID.String()),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to get user data. Please try again later.")
	}

	var packText string
	var totalPacks int64
	for _, pt := range economy.PackOrder {
		count := user.PackCount(string(pt))
		totalPacks += count
		if count > 0 {
			info := economy.PackTypes[pt]
			packText += fmt.Sprintf("%s **%s:** %d\n", info.Emoji, info.Name, count)
		}
	}
	if packText == "" {
		packText = "No packs owned"
	}

	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "💼 Your CF Wallet",
			Description: fmt.Sprintf("**💰 CF Coins:** %d", user.Balance),
			Color:       config.InfoColor,
			Fields: []discord.EmbedField{{
				Name:  "📦 Your Packs",
				Value: packText,
			}},
			Footer: &discord.EmbedFooter{Text: fmt.Sprintf("Total Packs: %d", totalPacks)},
			Author: &discord.EmbedAuthor{
				Name:    e.User().Username,
				IconURL: e.User().EffectiveAvatarURL(),
			},
		}},
	})
}

// HandleShop lists the purchasable pack tiers.
func (h *Handler) HandleShop(e *handler.CommandEvent) error {
	embed := discord.Embed{
		Title:       "🏪 CF Coins Pack Shop",
		Description: "Purchase packs with your CF coins to get rare cards!",
		Color:       config.GoldColor,
		Footer:      &discord.EmbedFooter{Text: "Use /cfcoins buy <pack_type> to purchase a pack!"},
		Author: &discord.EmbedAuthor{
			Name:    e.User().Username,
			IconURL: e.User().EffectiveAvatarURL(),
		},
	}

	for _, pt := range economy.PackOrder {
		info := economy.PackTypes[pt]
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name: fmt.Sprintf("%s %s", info.Emoji, info.Name),
			Value: fmt.Sprintf("**Price:** %d CF coins\n**Rarity Range:** %g - %g\nUse `/cfcoins buy %s` to purchase!",
				info.Price, info.MinRarity, info.MaxRarity, pt),
		})
	}

	return e.CreateMessage(discord.MessageCreate{Embeds: []discord.Embed{embed}})
}
