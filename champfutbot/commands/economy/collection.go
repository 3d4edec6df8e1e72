package economy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/champfut/champfutbot/champfutbot/config"
	"github.com/champfut/champfutbot/champfutbot/database/models"
	"github.com/champfut/champfutbot/champfutbot/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
)

// HandleCollection pages through a user's card collection, newest first.
func (h *Handler) HandleCollection(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	data := e.SlashCommandInteractionData()
	target := e.User()
	if u, ok := data.OptUser("user"); ok {
		target = u
	}

	instances, err := h.bot.CardInstanceRepository.GetAllByUserID(ctx, target.ID.String())
	if err != nil {
		slog.Error("Failed to load collection",
			slog.String("type", "db"),
			slog.String("discord_id", target.ID.String()),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to load the collection. Please try again later.")
	}

	if len(instances) == 0 {
		return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("%s doesn't own any cards yet.", target.Mention()))
	}

	perPage := config.CardsPerPage
	totalPages := (len(instances) + perPage - 1) / perPage

	return h.bot.Paginator.Create(e.Respond, paginator.Pages{
		ID:      e.ID().String(),
		Creator: e.User().ID,
		PageFunc: func(page int, embed *discord.EmbedBuilder) {
			start := page * perPage
			end := start + perPage
			if end > len(instances) {
				end = len(instances)
			}

			var sb strings.Builder
			for _, inst := range instances[start:end] {
				sb.WriteString(formatCollectionEntry(inst))
				sb.WriteString("\n")
			}

			embed.
				SetTitle(fmt.Sprintf("🃏 %s's Collection", target.Username)).
				SetDescription(sb.String()).
				SetColor(config.InfoColor).
				SetFooter(fmt.Sprintf("Page %d/%d • %d cards", page+1, totalPages, len(instances)), "")
		},
		Pages:      totalPages,
		ExpireMode: paginator.ExpireModeAfterLastUsage,
	}, false)
}

func formatCollectionEntry(inst *models.CardInstance) string {
	markers := ""
	if inst.Favorite {
		markers += " ❤️"
	}
	if inst.Locked {
		markers += " 🔒"
	}
	return fmt.Sprintf("`#%d` **%s** | ⚽ %d | 💖 %d | 🎯 %g%s",
		inst.ID, inst.DisplayName(), inst.Attack(), inst.Health(), inst.Rarity(), markers)
}
