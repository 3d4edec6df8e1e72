package game

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/disgoorg/disgo/discord"
)

const (
	colorGreen   = 0x2ECC71
	colorBlue    = 0x3498DB
	colorGold    = 0xF1C40F
	colorDarkRed = 0x992D22
)

const embedFieldLimit = 1024

// Component custom IDs routed by the game handler.
const (
	ComponentLock   = "/game/lock"
	ComponentReset  = "/game/reset"
	ComponentCancel = "/game/cancel"
)

func introDescription(deadline time.Time) string {
	return "Build your team using `/game add` and `/game remove`.\n" +
		"**You need at least one player in each position: GK, DF, MF, FW**\n" +
		"**Optionally use `/game bet` to wager cards from your collection!**\n" +
		"Once ready, click the lock button to confirm your team.\n\n" +
		"**When both players lock, the match will simulate automatically (~1 minute).**\n" +
		"**The stronger team has a 55% chance to win important events!**\n" +
		"**Winner takes ONLY the wagered cards from both players!**\n\n" +
		fmt.Sprintf("*This game will timeout <t:%d:R>.*", deadline.Unix())
}

// buildEmbedLocked renders the building-phase embed. Callers hold m.mu.
func (m *Match) buildEmbedLocked(description string) discord.Embed {
	return m.matchEmbedLocked(colorGreen, description, nil, false)
}

// matchEmbedLocked renders the match embed with both team compositions and
// an optional event log. Callers hold m.mu.
func (m *Match) matchEmbedLocked(color int, description string, events []string, fullLog bool) discord.Embed {
	embed := discord.Embed{
		Title:       "⚽ ChampFut Game",
		Description: description,
		Color:       color,
		Fields: []discord.EmbedField{
			participantField(m.Player1),
			participantField(m.Player2),
		},
	}
	if len(events) > 0 {
		name := "📋 Match Events"
		if fullLog {
			name = "📋 Full Match Events"
		}
		inline := false
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:   name,
			Value:  fmt.Sprintf("```\n%s\n```", strings.Join(events, "\n")),
			Inline: &inline,
		})
	}
	if m.state == StateBuilding {
		embed.Footer = &discord.EmbedFooter{Text: "This message is updated every 15 seconds."}
	}
	return embed
}

func participantField(p *Participant) discord.EmbedField {
	inline := true
	return discord.EmbedField{
		Name:   participantName(p),
		Value:  teamDisplay(p),
		Inline: &inline,
	}
}

func participantName(p *Participant) string {
	switch {
	case p.Cancelled:
		return "🚫 " + p.Username
	case p.Won:
		return "🏆 " + p.Username
	case p.Locked:
		return "✅ " + p.Username
	}
	return p.Username
}

// teamDisplay formats a side's roster grouped by position, with the wagers
// listed below. Locked rosters are italicized, a cancelled side is struck
// through.
func teamDisplay(p *Participant) string {
	var lines []string
	for _, pos := range Positions {
		rostered := p.Team[pos]
		lines = append(lines, fmt.Sprintf("**%s (%d/%d)**", pos, len(rostered), PositionCaps[pos]))
		if len(rostered) == 0 {
			lines = append(lines, "• *Empty*")
			continue
		}
		for _, inst := range rostered {
			entry := fmt.Sprintf("%s | ATK: %d | HP: %d", inst.DisplayName(), inst.Attack(), inst.Health())
			if p.Locked {
				lines = append(lines, fmt.Sprintf("• *%s*", entry))
			} else {
				lines = append(lines, fmt.Sprintf("• %s", entry))
			}
		}
	}

	if len(p.Bets) > 0 {
		lines = append(lines, "", "**BET**")
		for _, inst := range p.Bets {
			lines = append(lines, fmt.Sprintf("• #%d %s | ATK: %d | HP: %d",
				inst.ID, inst.DisplayName(), inst.Attack(), inst.Health()))
		}
	}

	out := strings.Join(lines, "\n")
	if out == "" {
		return "*Empty team*"
	}
	limit := embedFieldLimit
	if p.Cancelled {
		// Truncate before wrapping so the closing ~~ survives.
		limit -= 4
	}
	out = truncateDisplay(out, limit)
	if p.Cancelled {
		out = fmt.Sprintf("~~%s~~", out)
	}
	return out
}

// truncateDisplay shortens s to at most limit bytes, cutting on a rune
// boundary so multibyte markers are never split.
func truncateDisplay(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func matchButtons(disabled bool) []discord.ContainerComponent {
	lock := discord.NewSuccessButton("Lock team", ComponentLock)
	reset := discord.NewSecondaryButton("Reset team", ComponentReset)
	cancel := discord.NewDangerButton("Cancel game", ComponentCancel)
	if disabled {
		lock = lock.AsDisabled()
		reset = reset.AsDisabled()
		cancel = cancel.AsDisabled()
	}
	return []discord.ContainerComponent{discord.NewActionRow(lock, reset, cancel)}
}

// BuildingEmbed renders the current building-phase embed for interaction
// responses.
func (m *Match) BuildingEmbed() discord.Embed {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buildEmbedLocked(introDescription(m.deadline))
}

// Buttons returns the match control row.
func Buttons() []discord.ContainerComponent {
	return matchButtons(false)
}

// editDisplay pushes an embed update to the match message.
func (m *Match) editDisplay(embed discord.Embed, components *[]discord.ContainerComponent) {
	m.mu.Lock()
	channelID, messageID := m.ChannelID, m.messageID
	m.mu.Unlock()
	if messageID == 0 {
		return
	}
	if err := m.messenger.Edit(channelID, messageID, discord.MessageUpdate{
		Embeds:     &[]discord.Embed{embed},
		Components: components,
	}); err != nil {
		slog.Error("Failed to update match message",
			slog.String("type", "game"),
			slog.Any("error", err))
	}
}
