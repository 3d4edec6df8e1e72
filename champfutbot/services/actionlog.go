package services

import (
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

// ActionLogger mirrors economy and match activity into a log channel.
// Logging is best effort: a failed send never fails the command.
type ActionLogger struct {
	rest      rest.Rest
	channelID snowflake.ID
}

func NewActionLogger(rest rest.Rest, channelID snowflake.ID) *ActionLogger {
	return &ActionLogger{rest: rest, channelID: channelID}
}

// Field is one embed field in a log entry.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Log sends an embed to the configured log channel.
func (l *ActionLogger) Log(title, description string, color int, fields ...Field) {
	if l == nil || l.channelID == 0 {
		return
	}

	now := time.Now()
	embed := discord.Embed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   &now,
	}
	for _, f := range fields {
		inline := f.Inline
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: &inline,
		})
	}

	if _, err := l.rest.CreateMessage(l.channelID, discord.MessageCreate{
		Embeds: []discord.Embed{embed},
	}); err != nil {
		slog.Error("Failed to send action log",
			slog.String("type", "error"),
			slog.String("channel_id", l.channelID.String()),
			slog.Any("error", err))
	}
}
