package utils

import (
	"github.com/champfut/champfutbot/champfutbot/config"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// ResponseHandler provides standardized response methods for commands and components
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// CreateErrorEmbed creates a standard error embed for command events
func (h *ResponseHandler) CreateErrorEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.ErrorColor,
		}},
	})
}

// CreateSuccessEmbed creates a standard success embed for command events
func (h *ResponseHandler) CreateSuccessEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.SuccessColor,
		}},
	})
}

// CreateInfoEmbed creates a standard info embed for command events
func (h *ResponseHandler) CreateInfoEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.InfoColor,
		}},
	})
}

// CreateError creates an ephemeral error message for command events
func (h *ResponseHandler) CreateError(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Content: message,
		Flags:   discord.MessageFlagEphemeral,
	})
}

// CreateEphemeralError creates an ephemeral error message for component events
func (h *ResponseHandler) CreateEphemeralError(event *handler.ComponentEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Content: message,
		Flags:   discord.MessageFlagEphemeral,
	})
}

// CreateEphemeralSuccess creates an ephemeral success message for component events
func (h *ResponseHandler) CreateEphemeralSuccess(event *handler.ComponentEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Content: message,
		Flags:   discord.MessageFlagEphemeral,
	})
}

// UpdateErrorEmbed updates the deferred response with an error embed
func (h *ResponseHandler) UpdateErrorEmbed(event *handler.CommandEvent, message string) error {
	_, err := event.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds: &[]discord.Embed{{
			Description: message,
			Color:       config.ErrorColor,
		}},
	})
	return err
}
