package game

import (
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{
	GameCommand,
}

var positionChoices = []discord.ApplicationCommandOptionChoiceString{
	{Name: "Goalkeeper (GK)", Value: "GK"},
	{Name: "Defender (DF)", Value: "DF"},
	{Name: "Midfielder (MF)", Value: "MF"},
	{Name: "Forward (FW)", Value: "FW"},
}

var GameCommand = discord.SlashCommandCreate{
	Name:        "game",
	Description: "Football match commands",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "start",
			Description: "Challenge another user to a football match",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionUser{
					Name:        "opponent",
					Description: "The user to challenge",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "add",
			Description: "Add a card to your team",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "position",
					Description: "The position to play the card at",
					Required:    true,
					Choices:     positionChoices,
				},
				discord.ApplicationCommandOptionString{
					Name:         "card",
					Description:  "The card to add",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "remove",
			Description: "Remove a card from your team",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:         "card",
					Description:  "The card to remove",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "bet",
			Description: "Wager a card on the match",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:         "card",
					Description:  "The card to wager",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "cancel",
			Description: "Cancel your current match",
		},
	},
}
