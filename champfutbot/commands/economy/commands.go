package economy

import (
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{
	CoinsCommand,
	CollectionCommand,
}

func intPtr(v int) *int {
	return &v
}

var packChoices = []discord.ApplicationCommandOptionChoiceString{
	{Name: "Normal Pack (100 coins)", Value: "normal"},
	{Name: "Epic Pack (250 coins)", Value: "epic"},
	{Name: "Mythic Pack (500 coins)", Value: "mythic"},
	{Name: "Legendary Pack (1500 coins)", Value: "legendary"},
}

var CoinsCommand = discord.SlashCommandCreate{
	Name:        "cfcoins",
	Description: "CF coins economy commands",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "daily",
			Description: "Claim your daily CF coins!",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "weekly",
			Description: "Claim your weekly CF coins!",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "wallet",
			Description: "Check your CF coins and packs!",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "shop",
			Description: "View the CF coins pack shop!",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "buy",
			Description: "Buy a pack with CF coins!",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "pack_type",
					Description: "The type of pack to buy",
					Required:    true,
					Choices:     packChoices,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "open",
			Description: "Open a pack to get a card!",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "pack_type",
					Description: "The type of pack to open",
					Required:    true,
					Choices:     packChoices,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "sell",
			Description: "Sell a card for CF coins!",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:         "card",
					Description:  "The card you want to sell",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "giftcoins",
			Description: "Gift CF coins to another user!",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionUser{
					Name:        "user",
					Description: "The user to gift coins to",
					Required:    true,
				},
				discord.ApplicationCommandOptionInt{
					Name:        "amount",
					Description: "Amount of CF coins to gift",
					Required:    true,
					MinValue:    intPtr(1),
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "giftpacks",
			Description: "Gift a pack to another user!",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionUser{
					Name:        "user",
					Description: "The user to gift the pack to",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "pack_type",
					Description: "The type of pack to gift",
					Required:    true,
					Choices:     packChoices,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "adminaddcoins",
			Description: "[ADMIN] Add CF coins to a user",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionUser{
					Name:        "user",
					Description: "The user to add coins to",
					Required:    true,
				},
				discord.ApplicationCommandOptionInt{
					Name:        "amount",
					Description: "Amount of CF coins to add",
					Required:    true,
					MinValue:    intPtr(1),
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "adminremovecoins",
			Description: "[ADMIN] Remove CF coins from a user",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionUser{
					Name:        "user",
					Description: "The user to remove coins from",
					Required:    true,
				},
				discord.ApplicationCommandOptionInt{
					Name:        "amount",
					Description: "Amount of CF coins to remove",
					Required:    true,
					MinValue:    intPtr(1),
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "adminaddpacks",
			Description: "[ADMIN] Add packs to a user",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionUser{
					Name:        "user",
					Description: "The user to add packs to",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "pack_type",
					Description: "The type of pack to add",
					Required:    true,
					Choices:     packChoices,
				},
				discord.ApplicationCommandOptionInt{
					Name:        "amount",
					Description: "Number of packs to add",
					Required:    true,
					MinValue:    intPtr(1),
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "adminremovepacks",
			Description: "[ADMIN] Remove packs from a user",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionUser{
					Name:        "user",
					Description: "The user to remove packs from",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "pack_type",
					Description: "The type of pack to remove",
					Required:    true,
					Choices:     packChoices,
				},
				discord.ApplicationCommandOptionInt{
					Name:        "amount",
					Description: "Number of packs to remove",
					Required:    true,
					MinValue:    intPtr(1),
				},
			},
		},
	},
}

var CollectionCommand = discord.SlashCommandCreate{
	Name:        "collection",
	Description: "Browse your card collection",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "The user whose collection to browse",
			Required:    false,
		},
	},
}
