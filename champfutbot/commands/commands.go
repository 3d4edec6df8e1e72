package commands

import (
	"github.com/champfut/champfutbot/champfutbot/commands/economy"
	"github.com/champfut/champfutbot/champfutbot/commands/game"
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands, economy.Commands...)
	Commands = append(Commands, game.Commands...)
}
