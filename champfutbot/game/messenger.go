package game

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

// RestMessenger drives the match display through the Discord REST API.
type RestMessenger struct {
	rest rest.Rest
}

func NewRestMessenger(rest rest.Rest) *RestMessenger {
	return &RestMessenger{rest: rest}
}

func (m *RestMessenger) Send(channelID snowflake.ID, message discord.MessageCreate) (snowflake.ID, error) {
	msg, err := m.rest.CreateMessage(channelID, message)
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

func (m *RestMessenger) Edit(channelID, messageID snowflake.ID, update discord.MessageUpdate) error {
	_, err := m.rest.UpdateMessage(channelID, messageID, update)
	return err
}
