package game

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// Registry tracks the live matches per guild and channel. Finished matches
// are pruned lazily on lookup.
type Registry struct {
	mu      sync.Mutex
	matches map[snowflake.ID]map[snowflake.ID][]*Match
}

func NewRegistry() *Registry {
	return &Registry{matches: make(map[snowflake.ID]map[snowflake.ID][]*Match)}
}

func (r *Registry) Add(m *Match) {
	r.mu.Lock()
	defer r.mu.Unlock()
	channels, ok := r.matches[m.GuildID]
	if !ok {
		channels = make(map[snowflake.ID][]*Match)
		r.matches[m.GuildID] = channels
	}
	channels[m.ChannelID] = append(channels[m.ChannelID], m)
}

// Find returns the live match in the channel that the user participates in,
// along with their side of it.
func (r *Registry) Find(guildID, channelID, userID snowflake.ID) (*Match, *Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()

	live := r.pruneLocked(guildID, channelID)
	for _, m := range live {
		if p, err := m.Participant(userID); err == nil {
			return m, p
		}
	}
	return nil, nil
}

// InMatch reports whether the user is already part of a live match in
// the channel.
func (r *Registry) InMatch(guildID, channelID, userID snowflake.ID) bool {
	m, _ := r.Find(guildID, channelID, userID)
	return m != nil
}

// Count returns the number of live matches in the channel.
func (r *Registry) Count(guildID, channelID snowflake.ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pruneLocked(guildID, channelID))
}

func (r *Registry) pruneLocked(guildID, channelID snowflake.ID) []*Match {
	channels, ok := r.matches[guildID]
	if !ok {
		return nil
	}
	existing := channels[channelID]
	live := existing[:0]
	for _, m := range existing {
		if !m.Finished() {
			live = append(live, m)
		}
	}
	if len(live) == 0 {
		delete(channels, channelID)
		if len(channels) == 0 {
			delete(r.matches, guildID)
		}
		return nil
	}
	channels[channelID] = live
	return live
}
