package game

import (
	"github.com/champfut/champfutbot/champfutbot/database/models"
	"github.com/disgoorg/snowflake/v2"
)

// Participant is one side of a match: a user, their roster across the four
// positions, and their wagered instances. Mutated only through Match methods.
type Participant struct {
	UserID   snowflake.ID
	Username string

	Team map[Position][]*models.CardInstance
	Bets []*models.CardInstance

	Locked    bool
	Cancelled bool
	Won       bool
}

func NewParticipant(userID snowflake.ID, username string) *Participant {
	team := make(map[Position][]*models.CardInstance, len(Positions))
	for _, pos := range Positions {
		team[pos] = nil
	}
	return &Participant{
		UserID:   userID,
		Username: username,
		Team:     team,
	}
}

func (p *Participant) Mention() string {
	return "<@" + p.UserID.String() + ">"
}

// AllInstances returns every rostered instance across all positions.
func (p *Participant) AllInstances() []*models.CardInstance {
	var all []*models.CardInstance
	for _, pos := range Positions {
		all = append(all, p.Team[pos]...)
	}
	return all
}

// InTeam reports whether the instance is rostered at any position.
func (p *Participant) InTeam(instanceID int64) bool {
	for _, pos := range Positions {
		for _, inst := range p.Team[pos] {
			if inst.ID == instanceID {
				return true
			}
		}
	}
	return false
}

// InBets reports whether the instance is already wagered.
func (p *Participant) InBets(instanceID int64) bool {
	for _, inst := range p.Bets {
		if inst.ID == instanceID {
			return true
		}
	}
	return false
}

// TeamStrength is the mean combined stat over all rostered instances,
// zero for an empty roster.
func (p *Participant) TeamStrength() float64 {
	all := p.AllInstances()
	if len(all) == 0 {
		return 0
	}
	total := 0
	for _, inst := range all {
		total += inst.CombinedStat()
	}
	return float64(total) / float64(len(all))
}

// HasMinimumTeam reports whether every position has at least one instance.
func (p *Participant) HasMinimumTeam() bool {
	for _, pos := range Positions {
		if len(p.Team[pos]) == 0 {
			return false
		}
	}
	return true
}

// lockedInstanceIDs collects every instance the match holds a trade-lock for
// on this side: the roster plus wagers (bet-only instances are locked too).
func (p *Participant) lockedInstanceIDs() []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, inst := range p.AllInstances() {
		if !seen[inst.ID] {
			seen[inst.ID] = true
			ids = append(ids, inst.ID)
		}
	}
	for _, inst := range p.Bets {
		if !seen[inst.ID] {
			seen[inst.ID] = true
			ids = append(ids, inst.ID)
		}
	}
	return ids
}

func (p *Participant) clear() {
	for _, pos := range Positions {
		p.Team[pos] = nil
	}
	p.Bets = nil
}
