package game

import (
	"reflect"
	"testing"

	"github.com/champfut/champfutbot/champfutbot/database/models"
)

func instance(id int64, attack, health int) *models.CardInstance {
	return &models.CardInstance{
		ID:     id,
		CardID: id,
		Card: &models.Card{
			ID:     id,
			Name:   "Player",
			Attack: attack,
			Health: health,
		},
	}
}

func TestParticipant_TeamStrength(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *Participant)
		want  float64
	}{
		{
			name:  "empty roster",
			setup: func(p *Participant) {},
			want:  0,
		},
		{
			name: "single card",
			setup: func(p *Participant) {
				p.Team[PositionGK] = append(p.Team[PositionGK], instance(1, 40, 60))
			},
			want: 100,
		},
		{
			name: "mean across positions",
			setup: func(p *Participant) {
				p.Team[PositionGK] = append(p.Team[PositionGK], instance(1, 40, 60))
				p.Team[PositionFW] = append(p.Team[PositionFW], instance(2, 100, 100))
			},
			want: 150,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParticipant(1, "alice")
			tt.setup(p)
			if got := p.TeamStrength(); got != tt.want {
				t.Errorf("TeamStrength() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParticipant_HasMinimumTeam(t *testing.T) {
	p := NewParticipant(1, "alice")
	if p.HasMinimumTeam() {
		t.Fatal("empty roster should not satisfy the team minimum")
	}

	var id int64
	for _, pos := range Positions {
		id++
		p.Team[pos] = append(p.Team[pos], instance(id, 10, 10))
	}
	if !p.HasMinimumTeam() {
		t.Fatal("one card per position should satisfy the team minimum")
	}

	p.Team[PositionMF] = nil
	if p.HasMinimumTeam() {
		t.Fatal("an empty position should fail the team minimum")
	}
}

func TestParticipant_LockedInstanceIDs_Dedupes(t *testing.T) {
	p := NewParticipant(1, "alice")
	rostered := instance(1, 10, 10)
	betOnly := instance(2, 10, 10)
	p.Team[PositionFW] = append(p.Team[PositionFW], rostered)
	p.Bets = append(p.Bets, rostered, betOnly)

	got := p.lockedInstanceIDs()
	want := []int64{1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lockedInstanceIDs() = %v, want %v", got, want)
	}
}
