package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// CardInstance is a single owned copy of a Card. The locked flag is the
// exclusive trade-lock: a locked instance cannot enter another trade or match.
type CardInstance struct {
	bun.BaseModel `bun:"table:card_instances,alias:ci"`

	ID          int64  `bun:"id,pk,autoincrement"`
	CardID      int64  `bun:"card_id,notnull"`
	UserID      string `bun:"user_id,notnull"`
	AttackBonus int    `bun:"attack_bonus,notnull,default:0"`
	HealthBonus int    `bun:"health_bonus,notnull,default:0"`
	Favorite    bool   `bun:"favorite,notnull,default:false"`
	Tradeable   bool   `bun:"tradeable,notnull,default:true"`
	Locked      bool   `bun:"locked,notnull,default:false"`

	Obtained  time.Time `bun:"obtained,notnull,default:current_timestamp"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`

	Card *Card `bun:"rel:belongs-to,join:card_id=id"`
}

// Attack is the effective attack stat, catalog base plus instance bonus.
func (i *CardInstance) Attack() int {
	if i.Card == nil {
		return i.AttackBonus
	}
	return i.Card.Attack + i.AttackBonus
}

// Health is the effective health stat, catalog base plus instance bonus.
func (i *CardInstance) Health() int {
	if i.Card == nil {
		return i.HealthBonus
	}
	return i.Card.Health + i.HealthBonus
}

// CombinedStat is attack plus health, the value used by match resolution.
func (i *CardInstance) CombinedStat() int {
	return i.Attack() + i.Health()
}

// Rarity is the catalog rarity, 0 when the catalog row is missing.
func (i *CardInstance) Rarity() float64 {
	if i.Card == nil {
		return 0
	}
	return i.Card.Rarity
}

// DisplayName returns the catalog name, falling back to the instance id.
func (i *CardInstance) DisplayName() string {
	if i.Card != nil {
		return i.Card.Name
	}
	return fmt.Sprintf("#%d", i.ID)
}
