package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64  `bun:"id,pk,autoincrement"`
	DiscordID string `bun:"discord_id,notnull,unique"`
	Username  string `bun:"username,notnull"`

	// Coin wallet
	Balance int64 `bun:"balance,notnull,default:0"`

	// Owned packs keyed by pack type
	Packs map[string]int64 `bun:"packs,type:jsonb"`

	// Cooldown timestamps
	LastDaily  time.Time `bun:"last_daily"`
	LastWeekly time.Time `bun:"last_weekly"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// PackCount returns the number of owned packs of the given type.
func (u *User) PackCount(packType string) int64 {
	if u.Packs == nil {
		return 0
	}
	return u.Packs[packType]
}
