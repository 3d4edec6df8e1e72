package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Card is a catalog entry. Lower rarity means harder to pull.
type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID       int64   `bun:"id,pk,autoincrement"`
	Name     string  `bun:"name,notnull"`
	Rarity   float64 `bun:"rarity,notnull"`
	Attack   int     `bun:"attack,notnull,default:0"`
	Health   int     `bun:"health,notnull,default:0"`
	EmojiID  string  `bun:"emoji_id"`
	ImageKey string  `bun:"image_key"`
	Enabled  bool    `bun:"enabled,notnull,default:true"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
