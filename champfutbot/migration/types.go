package migration

import "time"

// LegacyUser mirrors a document from the old bot's users dump.
type LegacyUser struct {
	DiscordID  string           `bson:"discord_id"`
	Username   string           `bson:"username"`
	Exp        int64            `bson:"exp"`
	Packs      map[string]int64 `bson:"packs"`
	LastDaily  time.Time        `bson:"lastdaily"`
	LastWeekly time.Time        `bson:"lastweekly"`
	JoinedAt   time.Time        `bson:"joined"`
}

// LegacyCard mirrors a document from the old bot's card catalog dump.
type LegacyCard struct {
	ID     int64   `bson:"id"`
	Name   string  `bson:"name"`
	Rarity float64 `bson:"rarity"`
	Attack int     `bson:"attack"`
	Health int     `bson:"health"`
	Image  string  `bson:"image"`
}

// LegacyUserCard mirrors a document from the old bot's owned-cards dump.
type LegacyUserCard struct {
	UserID      string    `bson:"userid"`
	CardID      int64     `bson:"cardid"`
	AttackBonus int       `bson:"attack_bonus"`
	HealthBonus int       `bson:"health_bonus"`
	Favorite    bool      `bson:"fav"`
	Obtained    time.Time `bson:"obtained"`
}

// TableStats holds counters for a single migrated table.
type TableStats struct {
	Read     int
	Inserted int
	Skipped  int
	Failed   int
}

// Stats aggregates progress across the whole run.
type Stats struct {
	Tables    map[string]*TableStats
	StartTime time.Time
}

func (s *Stats) table(name string) *TableStats {
	t, ok := s.Tables[name]
	if !ok {
		t = &TableStats{}
		s.Tables[name] = t
	}
	return t
}
