package economy

import "strings"

// PackType identifies one of the purchasable pack tiers.
type PackType string

const (
	PackNormal    PackType = "normal"
	PackEpic      PackType = "epic"
	PackMythic    PackType = "mythic"
	PackLegendary PackType = "legendary"
)

// PackInfo describes a pack tier: its price and the rarity band it pulls
// cards from. Lower rarity values are rarer cards.
type PackInfo struct {
	Name      string
	Price     int64
	Emoji     string
	Color     int
	MinRarity float64
	MaxRarity float64
}

var PackTypes = map[PackType]PackInfo{
	PackNormal: {
		Name:      "Normal Pack",
		Price:     100,
		Emoji:     "📦",
		Color:     0x3498DB,
		MinRarity: 15.0,
		MaxRarity: 30.0,
	},
	PackEpic: {
		Name:      "Epic Pack",
		Price:     250,
		Emoji:     "🎁",
		Color:     0x9B59B6,
		MinRarity: 1.0,
		MaxRarity: 5.0,
	},
	PackMythic: {
		Name:      "Mythic Pack",
		Price:     500,
		Emoji:     "✨",
		Color:     0xF1C40F,
		MinRarity: 0.1,
		MaxRarity: 1.0,
	},
	PackLegendary: {
		Name:      "Legendary Pack",
		Price:     1500,
		Emoji:     "🌟",
		Color:     0xFFD700,
		MinRarity: 0.01,
		MaxRarity: 0.1,
	},
}

// PackOrder is the display order for the shop and wallet.
var PackOrder = []PackType{PackNormal, PackEpic, PackMythic, PackLegendary}

func ParsePackType(s string) (PackType, bool) {
	pt := PackType(strings.ToLower(strings.TrimSpace(s)))
	_, ok := PackTypes[pt]
	return pt, ok
}
