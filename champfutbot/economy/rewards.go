package economy

import (
	"math/rand"
	"time"
)

// Claim cooldowns and reward bands for the periodic coin rewards.
const (
	DailyCooldown  = 24 * time.Hour
	WeeklyCooldown = 7 * 24 * time.Hour

	// Accounts younger than this cannot claim rewards.
	MinAccountAge = 14 * 24 * time.Hour

	dailyMin  = 30
	dailyMax  = 60
	weeklyMin = 150
	weeklyMax = 200
)

// DailyReward rolls the coin amount for a daily claim.
func DailyReward(rnd *rand.Rand) int64 {
	return int64(dailyMin + rnd.Intn(dailyMax-dailyMin+1))
}

// WeeklyReward rolls the coin amount for a weekly claim.
func WeeklyReward(rnd *rand.Rand) int64 {
	return int64(weeklyMin + rnd.Intn(weeklyMax-weeklyMin+1))
}

// SellValue rolls the coin value of a sold card. The bands step up as
// rarity drops: common cards (high rarity value) are nearly worthless,
// the rarest fetch four figures.
func SellValue(rarity float64, rnd *rand.Rand) int64 {
	var min, max int
	switch {
	case rarity >= 20.0:
		min, max = 5, 10
	case rarity >= 10.0:
		min, max = 10, 20
	case rarity >= 5.0:
		min, max = 20, 40
	case rarity >= 2.0:
		min, max = 40, 80
	case rarity >= 1.0:
		min, max = 80, 150
	case rarity >= 0.5:
		min, max = 150, 300
	case rarity >= 0.1:
		min, max = 300, 600
	case rarity >= 0.01:
		min, max = 600, 1000
	default:
		min, max = 1000, 2000
	}
	return int64(min + rnd.Intn(max-min+1))
}
