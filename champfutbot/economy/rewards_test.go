package economy

import (
	"math/rand"
	"testing"
)

func TestSellValue_Bands(t *testing.T) {
	tests := []struct {
		name   string
		rarity float64
		min    int64
		max    int64
	}{
		{name: "common", rarity: 25.0, min: 5, max: 10},
		{name: "band edge 20", rarity: 20.0, min: 5, max: 10},
		{name: "uncommon", rarity: 12.0, min: 10, max: 20},
		{name: "band edge 10", rarity: 10.0, min: 10, max: 20},
		{name: "rare", rarity: 7.0, min: 20, max: 40},
		{name: "very rare", rarity: 3.0, min: 40, max: 80},
		{name: "epic", rarity: 1.5, min: 80, max: 150},
		{name: "band edge 0.5", rarity: 0.5, min: 150, max: 300},
		{name: "mythic", rarity: 0.2, min: 300, max: 600},
		{name: "legendary", rarity: 0.05, min: 600, max: 1000},
		{name: "below every band", rarity: 0.001, min: 1000, max: 2000},
	}

	rnd := rand.New(rand.NewSource(1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				got := SellValue(tt.rarity, rnd)
				if got < tt.min || got > tt.max {
					t.Fatalf("SellValue(%g) = %d, want within [%d, %d]", tt.rarity, got, tt.min, tt.max)
				}
			}
		})
	}
}

func TestRewardRanges(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		if got := DailyReward(rnd); got < 30 || got > 60 {
			t.Fatalf("DailyReward() = %d, want within [30, 60]", got)
		}
		if got := WeeklyReward(rnd); got < 150 || got > 200 {
			t.Fatalf("WeeklyReward() = %d, want within [150, 200]", got)
		}
	}
}

func TestParsePackType(t *testing.T) {
	tests := []struct {
		in     string
		want   PackType
		wantOK bool
	}{
		{in: "normal", want: PackNormal, wantOK: true},
		{in: "EPIC", want: PackEpic, wantOK: true},
		{in: "  mythic  ", want: PackMythic, wantOK: true},
		{in: "Legendary", want: PackLegendary, wantOK: true},
		{in: "golden", wantOK: false},
		{in: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePackType(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParsePackType(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParsePackType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPackTypes_RarityBandsDoNotOverlapPrices(t *testing.T) {
	var lastPrice int64
	for _, pt := range PackOrder {
		info := PackTypes[pt]
		if info.Price <= lastPrice {
			t.Errorf("pack %s price %d should exceed the cheaper tier %d", pt, info.Price, lastPrice)
		}
		if info.MinRarity >= info.MaxRarity {
			t.Errorf("pack %s rarity band [%g, %g] is inverted", pt, info.MinRarity, info.MaxRarity)
		}
		lastPrice = info.Price
	}
}
