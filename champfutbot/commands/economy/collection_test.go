package economy

import (
	"strings"
	"testing"

	"github.com/champfut/champfutbot/champfutbot/database/models"
)

func TestFormatCollectionEntry(t *testing.T) {
	inst := &models.CardInstance{
		ID:       7,
		Favorite: true,
		Card: &models.Card{
			ID:     7,
			Name:   "Striker",
			Rarity: 0.5,
			Attack: 80,
			Health: 40,
		},
	}

	got := formatCollectionEntry(inst)
	for _, want := range []string{"#7", "Striker", "80", "40", "0.5", "❤️"} {
		if !strings.Contains(got, want) {
			t.Errorf("entry %q missing %q", got, want)
		}
	}
}

func TestFormatCollectionEntry_MissingCatalogRow(t *testing.T) {
	inst := &models.CardInstance{ID: 9, AttackBonus: 5, HealthBonus: -3}

	got := formatCollectionEntry(inst)
	if !strings.Contains(got, "#9") {
		t.Errorf("entry %q should fall back to the instance id", got)
	}
	if !strings.Contains(got, "🎯 0") {
		t.Errorf("entry %q should show rarity 0 without a catalog row", got)
	}
}
