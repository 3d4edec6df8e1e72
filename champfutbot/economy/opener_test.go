package economy

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/champfut/champfutbot/champfutbot/database/models"
	"github.com/champfut/champfutbot/champfutbot/database/repositories"
)

// The fakes embed their interface so only the methods the opener touches
// need implementations; anything else panics and fails the test.

type fakeCardRepo struct {
	repositories.CardRepository
	pool  []*models.Card
	calls int
}

func (f *fakeCardRepo) GetByRarityRange(_ context.Context, _, _ float64) ([]*models.Card, error) {
	f.calls++
	return f.pool, nil
}

type fakeUserRepo struct {
	repositories.UserRepository
	consumed []string
}

func (f *fakeUserRepo) ConsumePack(_ context.Context, discordID, packType string) error {
	f.consumed = append(f.consumed, discordID+"/"+packType)
	return nil
}

type fakeInstanceRepo struct {
	repositories.CardInstanceRepository
	created []*models.CardInstance
}

func (f *fakeInstanceRepo) Create(_ context.Context, instance *models.CardInstance) error {
	instance.ID = int64(len(f.created) + 1)
	f.created = append(f.created, instance)
	return nil
}

func newTestOpener(pool []*models.Card) (*Opener, *fakeCardRepo, *fakeUserRepo, *fakeInstanceRepo) {
	cards := &fakeCardRepo{pool: pool}
	users := &fakeUserRepo{}
	instances := &fakeInstanceRepo{}
	o := NewOpener(cards, instances, users)
	o.rnd = rand.New(rand.NewSource(1))
	return o, cards, users, instances
}

func TestOpener_Open(t *testing.T) {
	card := &models.Card{ID: 7, Name: "Striker", Rarity: 20.0, Attack: 50, Health: 50}
	o, _, users, instances := newTestOpener([]*models.Card{card})

	inst, err := o.Open(context.Background(), "123", PackNormal)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(users.consumed) != 1 || users.consumed[0] != "123/normal" {
		t.Errorf("consumed = %v, want one normal pack for user 123", users.consumed)
	}
	if len(instances.created) != 1 {
		t.Fatalf("created = %d instances, want 1", len(instances.created))
	}
	if inst.CardID != card.ID || inst.Card != card {
		t.Error("instance should reference the drawn card")
	}
	if inst.UserID != "123" {
		t.Errorf("instance owner = %q, want %q", inst.UserID, "123")
	}
	if !inst.Tradeable {
		t.Error("freshly opened instances should be tradeable")
	}
	if inst.AttackBonus < -20 || inst.AttackBonus > 20 {
		t.Errorf("attack bonus = %d, want within [-20, 20]", inst.AttackBonus)
	}
	if inst.HealthBonus < -20 || inst.HealthBonus > 20 {
		t.Errorf("health bonus = %d, want within [-20, 20]", inst.HealthBonus)
	}
}

func TestOpener_Open_EmptyRangeKeepsPack(t *testing.T) {
	o, _, users, instances := newTestOpener(nil)

	_, err := o.Open(context.Background(), "123", PackLegendary)
	if !errors.Is(err, ErrNoCardsInRange) {
		t.Fatalf("Open() error = %v, want ErrNoCardsInRange", err)
	}
	if len(users.consumed) != 0 {
		t.Error("an empty rarity pool must not consume the pack")
	}
	if len(instances.created) != 0 {
		t.Error("an empty rarity pool must not mint an instance")
	}
}

func TestOpener_Open_UnknownPackType(t *testing.T) {
	o, _, _, _ := newTestOpener(nil)
	if _, err := o.Open(context.Background(), "123", PackType("golden")); err == nil {
		t.Fatal("unknown pack type should error")
	}
}

func TestOpener_Draw_WeightsTowardRarer(t *testing.T) {
	common := &models.Card{ID: 1, Name: "Common", Rarity: 1.0}
	rare := &models.Card{ID: 2, Name: "Rare", Rarity: 0.01}
	o, _, _, _ := newTestOpener([]*models.Card{common, rare})

	counts := map[int64]int{}
	for i := 0; i < 1000; i++ {
		card, err := o.Draw(context.Background(), 0.01, 1.0)
		if err != nil {
			t.Fatalf("Draw() error = %v", err)
		}
		counts[card.ID]++
	}

	// Weight is 1/rarity, so the rare card carries ~99% of the mass.
	if counts[rare.ID] < 900 {
		t.Errorf("rare draws = %d of 1000, want the heavy majority", counts[rare.ID])
	}
	if counts[common.ID] == 0 {
		t.Log("common card never drawn in 1000 rolls; acceptable but unusual")
	}
}

func TestOpener_Draw_CachesPool(t *testing.T) {
	card := &models.Card{ID: 1, Name: "Striker", Rarity: 20.0}
	o, cards, _, _ := newTestOpener([]*models.Card{card})

	for i := 0; i < 5; i++ {
		if _, err := o.Draw(context.Background(), 15.0, 30.0); err != nil {
			t.Fatalf("Draw() error = %v", err)
		}
	}
	if cards.calls != 1 {
		t.Errorf("rarity pool fetched %d times, want 1 (cached)", cards.calls)
	}
}
