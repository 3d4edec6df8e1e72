package economy

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/champfut/champfutbot/champfutbot/database/models"
	"github.com/champfut/champfutbot/champfutbot/database/repositories"
	lru "github.com/hashicorp/golang-lru"
)

// ErrNoCardsInRange means the pack's rarity band matched no enabled card.
// The pack is not consumed in that case.
var ErrNoCardsInRange = errors.New("no cards available in this rarity range")

const (
	poolCacheSize = 16
	poolCacheTTL  = 5 * time.Minute
	bonusRange    = 20
)

type poolEntry struct {
	cards   []*models.Card
	fetched time.Time
}

// Opener draws cards from packs. Rarity pools are cached briefly so
// back-to-back openings don't hammer the cards table.
type Opener struct {
	cards     repositories.CardRepository
	instances repositories.CardInstanceRepository
	users     repositories.UserRepository
	pools     *lru.Cache

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewOpener(cards repositories.CardRepository, instances repositories.CardInstanceRepository, users repositories.UserRepository) *Opener {
	cache, _ := lru.New(poolCacheSize)
	return &Opener{
		cards:     cards,
		instances: instances,
		users:     users,
		pools:     cache,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Open consumes one pack of the given type and mints a new card instance
// for the user. The draw happens before the pack is consumed so an empty
// rarity pool leaves the pack untouched.
func (o *Opener) Open(ctx context.Context, discordID string, packType PackType) (*models.CardInstance, error) {
	info, ok := PackTypes[packType]
	if !ok {
		return nil, fmt.Errorf("unknown pack type %q", packType)
	}

	card, err := o.Draw(ctx, info.MinRarity, info.MaxRarity)
	if err != nil {
		return nil, err
	}

	if err := o.users.ConsumePack(ctx, discordID, string(packType)); err != nil {
		return nil, err
	}

	o.mu.Lock()
	attackBonus := o.rnd.Intn(2*bonusRange+1) - bonusRange
	healthBonus := o.rnd.Intn(2*bonusRange+1) - bonusRange
	o.mu.Unlock()

	instance := &models.CardInstance{
		CardID:      card.ID,
		UserID:      discordID,
		AttackBonus: attackBonus,
		HealthBonus: healthBonus,
		Tradeable:   true,
		Obtained:    time.Now(),
		Card:        card,
	}
	if err := o.instances.Create(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to create card instance: %w", err)
	}
	return instance, nil
}

// Draw picks an enabled card inside the rarity band, weighted toward rarer
// cards: weight is 1/rarity, with non-positive rarities pinned to 100.
func (o *Opener) Draw(ctx context.Context, minRarity, maxRarity float64) (*models.Card, error) {
	pool, err := o.pool(ctx, minRarity, maxRarity)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrNoCardsInRange
	}

	total := 0.0
	weights := make([]float64, len(pool))
	for i, card := range pool {
		w := 100.0
		if card.Rarity > 0 {
			w = 1.0 / card.Rarity
		}
		weights[i] = w
		total += w
	}

	o.mu.Lock()
	target := o.rnd.Float64() * total
	o.mu.Unlock()

	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target <= cumulative {
			return pool[i], nil
		}
	}
	return pool[len(pool)-1], nil
}

func (o *Opener) pool(ctx context.Context, minRarity, maxRarity float64) ([]*models.Card, error) {
	key := fmt.Sprintf("%g-%g", minRarity, maxRarity)
	if v, ok := o.pools.Get(key); ok {
		entry := v.(poolEntry)
		if time.Since(entry.fetched) < poolCacheTTL {
			return entry.cards, nil
		}
		o.pools.Remove(key)
	}

	cards, err := o.cards.GetByRarityRange(ctx, minRarity, maxRarity)
	if err != nil {
		return nil, fmt.Errorf("failed to load rarity pool: %w", err)
	}
	o.pools.Add(key, poolEntry{cards: cards, fetched: time.Now()})
	return cards, nil
}

// Roll runs f under the opener's locked random source, giving command
// handlers one shared generator for reward and sell rolls.
func (o *Opener) Roll(f func(rnd *rand.Rand) int64) int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return f(o.rnd)
}
