package repositories

import (
	"context"
	"time"

	"github.com/champfut/champfutbot/champfutbot/database/models"
	"github.com/uptrace/bun"
)

type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	GetByID(ctx context.Context, id int64) (*models.Card, error)
	GetAll(ctx context.Context) ([]*models.Card, error)
	GetByRarityRange(ctx context.Context, minRarity, maxRarity float64) ([]*models.Card, error)
}

type cardRepository struct {
	db *bun.DB
}

func NewCardRepository(db *bun.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	card.CreatedAt = time.Now()
	card.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(card).Exec(ctx)
	return err
}

func (r *cardRepository) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	card := new(models.Card)
	err := r.db.NewSelect().
		Model(card).
		Where("id = ?", id).
		Scan(ctx)
	return card, err
}

func (r *cardRepository) GetAll(ctx context.Context) ([]*models.Card, error) {
	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("enabled = TRUE").
		Order("rarity ASC").
		Scan(ctx)
	return cards, err
}

func (r *cardRepository) GetByRarityRange(ctx context.Context, minRarity, maxRarity float64) ([]*models.Card, error) {
	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("rarity >= ? AND rarity <= ?", minRarity, maxRarity).
		Where("enabled = TRUE").
		Scan(ctx)
	return cards, err
}
