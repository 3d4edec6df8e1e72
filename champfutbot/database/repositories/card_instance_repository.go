package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/champfut/champfutbot/champfutbot/database/models"
	"github.com/uptrace/bun"
)

// ErrInstanceLocked is returned when a trade-lock cannot be acquired because
// another trade or match already holds it.
var ErrInstanceLocked = errors.New("card instance is locked by another trade or match")

type CardInstanceRepository interface {
	Create(ctx context.Context, instance *models.CardInstance) error
	GetByID(ctx context.Context, id int64) (*models.CardInstance, error)
	GetAllByUserID(ctx context.Context, userID string) ([]*models.CardInstance, error)
	Update(ctx context.Context, instance *models.CardInstance) error
	Delete(ctx context.Context, id int64) error
	Lock(ctx context.Context, id int64) error
	Unlock(ctx context.Context, id int64) error
	IsLocked(ctx context.Context, id int64) (bool, error)
	TransferOwner(ctx context.Context, id int64, newOwnerID string) error
}

type cardInstanceRepository struct {
	db *bun.DB
}

func NewCardInstanceRepository(db *bun.DB) CardInstanceRepository {
	return &cardInstanceRepository{db: db}
}

func (r *cardInstanceRepository) Create(ctx context.Context, instance *models.CardInstance) error {
	now := time.Now()
	if instance.Obtained.IsZero() {
		instance.Obtained = now
	}
	instance.CreatedAt = now
	instance.UpdatedAt = now
	_, err := r.db.NewInsert().Model(instance).Exec(ctx)
	return err
}

func (r *cardInstanceRepository) GetByID(ctx context.Context, id int64) (*models.CardInstance, error) {
	instance := new(models.CardInstance)
	err := r.db.NewSelect().
		Model(instance).
		Relation("Card").
		Where("ci.id = ?", id).
		Scan(ctx)
	return instance, err
}

func (r *cardInstanceRepository) GetAllByUserID(ctx context.Context, userID string) ([]*models.CardInstance, error) {
	var instances []*models.CardInstance
	err := r.db.NewSelect().
		Model(&instances).
		Relation("Card").
		Where("ci.user_id = ?", userID).
		Order("ci.obtained DESC").
		Scan(ctx)
	return instances, err
}

func (r *cardInstanceRepository) Update(ctx context.Context, instance *models.CardInstance) error {
	instance.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(instance).
		WherePK().
		Exec(ctx)
	return err
}

func (r *cardInstanceRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().
		Model((*models.CardInstance)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// Lock acquires the exclusive trade-lock. The conditional update makes the
// acquisition atomic: two concurrent matches cannot both claim the instance.
func (r *cardInstanceRepository) Lock(ctx context.Context, id int64) error {
	res, err := r.db.NewUpdate().
		Model((*models.CardInstance)(nil)).
		Set("locked = TRUE").
		Set("updated_at = ?", time.Now()).
		Where("id = ? AND locked = FALSE", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInstanceLocked
	}
	return nil
}

func (r *cardInstanceRepository) Unlock(ctx context.Context, id int64) error {
	_, err := r.db.NewUpdate().
		Model((*models.CardInstance)(nil)).
		Set("locked = FALSE").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *cardInstanceRepository) IsLocked(ctx context.Context, id int64) (bool, error) {
	var locked bool
	err := r.db.NewSelect().
		Model((*models.CardInstance)(nil)).
		Column("locked").
		Where("id = ?", id).
		Scan(ctx, &locked)
	return locked, err
}

func (r *cardInstanceRepository) TransferOwner(ctx context.Context, id int64, newOwnerID string) error {
	_, err := r.db.NewUpdate().
		Model((*models.CardInstance)(nil)).
		Set("user_id = ?", newOwnerID).
		Set("favorite = FALSE").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
