package repositories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/champfut/champfutbot/champfutbot/database/models"
	"github.com/uptrace/bun"
)

var (
	ErrInsufficientFunds = errors.New("insufficient coin balance")
	ErrNoPacks           = errors.New("no packs of this type owned")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByDiscordID(ctx context.Context, discordID string) (*models.User, error)
	GetOrCreate(ctx context.Context, discordID, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	GetBalance(ctx context.Context, discordID string) (int64, error)
	AddCoins(ctx context.Context, discordID string, amount int64) error
	RemoveCoins(ctx context.Context, discordID string, amount int64) error
	TransferCoins(ctx context.Context, fromID, toID string, amount int64) error
	PurchasePack(ctx context.Context, discordID, packType string, price int64) error
	ConsumePack(ctx context.Context, discordID, packType string) error
	AddPacks(ctx context.Context, discordID, packType string, count int64) error
	RemovePacks(ctx context.Context, discordID, packType string, count int64) error
	TransferPack(ctx context.Context, fromID, toID, packType string) error
	UpdateLastDaily(ctx context.Context, discordID string) error
	UpdateLastWeekly(ctx context.Context, discordID string) error
}

type userRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	if user.Packs == nil {
		user.Packs = map[string]int64{}
	}
	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	return err
}

func (r *userRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("discord_id = ?", discordID).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		slog.Error("Database error when getting user",
			slog.String("type", "db"),
			slog.String("discord_id", discordID),
			slog.Any("error", err))
	}
	return user, err
}

func (r *userRepository) GetOrCreate(ctx context.Context, discordID, username string) (*models.User, error) {
	user, err := r.GetByDiscordID(ctx, discordID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	user = &models.User{
		DiscordID: discordID,
		Username:  username,
		Packs:     map[string]int64{},
	}
	if err := r.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	return err
}

func (r *userRepository) GetBalance(ctx context.Context, discordID string) (int64, error) {
	var balance int64
	err := r.db.NewSelect().
		Model((*models.User)(nil)).
		Column("balance").
		Where("discord_id = ?", discordID).
		Scan(ctx, &balance)
	return balance, err
}

func (r *userRepository) AddCoins(ctx context.Context, discordID string, amount int64) error {
	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("balance = balance + ?", amount).
		Set("updated_at = ?", time.Now()).
		Where("discord_id = ?", discordID).
		Exec(ctx)
	return err
}

// RemoveCoins debits up to amount, flooring the balance at zero.
func (r *userRepository) RemoveCoins(ctx context.Context, discordID string, amount int64) error {
	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("balance = GREATEST(balance - ?, 0)", amount).
		Set("updated_at = ?", time.Now()).
		Where("discord_id = ?", discordID).
		Exec(ctx)
	return err
}

func (r *userRepository) TransferCoins(ctx context.Context, fromID, toID string, amount int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("balance = balance - ?", amount).
			Set("updated_at = ?", time.Now()).
			Where("discord_id = ? AND balance >= ?", fromID, amount).
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrInsufficientFunds
		}

		_, err = tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("balance = balance + ?", amount).
			Set("updated_at = ?", time.Now()).
			Where("discord_id = ?", toID).
			Exec(ctx)
		return err
	})
}

// PurchasePack debits the price and credits one pack of the type atomically.
func (r *userRepository) PurchasePack(ctx context.Context, discordID, packType string, price int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		user, err := lockUserRow(ctx, tx, discordID)
		if err != nil {
			return err
		}
		if user.Balance < price {
			return ErrInsufficientFunds
		}
		user.Balance -= price
		if user.Packs == nil {
			user.Packs = map[string]int64{}
		}
		user.Packs[packType]++
		return updateUserRow(ctx, tx, user)
	})
}

// ConsumePack decrements one pack of the type, failing when none are owned.
func (r *userRepository) ConsumePack(ctx context.Context, discordID, packType string) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		user, err := lockUserRow(ctx, tx, discordID)
		if err != nil {
			return err
		}
		if user.PackCount(packType) < 1 {
			return ErrNoPacks
		}
		user.Packs[packType]--
		return updateUserRow(ctx, tx, user)
	})
}

func (r *userRepository) AddPacks(ctx context.Context, discordID, packType string, count int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		user, err := lockUserRow(ctx, tx, discordID)
		if err != nil {
			return err
		}
		if user.Packs == nil {
			user.Packs = map[string]int64{}
		}
		user.Packs[packType] += count
		return updateUserRow(ctx, tx, user)
	})
}

// RemovePacks removes up to count packs, flooring the count at zero.
func (r *userRepository) RemovePacks(ctx context.Context, discordID, packType string, count int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		user, err := lockUserRow(ctx, tx, discordID)
		if err != nil {
			return err
		}
		if user.Packs == nil {
			return nil
		}
		user.Packs[packType] -= count
		if user.Packs[packType] < 0 {
			user.Packs[packType] = 0
		}
		return updateUserRow(ctx, tx, user)
	})
}

func (r *userRepository) TransferPack(ctx context.Context, fromID, toID, packType string) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		from, err := lockUserRow(ctx, tx, fromID)
		if err != nil {
			return err
		}
		if from.PackCount(packType) < 1 {
			return ErrNoPacks
		}
		to, err := lockUserRow(ctx, tx, toID)
		if err != nil {
			return err
		}
		from.Packs[packType]--
		if to.Packs == nil {
			to.Packs = map[string]int64{}
		}
		to.Packs[packType]++
		if err := updateUserRow(ctx, tx, from); err != nil {
			return err
		}
		return updateUserRow(ctx, tx, to)
	})
}

func (r *userRepository) UpdateLastDaily(ctx context.Context, discordID string) error {
	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("last_daily = ?", time.Now()).
		Set("updated_at = ?", time.Now()).
		Where("discord_id = ?", discordID).
		Exec(ctx)
	return err
}

func (r *userRepository) UpdateLastWeekly(ctx context.Context, discordID string) error {
	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("last_weekly = ?", time.Now()).
		Set("updated_at = ?", time.Now()).
		Where("discord_id = ?", discordID).
		Exec(ctx)
	return err
}

func lockUserRow(ctx context.Context, tx bun.Tx, discordID string) (*models.User, error) {
	user := new(models.User)
	err := tx.NewSelect().
		Model(user).
		Where("discord_id = ?", discordID).
		For("UPDATE").
		Scan(ctx)
	return user, err
}

func updateUserRow(ctx context.Context, tx bun.Tx, user *models.User) error {
	user.UpdatedAt = time.Now()
	_, err := tx.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	return err
}
