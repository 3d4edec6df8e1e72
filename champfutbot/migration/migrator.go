package migration

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/champfut/champfutbot/champfutbot/database/models"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
)

// Migrator imports BSON dumps of the old bot's Mongo collections into
// the PostgreSQL schema. Cards must be imported before user cards so
// instance rows never reference a missing catalog entry.
type Migrator struct {
	pgDB      *bun.DB
	dataDir   string
	batchSize int
	stats     Stats
}

func NewMigrator(pgDB *bun.DB, dataDir string) *Migrator {
	return &Migrator{
		pgDB:      pgDB,
		dataDir:   dataDir,
		batchSize: 1000,
		stats: Stats{
			Tables:    make(map[string]*TableStats),
			StartTime: time.Now(),
		},
	}
}

// SetBatchSize overrides the default insert batch size (useful for poolers/timeouts).
func (m *Migrator) SetBatchSize(size int) {
	if size > 0 {
		m.batchSize = size
	}
}

// MigrateAll runs every import in dependency order.
func (m *Migrator) MigrateAll(ctx context.Context) error {
	if err := m.MigrateCards(ctx); err != nil {
		return fmt.Errorf("cards migration failed: %w", err)
	}
	if err := m.MigrateUsers(ctx); err != nil {
		return fmt.Errorf("users migration failed: %w", err)
	}
	if err := m.MigrateUserCards(ctx); err != nil {
		return fmt.Errorf("user cards migration failed: %w", err)
	}
	m.logSummary()
	return nil
}

// MigrateCards imports the card catalog from cards.bson.
func (m *Migrator) MigrateCards(ctx context.Context) error {
	st := m.stats.table("cards")
	var cards []*models.Card
	err := m.eachDocument(filepath.Join(m.dataDir, "cards.bson"), func(doc []byte) error {
		var lc LegacyCard
		if err := bson.Unmarshal(doc, &lc); err != nil {
			return err
		}
		st.Read++
		if lc.Name == "" {
			st.Skipped++
			return nil
		}
		cards = append(cards, &models.Card{
			ID:        lc.ID,
			Name:      lc.Name,
			Rarity:    lc.Rarity,
			Attack:    lc.Attack,
			Health:    lc.Health,
			ImageKey:  lc.Image,
			Enabled:   true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("Loaded cards from BSON file", "count", len(cards))
	return batchInsert(ctx, m.pgDB, cards, m.batchSize, st)
}

// MigrateUsers imports wallets and cooldowns from users.bson.
func (m *Migrator) MigrateUsers(ctx context.Context) error {
	st := m.stats.table("users")
	var users []*models.User
	err := m.eachDocument(filepath.Join(m.dataDir, "users.bson"), func(doc []byte) error {
		var lu LegacyUser
		if err := bson.Unmarshal(doc, &lu); err != nil {
			return err
		}
		st.Read++
		if lu.DiscordID == "" {
			st.Skipped++
			return nil
		}
		users = append(users, &models.User{
			DiscordID:  lu.DiscordID,
			Username:   lu.Username,
			Balance:    lu.Exp,
			Packs:      lu.Packs,
			LastDaily:  lu.LastDaily,
			LastWeekly: lu.LastWeekly,
			CreatedAt:  lu.JoinedAt,
			UpdatedAt:  time.Now(),
		})
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("Loaded users from BSON file", "count", len(users))
	return batchInsert(ctx, m.pgDB, users, m.batchSize, st)
}

// MigrateUserCards imports owned copies from usercards.bson. Instances
// always land unlocked: the old bot had no match running at dump time.
func (m *Migrator) MigrateUserCards(ctx context.Context) error {
	st := m.stats.table("card_instances")
	knownCards, err := m.cardIDSet(ctx)
	if err != nil {
		return err
	}
	var instances []*models.CardInstance
	err = m.eachDocument(filepath.Join(m.dataDir, "usercards.bson"), func(doc []byte) error {
		var lc LegacyUserCard
		if err := bson.Unmarshal(doc, &lc); err != nil {
			return err
		}
		st.Read++
		if lc.UserID == "" || !knownCards[lc.CardID] {
			st.Skipped++
			return nil
		}
		obtained := lc.Obtained
		if obtained.IsZero() {
			obtained = time.Now()
		}
		instances = append(instances, &models.CardInstance{
			CardID:      lc.CardID,
			UserID:      lc.UserID,
			AttackBonus: lc.AttackBonus,
			HealthBonus: lc.HealthBonus,
			Favorite:    lc.Favorite,
			Tradeable:   true,
			Locked:      false,
			Obtained:    obtained,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		})
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("Loaded user cards from BSON file", "count", len(instances))
	return batchInsert(ctx, m.pgDB, instances, m.batchSize, st)
}

func (m *Migrator) cardIDSet(ctx context.Context) (map[int64]bool, error) {
	var ids []int64
	if err := m.pgDB.NewSelect().
		Model((*models.Card)(nil)).
		Column("id").
		Scan(ctx, &ids); err != nil {
		return nil, fmt.Errorf("failed to load card ids: %w", err)
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// eachDocument streams a raw BSON dump, invoking fn with each full
// document (length prefix included, as bson.Unmarshal expects).
func (m *Migrator) eachDocument(path string, fn func(doc []byte) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open BSON file %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		lengthBytes := make([]byte, 4)
		if _, err := io.ReadFull(reader, lengthBytes); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read document length: %w", err)
		}

		length := int32(binary.LittleEndian.Uint32(lengthBytes))
		// 4 bytes minimum, 16MB maximum
		if length <= 4 || length > 16*1024*1024 {
			return fmt.Errorf("invalid document length: %d", length)
		}

		// The length includes the 4 bytes of the length itself
		docBytes := make([]byte, length-4)
		if _, err := io.ReadFull(reader, docBytes); err != nil {
			return fmt.Errorf("failed to read document bytes: %w", err)
		}

		if err := fn(append(lengthBytes, docBytes...)); err != nil {
			return fmt.Errorf("failed to decode BSON document in %s: %w", path, err)
		}
	}
}

func batchInsert[T any](ctx context.Context, db *bun.DB, rows []*T, batchSize int, st *TableStats) error {
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]
		res, err := db.NewInsert().
			Model(&batch).
			On("CONFLICT DO NOTHING").
			Exec(ctx)
		if err != nil {
			st.Failed += len(batch)
			return fmt.Errorf("batch insert failed at offset %d: %w", start, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			st.Inserted += int(n)
			st.Skipped += len(batch) - int(n)
		} else {
			st.Inserted += len(batch)
		}
		slog.Info("Inserted batch", "from", start, "to", end, "total", len(rows))
	}
	return nil
}

func (m *Migrator) logSummary() {
	elapsed := time.Since(m.stats.StartTime).Round(time.Millisecond)
	for name, st := range m.stats.Tables {
		slog.Info("Migration table summary",
			"table", name,
			"read", st.Read,
			"inserted", st.Inserted,
			"skipped", st.Skipped,
			"failed", st.Failed,
		)
	}
	slog.Info("Migration finished", "elapsed", elapsed)
}
