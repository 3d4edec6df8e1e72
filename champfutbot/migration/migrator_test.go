package migration

import (
	"os"
	"path/filepath"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func writeDump(t *testing.T, dir, name string, docs []any) string {
	t.Helper()
	var raw []byte
	for _, doc := range docs {
		b, err := bson.Marshal(doc)
		if err != nil {
			t.Fatalf("bson.Marshal() error = %v", err)
		}
		raw = append(raw, b...)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMigrator_EachDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeDump(t, dir, "cards.bson", []any{
		LegacyCard{ID: 1, Name: "Striker", Rarity: 0.5, Attack: 90, Health: 80},
		LegacyCard{ID: 2, Name: "Keeper", Rarity: 12.0, Attack: 40, Health: 95},
	})

	m := NewMigrator(nil, dir)
	var got []LegacyCard
	err := m.eachDocument(path, func(doc []byte) error {
		var lc LegacyCard
		if err := bson.Unmarshal(doc, &lc); err != nil {
			return err
		}
		got = append(got, lc)
		return nil
	})
	if err != nil {
		t.Fatalf("eachDocument() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("decoded %d documents, want 2", len(got))
	}
	if got[0].Name != "Striker" || got[1].Name != "Keeper" {
		t.Errorf("decoded cards = %+v", got)
	}
	if got[0].Rarity != 0.5 || got[1].Attack != 40 {
		t.Errorf("decoded fields = %+v", got)
	}
}

func TestMigrator_EachDocument_TruncatedDump(t *testing.T) {
	dir := t.TempDir()
	doc, err := bson.Marshal(LegacyCard{ID: 1, Name: "Striker"})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "cards.bson")
	if err := os.WriteFile(path, doc[:len(doc)-3], 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewMigrator(nil, dir)
	err = m.eachDocument(path, func([]byte) error { return nil })
	if err == nil {
		t.Fatal("a truncated dump should error")
	}
}

func TestMigrator_EachDocument_MissingFile(t *testing.T) {
	m := NewMigrator(nil, t.TempDir())
	err := m.eachDocument(filepath.Join(t.TempDir(), "absent.bson"), func([]byte) error { return nil })
	if err == nil {
		t.Fatal("a missing dump should error")
	}
}
