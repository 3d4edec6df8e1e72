package game

import (
	"context"
	"testing"
)

func registryMatch(t *testing.T) *Match {
	t.Helper()
	p1 := NewParticipant(1, "alice")
	p2 := NewParticipant(2, "bob")
	m := NewMatch(10, 20, p1, p2, newFakeStore(), &fakeMessenger{}, testOptions(1))
	if err := m.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRegistry_FindAndPrune(t *testing.T) {
	r := NewRegistry()
	m := registryMatch(t)
	r.Add(m)

	got, p := r.Find(10, 20, 1)
	if got != m || p != m.Player1 {
		t.Fatal("Find should return the match and the caller's side")
	}
	if _, p := r.Find(10, 20, 2); p != m.Player2 {
		t.Fatal("Find should resolve player 2 to their side")
	}
	if got, _ := r.Find(10, 20, 3); got != nil {
		t.Fatal("a non-participant should not resolve to a match")
	}
	if got, _ := r.Find(10, 99, 1); got != nil {
		t.Fatal("a different channel should not resolve to a match")
	}
	if !r.InMatch(10, 20, 1) {
		t.Fatal("InMatch should report a live participant")
	}
	if r.Count(10, 20) != 1 {
		t.Fatalf("Count = %d, want 1", r.Count(10, 20))
	}

	if err := m.Cancel(context.Background(), "done"); err != nil {
		t.Fatal(err)
	}
	waitDone(t, m)

	if got, _ := r.Find(10, 20, 1); got != nil {
		t.Fatal("a finished match should be pruned on lookup")
	}
	if r.Count(10, 20) != 0 {
		t.Fatalf("Count after prune = %d, want 0", r.Count(10, 20))
	}
}

func TestRegistry_MultipleMatchesPerChannel(t *testing.T) {
	r := NewRegistry()
	first := registryMatch(t)
	r.Add(first)

	second := NewMatch(10, 20,
		NewParticipant(3, "carol"),
		NewParticipant(4, "dave"),
		newFakeStore(), &fakeMessenger{}, testOptions(1))
	if err := second.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	r.Add(second)

	if r.Count(10, 20) != 2 {
		t.Fatalf("Count = %d, want 2", r.Count(10, 20))
	}
	if got, _ := r.Find(10, 20, 3); got != second {
		t.Fatal("Find should resolve the caller's own match")
	}
}
