package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/champfut/champfutbot/champfutbot/database/repositories"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// fakeStore mirrors the repository's trade-lock semantics in memory.
// When transferGate is set, TransferOwner stalls until the gate closes;
// transferStarted is closed on the first call so tests can line up with
// an in-flight settlement.
type fakeStore struct {
	mu     sync.Mutex
	locked map[int64]bool
	owners map[int64]string

	transferGate    chan struct{}
	transferStarted chan struct{}
	startOnce       sync.Once
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		locked: make(map[int64]bool),
		owners: make(map[int64]string),
	}
}

func (s *fakeStore) Lock(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked[id] {
		return repositories.ErrInstanceLocked
	}
	s.locked[id] = true
	return nil
}

func (s *fakeStore) Unlock(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locked, id)
	return nil
}

func (s *fakeStore) IsLocked(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked[id], nil
}

func (s *fakeStore) TransferOwner(_ context.Context, id int64, newOwnerID string) error {
	if s.transferStarted != nil {
		s.startOnce.Do(func() { close(s.transferStarted) })
	}
	if s.transferGate != nil {
		<-s.transferGate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners[id] = newOwnerID
	return nil
}

func (s *fakeStore) lockedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locked)
}

func (s *fakeStore) owner(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owners[id]
}

// fakeMessenger records sends and edits without touching Discord.
type fakeMessenger struct {
	mu    sync.Mutex
	sends []discord.MessageCreate
	edits []discord.MessageUpdate
}

func (f *fakeMessenger) Send(_ snowflake.ID, message discord.MessageCreate) (snowflake.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, message)
	return snowflake.ID(len(f.sends)), nil
}

func (f *fakeMessenger) Edit(_, _ snowflake.ID, update discord.MessageUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, update)
	return nil
}

func (f *fakeMessenger) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sends)
}

func testOptions(seed int64) Options {
	return Options{
		Timeout:         time.Minute,
		RefreshInterval: time.Minute,
		Rand:            rand.New(rand.NewSource(seed)),
		CoinFlip:        func() int { return 0 },
	}
}

func newTestMatch(t *testing.T, opts Options) (*Match, *fakeStore, *fakeMessenger) {
	t.Helper()
	store := newFakeStore()
	messenger := &fakeMessenger{}
	p1 := NewParticipant(1, "alice")
	p2 := NewParticipant(2, "bob")
	m := NewMatch(10, 20, p1, p2, store, messenger, opts)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return m, store, messenger
}

// fillTeam rosters one card per position through the match so every
// instance acquires its trade-lock.
func fillTeam(t *testing.T, m *Match, p *Participant, baseID int64) {
	t.Helper()
	ctx := context.Background()
	for i, pos := range Positions {
		id := baseID + int64(i)
		if err := m.AddToTeam(ctx, p, pos, instance(id, 50, 50)); err != nil {
			t.Fatalf("AddToTeam(%s, #%d) error = %v", pos, id, err)
		}
	}
}

func waitDone(t *testing.T, m *Match) {
	t.Helper()
	select {
	case <-m.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("match did not finish in time")
	}
}

func TestMatch_AddToTeam(t *testing.T) {
	m, store, _ := newTestMatch(t, testOptions(1))
	defer m.Cancel(context.Background(), "test over")
	ctx := context.Background()
	p := m.Player1

	gk := instance(1, 10, 10)
	if err := m.AddToTeam(ctx, p, PositionGK, gk); err != nil {
		t.Fatalf("AddToTeam() error = %v", err)
	}
	if got, _ := store.IsLocked(ctx, 1); !got {
		t.Error("rostered instance should be trade-locked")
	}

	if err := m.AddToTeam(ctx, p, PositionGK, gk); !errors.Is(err, ErrAlreadyInTeam) {
		t.Errorf("duplicate add error = %v, want ErrAlreadyInTeam", err)
	}
	if err := m.AddToTeam(ctx, p, PositionGK, instance(2, 10, 10)); !errors.Is(err, ErrPositionFull) {
		t.Errorf("over-cap add error = %v, want ErrPositionFull", err)
	}

	// An instance locked elsewhere cannot be rostered.
	if err := store.Lock(ctx, 3); err != nil {
		t.Fatal(err)
	}
	if err := m.AddToTeam(ctx, p, PositionDF, instance(3, 10, 10)); !errors.Is(err, repositories.ErrInstanceLocked) {
		t.Errorf("locked add error = %v, want ErrInstanceLocked", err)
	}
}

func TestMatch_RemoveFromTeam_WithdrawsBet(t *testing.T) {
	m, store, _ := newTestMatch(t, testOptions(1))
	defer m.Cancel(context.Background(), "test over")
	ctx := context.Background()
	p := m.Player1

	inst := instance(1, 10, 10)
	if err := m.AddToTeam(ctx, p, PositionFW, inst); err != nil {
		t.Fatal(err)
	}
	if err := m.PlaceBet(ctx, p, inst); err != nil {
		t.Fatal(err)
	}

	removed, err := m.RemoveFromTeam(ctx, p, 1)
	if err != nil {
		t.Fatalf("RemoveFromTeam() error = %v", err)
	}
	if removed.ID != 1 {
		t.Errorf("removed instance = #%d, want #1", removed.ID)
	}
	if p.InBets(1) {
		t.Error("removing a rostered card should withdraw its wager")
	}
	if got, _ := store.IsLocked(ctx, 1); got {
		t.Error("removed instance should be unlocked")
	}

	if _, err := m.RemoveFromTeam(ctx, p, 99); !errors.Is(err, ErrNotInTeam) {
		t.Errorf("missing remove error = %v, want ErrNotInTeam", err)
	}
}

func TestMatch_PlaceBet(t *testing.T) {
	m, store, _ := newTestMatch(t, testOptions(1))
	defer m.Cancel(context.Background(), "test over")
	ctx := context.Background()
	p := m.Player1

	rostered := instance(1, 10, 10)
	if err := m.AddToTeam(ctx, p, PositionFW, rostered); err != nil {
		t.Fatal(err)
	}
	// Rostered instances reuse their existing lock; a second Lock on the
	// store would fail.
	if err := m.PlaceBet(ctx, p, rostered); err != nil {
		t.Fatalf("PlaceBet(rostered) error = %v", err)
	}
	if err := m.PlaceBet(ctx, p, rostered); !errors.Is(err, ErrAlreadyBet) {
		t.Errorf("duplicate bet error = %v, want ErrAlreadyBet", err)
	}

	betOnly := instance(2, 10, 10)
	if err := m.PlaceBet(ctx, p, betOnly); err != nil {
		t.Fatalf("PlaceBet(bet-only) error = %v", err)
	}
	if got, _ := store.IsLocked(ctx, 2); !got {
		t.Error("bet-only instance should be trade-locked")
	}
}

func TestMatch_Reset_ReleasesEverything(t *testing.T) {
	m, store, _ := newTestMatch(t, testOptions(1))
	defer m.Cancel(context.Background(), "test over")
	ctx := context.Background()
	p := m.Player1

	fillTeam(t, m, p, 100)
	if err := m.PlaceBet(ctx, p, instance(200, 10, 10)); err != nil {
		t.Fatal(err)
	}
	if store.lockedCount() != len(Positions)+1 {
		t.Fatalf("locked = %d, want %d", store.lockedCount(), len(Positions)+1)
	}

	if err := m.Reset(ctx, p); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if store.lockedCount() != 0 {
		t.Errorf("locked after reset = %d, want 0", store.lockedCount())
	}
	if len(p.AllInstances()) != 0 || len(p.Bets) != 0 {
		t.Error("reset should clear the roster and wagers")
	}
}

func TestMatch_Lock_Validation(t *testing.T) {
	m, _, _ := newTestMatch(t, testOptions(1))
	defer m.Cancel(context.Background(), "test over")
	ctx := context.Background()

	if _, err := m.Lock(ctx, m.Player1); !errors.Is(err, ErrIncompleteTeam) {
		t.Fatalf("incomplete lock error = %v, want ErrIncompleteTeam", err)
	}

	fillTeam(t, m, m.Player1, 100)
	both, err := m.Lock(ctx, m.Player1)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if both {
		t.Error("one locked side should not report both locked")
	}
	if _, err := m.Lock(ctx, m.Player1); !errors.Is(err, ErrAlreadyLocked) {
		t.Errorf("second lock error = %v, want ErrAlreadyLocked", err)
	}

	// A locked team rejects edits.
	if err := m.AddToTeam(ctx, m.Player1, PositionDF, instance(300, 10, 10)); !errors.Is(err, ErrTeamLocked) {
		t.Errorf("post-lock add error = %v, want ErrTeamLocked", err)
	}
	if err := m.Reset(ctx, m.Player1); !errors.Is(err, ErrTeamLocked) {
		t.Errorf("post-lock reset error = %v, want ErrTeamLocked", err)
	}
}

func TestMatch_UserCancel_ReleasesLocks(t *testing.T) {
	m, store, _ := newTestMatch(t, testOptions(1))
	ctx := context.Background()

	fillTeam(t, m, m.Player1, 100)
	fillTeam(t, m, m.Player2, 200)
	if err := m.PlaceBet(ctx, m.Player1, instance(300, 10, 10)); err != nil {
		t.Fatal(err)
	}

	if err := m.UserCancel(ctx, m.Player2); err != nil {
		t.Fatalf("UserCancel() error = %v", err)
	}
	waitDone(t, m)

	if m.State() != StateCancelled {
		t.Errorf("state = %v, want StateCancelled", m.State())
	}
	if !m.Player2.Cancelled {
		t.Error("cancelling participant should be flagged")
	}
	if store.lockedCount() != 0 {
		t.Errorf("locked after cancel = %d, want 0", store.lockedCount())
	}

	if err := m.UserCancel(ctx, m.Player1); !errors.Is(err, ErrMatchOver) {
		t.Errorf("cancel after cancel error = %v, want ErrMatchOver", err)
	}
}

func TestMatch_Timeout_ReleasesLocks(t *testing.T) {
	opts := testOptions(1)
	opts.Timeout = time.Millisecond
	opts.RefreshInterval = 5 * time.Millisecond
	m, store, _ := newTestMatch(t, opts)

	fillTeam(t, m, m.Player1, 100)
	waitDone(t, m)

	if m.State() != StateCancelled {
		t.Errorf("state = %v, want StateCancelled", m.State())
	}
	if store.lockedCount() != 0 {
		t.Errorf("locked after timeout = %d, want 0", store.lockedCount())
	}
}

func TestMatch_FullMatch_TransfersWagers(t *testing.T) {
	m, store, messenger := newTestMatch(t, testOptions(42))
	ctx := context.Background()

	fillTeam(t, m, m.Player1, 100)
	fillTeam(t, m, m.Player2, 200)

	// Both sides wager a rostered card, plus one stale bet that is never
	// rostered and must come back unlocked.
	bet1 := m.Player1.Team[PositionFW][0]
	bet2 := m.Player2.Team[PositionFW][0]
	stale := instance(300, 10, 10)
	if err := m.PlaceBet(ctx, m.Player1, bet1); err != nil {
		t.Fatal(err)
	}
	if err := m.PlaceBet(ctx, m.Player2, bet2); err != nil {
		t.Fatal(err)
	}
	if err := m.PlaceBet(ctx, m.Player1, stale); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Lock(ctx, m.Player1); err != nil {
		t.Fatal(err)
	}
	both, err := m.Lock(ctx, m.Player2)
	if err != nil {
		t.Fatal(err)
	}
	if !both {
		t.Fatal("second lock should report both locked")
	}
	waitDone(t, m)

	if m.State() != StateSettled {
		t.Fatalf("state = %v, want StateSettled", m.State())
	}

	var winner *Participant
	switch {
	case m.Player1.Won:
		winner = m.Player1
	case m.Player2.Won:
		winner = m.Player2
	default:
		t.Fatal("no winner flagged after settlement")
	}

	wantOwner := winner.UserID.String()
	for _, id := range []int64{bet1.ID, bet2.ID} {
		if got := store.owner(id); got != wantOwner {
			t.Errorf("wagered card #%d owner = %q, want %q", id, got, wantOwner)
		}
	}
	if got := store.owner(stale.ID); got != "" {
		t.Errorf("stale bet #%d should not change hands, got owner %q", stale.ID, got)
	}
	if store.lockedCount() != 0 {
		t.Errorf("locked after settlement = %d, want 0", store.lockedCount())
	}
	if len(m.Player1.AllInstances()) != 0 || len(m.Player2.AllInstances()) != 0 {
		t.Error("settlement should clear both rosters")
	}
	// Challenge message plus the result announcement.
	if messenger.sendCount() != 2 {
		t.Errorf("sends = %d, want 2", messenger.sendCount())
	}
}

func TestMatch_CancelDuringSettlement_IsRefused(t *testing.T) {
	m, store, _ := newTestMatch(t, testOptions(42))
	ctx := context.Background()

	store.transferGate = make(chan struct{})
	store.transferStarted = make(chan struct{})

	fillTeam(t, m, m.Player1, 100)
	fillTeam(t, m, m.Player2, 200)
	bet := m.Player1.Team[PositionFW][0]
	if err := m.PlaceBet(ctx, m.Player1, bet); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Lock(ctx, m.Player1); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Lock(ctx, m.Player2); err != nil {
		t.Fatal(err)
	}

	select {
	case <-store.transferStarted:
	case <-time.After(5 * time.Second):
		t.Fatal("settlement never reached the wager transfer")
	}

	// The outcome is decided; a cancel arriving mid-transfer must not
	// unwind the settlement.
	if err := m.UserCancel(ctx, m.Player1); !errors.Is(err, ErrMatchOver) {
		t.Errorf("UserCancel during settlement error = %v, want ErrMatchOver", err)
	}

	close(store.transferGate)
	waitDone(t, m)

	if m.State() != StateSettled {
		t.Fatalf("state = %v, want StateSettled", m.State())
	}
	if m.Player1.Cancelled {
		t.Error("refused cancel should not flag the participant")
	}

	var winner *Participant
	switch {
	case m.Player1.Won:
		winner = m.Player1
	case m.Player2.Won:
		winner = m.Player2
	default:
		t.Fatal("no winner flagged after settlement")
	}
	if got := store.owner(bet.ID); got != winner.UserID.String() {
		t.Errorf("wagered card owner = %q, want %q", got, winner.UserID.String())
	}
	if store.lockedCount() != 0 {
		t.Errorf("locked after settlement = %d, want 0", store.lockedCount())
	}
}

func TestMatch_FriendlyMatch_NoTransfers(t *testing.T) {
	m, store, _ := newTestMatch(t, testOptions(7))
	ctx := context.Background()

	fillTeam(t, m, m.Player1, 100)
	fillTeam(t, m, m.Player2, 200)

	if _, err := m.Lock(ctx, m.Player1); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Lock(ctx, m.Player2); err != nil {
		t.Fatal(err)
	}
	waitDone(t, m)

	if m.State() != StateSettled {
		t.Fatalf("state = %v, want StateSettled", m.State())
	}
	if store.lockedCount() != 0 {
		t.Errorf("locked after friendly match = %d, want 0", store.lockedCount())
	}
	for id := int64(100); id < int64(100+len(Positions)); id++ {
		if got := store.owner(id); got != "" {
			t.Errorf("card #%d changed hands in a friendly match", id)
		}
	}
}

func TestMatch_ApplyEvent(t *testing.T) {
	m, _, _ := newTestMatch(t, testOptions(1))
	defer m.Cancel(context.Background(), "test over")

	m.Player1.Team[PositionFW] = append(m.Player1.Team[PositionFW], instance(1, 10, 10))

	res := &result{}
	m.applyEvent(res, 10, m.Player1, m.Player2, eventGoal)
	if res.score1 != 1 {
		t.Errorf("score1 after goal = %d, want 1", res.score1)
	}
	if len(m.events) != 1 {
		t.Fatalf("events = %d, want 1", len(m.events))
	}
	want := fmt.Sprintf("10' | GOAL by %s - %s", m.Player1.Team[PositionFW][0].DisplayName(), m.Player1.Username)
	if m.events[0] != want {
		t.Errorf("event = %q, want %q", m.events[0], want)
	}

	// An empty pool skips the event, goals included.
	m.applyEvent(res, 20, m.Player2, m.Player1, eventGoal)
	if res.score2 != 0 {
		t.Errorf("score2 with no forwards = %d, want 0", res.score2)
	}
	if len(m.events) != 1 {
		t.Errorf("empty pool should not record an event")
	}
}

func TestMatch_SuddenDeath_UsesCoinFlip(t *testing.T) {
	opts := testOptions(1)
	opts.CoinFlip = func() int { return 1 }
	m, _, _ := newTestMatch(t, opts)
	defer m.Cancel(context.Background(), "test over")

	res := &result{}
	m.playPenalties(context.Background(), res)

	if res.winner != m.Player2 || res.loser != m.Player1 {
		t.Error("coin flip of 1 should hand sudden death to player 2")
	}
	last := m.events[len(m.events)-1]
	want := fmt.Sprintf("Sudden Death | GOAL by %s!", m.Player2.Username)
	if last != want {
		t.Errorf("event = %q, want %q", last, want)
	}
}
