package game

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	mrand "math/rand"
	"sync"
	"time"

	"github.com/champfut/champfutbot/champfutbot/database/models"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// State tags the lifecycle of a match.
type State int

const (
	StateBuilding State = iota
	StateSimulating
	StatePenalties
	StateSettled
	StateCancelled
)

func (s State) Terminal() bool {
	return s == StateSettled || s == StateCancelled
}

var (
	ErrNotParticipant = errors.New("user is not part of this match")
	ErrTeamLocked     = errors.New("team is locked and cannot be edited")
	ErrAlreadyLocked  = errors.New("team is already locked")
	ErrAlreadyInTeam  = errors.New("card is already in the team")
	ErrPositionFull   = errors.New("position is at capacity")
	ErrNotInTeam      = errors.New("card is not in the team")
	ErrAlreadyBet     = errors.New("card is already wagered")
	ErrIncompleteTeam = errors.New("team needs at least one card in every position")
	ErrMatchOver      = errors.New("match has already finished")
)

// InstanceStore is the slice of the persistence layer the match needs:
// the exclusive trade-lock and ownership transfer on settlement.
type InstanceStore interface {
	Lock(ctx context.Context, id int64) error
	Unlock(ctx context.Context, id int64) error
	IsLocked(ctx context.Context, id int64) (bool, error)
	TransferOwner(ctx context.Context, id int64, newOwnerID string) error
}

// Messenger sends and edits the match display message.
type Messenger interface {
	Send(channelID snowflake.ID, message discord.MessageCreate) (snowflake.ID, error)
	Edit(channelID, messageID snowflake.ID, update discord.MessageUpdate) error
}

// Options carries the match timings. Tests shrink the delays.
type Options struct {
	Timeout         time.Duration
	RefreshInterval time.Duration
	RoundDelay      time.Duration
	PenaltyDelay    time.Duration
	BreakDelay      time.Duration
	Rand            *mrand.Rand
	// CoinFlip decides sudden death, 0 for player1 and 1 for player2.
	// Defaults to a crypto/rand fair coin.
	CoinFlip func() int
}

func DefaultOptions() Options {
	return Options{
		Timeout:         30 * time.Minute,
		RefreshInterval: 15 * time.Second,
		RoundDelay:      6 * time.Second,
		PenaltyDelay:    4 * time.Second,
		BreakDelay:      2 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Timeout <= 0 {
		o.Timeout = def.Timeout
	}
	if o.RefreshInterval <= 0 {
		o.RefreshInterval = def.RefreshInterval
	}
	if o.Rand == nil {
		o.Rand = mrand.New(mrand.NewSource(time.Now().UnixNano()))
	}
	if o.CoinFlip == nil {
		o.CoinFlip = cryptoCoinFlip
	}
	return o
}

func cryptoCoinFlip() int {
	n, err := rand.Int(rand.Reader, big.NewInt(2))
	if err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// a zero pick keeps the match deterministic rather than panicking.
		return 0
	}
	return int(n.Int64())
}

// Match drives one two-player football game from team building to settlement.
type Match struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID

	Player1 *Participant
	Player2 *Participant

	mu        sync.Mutex
	state     State
	settling  bool
	events    []string
	deadline  time.Time
	messageID snowflake.ID

	instances InstanceStore
	messenger Messenger
	opts      Options

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewMatch(guildID, channelID snowflake.ID, p1, p2 *Participant, instances InstanceStore, messenger Messenger, opts Options) *Match {
	return &Match{
		GuildID:   guildID,
		ChannelID: channelID,
		Player1:   p1,
		Player2:   p2,
		instances: instances,
		messenger: messenger,
		opts:      opts.withDefaults(),
		done:      make(chan struct{}),
	}
}

// Participant resolves a user to their side of the match.
func (m *Match) Participant(userID snowflake.ID) (*Participant, error) {
	switch userID {
	case m.Player1.UserID:
		return m.Player1, nil
	case m.Player2.UserID:
		return m.Player2, nil
	}
	return nil, ErrNotParticipant
}

func (m *Match) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Finished reports whether the match reached a terminal state or either
// side cancelled. Used by the registry to prune stale entries.
func (m *Match) Finished() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Terminal() || m.Player1.Cancelled || m.Player2.Cancelled
}

// Done is closed once the match settles or is cancelled.
func (m *Match) Done() <-chan struct{} {
	return m.done
}

// Deadline returns the auto-cancel time set by Start.
func (m *Match) Deadline() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deadline
}

// Start sends the match message and begins the periodic refresh loop.
func (m *Match) Start(ctx context.Context) error {
	m.mu.Lock()
	m.deadline = time.Now().Add(m.opts.Timeout)
	m.ctx, m.cancel = context.WithCancel(ctx)
	embed := m.buildEmbedLocked(introDescription(m.deadline))
	m.mu.Unlock()

	messageID, err := m.messenger.Send(m.ChannelID, discord.MessageCreate{
		Content: fmt.Sprintf("Hey %s, %s is challenging you to a football match!",
			m.Player2.Mention(), m.Player1.Username),
		Embeds:     []discord.Embed{embed},
		Components: matchButtons(false),
	})
	if err != nil {
		return fmt.Errorf("failed to send match message: %w", err)
	}

	m.mu.Lock()
	m.messageID = messageID
	m.mu.Unlock()

	go m.refreshLoop(m.ctx)
	return nil
}

// refreshLoop re-renders the display until the match leaves the building
// phase, the deadline passes, or an edit fails.
func (m *Match) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(m.opts.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.mu.Lock()
			if m.state != StateBuilding {
				m.mu.Unlock()
				return
			}
			if time.Now().After(m.deadline) {
				m.mu.Unlock()
				m.finish(context.Background(), "The game timed out.", nil)
				return
			}
			embed := m.buildEmbedLocked(introDescription(m.deadline))
			channelID, messageID := m.ChannelID, m.messageID
			m.mu.Unlock()

			if err := m.messenger.Edit(channelID, messageID, discord.MessageUpdate{
				Embeds: &[]discord.Embed{embed},
			}); err != nil {
				slog.Error("Failed to refresh match message",
					slog.String("type", "game"),
					slog.String("guild_id", m.GuildID.String()),
					slog.String("player1", m.Player1.UserID.String()),
					slog.String("player2", m.Player2.UserID.String()),
					slog.Any("error", err))
				m.finish(context.Background(), "The game timed out.", nil)
				return
			}
		}
	}
}

// AddToTeam validates and rosters an instance, acquiring its trade-lock.
func (m *Match) AddToTeam(ctx context.Context, p *Participant, pos Position, inst *models.CardInstance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Terminal() {
		return ErrMatchOver
	}
	if p.Locked {
		return ErrTeamLocked
	}
	if p.InTeam(inst.ID) {
		return ErrAlreadyInTeam
	}
	if len(p.Team[pos]) >= PositionCaps[pos] {
		return ErrPositionFull
	}
	if err := m.instances.Lock(ctx, inst.ID); err != nil {
		return err
	}
	p.Team[pos] = append(p.Team[pos], inst)
	return nil
}

// RemoveFromTeam drops an instance from the roster, releases its lock, and
// withdraws any wager on it.
func (m *Match) RemoveFromTeam(ctx context.Context, p *Participant, instanceID int64) (*models.CardInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Terminal() {
		return nil, ErrMatchOver
	}
	if p.Locked {
		return nil, ErrTeamLocked
	}

	var removed *models.CardInstance
	for _, pos := range Positions {
		for i, inst := range p.Team[pos] {
			if inst.ID == instanceID {
				removed = inst
				p.Team[pos] = append(p.Team[pos][:i], p.Team[pos][i+1:]...)
				break
			}
		}
		if removed != nil {
			break
		}
	}
	if removed == nil {
		return nil, ErrNotInTeam
	}

	if err := m.instances.Unlock(ctx, removed.ID); err != nil {
		slog.Error("Failed to unlock removed card",
			slog.String("type", "game"),
			slog.Int64("instance_id", removed.ID),
			slog.Any("error", err))
	}

	for i, inst := range p.Bets {
		if inst.ID == instanceID {
			p.Bets = append(p.Bets[:i], p.Bets[i+1:]...)
			break
		}
	}
	return removed, nil
}

// PlaceBet wagers an instance. A rostered instance reuses its existing
// trade-lock; anything else must be free and is locked here.
func (m *Match) PlaceBet(ctx context.Context, p *Participant, inst *models.CardInstance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Terminal() {
		return ErrMatchOver
	}
	if p.Locked {
		return ErrTeamLocked
	}
	if p.InBets(inst.ID) {
		return ErrAlreadyBet
	}
	if !p.InTeam(inst.ID) {
		if err := m.instances.Lock(ctx, inst.ID); err != nil {
			return err
		}
	}
	p.Bets = append(p.Bets, inst)
	return nil
}

// Reset unlocks and clears a participant's roster and wagers.
func (m *Match) Reset(ctx context.Context, p *Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Terminal() {
		return ErrMatchOver
	}
	if p.Locked {
		return ErrTeamLocked
	}

	for _, id := range p.lockedInstanceIDs() {
		if err := m.instances.Unlock(ctx, id); err != nil {
			slog.Error("Failed to unlock card on reset",
				slog.String("type", "game"),
				slog.Int64("instance_id", id),
				slog.Any("error", err))
		}
	}
	p.clear()
	return nil
}

// Lock freezes a participant's team. When the second side locks, the
// simulation starts in the background. Locking is irreversible.
func (m *Match) Lock(ctx context.Context, p *Participant) (bothLocked bool, err error) {
	m.mu.Lock()
	if m.state.Terminal() {
		m.mu.Unlock()
		return false, ErrMatchOver
	}
	if p.Locked {
		m.mu.Unlock()
		return false, ErrAlreadyLocked
	}
	if !p.HasMinimumTeam() {
		m.mu.Unlock()
		return false, ErrIncompleteTeam
	}
	p.Locked = true
	bothLocked = m.Player1.Locked && m.Player2.Locked
	if bothLocked {
		m.state = StateSimulating
	}
	m.mu.Unlock()

	if bothLocked {
		go m.run(m.ctx)
	}
	return bothLocked, nil
}

// UserCancel cancels the match on behalf of a participant. Once settlement
// has claimed the match the cancel is refused: the outcome is already
// decided and the wagers are changing hands.
func (m *Match) UserCancel(ctx context.Context, p *Participant) error {
	if !m.finish(ctx, fmt.Sprintf("%s cancelled the game.", p.Username), p) {
		return ErrMatchOver
	}
	return nil
}

// Cancel aborts the match with the given reason. Idempotent; a no-op once
// the match is over or settling.
func (m *Match) Cancel(ctx context.Context, reason string) error {
	m.finish(ctx, reason, nil)
	return nil
}

// finish moves the match to Cancelled, stops its tasks, and releases every
// trade-lock held by either side. Safe to call from any goroutine; only the
// first call does the work. Returns false when the match is already over or
// settlement has claimed it, in which case nothing is touched — canceller,
// when set, is only flagged if the cancel actually happens.
func (m *Match) finish(ctx context.Context, reason string, canceller *Participant) bool {
	m.mu.Lock()
	if m.state.Terminal() || m.settling {
		m.mu.Unlock()
		return false
	}
	if canceller != nil {
		canceller.Cancelled = true
	}
	m.state = StateCancelled
	if m.cancel != nil {
		m.cancel()
	}
	ids := append(m.Player1.lockedInstanceIDs(), m.Player2.lockedInstanceIDs()...)
	embed := m.matchEmbedLocked(colorDarkRed, fmt.Sprintf("**%s**", reason), lastEvents(m.events, 10), false)
	channelID, messageID := m.ChannelID, m.messageID
	m.mu.Unlock()

	for _, id := range ids {
		if err := m.instances.Unlock(ctx, id); err != nil {
			slog.Error("Failed to release trade-lock on cancel",
				slog.String("type", "game"),
				slog.Int64("instance_id", id),
				slog.Any("error", err))
		}
	}

	if messageID != 0 {
		if err := m.messenger.Edit(channelID, messageID, discord.MessageUpdate{
			Embeds:     &[]discord.Embed{embed},
			Components: &[]discord.ContainerComponent{},
		}); err != nil {
			slog.Error("Failed to edit cancelled match message",
				slog.String("type", "game"),
				slog.Any("error", err))
		}
	}

	close(m.done)
	return true
}

// sleep waits for d unless the match context is cancelled first.
func (m *Match) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
