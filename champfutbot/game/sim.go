package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/champfut/champfutbot/champfutbot/database/models"
	"github.com/disgoorg/disgo/discord"
	"golang.org/x/sync/errgroup"
)

type eventKind int

const (
	eventGoal eventKind = iota
	eventSave
	eventOffside
	eventDefense
	eventFoul
	eventKindCount
)

// result accumulates scores while the simulation runs. Penalty totals are
// tracked separately so the final score can show both.
type result struct {
	score1, score2 int
	pen1, pen2     int
	penalties      bool
	winner, loser  *Participant
}

func (r *result) display1() string {
	if r.penalties {
		return fmt.Sprintf("%d (%d)", r.score1, r.pen1)
	}
	return fmt.Sprintf("%d", r.score1)
}

func (r *result) display2() string {
	if r.penalties {
		return fmt.Sprintf("%d (%d)", r.score2, r.pen2)
	}
	return fmt.Sprintf("%d", r.score2)
}

// scoreLineLocked formats the running score. Callers hold m.mu.
func (m *Match) scoreLineLocked(res *result) string {
	return fmt.Sprintf("**%s | %d - %d | %s**",
		m.Player1.Username, res.score1, res.score2, m.Player2.Username)
}

// run drives the match simulation. Launched once both teams lock.
func (m *Match) run(ctx context.Context) {
	m.mu.Lock()
	m.events = nil
	embed := m.matchEmbedLocked(colorBlue,
		"**The match is starting!**\n\nMatch events will appear below...", nil, false)
	m.mu.Unlock()

	m.editDisplay(embed, nil)

	res := &result{}
	m.playRounds(ctx, res)
	if ctx.Err() != nil {
		return
	}

	if !m.sleep(ctx, m.opts.BreakDelay) {
		return
	}

	switch {
	case res.score1 > res.score2:
		res.winner, res.loser = m.Player1, m.Player2
	case res.score2 > res.score1:
		res.winner, res.loser = m.Player2, m.Player1
	default:
		m.playPenalties(ctx, res)
		if ctx.Err() != nil {
			return
		}
	}

	m.settle(ctx, res)
}

// playRounds simulates the ten match rounds. The stronger team wins each
// event with probability 0.55; equal strengths give player 1 an even coin.
func (m *Match) playRounds(ctx context.Context, res *result) {
	strength1 := m.Player1.TeamStrength()
	strength2 := m.Player2.TeamStrength()

	stronger, weaker := m.Player1, m.Player2
	chance := 0.50
	if strength1 > strength2 {
		chance = 0.55
	} else if strength2 > strength1 {
		stronger, weaker = m.Player2, m.Player1
		chance = 0.55
	}

	for i := 0; i < 10; i++ {
		minute := (i + 1) * 10
		if !m.sleep(ctx, m.opts.RoundDelay) {
			return
		}

		winner, loser := stronger, weaker
		if m.opts.Rand.Float64() >= chance {
			winner, loser = weaker, stronger
		}

		m.applyEvent(res, minute, winner, loser, eventKind(m.opts.Rand.Intn(int(eventKindCount))))

		m.mu.Lock()
		desc := fmt.Sprintf("**Match in Progress...**\n\n%s", m.scoreLineLocked(res))
		embed := m.matchEmbedLocked(colorBlue, desc, lastEvents(m.events, 10), false)
		m.mu.Unlock()
		m.editDisplay(embed, nil)
	}
}

// applyEvent rolls one match event. Events draw from a positional pool; an
// empty pool skips the event entirely, goals included.
func (m *Match) applyEvent(res *result, minute int, winner, loser *Participant, kind eventKind) {
	pick := func(pool []*models.CardInstance) *models.CardInstance {
		if len(pool) == 0 {
			return nil
		}
		return pool[m.opts.Rand.Intn(len(pool))]
	}

	var line string
	switch kind {
	case eventGoal:
		if inst := pick(winner.Team[PositionFW]); inst != nil {
			line = fmt.Sprintf("%d' | GOAL by %s - %s", minute, inst.DisplayName(), winner.Username)
			if winner == m.Player1 {
				res.score1++
			} else {
				res.score2++
			}
		}
	case eventSave:
		if inst := pick(winner.Team[PositionGK]); inst != nil {
			line = fmt.Sprintf("%d' | SAVE by %s - %s", minute, inst.DisplayName(), winner.Username)
		}
	case eventOffside:
		if inst := pick(loser.Team[PositionFW]); inst != nil {
			line = fmt.Sprintf("%d' | OFFSIDE GOAL by %s - %s", minute, inst.DisplayName(), loser.Username)
		}
	case eventDefense:
		if inst := pick(winner.Team[PositionDF]); inst != nil {
			line = fmt.Sprintf("%d' | CRUCIAL DEFENSE by %s - %s", minute, inst.DisplayName(), winner.Username)
		}
	case eventFoul:
		if inst := pick(loser.Team[PositionMF]); inst != nil {
			line = fmt.Sprintf("%d' | FOUL by %s - %s", minute, inst.DisplayName(), loser.Username)
		}
	}

	if line != "" {
		m.mu.Lock()
		m.events = append(m.events, line)
		m.mu.Unlock()
	}
}

// playPenalties resolves a drawn match: three shootout rounds where both
// sides shoot, then a fair coin for sudden death if still level.
func (m *Match) playPenalties(ctx context.Context, res *result) {
	res.penalties = true

	m.mu.Lock()
	m.state = StatePenalties
	m.events = append(m.events, "90' | DRAW! Going to penalties!")
	desc := fmt.Sprintf("**Match tied! Penalty Shootout starting...**\n\n%s", m.scoreLineLocked(res))
	embed := m.matchEmbedLocked(colorBlue, desc, lastEvents(m.events, 10), false)
	m.mu.Unlock()
	m.editDisplay(embed, nil)

	if !m.sleep(ctx, m.opts.BreakDelay) {
		return
	}

	for round := 1; round <= 3; round++ {
		if !m.sleep(ctx, m.opts.PenaltyDelay) {
			return
		}

		for _, shooter := range []*Participant{m.Player1, m.Player2} {
			keeper := m.Player2
			if shooter == m.Player2 {
				keeper = m.Player1
			}
			m.takePenalty(res, round, shooter, keeper)
		}

		m.mu.Lock()
		line := fmt.Sprintf("**Penalties: %s %d - %d %s**",
			m.Player1.Username, res.pen1, res.pen2, m.Player2.Username)
		embed := m.matchEmbedLocked(colorBlue,
			fmt.Sprintf("**Penalty Shootout...**\n\n%s", line), lastEvents(m.events, 10), false)
		m.mu.Unlock()
		m.editDisplay(embed, nil)
	}

	switch {
	case res.pen1 > res.pen2:
		res.winner, res.loser = m.Player1, m.Player2
	case res.pen2 > res.pen1:
		res.winner, res.loser = m.Player2, m.Player1
	default:
		res.winner, res.loser = m.Player1, m.Player2
		if m.opts.CoinFlip() == 1 {
			res.winner, res.loser = m.Player2, m.Player1
		}
		m.mu.Lock()
		m.events = append(m.events, fmt.Sprintf("Sudden Death | GOAL by %s!", res.winner.Username))
		m.mu.Unlock()
	}
}

// takePenalty resolves one kick: a random forward against a random opposing
// goalkeeper. The round is skipped when either pool is empty.
func (m *Match) takePenalty(res *result, round int, shooter, keeper *Participant) {
	forwards := shooter.Team[PositionFW]
	keepers := keeper.Team[PositionGK]
	if len(forwards) == 0 || len(keepers) == 0 {
		return
	}

	fw := forwards[m.opts.Rand.Intn(len(forwards))]
	gk := keepers[m.opts.Rand.Intn(len(keepers))]

	chance := 0.60
	if fw.CombinedStat() > gk.CombinedStat() {
		chance = 0.70
	} else if gk.CombinedStat() > fw.CombinedStat() {
		chance = 0.50
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.opts.Rand.Float64() < chance {
		if shooter == m.Player1 {
			res.pen1++
		} else {
			res.pen2++
		}
		m.events = append(m.events, fmt.Sprintf("Penalty %d | GOAL by %s - %s",
			round, fw.DisplayName(), shooter.Username))
	} else {
		m.events = append(m.events, fmt.Sprintf("Penalty %d | SAVED by %s - %s",
			round, gk.DisplayName(), keeper.Username))
	}
}

// settle transfers the valid wagers to the winner, releases every
// trade-lock, and posts the final result. A wager is only valid while its
// instance is still rostered on either side; stale wagers are released
// without changing hands. Any persistence error cancels the match, which
// releases the locks instead.
func (m *Match) settle(ctx context.Context, res *result) {
	m.mu.Lock()
	if m.state.Terminal() {
		m.mu.Unlock()
		return
	}
	// Claim the match before touching ownership: from here on a concurrent
	// UserCancel/Cancel is refused instead of unwinding transfers already
	// in flight.
	m.settling = true
	res.winner.Won = true

	rostered := make(map[int64]bool)
	for _, inst := range res.winner.AllInstances() {
		rostered[inst.ID] = true
	}
	for _, inst := range res.loser.AllInstances() {
		rostered[inst.ID] = true
	}

	var validBets, staleBets []*models.CardInstance
	for _, inst := range append(append([]*models.CardInstance{}, m.Player1.Bets...), m.Player2.Bets...) {
		if rostered[inst.ID] {
			validBets = append(validBets, inst)
		} else {
			staleBets = append(staleBets, inst)
		}
	}

	betted := make(map[int64]bool, len(validBets))
	for _, inst := range validBets {
		betted[inst.ID] = true
	}

	var toUnlock []*models.CardInstance
	for _, p := range []*Participant{res.winner, res.loser} {
		for _, inst := range p.AllInstances() {
			if !betted[inst.ID] {
				toUnlock = append(toUnlock, inst)
			}
		}
	}
	toUnlock = append(toUnlock, staleBets...)
	winnerDiscordID := res.winner.UserID.String()
	m.mu.Unlock()

	for _, inst := range validBets {
		if err := m.instances.TransferOwner(ctx, inst.ID, winnerDiscordID); err != nil {
			slog.Error("Failed to transfer wagered card",
				slog.String("type", "game"),
				slog.Int64("instance_id", inst.ID),
				slog.Any("error", err))
			m.abortSettlement(ctx)
			return
		}
		if err := m.instances.Unlock(ctx, inst.ID); err != nil {
			slog.Error("Failed to unlock transferred card",
				slog.String("type", "game"),
				slog.Int64("instance_id", inst.ID),
				slog.Any("error", err))
			m.abortSettlement(ctx)
			return
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, inst := range toUnlock {
		inst := inst
		g.Go(func() error {
			return m.instances.Unlock(gctx, inst.ID)
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("Failed to release trade-locks after the match",
			slog.String("type", "game"),
			slog.Any("error", err))
		m.abortSettlement(ctx)
		return
	}

	m.mu.Lock()
	if m.state.Terminal() {
		m.mu.Unlock()
		return
	}
	m.state = StateSettled
	m.settling = false
	if m.cancel != nil {
		m.cancel()
	}

	resultLine := "**No cards were wagered. This was a friendly match!**"
	if len(validBets) > 0 {
		resultLine = fmt.Sprintf("**%d wagered cards have been transferred to %s!**",
			len(validBets), res.winner.Username)
	}
	finalScore := fmt.Sprintf("%s | %s - %s | %s",
		m.Player1.Username, res.display1(), res.display2(), m.Player2.Username)
	desc := fmt.Sprintf("**%s**\nWinner: %s\n\n%s", finalScore, res.winner.Username, resultLine)

	embed := m.matchEmbedLocked(colorGold, desc, m.events, true)

	winnerDisplay, loserDisplay := res.display1(), res.display2()
	if res.winner == m.Player2 {
		winnerDisplay, loserDisplay = loserDisplay, winnerDisplay
	}
	announcement := fmt.Sprintf("🎉 **Match Result:** %s defeats %s (%s-%s) and wins %d wagered cards! 🎉",
		res.winner.Mention(), res.loser.Mention(), winnerDisplay, loserDisplay, len(validBets))

	m.Player1.clear()
	m.Player2.clear()
	m.mu.Unlock()

	m.editDisplay(embed, &[]discord.ContainerComponent{})

	if _, err := m.messenger.Send(m.ChannelID, discord.MessageCreate{Content: announcement}); err != nil {
		slog.Error("Failed to send match result",
			slog.String("type", "game"),
			slog.Any("error", err))
	}

	close(m.done)
}

// abortSettlement hands a failed settlement back to the cancel path. The
// claim is released first so finish is allowed to run.
func (m *Match) abortSettlement(ctx context.Context) {
	m.mu.Lock()
	m.settling = false
	m.mu.Unlock()
	m.finish(ctx, "An error occurred while settling the match.", nil)
}

func lastEvents(events []string, n int) []string {
	if len(events) <= n {
		return append([]string(nil), events...)
	}
	return append([]string(nil), events[len(events)-n:]...)
}
