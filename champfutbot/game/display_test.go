package game

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/champfut/champfutbot/champfutbot/database/models"
)

func namedInstance(id int64, name string) *models.CardInstance {
	inst := instance(id, 50, 50)
	inst.Card.Name = name
	return inst
}

func TestTeamDisplay_TruncatesOnRuneBoundary(t *testing.T) {
	p := NewParticipant(1, "alice")
	// Multibyte names push the roster well past the field limit, with
	// rune boundaries landing anywhere relative to the cut point.
	name := strings.Repeat("Ødegård⚽", 8)
	id := int64(1)
	for _, pos := range Positions {
		for i := 0; i < PositionCaps[pos]; i++ {
			p.Team[pos] = append(p.Team[pos], namedInstance(id, name))
			id++
		}
	}

	out := teamDisplay(p)
	if len(out) > embedFieldLimit {
		t.Errorf("display length = %d, want <= %d", len(out), embedFieldLimit)
	}
	if !utf8.ValidString(out) {
		t.Error("truncated display is not valid UTF-8")
	}
	if !strings.HasSuffix(out, "...") {
		t.Errorf("truncated display should end with ellipsis, got %q", out[len(out)-8:])
	}
}

func TestTeamDisplay_CancelledKeepsStrikethroughClosed(t *testing.T) {
	p := NewParticipant(1, "alice")
	p.Cancelled = true
	name := strings.Repeat("Ødegård⚽", 8)
	id := int64(1)
	for _, pos := range Positions {
		for i := 0; i < PositionCaps[pos]; i++ {
			p.Team[pos] = append(p.Team[pos], namedInstance(id, name))
			id++
		}
	}

	out := teamDisplay(p)
	if len(out) > embedFieldLimit {
		t.Errorf("display length = %d, want <= %d", len(out), embedFieldLimit)
	}
	if !utf8.ValidString(out) {
		t.Error("truncated display is not valid UTF-8")
	}
	if !strings.HasPrefix(out, "~~") || !strings.HasSuffix(out, "...~~") {
		t.Error("cancelled display should stay wrapped in ~~")
	}
}

func TestTruncateDisplay_ShortStringUntouched(t *testing.T) {
	if got := truncateDisplay("short", 10); got != "short" {
		t.Errorf("truncateDisplay() = %q, want unchanged", got)
	}
}
