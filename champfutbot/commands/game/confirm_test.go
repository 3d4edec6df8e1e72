package game

import (
	"testing"

	gm "github.com/champfut/champfutbot/champfutbot/game"
	"github.com/disgoorg/disgo/discord"
)

func TestConfirmPrompt(t *testing.T) {
	msg := confirmPrompt("Reset your team?", componentResetConfirm)

	if msg.Flags&discord.MessageFlagEphemeral == 0 {
		t.Error("prompt should be ephemeral")
	}
	if msg.Content != "Reset your team?" {
		t.Errorf("content = %q", msg.Content)
	}
	if len(msg.Components) != 1 {
		t.Fatalf("component rows = %d, want 1", len(msg.Components))
	}
	row, ok := msg.Components[0].(discord.ActionRowComponent)
	if !ok {
		t.Fatalf("component = %T, want action row", msg.Components[0])
	}
	if len(row.Components()) != 2 {
		t.Fatalf("buttons = %d, want confirm and dismiss", len(row.Components()))
	}
	confirm, ok := row.Components()[0].(discord.ButtonComponent)
	if !ok {
		t.Fatalf("first component = %T, want button", row.Components()[0])
	}
	if confirm.CustomID != componentResetConfirm {
		t.Errorf("confirm custom id = %q, want %q", confirm.CustomID, componentResetConfirm)
	}
	dismiss, ok := row.Components()[1].(discord.ButtonComponent)
	if !ok {
		t.Fatalf("second component = %T, want button", row.Components()[1])
	}
	if dismiss.CustomID != componentDismiss {
		t.Errorf("dismiss custom id = %q, want %q", dismiss.CustomID, componentDismiss)
	}
}

func TestAddConfirmID(t *testing.T) {
	if got, want := addConfirmID(gm.PositionDF, 42), "/game/add/confirm/DF/42"; got != want {
		t.Errorf("addConfirmID() = %q, want %q", got, want)
	}
}
