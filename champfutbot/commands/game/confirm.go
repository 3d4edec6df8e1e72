package game

import (
	"context"
	"fmt"
	"time"

	gm "github.com/champfut/champfutbot/champfutbot/game"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// Confirmation prompt component IDs. The add-confirm button carries the
// position and instance id so the press holds everything it needs.
const (
	componentCancelConfirm = "/game/cancel/confirm"
	componentResetConfirm  = "/game/reset/confirm"
	componentAddConfirm    = "/game/add/confirm/{position}/{instance}"
	componentDismiss       = "/game/dismiss"
)

func addConfirmID(pos gm.Position, instanceID int64) string {
	return fmt.Sprintf("/game/add/confirm/%s/%d", pos, instanceID)
}

// confirmPrompt builds the ephemeral "Are you sure?" message that guards
// cancelling, resetting, and rostering a favorite.
func confirmPrompt(question, confirmID string) discord.MessageCreate {
	return discord.MessageCreate{
		Content: question,
		Components: []discord.ContainerComponent{discord.NewActionRow(
			discord.NewDangerButton("Confirm", confirmID),
			discord.NewSecondaryButton("Dismiss", componentDismiss),
		)},
		Flags: discord.MessageFlagEphemeral,
	}
}

// resolvePrompt replaces the prompt with its outcome and drops the buttons
// so it cannot be pressed twice.
func resolvePrompt(e *handler.ComponentEvent, content string) error {
	return e.UpdateMessage(discord.NewMessageUpdateBuilder().
		SetContent(content).
		ClearContainerComponents().
		Build())
}

// HandleCancelConfirm tears the match down once the prompt is confirmed.
func (h *Handler) HandleCancelConfirm(e *handler.ComponentEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	match, p := h.findMatchForComponent(e)
	if match == nil {
		return resolvePrompt(e, "❌ You are no longer in a match in this channel.")
	}
	if err := match.UserCancel(ctx, p); err != nil {
		return resolvePrompt(e, matchErrorMessage(err))
	}
	return resolvePrompt(e, "✅ The match has been cancelled.")
}

// HandleResetConfirm clears the caller's roster and wagers once confirmed.
func (h *Handler) HandleResetConfirm(e *handler.ComponentEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	match, p := h.findMatchForComponent(e)
	if match == nil {
		return resolvePrompt(e, "❌ You are no longer in a match in this channel.")
	}
	if err := match.Reset(ctx, p); err != nil {
		return resolvePrompt(e, matchErrorMessage(err))
	}
	return resolvePrompt(e, "✅ Your team and wagers have been reset.")
}

// HandleAddConfirm rosters a favorited card after the caller confirms. The
// instance is re-resolved so a card sold or traded away since the prompt
// cannot slip in.
func (h *Handler) HandleAddConfirm(e *handler.ComponentEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pos, ok := gm.ParsePosition(e.Vars["position"])
	if !ok {
		return resolvePrompt(e, "❌ Invalid position! Choose GK, DF, MF, or FW.")
	}
	instance, errMsg := h.resolveOwnedInstance(ctx, e.User().ID, e.Vars["instance"])
	if errMsg != "" {
		return resolvePrompt(e, errMsg)
	}
	if !instance.Tradeable {
		return resolvePrompt(e, "❌ This card is not tradeable and cannot join a match.")
	}

	match, p := h.findMatchForComponent(e)
	if match == nil {
		return resolvePrompt(e, "❌ You are no longer in a match in this channel.")
	}
	if err := match.AddToTeam(ctx, p, pos, instance); err != nil {
		return resolvePrompt(e, matchErrorMessage(err))
	}
	return resolvePrompt(e, fmt.Sprintf("✅ Added **%s** to your team as **%s**.", instance.DisplayName(), pos))
}

// HandleDismiss closes a prompt without doing anything.
func (h *Handler) HandleDismiss(e *handler.ComponentEvent) error {
	return resolvePrompt(e, "Okay, nothing was changed.")
}
