package game

import (
	"fmt"
	"time"
)

// renderInvitation builds the round's opening prompt: title, rules and the
// choice range. The buttons themselves come from the announcement surface.
func renderInvitation(cfg Config) string {
	return fmt.Sprintf(
		"🎲 **Dice round!**\nPick a number between 1 and %d. One pick per player — "+
			"a new pick replaces your old one. The die rolls in %d seconds!",
		cfg.DomainSize, int(cfg.Duration.Seconds()))
}

// renderReminder is the time-remaining variant of the invitation.
func renderReminder(cfg Config, remaining time.Duration) string {
	return fmt.Sprintf(
		"🎲 **Dice round!**\nPick a number between 1 and %d. ⏳ **%d seconds left!**",
		cfg.DomainSize, int(remaining.Seconds()))
}

// renderNoPicks is the terminal content when the window closed empty.
func renderNoPicks(cfg Config) string {
	return "🎲 The dice round is over — nobody picked a number. The die stays in its cup."
}
