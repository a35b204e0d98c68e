package desktop

import (
	"fmt"
	"strings"

	"rvcook/internal/game"
)

// Quad is a screen-space rectangle in framebuffer pixels, origin top-left.
type Quad struct {
	X, Y, W, H float32
	Color      RGB
	Alpha      float32
}

const (
	hudMargin     = 16
	barWidth      = 240
	barHeight     = 14
	coinSize      = 12
	coinGap       = 6
	maxCoinPips   = 20
	cookBarWidth  = 320
	cookBarHeight = 18
)

// buildHUD lays out the health bar, coin pips, cooking progress and the
// interaction prompt marker for one frame.
func buildHUD(snap game.Snapshot, fbW, fbH int) []Quad {
	quads := make([]Quad, 0, 32)
	w, h := float32(fbW), float32(fbH)

	// Health, top-left.
	frac := float32(game.Resources{Health: snap.Health}.Fraction())
	quads = append(quads,
		Quad{X: hudMargin, Y: hudMargin, W: barWidth, H: barHeight, Color: Palette.HealthBack, Alpha: 0.8},
		Quad{X: hudMargin, Y: hudMargin, W: barWidth * frac, H: barHeight, Color: Palette.HealthFill, Alpha: 1},
	)

	// Coins, one pip each under the health bar.
	pips := snap.Coins
	if pips > maxCoinPips {
		pips = maxCoinPips
	}
	for i := 0; i < pips; i++ {
		quads = append(quads, Quad{
			X:     hudMargin + float32(i*(coinSize+coinGap)),
			Y:     hudMargin + barHeight + 8,
			W:     coinSize,
			H:     coinSize,
			Color: Palette.Coin,
			Alpha: 1,
		})
	}

	ic := snap.Interaction
	if ic.CookingInProgress {
		x := (w - cookBarWidth) / 2
		y := h - hudMargin - cookBarHeight - 40
		fill := Palette.CookFill
		if ic.CookingJustCompleted {
			fill = Palette.CookDone
		}
		quads = append(quads,
			Quad{X: x, Y: y, W: cookBarWidth, H: cookBarHeight, Color: Palette.BarBack, Alpha: 0.8},
			Quad{X: x, Y: y, W: cookBarWidth * float32(ic.CookingProgress) / game.CookComplete, H: cookBarHeight, Color: fill, Alpha: 1},
		)
	}

	if snap.PromptVisible || snap.CookPrompt {
		const size = 18
		quads = append(quads, Quad{X: (w - size) / 2, Y: h - hudMargin - size, W: size, H: size, Color: Palette.Prompt, Alpha: 0.9})
	}
	return quads
}

// promptText is the line shown to the player for the current phase, empty
// when there is nothing to say.
func promptText(snap game.Snapshot, b game.Bindings) string {
	key := func(k string) string { return strings.ToUpper(k) }
	ic := snap.Interaction
	switch {
	case ic.CookingJustCompleted:
		return "Cooked! +1 coin"
	case ic.CookingInProgress:
		return fmt.Sprintf("Cooking... %d%%", ic.CookingProgress)
	case snap.PromptVisible:
		return fmt.Sprintf("Press %s to enter the RV", key(b.Interact))
	case snap.CookPrompt:
		return fmt.Sprintf("Press %s to cook, %s to exit", key(b.Cook), key(b.Interact))
	}
	return ""
}

// hudTitle renders the text part of the HUD into the window title.
func hudTitle(base string, snap game.Snapshot, b game.Bindings) string {
	parts := []string{
		base,
		fmt.Sprintf("HP %d", snap.Health),
		fmt.Sprintf("Coins %d", snap.Coins),
	}
	if p := promptText(snap, b); p != "" {
		parts = append(parts, p)
	}
	return strings.Join(parts, "  |  ")
}
