package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rvcook/internal/game"
)

func TestPromptText(t *testing.T) {
	b := game.DefaultBindings()
	tests := []struct {
		name string
		snap game.Snapshot
		want string
	}{
		{"idle", game.Snapshot{}, ""},
		{"near vehicle", game.Snapshot{PromptVisible: true}, "Press E to enter the RV"},
		{"inside", game.Snapshot{CookPrompt: true}, "Press C to cook, E to exit"},
		{"cooking", game.Snapshot{Interaction: game.InteractionState{CookingInProgress: true, CookingProgress: 42}}, "Cooking... 42%"},
		{"done", game.Snapshot{Interaction: game.InteractionState{CookingInProgress: true, CookingProgress: 100, CookingJustCompleted: true}}, "Cooked! +1 coin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, promptText(tt.snap, b))
		})
	}
}

func TestHUDTitle(t *testing.T) {
	snap := game.Snapshot{Health: 80, Coins: 2, PromptVisible: true}
	assert.Equal(t, "RV Cook  |  HP 80  |  Coins 2  |  Press E to enter the RV",
		hudTitle("RV Cook", snap, game.DefaultBindings()))
}

func TestBuildHUD(t *testing.T) {
	snap := game.Snapshot{Health: 50, Coins: 3}
	quads := buildHUD(snap, 1280, 720)

	// Health background and fill plus three pips.
	assert.Len(t, quads, 5)
	assert.Equal(t, float32(barWidth)/2, quads[1].W)
	for _, q := range quads[2:] {
		assert.Equal(t, Palette.Coin, q.Color)
	}

	snap.Interaction = game.InteractionState{InsideVehicle: true, CookingInProgress: true, CookingProgress: 25}
	quads = buildHUD(snap, 1280, 720)
	assert.Len(t, quads, 7)
	assert.Equal(t, float32(cookBarWidth)/4, quads[6].W)
	assert.Equal(t, Palette.CookFill, quads[6].Color)
}

func TestBuildHUDCapsPips(t *testing.T) {
	quads := buildHUD(game.Snapshot{Health: 100, Coins: 500}, 800, 600)
	assert.Len(t, quads, 2+maxCoinPips)
}

func TestLighten(t *testing.T) {
	assert.Equal(t, RGB{R: 255, G: 255, B: 255}, RGB{R: 10, G: 20, B: 30}.Lighten(1))
	assert.Equal(t, RGB{R: 10, G: 20, B: 30}, RGB{R: 10, G: 20, B: 30}.Lighten(0))
}
