// Package audio plays the looping engine and cooking sounds through oto. The
// loops are synthesized on the fly, so there are no assets to load.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/rs/zerolog"

	"rvcook/internal/game"
)

const DefaultVolume = 0.58

type Config struct {
	Enabled bool
	Volume  float64
}

// Player implements game.Audio. Triggers issued before the device is ready are
// dropped rather than queued.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	log    zerolog.Logger

	mu      sync.Mutex
	playing map[game.SoundID]oto.Player
}

func New(cfg Config, log zerolog.Logger) (*Player, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	return &Player{
		ctx:     ctx,
		ready:   ready,
		volume:  clamp01(cfg.Volume),
		log:     log.With().Str("component", "audio").Logger(),
		playing: make(map[game.SoundID]oto.Player),
	}, nil
}

// Open returns a working Player, or game.NopAudio when audio is disabled or the
// device cannot be opened.
func Open(cfg Config, log zerolog.Logger) game.Audio {
	if !cfg.Enabled {
		return game.NopAudio{}
	}
	p, err := New(cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("continuing without sound")
		return game.NopAudio{}
	}
	return p
}

func (p *Player) isReady() bool {
	select {
	case <-p.ready:
		return true
	default:
		return false
	}
}

// PlayLoop starts the loop for id unless it is already playing.
func (p *Player) PlayLoop(id game.SoundID) {
	if !p.isReady() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.playing[id]; ok {
		return
	}
	r := newLoop(id, uint64(time.Now().UnixNano()))
	if r == nil {
		return
	}
	player := p.ctx.NewPlayer(r)
	player.SetVolume(p.volume)
	player.Play()
	p.playing[id] = player
	p.log.Debug().Str("sound", id.String()).Msg("loop started")
}

func (p *Player) Stop(id game.SoundID) {
	p.mu.Lock()
	player, ok := p.playing[id]
	delete(p.playing, id)
	p.mu.Unlock()
	if !ok {
		return
	}
	if err := player.Close(); err != nil {
		p.log.Debug().Err(err).Str("sound", id.String()).Msg("close player")
	}
	p.log.Debug().Str("sound", id.String()).Msg("loop stopped")
}

// Close stops every loop.
func (p *Player) Close() {
	for _, id := range []game.SoundID{game.SoundEngine, game.SoundCooking} {
		p.Stop(id)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
