//go:build !android

package desktop

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"rvcook/internal/audio"
	"rvcook/internal/config"
	"rvcook/internal/game"
	"rvcook/internal/hudfeed"
	"rvcook/internal/logging"
	"rvcook/internal/physics"
)

const (
	maxFrameDt   = 0.1
	shutdownWait = 2 * time.Second
)

// Run opens the window and drives the session until the window closes or ctx
// is cancelled. It must be called from the main goroutine.
func Run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Info().Str("gl", gl.GoStr(gl.GetString(gl.VERSION))).Msg("OpenGL ready")

	rend, err := NewRenderer(cfg.Physics.GroundHalfSize)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	sound := audio.Open(cfg.Audio, log)
	if p, ok := sound.(*audio.Player); ok {
		defer p.Close()
	}

	tun := cfg.Tuning
	world := physics.NewWorld(cfg.Physics, log)
	world.AddBody(game.ActorPlayer, tun.PlayerSpawn, tun.PlayerHalfExtents)
	world.AddBody(game.ActorVehicle, tun.VehicleSpawn, tun.VehicleHalfExtents)

	session := game.NewSession(game.Options{
		Tuning:   tun,
		Bindings: cfg.Bindings,
		Physics:  world,
		Feedback: world,
		Audio:    sound,
		Logger:   log,
	})
	defer session.Close()
	attachInput(window, session.Input())

	var feed *hudfeed.Server
	if cfg.HUDFeed.Enabled {
		feed = hudfeed.New(log)
		addr, err := feed.Listen(cfg.HUDFeed.Addr)
		if err != nil {
			return fmt.Errorf("hud feed: %w", err)
		}
		log.Info().Str("addr", addr.String()).Msg("HUD feed listening")
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownWait)
			defer cancel()
			if err := feed.Shutdown(sctx); err != nil {
				log.Warn().Err(err).Msg("HUD feed shutdown")
			}
		}()
	}

	slow := logging.Sampled(log)
	title := cfg.Window.Title

	last := glfw.GetTime()
	for !window.ShouldClose() {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutdown requested")
			window.SetShouldClose(true)
			continue
		default:
		}

		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > maxFrameDt {
			slow.Warn().Float64("dt", dt).Msg("frame overrun, clamping")
			dt = maxFrameDt
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		world.Step(dt)
		session.Tick(time.Duration(dt * float64(time.Second)))
		snap := session.Snapshot()
		if feed != nil {
			feed.Publish(snap)
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		rend.DrawScene(snap, fbW, fbH)
		rend.DrawHUD(buildHUD(snap, fbW, fbH), fbW, fbH)

		if t := hudTitle(cfg.Window.Title, snap, cfg.Bindings); t != title {
			title = t
			window.SetTitle(t)
		}
		window.SwapBuffers()
	}
	return nil
}
