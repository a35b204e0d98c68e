// Package config loads settings from defaults, an optional config file and
// RVCOOK_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"

	"rvcook/internal/audio"
	"rvcook/internal/game"
	"rvcook/internal/physics"
)

const (
	EnvPrefix   = "RVCOOK"
	DefaultName = "rvcook" // searched in the working directory when no path is given
)

type WindowConfig struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

type HUDFeedConfig struct {
	Enabled bool
	Addr    string
}

type Config struct {
	Tuning   game.Tuning
	Bindings game.Bindings
	Window   WindowConfig
	Audio    audio.Config
	Physics  physics.Config
	Log      LogConfig
	HUDFeed  HUDFeedConfig
}

func setVec(key string, v mgl64.Vec3) {
	viper.SetDefault(key+".x", v.X())
	viper.SetDefault(key+".y", v.Y())
	viper.SetDefault(key+".z", v.Z())
}

func getVec(key string) mgl64.Vec3 {
	return mgl64.Vec3{
		viper.GetFloat64(key + ".x"),
		viper.GetFloat64(key + ".y"),
		viper.GetFloat64(key + ".z"),
	}
}

func setDefaults() {
	t := game.DefaultTuning()
	viper.SetDefault("movement.speed", t.MoveSpeed)
	viper.SetDefault("movement.turnRate", t.TurnRate)
	viper.SetDefault("interaction.proximityThreshold", t.ProximityThreshold)
	viper.SetDefault("interaction.movingSpeedThreshold", t.MovingSpeedThreshold)
	viper.SetDefault("cooking.tick", t.CookTick.String())
	viper.SetDefault("cooking.step", t.CookStep)
	viper.SetDefault("cooking.doneDelay", t.CookDoneDelay.String())
	setVec("camera.offset", t.CameraOffset)
	viper.SetDefault("camera.smoothing", t.CameraSmoothing)
	setVec("player.spawn", t.PlayerSpawn)
	setVec("player.halfExtents", t.PlayerHalfExtents)
	setVec("vehicle.spawn", t.VehicleSpawn)
	setVec("vehicle.halfExtents", t.VehicleHalfExtents)

	b := game.DefaultBindings()
	viper.SetDefault("keys.forward", b.Forward)
	viper.SetDefault("keys.backward", b.Backward)
	viper.SetDefault("keys.turnLeft", b.TurnLeft)
	viper.SetDefault("keys.turnRight", b.TurnRight)
	viper.SetDefault("keys.interact", b.Interact)
	viper.SetDefault("keys.cook", b.Cook)

	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)
	viper.SetDefault("window.title", "RV Cook")
	viper.SetDefault("window.vsync", true)

	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("audio.volume", audio.DefaultVolume)

	p := physics.DefaultConfig()
	viper.SetDefault("physics.linearDamping", p.LinearDamping)
	viper.SetDefault("physics.angularDamping", p.AngularDamping)
	viper.SetDefault("physics.groundHalfSize", p.GroundHalfSize)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.file", "")

	viper.SetDefault("hudfeed.enabled", false)
	viper.SetDefault("hudfeed.addr", "127.0.0.1:8765")
}

// Load reads the configuration. An empty path looks for rvcook.{yaml,json,toml}
// in the working directory and is fine when none exists; an explicit path must
// be readable.
func Load(path string) (Config, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		viper.SetConfigName(DefaultName)
		viper.AddConfigPath(".")
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg := fromViper()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromViper() Config {
	return Config{
		Tuning: game.Tuning{
			MoveSpeed:            viper.GetFloat64("movement.speed"),
			TurnRate:             viper.GetFloat64("movement.turnRate"),
			ProximityThreshold:   viper.GetFloat64("interaction.proximityThreshold"),
			MovingSpeedThreshold: viper.GetFloat64("interaction.movingSpeedThreshold"),
			CookTick:             viper.GetDuration("cooking.tick"),
			CookStep:             viper.GetInt("cooking.step"),
			CookDoneDelay:        viper.GetDuration("cooking.doneDelay"),
			CameraOffset:         getVec("camera.offset"),
			CameraSmoothing:      viper.GetFloat64("camera.smoothing"),
			PlayerSpawn:          getVec("player.spawn"),
			PlayerHalfExtents:    getVec("player.halfExtents"),
			VehicleSpawn:         getVec("vehicle.spawn"),
			VehicleHalfExtents:   getVec("vehicle.halfExtents"),
		},
		Bindings: game.Bindings{
			Forward:   strings.ToLower(viper.GetString("keys.forward")),
			Backward:  strings.ToLower(viper.GetString("keys.backward")),
			TurnLeft:  strings.ToLower(viper.GetString("keys.turnLeft")),
			TurnRight: strings.ToLower(viper.GetString("keys.turnRight")),
			Interact:  strings.ToLower(viper.GetString("keys.interact")),
			Cook:      strings.ToLower(viper.GetString("keys.cook")),
		},
		Window: WindowConfig{
			Width:  viper.GetInt("window.width"),
			Height: viper.GetInt("window.height"),
			Title:  viper.GetString("window.title"),
			VSync:  viper.GetBool("window.vsync"),
		},
		Audio: audio.Config{
			Enabled: viper.GetBool("audio.enabled"),
			Volume:  viper.GetFloat64("audio.volume"),
		},
		Physics: physics.Config{
			LinearDamping:  viper.GetFloat64("physics.linearDamping"),
			AngularDamping: viper.GetFloat64("physics.angularDamping"),
			GroundHalfSize: viper.GetFloat64("physics.groundHalfSize"),
		},
		Log: LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
			File:   viper.GetString("log.file"),
		},
		HUDFeed: HUDFeedConfig{
			Enabled: viper.GetBool("hudfeed.enabled"),
			Addr:    viper.GetString("hudfeed.addr"),
		},
	}
}

// Validate rejects settings the game loop cannot run with.
func (c Config) Validate() error {
	t := c.Tuning
	switch {
	case t.MoveSpeed <= 0:
		return fmt.Errorf("movement.speed must be positive, got %v", t.MoveSpeed)
	case t.TurnRate <= 0:
		return fmt.Errorf("movement.turnRate must be positive, got %v", t.TurnRate)
	case t.ProximityThreshold < 0:
		return fmt.Errorf("interaction.proximityThreshold must not be negative, got %v", t.ProximityThreshold)
	case t.CookTick <= 0:
		return fmt.Errorf("cooking.tick must be positive, got %v", t.CookTick)
	case t.CookStep <= 0:
		return fmt.Errorf("cooking.step must be positive, got %v", t.CookStep)
	case t.CookDoneDelay < 0:
		return fmt.Errorf("cooking.doneDelay must not be negative, got %v", t.CookDoneDelay)
	case game.VerticalOrZero(t.CameraOffset):
		return fmt.Errorf("camera.offset must not be zero or straight above the actor, got %v", t.CameraOffset)
	case t.CameraSmoothing <= 0 || t.CameraSmoothing > 1:
		return fmt.Errorf("camera.smoothing must be in (0,1], got %v", t.CameraSmoothing)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	seen := make(map[string]string)
	b := c.Bindings
	for _, kv := range [][2]string{
		{"forward", b.Forward}, {"backward", b.Backward},
		{"turnLeft", b.TurnLeft}, {"turnRight", b.TurnRight},
		{"interact", b.Interact}, {"cook", b.Cook},
	} {
		action, key := kv[0], kv[1]
		if key == "" {
			return fmt.Errorf("keys.%s is empty", action)
		}
		if other, dup := seen[key]; dup {
			return fmt.Errorf("key %q bound to both %s and %s", key, other, action)
		}
		seen[key] = action
	}
	return nil
}
