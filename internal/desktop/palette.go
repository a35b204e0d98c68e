package desktop

import "github.com/go-gl/mathgl/mgl32"

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Vec returns the colour as normalized floats for shader uniforms.
func (c RGB) Vec() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// Lighten moves each channel toward white by k in [0,1].
func (c RGB) Lighten(k float64) RGB {
	f := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*clamp01(k))
	}
	return RGB{R: f(c.R), G: f(c.G), B: f(c.B)}
}

var Palette = struct {
	Sky        RGB
	Ground     RGB
	Player     RGB
	Vehicle    RGB
	VehicleCab RGB
	HealthFill RGB
	HealthBack RGB
	Coin       RGB
	CookFill   RGB
	CookDone   RGB
	BarBack    RGB
	Prompt     RGB
}{
	Sky:        RGB{R: 135, G: 190, B: 235},
	Ground:     RGB{R: 86, G: 140, B: 70},
	Player:     RGB{R: 230, G: 120, B: 60},
	Vehicle:    RGB{R: 235, G: 230, B: 215},
	VehicleCab: RGB{R: 70, G: 110, B: 150},
	HealthFill: RGB{R: 220, G: 60, B: 60},
	HealthBack: RGB{R: 60, G: 20, B: 20},
	Coin:       RGB{R: 250, G: 205, B: 50},
	CookFill:   RGB{R: 240, G: 150, B: 40},
	CookDone:   RGB{R: 100, G: 230, B: 100},
	BarBack:    RGB{R: 30, G: 30, B: 30},
	Prompt:     RGB{R: 255, G: 255, B: 255},
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
