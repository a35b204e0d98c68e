package audio

import (
	"io"
	"math"

	"rvcook/internal/game"
)

// engineReader is an endless diesel idle: a pulsing FM drone at the firing
// rate, a low exhaust rumble and filtered noise.
type engineReader struct {
	t    float64
	seed uint64
	lp   float64
}

func (r *engineReader) Read(p []byte) (int, error) {
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}
	const firing = 28.0 // combustion pulses per second
	for i := 0; i < frames; i++ {
		t := r.t
		pulse := math.Exp(-math.Mod(t*firing, 1.0)*6) * 0.45
		drone := fm(t, 55, 0.5, 2.2) * 0.30
		rumble := math.Sin(2*math.Pi*firing*t) * 0.20
		r.lp = r.lp*0.92 + lcg(&r.seed)*0.08
		s := (drone*(0.6+pulse) + rumble + r.lp*0.35) * 0.6
		putStereoF32(p, i, softSat(s))
		r.t += 1.0 / SampleRate
	}
	return frames * frameBytes, nil
}

// sizzleReader is an endless frying-pan loop: broadband hiss with random
// crackles and a faint bubbling undertone.
type sizzleReader struct {
	t       float64
	seed    uint64
	hp      float64
	prev    float64
	crackle float64
}

func (r *sizzleReader) Read(p []byte) (int, error) {
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}
	for i := 0; i < frames; i++ {
		n := lcg(&r.seed)
		// One-pole high-pass keeps the hiss bright.
		r.hp = 0.85 * (r.hp + n - r.prev)
		r.prev = n

		if lcg(&r.seed) > 0.9993 {
			r.crackle = 1
		}
		r.crackle *= 0.985
		pop := lcg(&r.seed) * r.crackle

		bubble := math.Sin(2*math.Pi*140*r.t) * (0.5 + 0.5*math.Sin(2*math.Pi*3*r.t)) * 0.05
		s := r.hp*0.22 + pop*0.5 + bubble
		putStereoF32(p, i, softSat(s))
		r.t += 1.0 / SampleRate
	}
	return frames * frameBytes, nil
}

func newLoop(id game.SoundID, seed uint64) io.Reader {
	switch id {
	case game.SoundEngine:
		return &engineReader{seed: seed}
	case game.SoundCooking:
		return &sizzleReader{seed: seed}
	}
	return nil
}
