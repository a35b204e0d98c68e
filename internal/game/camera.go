package game

import "github.com/go-gl/mathgl/mgl64"

type Camera struct {
	Position mgl64.Vec3 `json:"position"`
	View     mgl64.Mat4 `json:"-"`      // world to camera
	LookAt   mgl64.Vec3 `json:"lookAt"` // controlled actor position, unsmoothed
	Target   mgl64.Vec3 `json:"target"` // desired position before smoothing
}

// CameraFollower trails whichever actor is controlled. Smoothing is a fixed
// fraction per frame, so responsiveness depends on the frame rate.
type CameraFollower struct {
	offset    mgl64.Vec3
	smoothing float64
	cam       Camera
}

func NewCameraFollower(offset mgl64.Vec3, smoothing float64) *CameraFollower {
	return &CameraFollower{
		offset:    offset,
		smoothing: clampF(smoothing, 0, 1),
		cam: Camera{
			Position: offset,
			View:     lookAt(offset, mgl64.Vec3{}, mgl64.Ident4()),
			Target:   offset,
		},
	}
}

func (f *CameraFollower) Camera() Camera { return f.cam }

// Update follows the actor the current mode controls. It skips the frame and
// returns false when that actor has not reported a pose yet. Switching actors
// keeps the smoothed position, so a mode change only shows the normal catch-up.
func (f *CameraFollower) Update(s *State) bool {
	t, ok := s.Transform(s.Controlled())
	if !ok {
		return false
	}
	f.Follow(t)
	return true
}

// Follow advances the camera one frame toward the pose behind t.
func (f *CameraFollower) Follow(t Transform) {
	rotated := t.Orientation.Rotate(f.offset)
	f.cam.Target = t.Position.Add(rotated)
	f.cam.Position = lerpVec3(f.cam.Position, f.cam.Target, f.smoothing)
	f.cam.LookAt = t.Position
	f.cam.View = lookAt(f.cam.Position, t.Position, f.cam.View)
}

// lookAt builds the view from eye toward center, or returns fallback when the
// two coincide or the eye sits straight above or below center.
func lookAt(eye, center mgl64.Vec3, fallback mgl64.Mat4) mgl64.Mat4 {
	if VerticalOrZero(center.Sub(eye)) {
		return fallback
	}
	return mgl64.LookAtV(eye, center, UpAxis)
}

// VerticalOrZero reports whether v has no horizontal component worth aiming
// along, which leaves a Y-up look-at undefined.
func VerticalOrZero(v mgl64.Vec3) bool {
	return v.Len() <= 1e-9 || v.Normalize().Cross(UpAxis).Len() <= 1e-9
}
