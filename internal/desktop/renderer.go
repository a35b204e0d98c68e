//go:build !android

package desktop

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"rvcook/internal/game"
)

const (
	fovY      = 60.0 // degrees
	nearPlane = 0.1
	farPlane  = 500.0
	maxQuads  = 256
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	// Box program.
	boxProg      uint32
	boxVAO       uint32
	boxVBO       uint32
	boxVerts     int32
	uModel       int32
	uViewProj    int32
	uColor       int32
	uSunDir      int32
	groundExtent float32

	// HUD program.
	hudProg     uint32
	hudVAO      uint32
	hudVBO      uint32
	uResolution int32
	hudBuf      []float32
}

// cubeVertices returns a unit cube centred on the origin as 36 vertices of
// position(3) + normal(3).
func cubeVertices() []float32 {
	type face struct {
		n    [3]float32
		u, v [3]float32
	}
	faces := []face{
		{n: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
		{n: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
		{n: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
		{n: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
		{n: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
		{n: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
	}
	corners := [6][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, -1}, {1, 1}, {-1, 1}}

	out := make([]float32, 0, 36*6)
	for _, f := range faces {
		for _, c := range corners {
			for i := 0; i < 3; i++ {
				out = append(out, 0.5*(f.n[i]+c[0]*f.u[i]+c[1]*f.v[i]))
			}
			out = append(out, f.n[0], f.n[1], f.n[2])
		}
	}
	return out
}

func NewRenderer(groundHalfSize float64) (*Renderer, error) {
	boxProg, err := linkProgram(boxVertSrc, boxFragSrc)
	if err != nil {
		return nil, fmt.Errorf("box program: %w", err)
	}
	hudProg, err := linkProgram(hudVertSrc, hudFragSrc)
	if err != nil {
		gl.DeleteProgram(boxProg)
		return nil, fmt.Errorf("hud program: %w", err)
	}

	r := &Renderer{
		boxProg:      boxProg,
		hudProg:      hudProg,
		groundExtent: float32(groundHalfSize * 2),
		hudBuf:       make([]float32, 0, maxQuads*6*6),
	}

	gl.UseProgram(boxProg)
	r.uModel = gl.GetUniformLocation(boxProg, gl.Str("uModel\x00"))
	r.uViewProj = gl.GetUniformLocation(boxProg, gl.Str("uViewProj\x00"))
	r.uColor = gl.GetUniformLocation(boxProg, gl.Str("uColor\x00"))
	r.uSunDir = gl.GetUniformLocation(boxProg, gl.Str("uSunDir\x00"))
	sun := mgl32.Vec3{-0.4, -1, -0.3}.Normalize()
	gl.Uniform3f(r.uSunDir, sun[0], sun[1], sun[2])

	verts := cubeVertices()
	r.boxVerts = int32(len(verts) / 6)
	gl.GenVertexArrays(1, &r.boxVAO)
	gl.GenBuffers(1, &r.boxVBO)
	gl.BindVertexArray(r.boxVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.boxVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(&verts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, glOffset(3*4))

	gl.UseProgram(hudProg)
	r.uResolution = gl.GetUniformLocation(hudProg, gl.Str("uResolution\x00"))

	// HUD VAO/VBO: per-vertex pos(2) + color(4).
	gl.GenVertexArrays(1, &r.hudVAO)
	gl.GenBuffers(1, &r.hudVBO)
	gl.BindVertexArray(r.hudVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.hudVBO)
	stride := int32(6 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxQuads*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, glOffset(2*4))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.boxVBO, r.hudVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.boxVAO, r.hudVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.boxProg, r.hudProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

func mat32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}

func vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

func (r *Renderer) drawBox(pos mgl32.Vec3, yaw float32, size mgl32.Vec3, col RGB) {
	model := mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl32.HomogRotate3DY(yaw)).
		Mul4(mgl32.Scale3D(size[0], size[1], size[2]))
	gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
	c := col.Vec()
	gl.Uniform3f(r.uColor, c[0], c[1], c[2])
	gl.DrawArrays(gl.TRIANGLES, 0, r.boxVerts)
}

// DrawScene draws the ground, the vehicle and, when visible, the player from
// the snapshot camera.
func (r *Renderer) DrawScene(snap game.Snapshot, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	sky := Palette.Sky.Vec()
	gl.ClearColor(sky[0], sky[1], sky[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)

	aspect := float32(fbW) / float32(fbH)
	proj := mgl32.Perspective(mgl32.DegToRad(fovY), aspect, nearPlane, farPlane)
	viewProj := proj.Mul4(mat32(snap.Camera.View))

	gl.UseProgram(r.boxProg)
	gl.UniformMatrix4fv(r.uViewProj, 1, false, &viewProj[0])
	gl.BindVertexArray(r.boxVAO)

	r.drawBox(mgl32.Vec3{0, -0.05, 0}, 0, mgl32.Vec3{r.groundExtent, 0.1, r.groundExtent}, Palette.Ground)

	v := snap.Vehicle
	if v.Reported {
		body := Palette.Vehicle
		if snap.PromptVisible {
			body = body.Lighten(0.5)
		}
		size := vec32(v.HalfExtents.Mul(2))
		yaw := float32(v.Yaw)
		r.drawBox(vec32(v.Position), yaw, size, body)

		// Windscreen band across the front face.
		front := mgl32.HomogRotate3DY(yaw).Mul4x1(mgl32.Vec4{0, 0.2 * size[1], -size[2]/2 - 0.01, 0}).Vec3()
		r.drawBox(vec32(v.Position).Add(front), yaw, mgl32.Vec3{size[0] * 0.9, size[1] * 0.3, 0.05}, Palette.VehicleCab)
	}

	p := snap.Player
	if p.Reported && p.Visible {
		r.drawBox(vec32(p.Position), float32(p.Yaw), vec32(p.HalfExtents.Mul(2)), Palette.Player)
	}
	gl.BindVertexArray(0)
}

// DrawHUD draws quads over the scene with alpha blending.
func (r *Renderer) DrawHUD(quads []Quad, fbW, fbH int) {
	if len(quads) == 0 {
		return
	}
	if len(quads) > maxQuads {
		quads = quads[:maxQuads]
	}
	r.hudBuf = r.hudBuf[:0]
	for _, q := range quads {
		c := q.Color.Vec()
		x0, y0, x1, y1 := q.X, q.Y, q.X+q.W, q.Y+q.H
		for _, p := range [6][2]float32{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y0}, {x1, y1}, {x0, y1}} {
			r.hudBuf = append(r.hudBuf, p[0], p[1], c[0], c[1], c[2], q.Alpha)
		}
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(r.hudProg)
	gl.Uniform2f(r.uResolution, float32(fbW), float32(fbH))
	gl.BindVertexArray(r.hudVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.hudVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.hudBuf)*4, gl.Ptr(&r.hudBuf[0]))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.hudBuf)/6))
	gl.BindVertexArray(0)
}
