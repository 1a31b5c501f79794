package viewer

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Behrtron/pyre/internal/engine"
)

const MaxParticleRender = 20000

// Sprite shapes the renderer understands; stored in EmitterConfig.Model as
// the opaque handle the engine carries through.
const (
	SpriteSoft engine.ModelRef = iota // smooth round sprite (smoke, dust)
	SpriteGlow                        // radial glow falloff (fire, embers)
)

// SpriteRef resolves a preset sprite name. Unknown names fall back to the
// soft sprite.
func SpriteRef(name string) engine.ModelRef {
	if name == "glow" || name == "spark" {
		return SpriteGlow
	}
	return SpriteSoft
}

// glOffset converts a byte offset to unsafe.Pointer for VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	softProg uint32
	glowProg uint32

	spriteVAO uint32
	spriteVBO uint32

	softUViewProj   int32
	softUPointScale int32
	glowUViewProj   int32
	glowUPointScale int32

	groundProg      uint32
	groundVAO       uint32
	groundVBO       uint32
	groundUViewProj int32

	viewProj   mgl32.Mat4
	pointScale float32

	// Reused per-frame buffers.
	instBuf []engine.ParticleInstance
	vertBuf []float32
}

func NewRenderer() (*Renderer, error) {
	softProg, err := linkProgram(particleVertSrc, softFragSrc)
	if err != nil {
		return nil, fmt.Errorf("soft program: %w", err)
	}
	glowProg, err := linkProgram(particleVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(softProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}
	groundProg, err := linkProgram(groundVertSrc, groundFragSrc)
	if err != nil {
		gl.DeleteProgram(softProg)
		gl.DeleteProgram(glowProg)
		return nil, fmt.Errorf("ground program: %w", err)
	}

	r := &Renderer{
		softProg:   softProg,
		glowProg:   glowProg,
		groundProg: groundProg,
	}

	// Sprite VAO/VBO: streaming buffer for point sprites.
	// Each sprite: 8 floats (x, y, z, size, r, g, b, a).
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxParticleRender*int(stride), nil, gl.STREAM_DRAW)
	// aWorldPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(3*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))
	r.spriteVAO = sVAO
	r.spriteVBO = sVBO

	gl.UseProgram(softProg)
	r.softUViewProj = gl.GetUniformLocation(softProg, gl.Str("uViewProj\x00"))
	r.softUPointScale = gl.GetUniformLocation(softProg, gl.Str("uPointScale\x00"))

	gl.UseProgram(glowProg)
	r.glowUViewProj = gl.GetUniformLocation(glowProg, gl.Str("uViewProj\x00"))
	r.glowUPointScale = gl.GetUniformLocation(glowProg, gl.Str("uPointScale\x00"))

	// Ground VAO/VBO: one large quad on the y=0 plane.
	var gVAO, gVBO uint32
	gl.GenVertexArrays(1, &gVAO)
	gl.GenBuffers(1, &gVBO)
	gl.BindVertexArray(gVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gVBO)

	const ext float32 = 14
	groundVerts := [12]float32{
		-ext, -ext, ext, -ext, ext, ext,
		-ext, -ext, ext, ext, -ext, ext,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(groundVerts)*4, gl.Ptr(&groundVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	r.groundVAO = gVAO
	r.groundVBO = gVBO

	gl.UseProgram(groundProg)
	r.groundUViewProj = gl.GetUniformLocation(groundProg, gl.Str("uViewProj\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.spriteVBO, r.groundVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.spriteVAO, r.groundVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.softProg, r.glowProg, r.groundProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

// BeginFrame computes the view-projection for an orbiting camera and clears
// the framebuffer. orbitAngle is in radians; the camera circles the world
// origin looking at the flame column.
func (r *Renderer) BeginFrame(orbitAngle float64, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(0.02, 0.02, 0.03, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	const orbitRadius = 9.0
	eye := mgl32.Vec3{
		float32(math.Cos(orbitAngle) * orbitRadius),
		4.5,
		float32(math.Sin(orbitAngle) * orbitRadius),
	}
	view := mgl32.LookAtV(eye, mgl32.Vec3{0, 1.0, 0}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(45), float32(fbW)/float32(fbH), 0.1, 100)
	r.viewProj = proj.Mul4(view)

	// Perspective point scaling: world-unit-sized sprites at w=1 span
	// roughly this many pixels.
	r.pointScale = float32(fbH)

	gl.UseProgram(r.groundProg)
	gl.UniformMatrix4fv(r.groundUViewProj, 1, false, &r.viewProj[0])
	gl.BindVertexArray(r.groundVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// DrawEmitter streams one emitter's active particles as point sprites,
// faded per particle by the engine and blended per the emitter's mode.
func (r *Renderer) DrawEmitter(e *engine.Emitter, baseSize float64) {
	r.instBuf = e.AppendInstances(r.instBuf[:0])
	if len(r.instBuf) == 0 {
		return
	}

	cfg := e.Config()
	additive := cfg.Blend == engine.BlendAdditive

	r.vertBuf = r.vertBuf[:0]
	for i := range r.instBuf {
		inst := &r.instBuf[i]
		cr := float32(inst.Color.R) / 255
		cg := float32(inst.Color.G) / 255
		cb := float32(inst.Color.B) / 255
		ca := float32(inst.Color.A) / 255
		if additive {
			// Pre-multiply for additive accumulation.
			cr *= ca
			cg *= ca
			cb *= ca
		}
		r.vertBuf = append(r.vertBuf,
			float32(inst.Position.X), float32(inst.Position.Y), float32(inst.Position.Z),
			float32(inst.Scale*baseSize),
			cr, cg, cb, ca,
		)
	}

	count := len(r.vertBuf) / 8
	if count > MaxParticleRender {
		count = MaxParticleRender
	}

	prog, uViewProj, uPointScale := r.softProg, r.softUViewProj, r.softUPointScale
	if cfg.Model == SpriteGlow {
		prog, uViewProj, uPointScale = r.glowProg, r.glowUViewProj, r.glowUPointScale
	}

	gl.UseProgram(prog)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	gl.UniformMatrix4fv(uViewProj, 1, false, &r.viewProj[0])
	gl.Uniform1f(uPointScale, r.pointScale)

	gl.Enable(gl.BLEND)
	if additive {
		gl.BlendFunc(gl.ONE, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	gl.BufferData(gl.ARRAY_BUFFER, count*8*4, gl.Ptr(r.vertBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.Disable(gl.BLEND)
}
