// Package viewer is the rendering collaborator for the particle engine: a
// GLFW window, a point-sprite OpenGL renderer, procedural audio, and a
// frame loop that drives ParticleSystem.Update once per frame.
package viewer

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Behrtron/pyre/internal/engine"
	"github.com/Behrtron/pyre/internal/preset"
)

//go:embed presets/fire.yaml
var defaultScene []byte

// Options configures a viewer run.
type Options struct {
	Seed       uint64
	PresetPath string // empty = embedded fire scene
}

type layer struct {
	emitter *engine.Emitter
	size    float64
}

// Run opens the window and drives the scene until closed. Space bursts
// every emitter, S toggles emission, Escape quits.
func Run(opts Options) error {
	runtime.LockOSThread()

	window, err := initWindow("pyre")
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	audio, err := NewAudio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
		audio = nil
	}

	var defs []preset.Emitter
	if opts.PresetPath != "" {
		defs, err = preset.LoadFile(opts.PresetPath)
	} else {
		defs, err = preset.Load(bytes.NewReader(defaultScene))
	}
	if err != nil {
		return err
	}

	var sys engine.ParticleSystem
	layers := make([]layer, 0, len(defs))
	for i, d := range defs {
		cfg := d.Config
		cfg.Model = SpriteRef(d.Sprite)
		e := engine.NewEmitter(cfg, opts.Seed+uint64(i)*0x9E3779B97F4A7C15)
		sys.Register(e)
		layers = append(layers, layer{emitter: e, size: d.Size})
	}
	sys.Start()

	sway := NewSway(defs[0].Config.Origin, 0.3, int64(opts.Seed))
	crackleRand := engine.NewRand(opts.Seed ^ 0xC8AC)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	emitting := true
	crackleIn := 0.0
	prevSpace, prevToggle := false, false

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		space := window.GetKey(glfw.KeySpace) == glfw.Press
		if space && !prevSpace {
			sys.Burst()
			audio.PlayWhoosh()
		}
		prevSpace = space

		toggle := window.GetKey(glfw.KeyS) == glfw.Press
		if toggle && !prevToggle {
			emitting = !emitting
			if emitting {
				sys.Start()
			} else {
				sys.Stop()
			}
		}
		prevToggle = toggle

		sys.SetOrigin(sway.At(now))
		advanced := sys.Update(dt)

		// Irregular crackle while the fire is alive.
		crackleIn -= dt
		if emitting && advanced > 0 && crackleIn <= 0 {
			audio.PlayCrackle(crackleRand.NextU64())
			crackleIn = 0.08 + crackleRand.Float64()*0.35
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		rend.BeginFrame(now*0.25, fbW, fbH)
		for _, l := range layers {
			rend.DrawEmitter(l.emitter, l.size)
		}
		window.SwapBuffers()
	}

	return nil
}
