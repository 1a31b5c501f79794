package viewer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Particle vertex shader: 3D point sprites with perspective-scaled size.
const particleVertSrc = `#version 410 core

layout(location = 0) in vec3 aWorldPos;
layout(location = 1) in float aSize;
layout(location = 2) in vec4 aColor;

uniform mat4 uViewProj;
uniform float uPointScale; // framebuffer-height-derived perspective factor

out vec4 vColor;

void main() {
    gl_Position = uViewProj * vec4(aWorldPos, 1.0);
    float w = max(gl_Position.w, 0.001);
    gl_PointSize = max(1.0, aSize * uPointScale / w);
    vColor = aColor;
}
` + "\x00"

// Soft fragment shader: smooth round sprite for alpha-blended layers.
const softFragSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    float dist = length(gl_PointCoord - vec2(0.5)) * 2.0;
    float edge = 1.0 - smoothstep(0.6, 1.0, dist);
    if (edge < 0.01) discard;
    FragColor = vec4(vColor.rgb, vColor.a * edge);
}
` + "\x00"

// Glow fragment shader: quadratic radial falloff for additive layers.
// RGB is pre-multiplied by alpha before upload.
const glowFragSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    float dist = length(gl_PointCoord - vec2(0.5)) * 2.0;
    float falloff = clamp(1.0 - dist, 0.0, 1.0);
    falloff = falloff * falloff;
    FragColor = vec4(vColor.rgb * falloff, 1.0);
}
` + "\x00"

// Ground fragment/vertex pair: a faint grid plane so motion reads in 3D.
const groundVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos; // xz in the ground plane

uniform mat4 uViewProj;

out vec2 vXZ;

void main() {
    vXZ = aPos;
    gl_Position = uViewProj * vec4(aPos.x, 0.0, aPos.y, 1.0);
}
` + "\x00"

const groundFragSrc = `#version 410 core

in vec2 vXZ;
out vec4 FragColor;

void main() {
    vec2 g = abs(fract(vXZ) - vec2(0.5));
    float line = smoothstep(0.46, 0.5, max(g.x, g.y));
    float fade = clamp(1.0 - length(vXZ) / 12.0, 0.0, 1.0);
    vec3 col = mix(vec3(0.05, 0.05, 0.07), vec3(0.16, 0.16, 0.20), line);
    FragColor = vec4(col * fade, 1.0);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
