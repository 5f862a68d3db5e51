package compute

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// pairAccelShader evaluates one body per invocation against every other
// body, with the same cutoff/floor semantics as the CPU path.
const pairAccelShader = `#version 430
layout(local_size_x = 256) in;

layout(std430, binding = 0) buffer Positions { vec2 pos[]; };
layout(std430, binding = 1) buffer Accels    { vec2 acc[]; };

uniform int   numBodies;
uniform float mass;
uniform float g;
uniform float cutoff2;
uniform float minDist2;

void main() {
    uint i = gl_GlobalInvocationID.x;
    if (i >= uint(numBodies)) return;

    vec2 pi = pos[i];
    vec2 a = vec2(0.0);

    for (int j = 0; j < numBodies; j++) {
        if (j == int(i)) continue;
        vec2 d = pos[j] - pi;
        float r2 = dot(d, d);
        if (r2 > cutoff2 || r2 == 0.0) continue;
        float rEff2 = max(r2, minDist2);
        float f = g * mass / (rEff2 * sqrt(r2));
        a += f * d;
    }

    acc[i] = a;
}
`

// OpenGLBackend runs the pairwise pass as a compute shader. It is only
// usable once a GL context exists, so the GUI opts in after window creation.
type OpenGLBackend struct {
	Program     uint32
	SSBOPos     uint32
	SSBOAcc     uint32
	Capacity    int32
	Initialized bool

	posBuf []float32
	accBuf []float32
}

func NewOpenGLBackend(capacity int) *OpenGLBackend {
	return &OpenGLBackend{Capacity: int32(capacity)}
}

func (c *OpenGLBackend) Name() string    { return "opengl" }
func (c *OpenGLBackend) Available() bool { return c.Initialized }

func (c *OpenGLBackend) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to init opengl: %v", err)
	}

	program, err := createComputeProgram(pairAccelShader)
	if err != nil {
		return err
	}
	c.Program = program

	size := int(c.Capacity) * 2 * 4

	gl.GenBuffers(1, &c.SSBOPos)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOPos)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, c.SSBOPos)

	gl.GenBuffers(1, &c.SSBOAcc)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOAcc)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 1, c.SSBOAcc)

	c.posBuf = make([]float32, c.Capacity*2)
	c.accBuf = make([]float32, c.Capacity*2)
	c.Initialized = true

	return nil
}

func (c *OpenGLBackend) PairAccel(positions []float64, mass, g, cutoff2, minDist2 float64) ([]float64, []float64) {
	n := len(positions) / 2
	ax := make([]float64, n)
	ay := make([]float64, n)

	if !c.Initialized || int32(n) > c.Capacity {
		return ax, ay
	}

	for i := 0; i < n*2; i++ {
		c.posBuf[i] = float32(positions[i])
	}

	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOPos)
	gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, 0, n*2*4, gl.Ptr(c.posBuf))

	gl.UseProgram(c.Program)
	gl.Uniform1i(gl.GetUniformLocation(c.Program, gl.Str("numBodies\x00")), int32(n))
	gl.Uniform1f(gl.GetUniformLocation(c.Program, gl.Str("mass\x00")), float32(mass))
	gl.Uniform1f(gl.GetUniformLocation(c.Program, gl.Str("g\x00")), float32(g))
	gl.Uniform1f(gl.GetUniformLocation(c.Program, gl.Str("cutoff2\x00")), float32(cutoff2))
	gl.Uniform1f(gl.GetUniformLocation(c.Program, gl.Str("minDist2\x00")), float32(minDist2))

	numGroups := (int32(n) + 255) / 256
	gl.DispatchCompute(uint32(numGroups), 1, 1)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT)

	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOAcc)
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, 0, n*2*4, gl.Ptr(c.accBuf))

	for i := 0; i < n; i++ {
		ax[i] = float64(c.accBuf[i*2])
		ay[i] = float64(c.accBuf[i*2+1])
	}

	return ax, ay
}

func (c *OpenGLBackend) Cleanup() {
	if !c.Initialized {
		return
	}
	gl.DeleteBuffers(1, &c.SSBOPos)
	gl.DeleteBuffers(1, &c.SSBOAcc)
	gl.DeleteProgram(c.Program)
	c.Initialized = false
}

func createComputeProgram(source string) (uint32, error) {
	content := source + "\x00"

	shader := gl.CreateShader(gl.COMPUTE_SHADER)
	csources, free := gl.Strs(content)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to compile compute shader: %v", log)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, shader)
	gl.LinkProgram(program)

	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return 0, fmt.Errorf("failed to link program")
	}

	gl.DeleteShader(shader)
	return program, nil
}
