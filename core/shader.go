package core

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Matcap shading: the view-space normal picks a texel of a sphere render.
const sceneVertexShader = `
	#version 410 core
	layout (location = 0) in vec3 aPos;
	layout (location = 1) in vec3 aNormal;

	out vec3 vNormal;
	out vec3 vViewPosition;

	uniform mat4 model;
	uniform mat4 view;
	uniform mat4 projection;

	void main() {
		mat4 modelView = view * model;
		vec4 mvPosition = modelView * vec4(aPos, 1.0);
		vNormal = mat3(modelView) * aNormal;
		vViewPosition = -mvPosition.xyz;
		gl_Position = projection * mvPosition;
	}
` + "\x00"

const sceneFragmentShader = `
	#version 410 core
	in vec3 vNormal;
	in vec3 vViewPosition;
	out vec4 FragColor;

	uniform sampler2D matcap;
	uniform bool hasMatcap;

	void main() {
		vec3 normal = normalize(vNormal);
		if (!hasMatcap) {
			float light = 0.35 + 0.65 * max(dot(normal, vec3(0.0, 0.0, 1.0)), 0.0);
			FragColor = vec4(vec3(0.8) * light, 1.0);
			return;
		}
		vec3 viewDir = normalize(vViewPosition);
		vec3 x = normalize(vec3(viewDir.z, 0.0, -viewDir.x));
		vec3 y = cross(viewDir, x);
		vec2 uv = vec2(dot(x, normal), dot(y, normal)) * 0.495 + 0.5;
		FragColor = vec4(texture(matcap, vec2(uv.x, 1.0 - uv.y)).rgb, 1.0);
	}
` + "\x00"

const uiVertexShader = `
	#version 410 core
	layout (location = 0) in vec2 aPos; // unit quad
	out vec2 TexCoord;
	uniform mat4 uiTransform; // orthographic projection + translation/scale
	void main() {
		TexCoord = aPos;
		gl_Position = uiTransform * vec4(aPos, 0.0, 1.0);
	}
` + "\x00"

const uiFragmentShader = `
	#version 410 core
	in vec2 TexCoord;
	out vec4 FragColor;
	uniform vec4 uiColor;
	uniform bool uiTextured;
	uniform sampler2D uiTexture;
	void main() {
		if (uiTextured) {
			FragColor = vec4(uiColor.rgb, uiColor.a * texture(uiTexture, TexCoord).a);
		} else {
			FragColor = uiColor;
		}
	}
` + "\x00"

// compileShader compiles vertex and fragment shaders into an OpenGL program.
func compileShader(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader := gl.CreateShader(gl.VERTEX_SHADER)
	glShaderSource(vertexShader, vertexShaderSource)
	gl.CompileShader(vertexShader)
	if err := checkShaderCompileStatus(vertexShader, "vertex"); err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	fragmentShader := gl.CreateShader(gl.FRAGMENT_SHADER)
	glShaderSource(fragmentShader, fragmentShaderSource)
	gl.CompileShader(fragmentShader)
	if err := checkShaderCompileStatus(fragmentShader, "fragment"); err != nil {
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	if err := checkProgramLinkStatus(program); err != nil {
		gl.DeleteProgram(program)
		return 0, err
	}
	return program, nil
}

// glShaderSource uploads source as the only string of shader.
func glShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

// checkShaderCompileStatus returns the compile log as an error when shader
// failed to compile.
func checkShaderCompileStatus(shader uint32, shaderType string) error {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status != gl.FALSE {
		return nil
	}
	log := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
	return fmt.Errorf("failed to compile %s shader: %s", shaderType, log)
}

// checkProgramLinkStatus returns the link log as an error when program
// failed to link.
func checkProgramLinkStatus(program uint32) error {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status != gl.FALSE {
		return nil
	}
	log := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
	return fmt.Errorf("failed to link program: %s", log)
}

// infoLog reads the driver log of a shader or program without the trailing
// NUL padding.
func infoLog(
	id uint32,
	param func(uint32, uint32, *int32),
	read func(uint32, int32, *int32, *uint8),
) string {
	var length int32
	param(id, gl.INFO_LOG_LENGTH, &length)
	log := strings.Repeat("\x00", int(length+1))
	read(id, length, nil, gl.Str(log))
	return strings.TrimSpace(strings.TrimRight(log, "\x00"))
}

// uniform looks up a uniform location by its Go name.
func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
