package engine

// Shader sources for presenting the composited canvas

// Fullscreen quad, moved by the shake offset (in clip space)
const blitVertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

uniform vec2 offset;

out vec2 TexCoord;

void main() {
    gl_Position = vec4(aPos.xy + offset, aPos.z, 1.0);
    TexCoord = aTexCoord;
}
`

// Samples the canvas texture as is; every effect already ran on the CPU
const blitFragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D canvasTexture;

void main() {
    FragColor = vec4(texture(canvasTexture, TexCoord).rgb, 1.0);
}
`
