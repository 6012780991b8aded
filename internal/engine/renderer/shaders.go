package renderer

const gearVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vWorldPos;
out vec3 vNormal;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorldPos = world.xyz;
	// gear transforms are rigid, so the model matrix rotates normals correctly
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uProjection * uView * world;
}
`

// The lighting here must stay in step with lighting.Light.Shade.
const gearFragmentShader = `
#version 410 core

in vec3 vWorldPos;
in vec3 vNormal;

uniform vec3 uLightPos;
uniform float uAmbient;
uniform float uDiffuse;
uniform float uSpecular;
uniform vec3 uEye;
uniform vec3 uColor;
uniform float uShininess;
uniform bool uHighlight;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	vec3 l = normalize(uLightPos - vWorldPos);
	vec3 v = normalize(uEye - vWorldPos);

	float diff = max(dot(n, l), 0.0);
	float spec = 0.0;
	if (diff > 0.0) {
		spec = pow(max(dot(reflect(-l, n), v), 0.0), uShininess);
	}

	vec3 color = uColor * (uAmbient + uDiffuse * diff) + vec3(uSpecular * spec);
	if (uHighlight) {
		color = mix(color, vec3(1.0, 0.85, 0.2), 0.35);
	}
	FragColor = vec4(clamp(color, 0.0, 1.0), 1.0);
}
`

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uViewProjection;

void main() {
	gl_Position = uViewProjection * vec4(aPos, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec3 uColor;

out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, 1.0);
}
`
