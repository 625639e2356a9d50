package technique

import "github.com/r3c/arcadejs-sub001/engine/renderer/shader"

// WGSL counterparts of the encoding helpers plus the two supported light
// models. Registered once so every technique template can pull them in with
// //#include lines.
func init() {
	shader.RegisterSnippet("normal-encoding", `
fn encodeNormal(normal: vec3<f32>) -> vec2<f32> {
    return normal.xy / sqrt(normal.z * 8.0 + 8.0) + 0.5;
}

fn decodeNormal(encoded: vec2<f32>) -> vec3<f32> {
    let fenc = encoded * 4.0 - 2.0;
    let f = dot(fenc, fenc);
    let g = sqrt(1.0 - f / 4.0);
    return vec3<f32>(fenc * g, 1.0 - f / 2.0);
}
`)

	shader.RegisterSnippet("shininess-encoding", `
fn encodeShininess(shininess: f32) -> f32 {
    return 1.0 / (1.0 + shininess);
}

fn decodeShininess(encoded: f32) -> f32 {
    return (1.0 - encoded) / encoded;
}
`)

	shader.RegisterSnippet("light-encoding", `
fn encodeLightValue(value: vec3<f32>) -> vec3<f32> {
    return exp2(-value);
}

fn decodeLightValue(encoded: vec3<f32>) -> vec3<f32> {
    return -log2(encoded);
}

fn encodeLightScalar(value: f32) -> f32 {
    return exp2(-value);
}

fn decodeLightScalar(encoded: f32) -> f32 {
    return -log2(encoded);
}
`)

	// Both models are always emitted; the template picks one at preprocess
	// time and the compiler drops the unused pair.
	shader.RegisterSnippet("light-model", `
fn phongDiffuse(normal: vec3<f32>, lightDirection: vec3<f32>) -> f32 {
    return max(dot(normal, lightDirection), 0.0);
}

fn phongSpecular(normal: vec3<f32>, lightDirection: vec3<f32>, eyeDirection: vec3<f32>, shininess: f32) -> f32 {
    let reflection = reflect(-lightDirection, normal);
    return pow(max(dot(reflection, eyeDirection), 0.0), shininess);
}

fn physicalDiffuse(normal: vec3<f32>, lightDirection: vec3<f32>) -> f32 {
    return max(dot(normal, lightDirection), 0.0);
}

fn physicalSpecular(normal: vec3<f32>, lightDirection: vec3<f32>, eyeDirection: vec3<f32>, shininess: f32) -> f32 {
    let halfway = normalize(lightDirection + eyeDirection);
    let energy = (shininess + 8.0) / 8.0;
    return energy * pow(max(dot(normal, halfway), 0.0), shininess) * 0.125;
}
`)
}
