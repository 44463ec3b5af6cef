package loom

import (
	"fmt"

	"github.com/gogpu/naga"
)

// transferShaderWGSL is the GPU half of the compositor. It implements
// the same math as Compositor.Sample: blend-map group weights, seam and
// corner blending, saturation/intensity adjust, and the replace-vs-
// multiply combine with the colormap color. Changes here must be
// mirrored in compositor.go and vice versa.
const transferShaderWGSL = `
struct Params {
    num_tex: u32,
    blend_width: f32,
    saturation: f32,
    intensity: f32,
    render_mode: u32,
};

@group(0) @binding(0) var colormap_tex: texture_2d<f32>;
@group(0) @binding(1) var blend_maps: texture_2d<f32>;
@group(0) @binding(2) var pattern_atlas: texture_2d<f32>;
@group(0) @binding(3) var samp: sampler;
@group(0) @binding(4) var<uniform> params: Params;

struct VSOut {
    @builtin(position) pos: vec4<f32>,
    @location(0) blend_coord: f32,
    @location(1) uv: vec2<f32>,
};

@vertex
fn vs_main(
    @location(0) pos: vec2<f32>,
    @location(1) blend_coord: f32,
    @location(2) uv: vec2<f32>,
) -> VSOut {
    var out: VSOut;
    out.pos = vec4<f32>(pos, 0.0, 1.0);
    out.blend_coord = blend_coord;
    out.uv = uv;
    return out;
}

fn edge_proximity(x: f32, m: f32) -> f32 {
    if (m <= 0.0) {
        return 0.0;
    }
    if (x < m) {
        return (m - x) / m;
    }
    if (x > 1.0 - m) {
        return (x - (1.0 - m)) / m;
    }
    return 0.0;
}

// Layer textures stack vertically in the atlas: layer i occupies the
// band [i/N, (i+1)/N) of the V axis.
fn atlas_sample(layer: u32, uv: vec2<f32>) -> vec4<f32> {
    let v = (f32(layer) + clamp(uv.y, 0.0, 1.0)) / f32(params.num_tex);
    return textureSampleLevel(pattern_atlas, samp, vec2<f32>(uv.x, v), 0.0);
}

fn seam_sample(layer: u32, uv_in: vec2<f32>) -> vec4<f32> {
    let uv = fract(uv_in);
    let s = atlas_sample(layer, uv);
    let tu = edge_proximity(uv.x, params.blend_width);
    let tv = edge_proximity(uv.y, params.blend_width);
    if (tu == 0.0 && tv == 0.0) {
        return s;
    }
    if (tv == 0.0) {
        return mix(s, atlas_sample(layer, vec2<f32>(1.0 - uv.x, uv.y)), 0.5 * tu);
    }
    if (tu == 0.0) {
        return mix(s, atlas_sample(layer, vec2<f32>(uv.x, 1.0 - uv.y)), 0.5 * tv);
    }
    let h = atlas_sample(layer, vec2<f32>(1.0 - uv.x, uv.y));
    let v = atlas_sample(layer, vec2<f32>(uv.x, 1.0 - uv.y));
    let d = atlas_sample(layer, vec2<f32>(1.0 - uv.x, 1.0 - uv.y));
    let h_blend = mix(s, h, 0.5 * tu);
    let v_blend = mix(s, v, 0.5 * tv);
    let side = mix(h_blend, v_blend, tv / (tu + tv));
    let corner = mix(mix(s, h, 0.5 * tu), mix(v, d, 0.5 * tu), 0.5 * tv);
    return mix(side, corner, tu * tv);
}

fn group_weights(group: u32, t: f32) -> vec4<f32> {
    let groups = (params.num_tex + 3u) / 4u;
    let band = (f32(group) + 0.5) / f32(groups);
    return textureSampleLevel(blend_maps, samp, vec2<f32>(t, band), 0.0);
}

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
    let base = textureSampleLevel(colormap_tex, samp, vec2<f32>(in.blend_coord, 0.5), 0.0);
    if (params.num_tex == 0u) {
        return base;
    }

    var tex = vec4<f32>(0.0);
    let groups = (params.num_tex + 3u) / 4u;
    for (var g = 0u; g < groups; g = g + 1u) {
        let w = group_weights(g, in.blend_coord);
        for (var c = 0u; c < 4u; c = c + 1u) {
            let layer = g * 4u + c;
            if (layer >= params.num_tex) {
                break;
            }
            // Overlapping weights are summed as-is, not renormalized.
            if (w[c] > 0.0) {
                tex = tex + w[c] * seam_sample(layer, in.uv);
            }
        }
    }

    let gray = dot(tex.rgb, vec3<f32>(0.2126, 0.7152, 0.0722));
    tex = vec4<f32>(mix(vec3<f32>(gray), tex.rgb, params.saturation), tex.a);
    tex = vec4<f32>(mix(vec3<f32>(1.0), tex.rgb, params.intensity), tex.a);

    if (params.render_mode == 1u) {
        return tex * base;
    }
    return tex;
}
`

// TransferShaderWGSL returns the WGSL source of the transfer-function
// compositor shader.
func TransferShaderWGSL() string { return transferShaderWGSL }

// CompileTransferShader compiles the compositor shader to SPIR-V bytes.
func CompileTransferShader() ([]byte, error) {
	spirv, err := naga.Compile(transferShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("compile transfer shader: %w", err)
	}
	return spirv, nil
}
