package loom

import (
	"testing"
)

func TestPixmapSetGetPixel(t *testing.T) {
	p := NewPixmap(4, 4)
	c := RGBA{R: 1, G: 0.5, B: 0.25, A: 1}
	p.SetPixel(2, 3, c)

	got := p.GetPixel(2, 3)
	if got.R != 1 {
		t.Errorf("R = %v, want 1", got.R)
	}
	// 8-bit quantization
	if diff := got.G - 0.5; diff > 1.0/255 || diff < -1.0/255 {
		t.Errorf("G = %v, want ~0.5", got.G)
	}

	// Out-of-bounds reads are transparent, writes are dropped.
	if p.GetPixel(-1, 0) != Transparent {
		t.Error("out-of-bounds read should be transparent")
	}
	p.SetPixel(10, 10, c)
}

func TestPixmapSampleUV(t *testing.T) {
	p := NewPixmap(4, 1)
	for x := 0; x < 4; x++ {
		v := float64(x) / 3
		p.SetPixel(x, 0, RGB(v, v, v))
	}

	tests := []struct {
		name  string
		u     float64
		wantX int
	}{
		{"origin", 0, 0},
		{"first texel", 0.1, 0},
		{"second texel", 0.3, 1},
		{"last texel interior", 0.9, 3},
		{"exactly one clamps to last", 1.0, 3},
		{"wraps below", -0.1, 3},
		{"wraps above", 1.1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := p.GetPixel(tt.wantX, 0)
			if got := p.SampleUV(tt.u, 0.5); got != want {
				t.Errorf("SampleUV(%v) = %v, want texel %d = %v", tt.u, got, tt.wantX, want)
			}
		})
	}
}

func TestPixmapSampleUVMirrorAgreement(t *testing.T) {
	// The seam blend relies on u and 1-u addressing opposite edge texels,
	// including at the exact edges.
	p := NewPixmap(8, 8)
	p.SetPixel(0, 0, Red)
	p.SetPixel(7, 0, Blue)

	if got := p.SampleUV(0, 0); got != Red {
		t.Errorf("SampleUV(0,0) = %v, want red", got)
	}
	if got := p.SampleUV(1, 0); got != Blue {
		t.Errorf("SampleUV(1,0) = %v, want blue", got)
	}
}

func TestPixmapThumbnail(t *testing.T) {
	p := NewPixmap(64, 64)
	p.Clear(RGB(0.5, 0.5, 0.5))

	th := p.Thumbnail(16, 8)
	if th.Width() != 16 || th.Height() != 8 {
		t.Fatalf("thumbnail size = %dx%d, want 16x8", th.Width(), th.Height())
	}
	got := th.GetPixel(8, 4)
	if diff := got.R - 0.5; diff > 0.02 || diff < -0.02 {
		t.Errorf("uniform image should stay uniform after resample, got %v", got)
	}
}

func TestPixmapToBase64PNG(t *testing.T) {
	p := NewPixmap(2, 2)
	p.Clear(Red)
	s, err := p.ToBase64PNG()
	if err != nil {
		t.Fatalf("ToBase64PNG: %v", err)
	}
	if s == "" {
		t.Error("empty base64 payload")
	}
}

func TestPixmapImageRoundTrip(t *testing.T) {
	p := NewPixmap(3, 3)
	p.SetPixel(1, 1, RGB(0.2, 0.4, 0.6))

	back := FromImage(p.ToImage())
	if back.Width() != 3 || back.Height() != 3 {
		t.Fatalf("round-trip size = %dx%d", back.Width(), back.Height())
	}
	if back.GetPixel(1, 1) != p.GetPixel(1, 1) {
		t.Errorf("pixel changed through image round-trip")
	}
}

func TestPlaceholderTexture(t *testing.T) {
	p := PlaceholderTexture(64)
	if p.Width() != 64 || p.Height() != 64 {
		t.Fatalf("placeholder size = %dx%d, want 64x64", p.Width(), p.Height())
	}
	// Checker: adjacent cells differ.
	a := p.GetPixel(0, 0)
	b := p.GetPixel(8, 0)
	if a == b {
		t.Error("adjacent checker cells should differ")
	}
}

type mapResolver map[string]*Pixmap

func (m mapResolver) Texture(uuid string) (*Pixmap, error) {
	if tex, ok := m[uuid]; ok {
		return tex, nil
	}
	return nil, ErrAssetNotFound
}

func TestResolveLayerTextures(t *testing.T) {
	g := &VisAssetGradient{
		UUID:   "g",
		Type:   TypeTexture,
		Points: []float64{0.5},
		Assets: []string{"known", "missing"},
	}
	known := NewPixmap(4, 4)
	known.Clear(Red)

	layers := ResolveLayerTextures(g, mapResolver{"known": known}, 16)
	if len(layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(layers))
	}
	if layers[0] != known {
		t.Error("resolved texture should be returned as-is")
	}
	if layers[1] == nil || layers[1].Width() != 16 {
		t.Error("missing asset should fall back to the placeholder")
	}
}
