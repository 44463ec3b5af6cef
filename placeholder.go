package loom

// TextureResolver maps asset UUIDs to their tile textures. The engine's
// asset cache implements this; tests use simple map-backed fakes.
type TextureResolver interface {
	Texture(uuid string) (*Pixmap, error)
}

// placeholderCells is the checker tiling of the fallback texture.
const placeholderCells = 8

// PlaceholderTexture generates the gray checker tile substituted for a
// missing or unfetchable asset texture.
func PlaceholderTexture(size int) *Pixmap {
	light := RGB(0.7, 0.7, 0.7)
	dark := RGB(0.45, 0.45, 0.45)
	p := NewPixmap(size, size)
	cell := size / placeholderCells
	if cell < 1 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				p.SetPixel(x, y, light)
			} else {
				p.SetPixel(x, y, dark)
			}
		}
	}
	return p
}

// ResolveLayerTextures fetches one texture per gradient asset, in
// segment order. An asset whose texture cannot be fetched falls back to
// the placeholder rather than failing the whole render.
func ResolveLayerTextures(g *VisAssetGradient, r TextureResolver, placeholderSize int) []*Pixmap {
	layers := make([]*Pixmap, len(g.Assets))
	for i, uuid := range g.Assets {
		tex, err := r.Texture(uuid)
		if err != nil || tex == nil {
			Logger().Warn("using placeholder for asset texture", "asset", uuid, "error", err)
			tex = PlaceholderTexture(placeholderSize)
		}
		layers[i] = tex
	}
	return layers
}
