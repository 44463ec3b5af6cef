package loom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeWithColormap(t *testing.T, uuid string) (*MemStore, *Colormap) {
	t.Helper()
	cm := NewColormap()
	cm.Name = "viridis-ish"
	cm.AddControlPoint(0, RGB(0.267, 0.005, 0.329))
	cm.AddControlPoint(0.5, RGB(0.128, 0.567, 0.551))
	cm.AddControlPoint(1, RGB(0.993, 0.906, 0.144))

	xmlData, err := cm.ToXML()
	require.NoError(t, err)

	store := NewMemStore()
	require.NoError(t, store.Update(colormapPathPrefix+uuid, string(xmlData)))
	return store, cm
}

func TestSessionOpenColormap(t *testing.T) {
	store, want := storeWithColormap(t, "cm-1")
	s := NewSession(store)

	require.NoError(t, s.OpenColormap("cm-1"))
	assert.Equal(t, CategoryColormap, s.Category())
	assert.Equal(t, "cm-1", s.UUID())
	require.NotNil(t, s.Colormap())
	assert.Equal(t, want.Len(), s.Colormap().Len())

	got := s.Colormap().LookupColor(0.5)
	assert.InDelta(t, 0.128, got.R, 1e-6)
	assert.InDelta(t, 0.567, got.G, 1e-6)
}

func TestSessionOpenColormapMissing(t *testing.T) {
	s := NewSession(NewMemStore())
	err := s.OpenColormap("no-such")
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestSessionColormapEditSaveRoundTrip(t *testing.T) {
	store, _ := storeWithColormap(t, "cm-2")
	s := NewSession(store)
	require.NoError(t, s.OpenColormap("cm-2"))

	s.Colormap().AddControlPoint(0.25, RGB(1, 0, 0))
	require.NoError(t, s.Save())

	// A fresh session sees the edit.
	s2 := NewSession(store)
	require.NoError(t, s2.OpenColormap("cm-2"))
	assert.Equal(t, 4, s2.Colormap().Len())
	got := s2.Colormap().LookupColor(0.25)
	assert.InDelta(t, 1.0, got.R, 1e-6)
	assert.InDelta(t, 0.0, got.G, 1e-6)
}

func TestSessionOpenPrimitiveGradient(t *testing.T) {
	store := NewMemStore()
	g := NewPrimitiveGradient(Percent)
	require.NoError(t, g.AddStop(0, "0%"))
	require.NoError(t, g.AddStop(1, "100%"))
	require.NoError(t, store.Update(primitivePathPrefix+"op-1", g))

	s := NewSession(store)
	require.NoError(t, s.OpenPrimitiveGradient("op-1", Percent))
	assert.Equal(t, CategoryPrimitiveGradient, s.Category())
	require.NotNil(t, s.Primitive())
	assert.Equal(t, []float64{0, 1}, s.Primitive().Points)
	assert.Equal(t, []string{"0%", "100%"}, s.Primitive().Values)
}

func TestSessionOpenPrimitiveGradientMalformed(t *testing.T) {
	store := NewMemStore()
	// Parallel-list mismatch blocks the open instead of being repaired.
	broken := &PrimitiveGradient{Points: []float64{0, 1}, Values: []string{"50%"}}
	require.NoError(t, store.Update(primitivePathPrefix+"bad", broken))

	s := NewSession(store)
	err := s.OpenPrimitiveGradient("bad", Percent)
	assert.ErrorIs(t, err, ErrMalformedGradient)
	assert.Nil(t, s.Primitive())
}

func TestSessionOpenVisAssetGradient(t *testing.T) {
	store := NewMemStore()
	g := &VisAssetGradient{
		UUID:   "grad-1",
		Type:   TypeTexture,
		Points: []float64{0.5},
		Assets: []string{"tex-a", "tex-b"},
	}
	require.NoError(t, store.Update(visAssetPathPrefix+"grad-1", g))

	s := NewSession(store)
	require.NoError(t, s.OpenVisAssetGradient("grad-1"))
	assert.Equal(t, CategoryTextureGradient, s.Category())
	require.NotNil(t, s.Gradient())
	assert.Equal(t, []string{"tex-a", "tex-b"}, s.Gradient().Assets)
}

func TestSessionOpenVisAssetGradientCategories(t *testing.T) {
	store := NewMemStore()
	for uuid, typ := range map[string]GradientType{
		"g-glyph": TypeGlyph,
		"g-line":  TypeLine,
	} {
		g := &VisAssetGradient{UUID: uuid, Type: typ, Assets: []string{"a"}}
		require.NoError(t, store.Update(visAssetPathPrefix+uuid, g))
	}

	s := NewSession(store)
	require.NoError(t, s.OpenVisAssetGradient("g-glyph"))
	assert.Equal(t, CategoryGlyphGradient, s.Category())
	require.NoError(t, s.OpenVisAssetGradient("g-line"))
	assert.Equal(t, CategoryLineGradient, s.Category())
}

func TestSessionGradientEditSaveRoundTrip(t *testing.T) {
	store := NewMemStore()
	g := &VisAssetGradient{UUID: "grad-2", Type: TypeGlyph, Assets: []string{"a"}}
	require.NoError(t, store.Update(visAssetPathPrefix+"grad-2", g))

	s := NewSession(store)
	require.NoError(t, s.OpenVisAssetGradient("grad-2"))
	require.NoError(t, s.Gradient().InsertStop(VisAsset{UUID: "b", Type: TypeGlyph}, "a", After))
	require.NoError(t, s.Save())

	s2 := NewSession(store)
	require.NoError(t, s2.OpenVisAssetGradient("grad-2"))
	assert.Equal(t, []string{"a", "b"}, s2.Gradient().Assets)
	assert.Equal(t, []float64{0.5}, s2.Gradient().Points)
}

func TestSessionDelete(t *testing.T) {
	store, _ := storeWithColormap(t, "cm-3")
	s := NewSession(store)
	require.NoError(t, s.OpenColormap("cm-3"))
	require.NoError(t, s.Delete())

	assert.Nil(t, s.Colormap(), "delete closes the session")
	_, err := store.Get(colormapPathPrefix + "cm-3")
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestSessionPreview(t *testing.T) {
	store, _ := storeWithColormap(t, "cm-4")
	g := NewPrimitiveGradient(Percent)
	require.NoError(t, g.AddStop(0, "0%"))
	require.NoError(t, g.AddStop(1, "100%"))
	require.NoError(t, store.Update(primitivePathPrefix+"op-2", g))
	vg := &VisAssetGradient{UUID: "grad-3", Type: TypeTexture, Points: []float64{0.5}, Assets: []string{"a", "b"}}
	require.NoError(t, store.Update(visAssetPathPrefix+"grad-3", vg))

	s := NewSession(store)

	require.NoError(t, s.OpenColormap("cm-4"))
	strip, err := s.Preview(128)
	require.NoError(t, err)
	assert.Equal(t, 128, strip.Width())
	assert.Equal(t, 1, strip.Height())

	require.NoError(t, s.OpenPrimitiveGradient("op-2", Percent))
	strip, err = s.Preview(64)
	require.NoError(t, err)
	assert.Equal(t, 64, strip.Width())
	// Grayscale ramp: right end brighter than left.
	left := strip.GetPixel(2, 0)
	right := strip.GetPixel(61, 0)
	assert.Greater(t, right.R, left.R)

	require.NoError(t, s.OpenVisAssetGradient("grad-3"))
	strip, err = s.Preview(64)
	require.NoError(t, err)
	assert.Equal(t, 64, strip.Width())
	assert.Equal(t, 1, strip.Height())
}

func TestSessionPreviewNothingOpen(t *testing.T) {
	s := NewSession(NewMemStore())
	_, err := s.Preview(64)
	assert.Error(t, err)
}

func TestMemStoreGetCopies(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Update("k", []int{1, 2, 3}))

	raw, err := store.Get("k")
	require.NoError(t, err)
	raw[1] = 'X'

	again, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", string(again), "mutating a returned document must not corrupt the store")
}

func TestMemStoreRemoveMissing(t *testing.T) {
	store := NewMemStore()
	assert.NoError(t, store.Remove("never-set"))
}
