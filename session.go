package loom

import (
	"encoding/json"
	"fmt"
)

// AssetCategory classifies the descriptor kinds the editor can open.
// Category-dependent behavior dispatches on this enum instead of the
// string-keyed handler maps the browser editor used.
type AssetCategory int

const (
	// CategoryColormap edits a color control-point list.
	CategoryColormap AssetCategory = iota
	// CategoryGlyphGradient edits a glyph VisAssetGradient.
	CategoryGlyphGradient
	// CategoryLineGradient edits a line VisAssetGradient.
	CategoryLineGradient
	// CategoryTextureGradient edits a texture VisAssetGradient.
	CategoryTextureGradient
	// CategoryPrimitiveGradient edits an opacity/scalar map.
	CategoryPrimitiveGradient
)

func gradientCategory(t GradientType) AssetCategory {
	switch t {
	case TypeLine:
		return CategoryLineGradient
	case TypeTexture:
		return CategoryTextureGradient
	default:
		return CategoryGlyphGradient
	}
}

// Store paths for each descriptor family. The state document is owned
// externally; sessions only ever replace whole subtrees.
const (
	colormapPathPrefix  = "colormaps/"
	primitivePathPrefix = "primitiveGradients/"
	visAssetPathPrefix  = "visAssetGradients/"
)

// Session is one active editing context for one descriptor. It replaces
// the module-level currentGradient/currentColormapUuid singletons of the
// browser editor: every session is an explicit value owned by its
// caller, so multiple editors can be open at once.
//
// Mutations apply synchronously and optimistically to the in-memory
// descriptor; Save pushes the descriptor to the store wholesale. The
// session never awaits the store on edit.
type Session struct {
	store StateStore

	category  AssetCategory
	uuid      string
	colormap  *Colormap
	primitive *PrimitiveGradient
	gradient  *VisAssetGradient
}

// NewSession creates a session bound to a state store.
func NewSession(store StateStore) *Session {
	return &Session{store: store}
}

// Category returns the category of the open descriptor.
func (s *Session) Category() AssetCategory { return s.category }

// UUID returns the UUID of the open descriptor.
func (s *Session) UUID() string { return s.uuid }

// Colormap returns the open colormap, or nil if another category is open.
func (s *Session) Colormap() *Colormap { return s.colormap }

// Primitive returns the open primitive gradient, or nil.
func (s *Session) Primitive() *PrimitiveGradient { return s.primitive }

// Gradient returns the open VisAsset gradient, or nil.
func (s *Session) Gradient() *VisAssetGradient { return s.gradient }

// OpenColormap loads a colormap. The state document stores the XML
// control-point format as a JSON string.
func (s *Session) OpenColormap(uuid string) error {
	raw, err := s.store.Get(colormapPathPrefix + uuid)
	if err != nil {
		return err
	}
	var xmlText string
	if err := json.Unmarshal(raw, &xmlText); err != nil {
		return fmt.Errorf("open colormap %s: %w", uuid, err)
	}
	cm, err := ColormapFromXML([]byte(xmlText))
	if err != nil {
		return fmt.Errorf("open colormap %s: %w", uuid, err)
	}
	s.reset()
	s.category = CategoryColormap
	s.uuid = uuid
	s.colormap = cm
	Logger().Info("opened colormap", "uuid", uuid, "points", cm.Len())
	return nil
}

// OpenPrimitiveGradient loads an opacity/scalar gradient of the given
// kind. A malformed descriptor (parallel-list mismatch) blocks the open;
// it is reported, never auto-repaired.
func (s *Session) OpenPrimitiveGradient(uuid string, kind ValueKind) error {
	raw, err := s.store.Get(primitivePathPrefix + uuid)
	if err != nil {
		return err
	}
	g := NewPrimitiveGradient(kind)
	if err := json.Unmarshal(raw, g); err != nil {
		return fmt.Errorf("open primitive gradient %s: %w", uuid, err)
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("open primitive gradient %s: %w", uuid, err)
	}
	s.reset()
	s.category = CategoryPrimitiveGradient
	s.uuid = uuid
	s.primitive = g
	Logger().Info("opened primitive gradient", "uuid", uuid, "stops", len(g.Points))
	return nil
}

// OpenVisAssetGradient loads a VisAsset gradient. Unmarshaling validates
// the structural invariants, so a malformed descriptor blocks the open.
func (s *Session) OpenVisAssetGradient(uuid string) error {
	raw, err := s.store.Get(visAssetPathPrefix + uuid)
	if err != nil {
		return err
	}
	var g VisAssetGradient
	if err := json.Unmarshal(raw, &g); err != nil {
		return fmt.Errorf("open gradient %s: %w", uuid, err)
	}
	s.reset()
	s.category = gradientCategory(g.Type)
	s.uuid = uuid
	s.gradient = &g
	Logger().Info("opened gradient", "uuid", uuid, "type", g.Type.String(), "assets", len(g.Assets))
	return nil
}

// Save writes the open descriptor back to the store, replacing its
// subtree wholesale.
func (s *Session) Save() error {
	switch s.category {
	case CategoryColormap:
		if s.colormap == nil {
			return fmt.Errorf("save: no colormap open")
		}
		xmlData, err := s.colormap.ToXML()
		if err != nil {
			return err
		}
		return s.store.Update(colormapPathPrefix+s.uuid, string(xmlData))
	case CategoryPrimitiveGradient:
		if s.primitive == nil {
			return fmt.Errorf("save: no primitive gradient open")
		}
		return s.store.Update(primitivePathPrefix+s.uuid, s.primitive)
	default:
		if s.gradient == nil {
			return fmt.Errorf("save: no gradient open")
		}
		return s.store.Update(visAssetPathPrefix+s.uuid, s.gradient)
	}
}

// Delete removes the open descriptor's subtree from the store and
// closes the session.
func (s *Session) Delete() error {
	var path string
	switch s.category {
	case CategoryColormap:
		path = colormapPathPrefix + s.uuid
	case CategoryPrimitiveGradient:
		path = primitivePathPrefix + s.uuid
	default:
		path = visAssetPathPrefix + s.uuid
	}
	if err := s.store.Remove(path); err != nil {
		return err
	}
	s.reset()
	return nil
}

// Preview renders the open descriptor as a raster strip of the given
// width: the colormap itself, the primitive gradient resolved to
// grayscale, or the gradient's blend-map top band.
func (s *Session) Preview(width int) (*Pixmap, error) {
	switch s.category {
	case CategoryColormap:
		if s.colormap == nil {
			return nil, fmt.Errorf("preview: no descriptor open")
		}
		return s.colormap.RasterStrip(width), nil
	case CategoryPrimitiveGradient:
		if s.primitive == nil {
			return nil, fmt.Errorf("preview: no descriptor open")
		}
		cm, err := s.primitive.ToColormap()
		if err != nil {
			return nil, err
		}
		return cm.RasterStrip(width), nil
	default:
		if s.gradient == nil {
			return nil, fmt.Errorf("preview: no descriptor open")
		}
		bm, err := NewBlendMap(s.gradient, width)
		if err != nil {
			return nil, err
		}
		return bm.Texture().Thumbnail(width, 1), nil
	}
}

func (s *Session) reset() {
	s.category = CategoryColormap
	s.uuid = ""
	s.colormap = nil
	s.primitive = nil
	s.gradient = nil
}
