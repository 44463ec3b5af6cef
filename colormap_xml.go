package loom

import (
	"encoding/xml"
	"fmt"
)

// The XML control-point format is shared with external authoring tools.
// Tag names are case-sensitive (ColorMaps/ColorMap/Point, capitalized)
// and must survive a round trip even though some tools lowercase tags;
// attribute order on Point is r, g, b, x.

type xmlPoint struct {
	R float64 `xml:"r,attr"`
	G float64 `xml:"g,attr"`
	B float64 `xml:"b,attr"`
	X float64 `xml:"x,attr"`
}

type xmlColorMap struct {
	XMLName       xml.Name   `xml:"ColorMap"`
	Space         string     `xml:"space,attr"`
	IndexedLookup bool       `xml:"indexedLookup,attr"`
	Name          string     `xml:"name,attr"`
	Points        []xmlPoint `xml:"Point"`
}

type xmlColorMaps struct {
	XMLName xml.Name      `xml:"ColorMaps"`
	Maps    []xmlColorMap `xml:"ColorMap"`
}

// ToXML serializes the colormap as a ColorMaps document with a single
// ColorMap element. Control points are written in position order.
func (cm *Colormap) ToXML() ([]byte, error) {
	doc := xmlColorMaps{
		Maps: []xmlColorMap{{
			Space:         "CIELAB",
			IndexedLookup: false,
			Name:          cm.Name,
		}},
	}
	for _, p := range cm.points {
		doc.Maps[0].Points = append(doc.Maps[0].Points, xmlPoint{
			R: p.Color.R,
			G: p.Color.G,
			B: p.Color.B,
			X: p.Position,
		})
	}
	return xml.MarshalIndent(doc, "", "  ")
}

// ColormapFromXML parses a ColorMaps document and returns its first
// ColorMap. The format itself carries no order guarantee, so points are
// explicitly re-sorted by position after decoding.
func ColormapFromXML(data []byte) (*Colormap, error) {
	var doc xmlColorMaps
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse colormap xml: %w", err)
	}
	if len(doc.Maps) == 0 {
		return nil, fmt.Errorf("parse colormap xml: no ColorMap element")
	}

	cm := NewColormap()
	cm.Name = doc.Maps[0].Name
	for _, p := range doc.Maps[0].Points {
		cm.points = append(cm.points, ColorPoint{
			Position: p.X,
			Color:    RGB(p.R, p.G, p.B),
		})
	}
	cm.sortPoints()
	return cm, nil
}
