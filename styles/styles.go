// Package styles holds the declarative map style documents. Each theme is a
// self-contained style: switching themes swaps the whole document, which
// discards every previously added source and layer on the engine side.
package styles

// TileURL is the vector tile endpoint shared by every theme.
const TileURL = "http://135.235.138.50/planettiles/{z}/{x}/{y}.mvt"

type VectorSource struct {
	Type    string   `json:"type"`
	Tiles   []string `json:"tiles"`
	MaxZoom int      `json:"maxzoom,omitempty"`
}

// Layer is a single style layer. The same shape is reused for entity
// overlays (geofences, routes, previews) added on top of a style.
type Layer struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Source      string         `json:"source,omitempty"`
	SourceLayer string         `json:"source-layer,omitempty"`
	Filter      []any          `json:"filter,omitempty"`
	MinZoom     float64        `json:"minzoom,omitempty"`
	Layout      map[string]any `json:"layout,omitempty"`
	Paint       map[string]any `json:"paint,omitempty"`
}

type Style struct {
	Version int                     `json:"version"`
	Name    string                  `json:"name"`
	Sources map[string]VectorSource `json:"sources"`
	Layers  []Layer                 `json:"layers"`
}

// Theme bundles a style document with its selector metadata.
type Theme struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Icon    string `json:"icon"`
	Preview string `json:"preview"`
	Style   *Style `json:"-"`
}

// WaterLayerIDs are the layers the ambient water animation repaints. Only
// the default theme carries the layered wave stack.
var WaterLayerIDs = struct {
	Base, Wave1, Wave2, Highlight string
}{"water-base", "water-wave-1", "water-wave-2", "water-highlight"}

func osmSource() map[string]VectorSource {
	return map[string]VectorSource{
		"osm-tiles": {Type: "vector", Tiles: []string{TileURL}, MaxZoom: 14},
	}
}

func fillLayer(id, class, color string) Layer {
	l := Layer{
		ID:          id,
		Type:        "fill",
		Source:      "osm-tiles",
		SourceLayer: "landcover",
		Paint:       map[string]any{"fill-color": color},
	}
	switch id {
	case "landuse-residential", "landuse-commercial", "landuse-industrial":
		l.SourceLayer = "landuse"
	case "park":
		l.SourceLayer = "park"
	}
	if class != "" {
		l.Filter = []any{"==", "class", class}
	}
	return l
}

func buildingLayers(color string, opacity float64, extrusionColor string) []Layer {
	return []Layer{
		{
			ID: "building", Type: "fill", Source: "osm-tiles", SourceLayer: "building",
			Paint: map[string]any{"fill-color": color, "fill-opacity": opacity},
		},
		{
			ID: "building-3d", Type: "fill-extrusion", Source: "osm-tiles", SourceLayer: "building",
			MinZoom: 14,
			Paint: map[string]any{
				"fill-extrusion-color":   extrusionColor,
				"fill-extrusion-height":  []any{"coalesce", []any{"get", "render_height"}, 10},
				"fill-extrusion-base":    []any{"coalesce", []any{"get", "render_min_height"}, 0},
				"fill-extrusion-opacity": opacity,
			},
		},
	}
}

func roadLayer(id string, classes []any, color string, width float64) Layer {
	var filter []any
	if len(classes) == 1 {
		filter = []any{"all", []any{"==", "$type", "LineString"}, []any{"==", "class", classes[0]}}
	} else {
		in := append([]any{"in", "class"}, classes...)
		filter = []any{"all", []any{"==", "$type", "LineString"}, in}
	}
	return Layer{
		ID: id, Type: "line", Source: "osm-tiles", SourceLayer: "transportation",
		Filter: filter,
		Paint:  map[string]any{"line-color": color, "line-width": width},
	}
}

func boundaryLayer(id string, adminLevel int, color string, width float64, dash []any) Layer {
	return Layer{
		ID: id, Type: "line", Source: "osm-tiles", SourceLayer: "boundary",
		Filter: []any{"==", "admin_level", adminLevel},
		Paint:  map[string]any{"line-color": color, "line-width": width, "line-dasharray": dash},
	}
}

func placeLabel(id, class string, size float64, font, color, halo string, haloWidth float64) Layer {
	return Layer{
		ID: id, Type: "symbol", Source: "osm-tiles", SourceLayer: "place",
		Filter: []any{"==", "class", class},
		Layout: map[string]any{
			"text-field": []any{"get", "name"},
			"text-size":  size,
			"text-font":  []any{font, "Arial Unicode MS " + fontWeight(font)},
		},
		Paint: map[string]any{"text-color": color, "text-halo-color": halo, "text-halo-width": haloWidth},
	}
}

func fontWeight(font string) string {
	if font == "Open Sans Bold" {
		return "Bold"
	}
	return "Regular"
}
