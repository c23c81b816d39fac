package styles

var lightStyle = &Style{
	Version: 8,
	Name:    "Yatra Suraksha Light",
	Sources: osmSource(),
	Layers: append(append([]Layer{
		{ID: "background", Type: "background", Paint: map[string]any{"background-color": "#f8f9fa"}},
		// Layered water stack: the wave layers are repainted by the ambient
		// animation tick.
		{ID: WaterLayerIDs.Base, Type: "fill", Source: "osm-tiles", SourceLayer: "water",
			Paint: map[string]any{"fill-color": "#7eb8da", "fill-opacity": 1.0}},
		{ID: WaterLayerIDs.Wave1, Type: "fill", Source: "osm-tiles", SourceLayer: "water",
			Paint: map[string]any{"fill-color": "#a3d4f5", "fill-opacity": 0.4}},
		{ID: WaterLayerIDs.Wave2, Type: "fill", Source: "osm-tiles", SourceLayer: "water",
			Paint: map[string]any{"fill-color": "#c5e8ff", "fill-opacity": 0.3}},
		{ID: WaterLayerIDs.Highlight, Type: "fill", Source: "osm-tiles", SourceLayer: "water",
			Paint: map[string]any{"fill-color": "#ffffff", "fill-opacity": 0.1}},
		fillLayer("landcover-grass", "grass", "#d8e8c8"),
		fillLayer("landcover-wood", "wood", "#a8d08d"),
		fillLayer("landuse-residential", "residential", "#f0e6d2"),
		fillLayer("landuse-commercial", "commercial", "#f5d6d6"),
		fillLayer("landuse-industrial", "industrial", "#e0d4e8"),
		fillLayer("park", "", "#c8e6c9"),
	}, buildingLayers("#d9d0c9", 0.8, "#d9d0c9")...), []Layer{
		roadLayer("road-minor", []any{"minor", "service", "track"}, "#ffffff", 1),
		roadLayer("road-secondary", []any{"secondary", "tertiary"}, "#ffd700", 1.5),
		roadLayer("road-primary", []any{"primary"}, "#ffa500", 2),
		roadLayer("road-trunk", []any{"trunk"}, "#ff6347", 2.5),
		roadLayer("road-motorway", []any{"motorway"}, "#e74c3c", 3),
		{ID: "railway", Type: "line", Source: "osm-tiles", SourceLayer: "transportation",
			Filter: []any{"==", "class", "rail"},
			Paint:  map[string]any{"line-color": "#777", "line-width": 2.0, "line-dasharray": []any{3, 3}}},
		boundaryLayer("boundary-country", 2, "#9e9e9e", 2, []any{5, 3}),
		boundaryLayer("boundary-state", 4, "#bdbdbd", 1.5, []any{4, 2}),
		placeLabel("place-label-city", "city", 16, "Open Sans Bold", "#333", "#fff", 2),
		placeLabel("place-label-town", "town", 13, "Open Sans Regular", "#555", "#fff", 1.5),
		placeLabel("place-label-village", "village", 11, "Open Sans Regular", "#666", "#fff", 1),
		{ID: "road-label", Type: "symbol", Source: "osm-tiles", SourceLayer: "transportation_name",
			Layout: map[string]any{
				"text-field": []any{"get", "name"}, "text-size": 10.0,
				"symbol-placement": "line",
				"text-font":        []any{"Open Sans Regular", "Arial Unicode MS Regular"},
			},
			Paint: map[string]any{"text-color": "#333", "text-halo-color": "#fff", "text-halo-width": 1.0}},
		{ID: "poi-label", Type: "symbol", Source: "osm-tiles", SourceLayer: "poi", MinZoom: 14,
			Layout: map[string]any{
				"text-field": []any{"get", "name"}, "text-size": 10.0,
				"text-font":   []any{"Open Sans Regular", "Arial Unicode MS Regular"},
				"text-offset": []any{0, 1},
			},
			Paint: map[string]any{"text-color": "#666", "text-halo-color": "#fff", "text-halo-width": 1.0}},
	}...),
}

var darkStyle = &Style{
	Version: 8,
	Name:    "Yatra Suraksha Dark",
	Sources: osmSource(),
	Layers: append(append([]Layer{
		{ID: "background", Type: "background", Paint: map[string]any{"background-color": "#1a1a2e"}},
		{ID: "water", Type: "fill", Source: "osm-tiles", SourceLayer: "water",
			Paint: map[string]any{"fill-color": "#1e3a5f"}},
		fillLayer("landcover-grass", "grass", "#1e3d1e"),
		fillLayer("landcover-wood", "wood", "#1a4d1a"),
		fillLayer("landuse-residential", "residential", "#252538"),
		fillLayer("landuse-commercial", "commercial", "#2d2538"),
		fillLayer("landuse-industrial", "industrial", "#2a2a3d"),
		fillLayer("park", "", "#1e3d2e"),
	}, buildingLayers("#2a2a3e", 0.9, "#3a3a5e")...), []Layer{
		roadLayer("road-minor", []any{"minor", "service", "track"}, "#3d3d5c", 1),
		roadLayer("road-secondary", []any{"secondary", "tertiary"}, "#5c5c7a", 1.5),
		roadLayer("road-primary", []any{"primary"}, "#7a7a9c", 2),
		roadLayer("road-trunk", []any{"trunk"}, "#ff7f50", 2.5),
		roadLayer("road-motorway", []any{"motorway"}, "#ff6b6b", 3),
		{ID: "railway", Type: "line", Source: "osm-tiles", SourceLayer: "transportation",
			Filter: []any{"==", "class", "rail"},
			Paint:  map[string]any{"line-color": "#555", "line-width": 2.0, "line-dasharray": []any{3, 3}}},
		boundaryLayer("boundary-country", 2, "#6a6a8a", 2, []any{5, 3}),
		boundaryLayer("boundary-state", 4, "#5a5a7a", 1.5, []any{4, 2}),
		placeLabel("place-label-city", "city", 16, "Open Sans Bold", "#e0e0e0", "#1a1a2e", 2),
		placeLabel("place-label-town", "town", 13, "Open Sans Regular", "#b0b0b0", "#1a1a2e", 1.5),
		placeLabel("place-label-village", "village", 11, "Open Sans Regular", "#909090", "#1a1a2e", 1),
		{ID: "road-label", Type: "symbol", Source: "osm-tiles", SourceLayer: "transportation_name",
			Layout: map[string]any{
				"text-field": []any{"get", "name"}, "text-size": 10.0,
				"symbol-placement": "line",
				"text-font":        []any{"Open Sans Regular", "Arial Unicode MS Regular"},
			},
			Paint: map[string]any{"text-color": "#a0a0a0", "text-halo-color": "#1a1a2e", "text-halo-width": 1.0}},
		{ID: "poi-label", Type: "symbol", Source: "osm-tiles", SourceLayer: "poi", MinZoom: 14,
			Layout: map[string]any{
				"text-field": []any{"get", "name"}, "text-size": 10.0,
				"text-font":   []any{"Open Sans Regular", "Arial Unicode MS Regular"},
				"text-offset": []any{0, 1},
			},
			Paint: map[string]any{"text-color": "#808080", "text-halo-color": "#1a1a2e", "text-halo-width": 1.0}},
	}...),
}

var satelliteStyle = &Style{
	Version: 8,
	Name:    "Satellite View",
	Sources: osmSource(),
	Layers: append(append([]Layer{
		{ID: "background", Type: "background", Paint: map[string]any{"background-color": "#0f1419"}},
		{ID: "water", Type: "fill", Source: "osm-tiles", SourceLayer: "water",
			Paint: map[string]any{"fill-color": "#1a3a5c"}},
		fillLayer("landcover-grass", "grass", "#2d4a2d"),
		fillLayer("landcover-wood", "wood", "#1e3d1e"),
		fillLayer("landuse-residential", "residential", "#2a2a35"),
		fillLayer("park", "", "#1e3d2e"),
	}, buildingLayers("#3a3a4a", 0.9, "#4a4a5a")...), []Layer{
		roadLayer("road-minor", []any{"minor", "service", "track"}, "#4a4a5a", 1),
		roadLayer("road-secondary", []any{"secondary", "tertiary"}, "#6a6a7a", 1.5),
		roadLayer("road-primary", []any{"primary"}, "#8a8a9a", 2),
		roadLayer("road-motorway", []any{"motorway"}, "#ffa500", 3),
		boundaryLayer("boundary-country", 2, "#ffcc00", 2, []any{5, 3}),
		placeLabel("place-label-city", "city", 16, "Open Sans Bold", "#fff", "#000", 2),
		placeLabel("place-label-town", "town", 13, "Open Sans Regular", "#ddd", "#000", 1.5),
	}...),
}

var terrainStyle = &Style{
	Version: 8,
	Name:    "Terrain",
	Sources: osmSource(),
	Layers: append(append([]Layer{
		{ID: "background", Type: "background", Paint: map[string]any{"background-color": "#e8dcc8"}},
		{ID: "water", Type: "fill", Source: "osm-tiles", SourceLayer: "water",
			Paint: map[string]any{"fill-color": "#8ecae6"}},
		fillLayer("landcover-grass", "grass", "#a8d5a2"),
		fillLayer("landcover-wood", "wood", "#6a994e"),
		fillLayer("landuse-residential", "residential", "#f4e4c8"),
		fillLayer("park", "", "#95d5b2"),
	}, buildingLayers("#d4c4a8", 0.8, "#c4b498")...), []Layer{
		roadLayer("road-minor", []any{"minor", "service", "track"}, "#f5f0e6", 1),
		roadLayer("road-secondary", []any{"secondary", "tertiary"}, "#e9c46a", 1.5),
		roadLayer("road-primary", []any{"primary"}, "#f4a261", 2),
		roadLayer("road-motorway", []any{"motorway"}, "#e76f51", 3),
		boundaryLayer("boundary-country", 2, "#8b5a2b", 2, []any{5, 3}),
		placeLabel("place-label-city", "city", 16, "Open Sans Bold", "#5c4033", "#fff", 2),
		placeLabel("place-label-town", "town", 13, "Open Sans Regular", "#6b5344", "#fff", 1.5),
	}...),
}

var oceanStyle = &Style{
	Version: 8,
	Name:    "Ocean Blue",
	Sources: osmSource(),
	Layers: append(append([]Layer{
		{ID: "background", Type: "background", Paint: map[string]any{"background-color": "#e0f4ff"}},
		{ID: "water", Type: "fill", Source: "osm-tiles", SourceLayer: "water",
			Paint: map[string]any{"fill-color": "#0077b6"}},
		fillLayer("landcover-grass", "grass", "#90e0ef"),
		fillLayer("landcover-wood", "wood", "#48cae4"),
		fillLayer("landuse-residential", "residential", "#caf0f8"),
		fillLayer("park", "", "#ade8f4"),
	}, buildingLayers("#a9d6e5", 0.8, "#89c2d9")...), []Layer{
		roadLayer("road-minor", []any{"minor", "service", "track"}, "#fff", 1),
		roadLayer("road-secondary", []any{"secondary", "tertiary"}, "#61a5c2", 1.5),
		roadLayer("road-primary", []any{"primary"}, "#468faf", 2),
		roadLayer("road-motorway", []any{"motorway"}, "#023e8a", 3),
		boundaryLayer("boundary-country", 2, "#03045e", 2, []any{5, 3}),
		placeLabel("place-label-city", "city", 16, "Open Sans Bold", "#03045e", "#fff", 2),
		placeLabel("place-label-town", "town", 13, "Open Sans Regular", "#0077b6", "#fff", 1.5),
	}...),
}

var midnightStyle = &Style{
	Version: 8,
	Name:    "Midnight",
	Sources: osmSource(),
	Layers: append(append([]Layer{
		{ID: "background", Type: "background", Paint: map[string]any{"background-color": "#0d0d1a"}},
		{ID: "water", Type: "fill", Source: "osm-tiles", SourceLayer: "water",
			Paint: map[string]any{"fill-color": "#1a1a3a"}},
		fillLayer("landcover-grass", "grass", "#1a2a1a"),
		fillLayer("landcover-wood", "wood", "#0d1a0d"),
		fillLayer("landuse-residential", "residential", "#1a1a2a"),
		fillLayer("park", "", "#0d2a1a"),
	}, buildingLayers("#2a2a3a", 0.9, "#3a3a4a")...), []Layer{
		roadLayer("road-minor", []any{"minor", "service", "track"}, "#3a3a4a", 1),
		roadLayer("road-secondary", []any{"secondary", "tertiary"}, "#5a5a6a", 1.5),
		roadLayer("road-primary", []any{"primary"}, "#7a7a8a", 2),
		roadLayer("road-motorway", []any{"motorway"}, "#9b5de5", 3),
		boundaryLayer("boundary-country", 2, "#f72585", 2, []any{5, 3}),
		placeLabel("place-label-city", "city", 16, "Open Sans Bold", "#fff", "#0d0d1a", 2),
		placeLabel("place-label-town", "town", 13, "Open Sans Regular", "#aaa", "#0d0d1a", 1.5),
	}...),
}

var vintageStyle = &Style{
	Version: 8,
	Name:    "Vintage",
	Sources: osmSource(),
	Layers: append(append([]Layer{
		{ID: "background", Type: "background", Paint: map[string]any{"background-color": "#f5f0e1"}},
		{ID: "water", Type: "fill", Source: "osm-tiles", SourceLayer: "water",
			Paint: map[string]any{"fill-color": "#b8d4e3"}},
		fillLayer("landcover-grass", "grass", "#d4e6c3"),
		fillLayer("landcover-wood", "wood", "#b8d4a3"),
		fillLayer("landuse-residential", "residential", "#f0e6d2"),
		fillLayer("park", "", "#c8deb8"),
	}, buildingLayers("#e0d6c2", 0.8, "#d0c6b2")...), []Layer{
		roadLayer("road-minor", []any{"minor", "service", "track"}, "#fff", 1),
		roadLayer("road-secondary", []any{"secondary", "tertiary"}, "#d4a574", 1.5),
		roadLayer("road-primary", []any{"primary"}, "#c4956a", 2),
		roadLayer("road-motorway", []any{"motorway"}, "#a67c52", 3),
		boundaryLayer("boundary-country", 2, "#8b7355", 2, []any{5, 3}),
		placeLabel("place-label-city", "city", 16, "Open Sans Bold", "#5c4a3a", "#f5f0e1", 2),
		placeLabel("place-label-town", "town", 13, "Open Sans Regular", "#6c5a4a", "#f5f0e1", 1.5),
	}...),
}

// Themes is the selector catalog, keyed by theme name.
var Themes = map[string]Theme{
	"default":   {Key: "default", Name: "Default", Icon: "🗺️", Preview: "#f8f9fa", Style: lightStyle},
	"dark":      {Key: "dark", Name: "Dark", Icon: "🌑", Preview: "#1a1a2e", Style: darkStyle},
	"satellite": {Key: "satellite", Name: "Satellite", Icon: "🛰️", Preview: "#0f1419", Style: satelliteStyle},
	"terrain":   {Key: "terrain", Name: "Terrain", Icon: "⛰️", Preview: "#e8dcc8", Style: terrainStyle},
	"ocean":     {Key: "ocean", Name: "Ocean", Icon: "🌊", Preview: "#0077b6", Style: oceanStyle},
	"midnight":  {Key: "midnight", Name: "Midnight", Icon: "🌃", Preview: "#0d0d1a", Style: midnightStyle},
	"vintage":   {Key: "vintage", Name: "Vintage", Icon: "📜", Preview: "#f5f0e1", Style: vintageStyle},
}

// ThemeOrder is the display order for the selector.
var ThemeOrder = []string{"default", "dark", "satellite", "terrain", "ocean", "midnight", "vintage"}

// Get returns the theme for key, if it exists.
func Get(key string) (Theme, bool) {
	t, ok := Themes[key]
	return t, ok
}
