package models

import "strconv"

// The upstream feed is not consistent about field names: coordinates and
// score values arrive under several shapes depending on which backend module
// produced the record. Each logical attribute has one ordered alias table,
// tried in priority order; the first defined value wins.

var latAliases = [][]string{
	{"latitude"},
	{"lat"},
	{"location", "latitude"},
	{"location", "lat"},
	{"coordinates", "lat"},
}

var lngAliases = [][]string{
	{"longitude"},
	{"lng"},
	{"lon"},
	{"location", "longitude"},
	{"location", "lng"},
	{"coordinates", "lng"},
	{"coordinates", "lon"},
}

var scoreAliases = [][]string{
	{"score"},
	{"safetyScore"},
	{"safety_score"},
	{"value"},
	{"rating"},
}

var locationNameAliases = [][]string{
	{"locationName"},
	{"name"},
	{"location_name"},
}

var profilePictureAliases = [][]string{
	{"profilePicture"},
	{"profilePhoto"},
	{"avatar"},
	{"image"},
	{"photo"},
}

var phoneAliases = [][]string{
	{"phone"},
	{"phoneNumber"},
}

// ResolveLat returns the first defined latitude alias.
func ResolveLat(raw map[string]any) (float64, bool) {
	return resolveFloat(raw, latAliases)
}

// ResolveLng returns the first defined longitude alias.
func ResolveLng(raw map[string]any) (float64, bool) {
	return resolveFloat(raw, lngAliases)
}

// ResolveScore returns the first defined score alias, defaulting to 0.
func ResolveScore(raw map[string]any) float64 {
	if v, ok := resolveFloat(raw, scoreAliases); ok {
		return v
	}
	return 0
}

// ResolveLocationName returns the first defined location-name alias.
func ResolveLocationName(raw map[string]any) string {
	s, _ := resolveString(raw, locationNameAliases)
	return s
}

// ResolveProfilePicture returns the first defined profile-picture alias.
func ResolveProfilePicture(raw map[string]any) (string, bool) {
	return resolveString(raw, profilePictureAliases)
}

// ResolvePhone returns the first defined phone alias.
func ResolvePhone(raw map[string]any) (string, bool) {
	return resolveString(raw, phoneAliases)
}

func resolveFloat(raw map[string]any, aliases [][]string) (float64, bool) {
	for _, path := range aliases {
		if v, ok := lookup(raw, path); ok {
			if f, ok := asFloat(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func resolveString(raw map[string]any, aliases [][]string) (string, bool) {
	for _, path := range aliases {
		if v, ok := lookup(raw, path); ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

func lookup(raw map[string]any, path []string) (any, bool) {
	cur := any(raw)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
