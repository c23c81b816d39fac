package models

// ScoreBand is the display band a safety score falls into. Boundary values
// are inclusive at the lower bound of each band.
type ScoreBand string

const (
	BandSafe     ScoreBand = "safe"     // score >= 80
	BandModerate ScoreBand = "moderate" // 50 <= score < 80
	BandDanger   ScoreBand = "danger"   // score < 50
)

// BandForScore maps a 0-100 score to its color band.
func BandForScore(score float64) ScoreBand {
	if score >= 80 {
		return BandSafe
	}
	if score >= 50 {
		return BandModerate
	}
	return BandDanger
}

// Colors returns the marker fill and border colors for the band.
func (b ScoreBand) Colors() (bg, border string) {
	switch b {
	case BandSafe:
		return "#22c55e", "#16a34a"
	case BandModerate:
		return "#f59e0b", "#d97706"
	default:
		return "#ef4444", "#dc2626"
	}
}

// SafetyScoreFromPayload flattens one raw score record through the alias
// tables. Records with no resolvable coordinate keep nil coordinates and are
// skipped at render time.
func SafetyScoreFromPayload(raw map[string]any) SafetyScore {
	score := SafetyScore{
		Score:        ResolveScore(raw),
		LocationName: ResolveLocationName(raw),
	}
	if id, ok := raw["id"].(string); ok {
		score.ID = id
	}
	if lat, ok := ResolveLat(raw); ok {
		if lng, ok := ResolveLng(raw); ok {
			score.Latitude = &lat
			score.Longitude = &lng
		}
	}
	if cat, ok := raw["category"].(string); ok {
		score.Category = cat
	}
	if f, ok := raw["factors"].(map[string]any); ok {
		factors := &SafetyFactors{}
		if w, ok := f["weather"].(string); ok {
			factors.Weather = w
		}
		if c, ok := f["crowd"].(string); ok {
			factors.Crowd = c
		}
		if t, ok := f["terrain"].(string); ok {
			factors.Terrain = t
		}
		score.Factors = factors
	}
	return score
}
