package models

// UserPatchFromPayload builds a shallow-merge patch from one raw inbound user
// payload. Only fields the payload actually carries end up non-nil, so fields
// an event never mentions persist on the stored record.
func UserPatchFromPayload(raw map[string]any) (UserPatch, bool) {
	patch := UserPatch{}

	id, _ := raw["userId"].(string)
	if id == "" {
		id, _ = raw["_id"].(string)
	}
	if id == "" {
		id, _ = raw["id"].(string)
	}
	if id == "" {
		return patch, false
	}
	patch.UserID = id

	if lat, ok := ResolveLat(raw); ok {
		if lng, ok := ResolveLng(raw); ok {
			patch.Latitude = &lat
			patch.Longitude = &lng
		}
	} else if coords, ok := lookup(raw, []string{"location", "coordinates"}); ok {
		// Legacy GeoJSON shape: location.coordinates = [lng, lat]
		if pair, ok := coords.([]any); ok && len(pair) == 2 {
			if lng, ok := asFloat(pair[0]); ok {
				if lat, ok := asFloat(pair[1]); ok {
					patch.Longitude = &lng
					patch.Latitude = &lat
				}
			}
		}
	}

	if name, ok := raw["name"].(string); ok {
		patch.Name = &name
	} else if name, ok := raw["userName"].(string); ok {
		patch.Name = &name
	}
	if email, ok := raw["email"].(string); ok {
		patch.Email = &email
	}
	if phone, ok := ResolvePhone(raw); ok {
		patch.Phone = &phone
	}
	if pic, ok := ResolveProfilePicture(raw); ok {
		patch.ProfilePicture = &pic
	}

	if online, ok := raw["isOnline"].(bool); ok {
		patch.IsOnline = &online
	} else if active, ok := raw["isActive"].(bool); ok {
		patch.IsOnline = &active
	}

	for key, dst := range map[string]**float64{
		"battery":  &patch.Battery,
		"accuracy": &patch.Accuracy,
		"speed":    &patch.Speed,
		"heading":  &patch.Heading,
		"altitude": &patch.Altitude,
	} {
		if v, ok := raw[key]; ok {
			if f, ok := asFloat(v); ok {
				*dst = &f
			}
		}
	}

	if ts, ok := raw["timestamp"].(string); ok {
		patch.Timestamp = &ts
	}

	return patch, true
}
