package session

// Scratch holds partially collected flow data. Values are written by
// step validators and read back by finalize actions. Accessors tolerate
// a JSON round-trip: a persisted store hands integers back as float64
// and string lists as []any, and both forms must decode losslessly.
type Scratch map[string]any

func (s Scratch) Int(key string) (int, bool) {
	switch v := s[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func (s Scratch) Float(key string) (float64, bool) {
	switch v := s[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func (s Scratch) String(key string) (string, bool) {
	v, ok := s[key].(string)
	return v, ok
}

func (s Scratch) Strings(key string) []string {
	switch v := s[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Geo returns a latitude/longitude pair stored under key.
func (s Scratch) Geo(key string) (lat, lon float64, ok bool) {
	switch v := s[key].(type) {
	case [2]float64:
		return v[0], v[1], true
	case []any:
		if len(v) != 2 {
			return 0, 0, false
		}
		lat, latOK := asFloat(v[0])
		lon, lonOK := asFloat(v[1])
		return lat, lon, latOK && lonOK
	}
	return 0, 0, false
}

func (s Scratch) SetGeo(key string, lat, lon float64) {
	s[key] = [2]float64{lat, lon}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
