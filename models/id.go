package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexID decodes a JSON id that may arrive as a string or a bare number, always
// landing on the canonical string form.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*f = FlexID(CanonicalID(str))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*f = FlexID(CanonicalID(num))
	return nil
}

// String returns the canonical string form.
func (f FlexID) String() string { return string(f) }

// CanonicalID coerces any id form the upstream sources emit into one comparable string.
// JSON decoding hands us float64 for numeric ids and json.Number when decoders are
// configured for it; form state hands us strings. Canonicalizing once at the boundary
// replaces keying every map under string, number, and raw forms simultaneously.
func CanonicalID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case json.Number:
		return id.String()
	case float64:
		if id == math.Trunc(id) {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case float32:
		return CanonicalID(float64(id))
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
