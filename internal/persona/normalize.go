package persona

import (
	"encoding/json"
	"math"
)

// slotRule declares where a persona slot lives on the raw payload and which
// sub-key its trait data belongs under. Aliases cover older payload spellings
// that the provider still emits occasionally.
type slotRule struct {
	key     string
	aliases []string
	subKey  string
}

var positiveSlots = []slotRule{
	{key: "personality_traits", subKey: "examples"},
	{key: "core_values", subKey: "examples"},
	{key: "behavioral_traits", subKey: "examples"},
	{key: "hobbies_interests", subKey: "examples"},
}

var negativeSlots = []slotRule{
	{key: "emotional", aliases: []string{"emotional_weaknesses", "emotional_aspects"}, subKey: "traits"},
	{key: "social", aliases: []string{"social_weaknesses", "social_aspects"}, subKey: "traits"},
	{key: "lifestyle", aliases: []string{"lifestyle_weaknesses", "lifestyle_aspects"}, subKey: "traits"},
	{key: "relational", aliases: []string{"relational_weaknesses", "relational_aspects"}, subKey: "traits"},
}

// NormalizePositive repairs a raw positive-persona payload into the canonical
// schema. Total: any input map, including nil, yields a fully populated value.
func NormalizePositive(raw map[string]any) Positive {
	return Positive{
		PersonalityTraits: normalizeSlot(raw, positiveSlots[0]),
		CoreValues:        normalizeSlot(raw, positiveSlots[1]),
		BehavioralTraits:  normalizeSlot(raw, positiveSlots[2]),
		HobbiesInterests:  normalizeSlot(raw, positiveSlots[3]),
		Summary:           stringOrEmpty(value(raw, "summary")),
	}
}

// NormalizeNegative repairs a raw negative-persona payload into the canonical
// schema, accepting both the short slot names and the older *_weaknesses and
// *_aspects spellings.
func NormalizeNegative(raw map[string]any) Negative {
	return Negative{
		Emotional:  normalizeSlot(raw, negativeSlots[0]),
		Social:     normalizeSlot(raw, negativeSlots[1]),
		Lifestyle:  normalizeSlot(raw, negativeSlots[2]),
		Relational: normalizeSlot(raw, negativeSlots[3]),
		Summary:    stringOrEmpty(value(raw, "summary")),
	}
}

// normalizeSlot applies the repair rules to one aspect slot:
//
//   - absent slot: the designated sub-key becomes an empty sequence
//   - slot value is itself an array: the array is re-wrapped under the
//     designated sub-key, wherever that points
//   - slot is an object with a missing or non-array sub-key: the sub-key is
//     forced to an empty sequence
//
// Unknown keys on the slot are dropped; the output is exactly the canonical
// Aspect shape.
func normalizeSlot(raw map[string]any, rule slotRule) Aspect {
	v := value(raw, append([]string{rule.key}, rule.aliases...)...)

	obj, isObj := v.(map[string]any)
	if !isObj {
		obj = map[string]any{}
		if arr, isArr := v.([]any); isArr {
			obj[rule.subKey] = arr
		}
	}

	a := Aspect{
		Traits:   stringSlice(obj["traits"]),
		Examples: stringSlice(obj["examples"]),
		Summary:  stringOrEmpty(obj["summary"]),
	}
	if n, ok := intValue(obj["intensity"]); ok {
		a.Intensity = &n
	}
	return a
}

// value returns the first present key from raw.
func value(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			return v
		}
	}
	return nil
}

// stringSlice coerces an arbitrary value into a string slice, skipping
// non-string elements. Never returns nil.
func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringOrEmpty(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// intValue extracts an integer from the numeric types JSON and Firestore
// decoding produce, clamped to the 0-100 intensity range.
func intValue(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	f = math.Round(f)
	if f < 0 {
		f = 0
	}
	if f > 100 {
		f = 100
	}
	return int(f), true
}
