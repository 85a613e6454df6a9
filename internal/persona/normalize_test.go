package persona

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizePositiveCanonicalInput(t *testing.T) {
	raw := map[string]any{
		"personality_traits": map[string]any{
			"traits":    []any{"warm", "curious"},
			"examples":  []any{"greets strangers", "reads broadly"},
			"intensity": float64(80),
			"summary":   "outgoing",
		},
		"core_values":       map[string]any{"traits": []any{"honesty"}, "examples": []any{}},
		"behavioral_traits": map[string]any{"traits": []any{}, "examples": []any{}},
		"hobbies_interests": map[string]any{"traits": []any{"hiking"}, "examples": []any{"weekend trails"}},
		"summary":           "an upbeat person",
	}

	got := NormalizePositive(raw)

	intensity := 80
	want := Positive{
		PersonalityTraits: Aspect{
			Traits:    []string{"warm", "curious"},
			Examples:  []string{"greets strangers", "reads broadly"},
			Intensity: &intensity,
			Summary:   "outgoing",
		},
		CoreValues:       Aspect{Traits: []string{"honesty"}, Examples: []string{}},
		BehavioralTraits: Aspect{Traits: []string{}, Examples: []string{}},
		HobbiesInterests: Aspect{Traits: []string{"hiking"}, Examples: []string{"weekend trails"}},
		Summary:          "an upbeat person",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected normalization (-want +got):\n%s", diff)
	}
}

func TestNormalizePositiveArraySlotWrappedUnderExamples(t *testing.T) {
	// A bare array in a positive slot belongs under the examples key.
	raw := map[string]any{
		"personality_traits": []any{"spontaneous", "adventurous"},
	}

	got := NormalizePositive(raw)

	if diff := cmp.Diff([]string{"spontaneous", "adventurous"}, got.PersonalityTraits.Examples); diff != "" {
		t.Fatalf("examples mismatch (-want +got):\n%s", diff)
	}
	if len(got.PersonalityTraits.Traits) != 0 {
		t.Fatalf("expected empty traits, got %v", got.PersonalityTraits.Traits)
	}
}

func TestNormalizeNegativeArraySlotWrappedUnderTraits(t *testing.T) {
	// A bare array in a negative slot belongs under the traits key.
	raw := map[string]any{
		"emotional": []any{"impatient", "moody"},
	}

	got := NormalizeNegative(raw)

	if diff := cmp.Diff([]string{"impatient", "moody"}, got.Emotional.Traits); diff != "" {
		t.Fatalf("traits mismatch (-want +got):\n%s", diff)
	}
	if len(got.Emotional.Examples) != 0 {
		t.Fatalf("expected empty examples, got %v", got.Emotional.Examples)
	}
}

func TestNormalizeAbsentSlotsYieldEmptyAspects(t *testing.T) {
	got := NormalizePositive(map[string]any{})

	for name, a := range map[string]Aspect{
		"personality_traits": got.PersonalityTraits,
		"core_values":        got.CoreValues,
		"behavioral_traits":  got.BehavioralTraits,
		"hobbies_interests":  got.HobbiesInterests,
	} {
		if a.Traits == nil || a.Examples == nil {
			t.Fatalf("%s: slices must never be nil", name)
		}
		if len(a.Traits) != 0 || len(a.Examples) != 0 || a.Summary != "" || a.Intensity != nil {
			t.Fatalf("%s: expected empty aspect, got %+v", name, a)
		}
	}
	if got.Summary != "" {
		t.Fatalf("expected empty summary, got %q", got.Summary)
	}
}

func TestNormalizeNilInput(t *testing.T) {
	pos := NormalizePositive(nil)
	if pos.PersonalityTraits.Traits == nil || pos.PersonalityTraits.Examples == nil {
		t.Fatal("nil input must still produce non-nil slices")
	}

	neg := NormalizeNegative(nil)
	if neg.Relational.Traits == nil || neg.Relational.Examples == nil {
		t.Fatal("nil input must still produce non-nil slices")
	}
}

func TestNormalizeNonArraySubKeyForced(t *testing.T) {
	raw := map[string]any{
		"core_values": map[string]any{
			"traits":   "honesty", // should be an array
			"examples": float64(3),
			"summary":  "values",
		},
	}

	got := NormalizePositive(raw)

	if len(got.CoreValues.Traits) != 0 || got.CoreValues.Traits == nil {
		t.Fatalf("expected forced empty traits, got %v", got.CoreValues.Traits)
	}
	if len(got.CoreValues.Examples) != 0 || got.CoreValues.Examples == nil {
		t.Fatalf("expected forced empty examples, got %v", got.CoreValues.Examples)
	}
	if got.CoreValues.Summary != "values" {
		t.Fatalf("expected summary to survive, got %q", got.CoreValues.Summary)
	}
}

func TestNormalizeNegativeAliases(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"weaknesses spelling", map[string]any{
			"emotional_weaknesses":  map[string]any{"traits": []any{"anxious"}},
			"social_weaknesses":     map[string]any{"traits": []any{"shy"}},
			"lifestyle_weaknesses":  map[string]any{"traits": []any{"messy"}},
			"relational_weaknesses": map[string]any{"traits": []any{"jealous"}},
		}},
		{"aspects spelling", map[string]any{
			"emotional_aspects":  map[string]any{"traits": []any{"anxious"}},
			"social_aspects":     map[string]any{"traits": []any{"shy"}},
			"lifestyle_aspects":  map[string]any{"traits": []any{"messy"}},
			"relational_aspects": map[string]any{"traits": []any{"jealous"}},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeNegative(tc.raw)
			if diff := cmp.Diff([]string{"anxious"}, got.Emotional.Traits); diff != "" {
				t.Fatalf("emotional (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"shy"}, got.Social.Traits); diff != "" {
				t.Fatalf("social (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"messy"}, got.Lifestyle.Traits); diff != "" {
				t.Fatalf("lifestyle (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"jealous"}, got.Relational.Traits); diff != "" {
				t.Fatalf("relational (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeCanonicalKeyWinsOverAlias(t *testing.T) {
	raw := map[string]any{
		"emotional":            map[string]any{"traits": []any{"canonical"}},
		"emotional_weaknesses": map[string]any{"traits": []any{"alias"}},
	}

	got := NormalizeNegative(raw)
	if diff := cmp.Diff([]string{"canonical"}, got.Emotional.Traits); diff != "" {
		t.Fatalf("expected canonical key to win (-want +got):\n%s", diff)
	}
}

func TestNormalizeSkipsNonStringElements(t *testing.T) {
	raw := map[string]any{
		"personality_traits": map[string]any{
			"traits": []any{"genuine", float64(7), nil, map[string]any{"x": 1}, "steady"},
		},
	}

	got := NormalizePositive(raw)
	if diff := cmp.Diff([]string{"genuine", "steady"}, got.PersonalityTraits.Traits); diff != "" {
		t.Fatalf("traits mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeSummaryCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"numeric summary", map[string]any{"summary": float64(42)}},
		{"object summary", map[string]any{"summary": map[string]any{"text": "hi"}}},
		{"nil summary", map[string]any{"summary": nil}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizePositive(tc.raw); got.Summary != "" {
				t.Fatalf("expected empty summary, got %q", got.Summary)
			}
		})
	}
}

func TestNormalizeIntensity(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  *int
	}{
		{"in range", float64(65), intPtr(65)},
		{"rounded", float64(65.6), intPtr(66)},
		{"above range clamped", float64(140), intPtr(100)},
		{"below range clamped", float64(-3), intPtr(0)},
		{"int value", 50, intPtr(50)},
		{"string dropped", "high", nil},
		{"nil dropped", nil, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := map[string]any{
				"personality_traits": map[string]any{"intensity": tc.value},
			}
			got := NormalizePositive(raw).PersonalityTraits.Intensity
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("intensity mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Idempotence: feeding a normalized payload back through normalization (via a
// JSON round trip, the way it would arrive from storage) changes nothing.
func TestNormalizeIdempotent(t *testing.T) {
	raw := map[string]any{
		"personality_traits": []any{"warm"},
		"core_values":        map[string]any{"traits": []any{"honesty"}},
		"summary":            "first pass",
	}

	first := NormalizePositive(raw)

	data, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var roundTripped map[string]any
	if err := json.Unmarshal(data, &roundTripped); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	second := NormalizePositive(roundTripped)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("normalization is not idempotent (-first +second):\n%s", diff)
	}
}

func intPtr(n int) *int { return &n }
