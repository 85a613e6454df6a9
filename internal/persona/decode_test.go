package persona

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeRawStrictJSON(t *testing.T) {
	got, err := DecodeRaw(`{"summary": "fine", "score": 3}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{"summary": "fine", "score": float64(3)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded object mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRawRepairsAlmostJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"trailing comma", `{"summary": "fine",}`},
		{"unquoted keys", `{summary: "fine"}`},
		{"single quotes", `{'summary': 'fine'}`},
		{"markdown fence", "```json\n{\"summary\": \"fine\"}\n```"},
		{"surrounding whitespace", "  \n{\"summary\": \"fine\"}\n  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeRaw(tc.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got["summary"] != "fine" {
				t.Fatalf("expected summary to survive repair, got %v", got)
			}
		})
	}
}

func TestDecodeRawUnparseable(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t"},
		{"null literal", "null"},
		{"bare array", `["a", "b"]`},
		{"prose", "the model refused to answer"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeRaw(tc.text); !errors.Is(err, ErrUnparseable) {
				t.Fatalf("expected ErrUnparseable, got %v", err)
			}
		})
	}
}
