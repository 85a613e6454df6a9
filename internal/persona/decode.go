package persona

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrUnparseable reports that no JSON object could be recovered from a
// provider payload, even after repair. Callers treat the persona as absent.
var ErrUnparseable = errors.New("persona payload is not a JSON object")

// DecodeRaw parses loosely structured provider output into a raw object.
// AI providers routinely emit almost-JSON (trailing commas, unquoted keys,
// markdown fences), so a failed strict parse gets one repair attempt before
// giving up.
func DecodeRaw(text string) (map[string]any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrUnparseable
	}

	if obj, err := decodeObject(text); err == nil {
		return obj, nil
	}

	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return nil, ErrUnparseable
	}
	obj, err := decodeObject(repaired)
	if err != nil {
		return nil, ErrUnparseable
	}
	return obj, nil
}

func decodeObject(text string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrUnparseable
	}
	return obj, nil
}
