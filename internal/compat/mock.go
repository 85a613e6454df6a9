package compat

import (
	"context"
)

// MockProvider implements Provider for unit tests.
type MockProvider struct {
	ScoreValue float64
	Details    RawDetails
	Err        error

	// Fn, when set, overrides the fixed fields entirely.
	Fn func(ctx context.Context, viewerID, targetID string) (float64, RawDetails, error)
}

// Score returns the configured result or delegates to Fn.
func (m *MockProvider) Score(ctx context.Context, viewerID, targetID string) (float64, RawDetails, error) {
	if m.Fn != nil {
		return m.Fn(ctx, viewerID, targetID)
	}
	if m.Err != nil {
		return 0, RawDetails{}, m.Err
	}
	return m.ScoreValue, m.Details, nil
}

// Compile-time interface check
var _ Provider = (*MockProvider)(nil)
