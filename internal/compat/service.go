// Package compat validates and attaches compatibility insight produced by an
// external scoring service. The scoring model itself is opaque to this core.
package compat

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Service errors
var (
	ErrNotFound    = errors.New("compatibility result not found")
	ErrRateLimited = errors.New("compatibility provider rate limit exceeded")
	ErrUpstream    = errors.New("compatibility provider error")
)

// UpstreamErrorKind classifies provider failures.
type UpstreamErrorKind string

const (
	UpstreamErrorKindNotFound    UpstreamErrorKind = "not_found"
	UpstreamErrorKindRateLimited UpstreamErrorKind = "rate_limited"
	UpstreamErrorKindUpstream    UpstreamErrorKind = "upstream"
)

// UpstreamError includes provider response metadata for error mapping.
type UpstreamError struct {
	Kind       UpstreamErrorKind
	Status     int
	RetryAfter string
	cause      error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "compatibility provider error"
	}
	if e.cause == nil {
		return fmt.Sprintf("compatibility provider error (kind=%s status=%d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("compatibility provider error (kind=%s status=%d): %v", e.Kind, e.Status, e.cause)
}

// Unwrap enables errors.Is/As against sentinel service errors.
func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// RawDetails is the detail payload as the provider returns it.
type RawDetails struct {
	Strengths          []string `json:"strengths"`
	Challenges         []string `json:"challenges"`
	Tips               []string `json:"tips"`
	LongTermPrediction *string  `json:"long_term_prediction"`
}

// Details is the validated, display-ready compatibility payload.
// Score is an integer percentage. The section slices are never nil: an empty
// section means "omit it", not an error. LongTermPrediction nil means no
// prediction is available, which is different from a prediction that happens
// to be blank.
type Details struct {
	Score              int
	Strengths          []string
	Challenges         []string
	Tips               []string
	LongTermPrediction *string
}

// Provider produces a raw compatibility score and narrative for a profile pair.
type Provider interface {
	Score(ctx context.Context, viewerID, targetID string) (float64, RawDetails, error)
}

// Aggregate validates an already-computed score/detail payload. The score is
// clamped to [0, 100] and rounded half-up because the presentation layer
// renders an integer percentage. A prediction that is empty after trimming is
// treated as absent rather than rendered as blank text.
func Aggregate(rawScore float64, raw RawDetails) Details {
	d := Details{
		Score:      clampScore(rawScore),
		Strengths:  orEmpty(raw.Strengths),
		Challenges: orEmpty(raw.Challenges),
		Tips:       orEmpty(raw.Tips),
	}
	if raw.LongTermPrediction != nil && strings.TrimSpace(*raw.LongTermPrediction) != "" {
		p := *raw.LongTermPrediction
		d.LongTermPrediction = &p
	}
	return d
}

func clampScore(s float64) int {
	if math.IsNaN(s) {
		return 0
	}
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return int(math.Floor(s + 0.5))
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
