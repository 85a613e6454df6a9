// Package compose assembles the display-ready profile view from two
// independently loaded resources: the profile itself and its persona
// analysis. Each resource can fail on its own; a failure in one never rolls
// back or blocks the other.
package compose

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/cupidlink/cupid-api/internal/compat"
	"github.com/cupidlink/cupid-api/internal/persona"
	applog "github.com/cupidlink/cupid-api/internal/platform/logging"
	"github.com/cupidlink/cupid-api/internal/service/profile"
	"github.com/cupidlink/cupid-api/internal/visibility"
)

// ProfileSection tracks the profile resource.
type ProfileSection struct {
	State   State
	Profile *profile.Profile
	Err     error
}

// AnalysisSection tracks the persona-analysis resource. A Loaded section with
// a nil Analysis means the provider had nothing usable: "analysis
// unavailable", not an error.
type AnalysisSection struct {
	State    State
	Analysis *persona.Analysis
	Err      error
}

// CompatSection carries the optional compatibility attachment for non-owner
// viewers. It rides the same request generation as the analysis.
type CompatSection struct {
	State   State
	Details *compat.Details
	Err     error
}

// View is the assembled, viewer-specific model handed to presentation.
// Profile.Profile is already visibility-filtered for the viewer.
// PersonaAllowed is false until the profile has loaded; only a loaded
// profile can grant access to persona data.
type View struct {
	Viewer         visibility.Viewer
	PersonaAllowed bool
	Profile        ProfileSection
	Analysis       AnalysisSection
	Compatibility  CompatSection
}

// Composer drives the loads and owns the only mutable state. All writes
// happen here; readers get copies via Snapshot.
type Composer struct {
	store    profile.Store
	provider compat.Provider

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	viewer   visibility.Viewer
	prof     ProfileSection
	analysis AnalysisSection
	compat   CompatSection
}

// New creates a composer. provider may be nil when no compatibility scoring
// is configured; the compatibility section then simply stays idle.
func New(store profile.Store, provider compat.Provider) *Composer {
	return &Composer{store: store, provider: provider}
}

// Load starts a fresh load for the viewer. Any in-flight load becomes stale:
// its pending resolutions are dropped when they arrive, never merged. The
// returned channel closes when this generation has settled.
func (c *Composer) Load(ctx context.Context, viewer visibility.Viewer) <-chan struct{} {
	loadCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.gen++
	gen := c.gen
	c.viewer = viewer
	c.prof = ProfileSection{State: StateLoading}
	c.analysis = AnalysisSection{State: StateIdle}
	c.compat = CompatSection{State: StateIdle}
	c.mu.Unlock()

	done := make(chan struct{})
	go c.run(loadCtx, gen, viewer, done)
	return done
}

// Compose is the blocking convenience used by request handlers: one load,
// wait until it settles or the context ends, then snapshot.
func (c *Composer) Compose(ctx context.Context, viewer visibility.Viewer) View {
	done := c.Load(ctx, viewer)
	select {
	case <-done:
	case <-ctx.Done():
	}
	return c.Snapshot()
}

// Close discards any in-flight load.
func (c *Composer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Snapshot returns the current view, visibility-filtered for the viewer the
// state belongs to.
func (c *Composer) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Viewer:        c.viewer,
		Profile:       c.prof,
		Analysis:      c.analysis,
		Compatibility: c.compat,
	}
	if c.prof.State == StateLoaded && c.prof.Profile != nil {
		v.PersonaAllowed = visibility.PersonaAllowed(c.prof.Profile, c.viewer)
		v.Profile.Profile = visibility.Filter(c.prof.Profile, c.viewer)
		if !v.PersonaAllowed {
			v.Analysis = AnalysisSection{State: StateIdle}
		}
		if !visibility.CompatAllowed(c.prof.Profile, c.viewer) {
			v.Compatibility = CompatSection{State: StateIdle}
		}
	}
	return v
}

// run performs one load generation. Persona analysis is issued strictly after
// the profile resolves (it needs the resolved profile ID); everything else
// about the two resources is independent.
func (c *Composer) run(ctx context.Context, gen uint64, viewer visibility.Viewer, done chan<- struct{}) {
	defer close(done)

	p, err := c.store.GetProfile(ctx, viewer.OwnerID)
	switch {
	case errors.Is(err, profile.ErrNotFound):
		c.commit(gen, func() {
			c.prof = ProfileSection{State: StateNotFound}
		})
		return
	case err != nil:
		applog.LogError(ctx, "profile load failed", err, zap.String("owner_id", viewer.OwnerID))
		c.commit(gen, func() {
			c.prof = ProfileSection{State: StateFailed, Err: err}
		})
		return
	}

	wantAnalysis := visibility.PersonaAllowed(p, viewer)
	wantCompat := c.provider != nil && visibility.CompatAllowed(p, viewer)
	ok := c.commit(gen, func() {
		c.prof = ProfileSection{State: StateLoaded, Profile: p}
		if wantAnalysis {
			c.analysis.State = StateLoading
		}
		if wantCompat {
			c.compat.State = StateLoading
		}
	})
	if !ok {
		return
	}

	if wantAnalysis {
		analysis, err := c.store.GetPersonaAnalysis(ctx, p.ID)
		if err != nil {
			applog.LogError(ctx, "persona analysis load failed", err, zap.String("owner_id", p.ID))
			c.commit(gen, func() {
				c.analysis = AnalysisSection{State: StateFailed, Err: err}
			})
		} else {
			c.commit(gen, func() {
				c.analysis = AnalysisSection{State: StateLoaded, Analysis: analysis}
			})
		}
	}

	if wantCompat {
		score, raw, err := c.provider.Score(ctx, viewer.ViewerID, p.ID)
		if err != nil {
			applog.LogWarn(ctx, "compatibility score unavailable",
				zap.String("viewer_id", viewer.ViewerID), zap.String("target_id", p.ID), zap.Error(err))
			c.commit(gen, func() {
				c.compat = CompatSection{State: StateFailed, Err: err}
			})
		} else {
			details := compat.Aggregate(score, raw)
			c.commit(gen, func() {
				c.compat = CompatSection{State: StateLoaded, Details: &details}
			})
		}
	}
}

// commit applies fn under the lock only when gen is still current. Stale
// resolutions return false and are discarded.
func (c *Composer) commit(gen uint64, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	fn()
	return true
}
