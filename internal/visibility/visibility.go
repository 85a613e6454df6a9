// Package visibility decides what a given viewer may see of a profile.
package visibility

import (
	"github.com/cupidlink/cupid-api/internal/service/profile"
)

// Viewer identifies who is looking at whose profile.
type Viewer struct {
	ViewerID string
	OwnerID  string
}

// IsOwner reports whether the viewer is looking at their own profile.
func (v Viewer) IsOwner() bool {
	return v.ViewerID == v.OwnerID
}

// Filter returns a redacted copy of the profile for the viewer. The input is
// never mutated, and filtering an already-filtered copy changes nothing.
//
// Owners see everything, including fields they have hidden: visibility
// settings constrain other viewers only. For non-owners each gated field is
// cleared unless its flag allows it; a flag the owner never set counts as
// allowed. Fullname, location and cupid ID carry no flag and are visible to
// every viewer.
func Filter(p *profile.Profile, viewer Viewer) *profile.Profile {
	if p == nil {
		return nil
	}
	cp := p.Clone()
	if viewer.IsOwner() {
		return cp
	}

	if !p.Visibility.PictureVisible() {
		cp.ProfileImage = ""
	}
	if !p.Visibility.OccupationVisible() {
		cp.Occupation = ""
	}
	if !p.Visibility.ContactVisible() {
		cp.Email = ""
	}
	return cp
}

// PersonaAllowed reports whether the viewer may request persona data at all.
func PersonaAllowed(p *profile.Profile, viewer Viewer) bool {
	if p == nil {
		return false
	}
	return viewer.IsOwner() || p.Visibility.PersonaVisible()
}

// CompatAllowed reports whether compatibility insight may be attached.
// Owners never get one: there is no self-compatibility.
func CompatAllowed(p *profile.Profile, viewer Viewer) bool {
	if p == nil || viewer.IsOwner() {
		return false
	}
	return p.Visibility.SmartMatchingVisible()
}
