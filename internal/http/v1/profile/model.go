package profile

import (
	"github.com/cupidlink/cupid-api/internal/compat"
	"github.com/cupidlink/cupid-api/internal/compose"
	"github.com/cupidlink/cupid-api/internal/persona"
	"github.com/cupidlink/cupid-api/internal/platform/timeutil"
	profilesvc "github.com/cupidlink/cupid-api/internal/service/profile"
)

// Profile is the redacted profile payload. Gated fields are omitted entirely
// when hidden from the viewer.
type Profile struct {
	ID                  string `json:"id"                            doc:"Profile owner's user ID"  example:"user-123"`
	Fullname            string `json:"fullname"                      doc:"Display name"             example:"Jane Doe"`
	Location            string `json:"location,omitempty"            doc:"Location"                 example:"Helsinki"`
	CupidID             string `json:"cupidId,omitempty"             doc:"Public CUPID identifier"  example:"CUPID-7F3A"`
	Occupation          string `json:"occupation,omitempty"          doc:"Occupation"               example:"Architect"`
	Email               string `json:"email,omitempty"               doc:"Contact email"            example:"jane@example.com"`
	RelationshipHistory string `json:"relationshipHistory,omitempty" doc:"Relationship history"`
	Lifestyle           string `json:"lifestyle,omitempty"           doc:"Lifestyle summary"`
	ProfileImage        string `json:"profileImage,omitempty"        doc:"Profile image URL"`

	CreatedAt timeutil.Time `json:"createdAt" doc:"Creation timestamp"    example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt timeutil.Time `json:"updatedAt" doc:"Last update timestamp" example:"2024-01-15T10:30:00.000Z"`
}

// PersonaAspect is one facet of the persona analysis. examples[i] illustrates
// traits[i]; the slices may differ in length.
type PersonaAspect struct {
	Traits    []string `json:"traits"              doc:"Trait labels"`
	Examples  []string `json:"examples"            doc:"Illustrative examples, positionally matched to traits"`
	Intensity *int     `json:"intensity,omitempty" doc:"Relative intensity 0-100"`
	Summary   string   `json:"summary"             doc:"Aspect summary"`
}

// PositivePersona groups the strengths aspects.
type PositivePersona struct {
	PersonalityTraits PersonaAspect `json:"personalityTraits"`
	CoreValues        PersonaAspect `json:"coreValues"`
	BehavioralTraits  PersonaAspect `json:"behavioralTraits"`
	HobbiesInterests  PersonaAspect `json:"hobbiesInterests"`
	Summary           string        `json:"summary"`
}

// NegativePersona groups the growth-area aspects.
type NegativePersona struct {
	Emotional  PersonaAspect `json:"emotional"`
	Social     PersonaAspect `json:"social"`
	Lifestyle  PersonaAspect `json:"lifestyle"`
	Relational PersonaAspect `json:"relational"`
	Summary    string        `json:"summary"`
}

// Analysis is the persona-analysis payload. Either half may be absent.
type Analysis struct {
	Positive *PositivePersona `json:"positivePersona,omitempty"`
	Negative *NegativePersona `json:"negativePersona,omitempty"`
}

// Compatibility is the validated compatibility payload for non-owner viewers.
type Compatibility struct {
	Score              int      `json:"score"                        doc:"Match percentage 0-100" example:"87"`
	Strengths          []string `json:"strengths"`
	Challenges         []string `json:"challenges"`
	Tips               []string `json:"tips"`
	LongTermPrediction *string  `json:"longTermPrediction,omitempty" doc:"Long-term outlook, absent when unavailable"`
}

// View is the assembled profile view. Each section carries its own state so
// the client can render loading and error UI independently; a failure in one
// section never hides another.
type View struct {
	ProfileState   string         `json:"profileState"            enum:"idle,loading,loaded,not_found,failed" doc:"Profile resource state"`
	Profile        *Profile       `json:"profile,omitempty"`
	PersonaVisible bool           `json:"personaVisible"          doc:"Whether the viewer may see persona data"`
	AnalysisState  string         `json:"analysisState"           enum:"idle,loading,loaded,not_found,failed" doc:"Persona-analysis resource state"`
	Analysis       *Analysis      `json:"analysis,omitempty"`
	AnalysisNote   string         `json:"analysisNote,omitempty"  doc:"Informational note for the analysis section"`
	CompatState    string         `json:"compatibilityState"      enum:"idle,loading,loaded,not_found,failed" doc:"Compatibility resource state"`
	Compatibility  *Compatibility `json:"compatibility,omitempty"`
}

const analysisUnavailableNote = "Persona analysis is not available yet."

func toView(v compose.View) View {
	out := View{
		ProfileState:   v.Profile.State.String(),
		PersonaVisible: v.PersonaAllowed,
		AnalysisState:  v.Analysis.State.String(),
		CompatState:    v.Compatibility.State.String(),
	}
	if v.Profile.Profile != nil {
		out.Profile = toHTTPProfile(v.Profile.Profile)
	}
	if v.Analysis.State == compose.StateLoaded {
		if v.Analysis.Analysis == nil {
			out.AnalysisNote = analysisUnavailableNote
		} else {
			out.Analysis = toHTTPAnalysis(v.Analysis.Analysis)
		}
	}
	if v.Compatibility.Details != nil {
		out.Compatibility = toHTTPCompatibility(v.Compatibility.Details)
	}
	return out
}

func toHTTPProfile(p *profilesvc.Profile) *Profile {
	return &Profile{
		ID:                  p.ID,
		Fullname:            p.Fullname,
		Location:            p.Location,
		CupidID:             p.CupidID,
		Occupation:          p.Occupation,
		Email:               p.Email,
		RelationshipHistory: p.RelationshipHistory,
		Lifestyle:           p.Lifestyle,
		ProfileImage:        p.ProfileImage,
		CreatedAt:           timeutil.NewTime(p.CreatedAt),
		UpdatedAt:           timeutil.NewTime(p.UpdatedAt),
	}
}

func toHTTPAnalysis(a *persona.Analysis) *Analysis {
	out := &Analysis{}
	if a.Positive != nil {
		out.Positive = &PositivePersona{
			PersonalityTraits: toHTTPAspect(a.Positive.PersonalityTraits),
			CoreValues:        toHTTPAspect(a.Positive.CoreValues),
			BehavioralTraits:  toHTTPAspect(a.Positive.BehavioralTraits),
			HobbiesInterests:  toHTTPAspect(a.Positive.HobbiesInterests),
			Summary:           a.Positive.Summary,
		}
	}
	if a.Negative != nil {
		out.Negative = &NegativePersona{
			Emotional:  toHTTPAspect(a.Negative.Emotional),
			Social:     toHTTPAspect(a.Negative.Social),
			Lifestyle:  toHTTPAspect(a.Negative.Lifestyle),
			Relational: toHTTPAspect(a.Negative.Relational),
			Summary:    a.Negative.Summary,
		}
	}
	return out
}

func toHTTPAspect(a persona.Aspect) PersonaAspect {
	return PersonaAspect{
		Traits:    a.Traits,
		Examples:  a.Examples,
		Intensity: a.Intensity,
		Summary:   a.Summary,
	}
}

func toHTTPCompatibility(d *compat.Details) *Compatibility {
	return &Compatibility{
		Score:              d.Score,
		Strengths:          d.Strengths,
		Challenges:         d.Challenges,
		Tips:               d.Tips,
		LongTermPrediction: d.LongTermPrediction,
	}
}
