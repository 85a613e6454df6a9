// Package persona repairs loosely structured AI persona payloads into a
// canonical schema the rest of the service can rely on.
package persona

// Aspect is one facet of a persona. Traits and Examples are positionally
// correlated: Examples[i] illustrates Traits[i]. The two need not be equal
// length; indices past the shorter slice simply have no example.
type Aspect struct {
	Traits    []string `json:"traits"`
	Examples  []string `json:"examples"`
	Intensity *int     `json:"intensity,omitempty"`
	Summary   string   `json:"summary"`
}

// Positive holds the strengths side of a persona analysis.
type Positive struct {
	PersonalityTraits Aspect `json:"personality_traits"`
	CoreValues        Aspect `json:"core_values"`
	BehavioralTraits  Aspect `json:"behavioral_traits"`
	HobbiesInterests  Aspect `json:"hobbies_interests"`
	Summary           string `json:"summary"`
}

// Negative holds the growth-areas side of a persona analysis.
type Negative struct {
	Emotional  Aspect `json:"emotional"`
	Social     Aspect `json:"social"`
	Lifestyle  Aspect `json:"lifestyle"`
	Relational Aspect `json:"relational"`
	Summary    string `json:"summary"`
}

// Analysis pairs both persona halves. Either half may be nil when the
// provider produced nothing usable for it; nil is "absent", which callers
// must keep distinct from a present-but-empty persona.
type Analysis struct {
	Positive *Positive `json:"positive_persona"`
	Negative *Negative `json:"negative_persona"`
}
