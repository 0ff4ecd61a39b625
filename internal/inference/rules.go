// Package inference turns a logical cycle profile plus a few personal
// details into narrative notes. Everything here is a pure function of its
// inputs: base texts come from fixed tables and personal caveats are added
// by ordered overlay rules.
package inference

import (
	"strings"

	"github.com/HendryAvila/cyclesense/internal/profile"
)

// Overlay thresholds shared by the TTC and clinical rule sets.
const (
	AdvancedAge    = 35   // age > AdvancedAge
	YoungAge       = 25   // age < YoungAge
	ElevatedBMI    = 30.0 // bmi >= ElevatedBMI
	UnderweightBMI = 18.5 // bmi < UnderweightBMI
)

// Subject is everything an overlay rule may look at.
type Subject struct {
	Profile       profile.Logical
	Age           int
	BMI           float64
	Pregnancies   int
	Complications bool
}

// Rule is a named overlay. Apply returns the sentence to append and whether
// the rule fired.
type Rule struct {
	Name  string
	Apply func(Subject) (string, bool)
}

// StatsSource provides the per-profile pregnancy mean. A missing mean skips
// the pregnancy overlay.
type StatsSource interface {
	PregnancyMean(logical string) (float64, bool)
}

// Compose appends the sentences of every rule that fires, in order, to base.
func Compose(base string, rules []Rule, s Subject) string {
	var b strings.Builder
	b.WriteString(base)
	for _, r := range rules {
		if text, ok := r.Apply(s); ok {
			b.WriteByte(' ')
			b.WriteString(text)
		}
	}
	return b.String()
}

// TTCRules returns the trying-to-conceive overlays in application order.
func TTCRules(stats StatsSource) []Rule {
	return []Rule{
		{Name: "age", Apply: func(s Subject) (string, bool) {
			switch {
			case s.Age > AdvancedAge:
				return "Advanced maternal age: TTC urgency is higher due to declining ovarian reserve.", true
			case s.Age < YoungAge:
				return "Younger age is generally protective for TTC potential.", true
			}
			return "", false
		}},
		{Name: "bmi", Apply: func(s Subject) (string, bool) {
			switch {
			case s.BMI >= ElevatedBMI:
				return "Elevated BMI may reduce ovulatory efficiency and implantation.", true
			case s.BMI < UnderweightBMI:
				return "Very low BMI may impair ovulation or luteal function.", true
			}
			return "", false
		}},
		{Name: "pregnancies", Apply: func(s Subject) (string, bool) {
			if stats == nil {
				return "", false
			}
			mean, ok := stats.PregnancyMean(string(s.Profile))
			if !ok {
				return "", false
			}
			switch {
			case float64(s.Pregnancies) > mean:
				return "History of multiple pregnancies suggests proven fertility.", true
			case s.Pregnancies == 0:
				return "No prior pregnancies: TTC monitoring may help detect early issues.", true
			}
			return "", false
		}},
		{Name: "complications", Apply: func(s Subject) (string, bool) {
			if s.Complications {
				return "User has reproductive complications; additional monitoring recommended.", true
			}
			return "", false
		}},
	}
}

// ClinicalRules returns the clinician overlays in application order. Age and
// BMI caveats are suppressed for reassuring profiles.
func ClinicalRules() []Rule {
	return []Rule{
		{Name: "age", Apply: func(s Subject) (string, bool) {
			if s.Profile.Reassuring() {
				return "", false
			}
			switch {
			case s.Age > AdvancedAge:
				return "Advanced reproductive age: increased risk of anovulation, miscarriage.", true
			case s.Age < YoungAge:
				return "Younger age: irregularity may reflect hypothalamic immaturity.", true
			}
			return "", false
		}},
		{Name: "bmi", Apply: func(s Subject) (string, bool) {
			if s.Profile.Reassuring() {
				return "", false
			}
			switch {
			case s.BMI >= ElevatedBMI:
				return "Elevated BMI: consider metabolic/endocrine assessment.", true
			case s.BMI < UnderweightBMI:
				return "Underweight: possible hypothalamic anovulation.", true
			}
			return "", false
		}},
		{Name: "complications", Apply: func(s Subject) (string, bool) {
			if s.Complications {
				return "History of reproductive complications: requires close follow-up.", true
			}
			return "", false
		}},
	}
}

// Engine produces the notes for one set of artifacts. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	ttc      []Rule
	clinical []Rule
}

// New builds an Engine whose pregnancy overlay reads from stats. stats may
// be nil, in which case that overlay never fires.
func New(stats StatsSource) *Engine {
	return &Engine{
		ttc:      TTCRules(stats),
		clinical: ClinicalRules(),
	}
}

// Describe returns the research-oriented description of a profile.
func (e *Engine) Describe(l profile.Logical) string {
	return lookup(descriptions, l, FallbackDescription)
}

// ShortDescription returns the one-line user-facing description.
func (e *Engine) ShortDescription(l profile.Logical) string {
	return lookup(shortDescriptions, l, FallbackShortDescription)
}

// TTCNote returns the trying-to-conceive note with personal overlays.
func (e *Engine) TTCNote(s Subject) string {
	return Compose(lookup(ttcNotes, s.Profile, FallbackTTC), e.ttc, s)
}

// ClinicalNote returns the clinician note with personal overlays.
func (e *Engine) ClinicalNote(s Subject) string {
	return Compose(lookup(clinicalNotes, s.Profile, FallbackClinical), e.clinical, s)
}
