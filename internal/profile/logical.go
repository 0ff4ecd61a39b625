// Package profile assigns a cycle profile to a user: it runs the raw and
// variability classifiers over the user's three cycles and normalizes the
// combined cluster label into a logical profile.
package profile

// Logical is a normalized cycle-profile name such as "Stable-Balanced".
// The known profiles are the constants below; a Logical outside that set is
// still valid (an unmapped combined label passes through verbatim) and
// simply gets fallback narrative.
type Logical string

const (
	StableCompact  Logical = "Stable-Compact"
	StableBalanced Logical = "Stable-Balanced"
	StableDelayed  Logical = "Stable-Delayed"
	StableExtended Logical = "Stable-Extended"

	MostlySteadyBalanced Logical = "Mostly Steady-Balanced"

	SomewhatIrregularCompact  Logical = "Somewhat Irregular-Compact"
	SomewhatIrregularDelayed  Logical = "Somewhat Irregular-Delayed"
	SomewhatIrregularExtended Logical = "Somewhat Irregular-Extended"

	UnstableCompact  Logical = "Unstable-Compact"
	UnstableBalanced Logical = "Unstable-Balanced"
	UnstableDelayed  Logical = "Unstable-Delayed"
	UnstableExtended Logical = "Unstable-Extended"

	CriticalExtended Logical = "Critical-Extended"
)

var known = []Logical{
	StableCompact,
	StableBalanced,
	StableDelayed,
	StableExtended,
	MostlySteadyBalanced,
	SomewhatIrregularCompact,
	SomewhatIrregularDelayed,
	SomewhatIrregularExtended,
	UnstableCompact,
	UnstableBalanced,
	UnstableDelayed,
	UnstableExtended,
	CriticalExtended,
}

// All returns the known logical profiles, stable group first.
func All() []Logical {
	return append([]Logical(nil), known...)
}

// Known reports whether l is one of the fixed profile names.
func (l Logical) Known() bool {
	for _, k := range known {
		if l == k {
			return true
		}
	}
	return false
}

// Reassuring reports whether l belongs to the stable group, whose clinical
// notes carry no age or BMI caveats.
func (l Logical) Reassuring() bool {
	switch l {
	case StableCompact, StableBalanced, StableDelayed, StableExtended:
		return true
	}
	return false
}

func (l Logical) String() string { return string(l) }
