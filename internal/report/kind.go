// Package report renders profile assignments into the three report kinds:
// a lay trying-to-conceive summary, a clinician summary and the technical
// clustering-quality report.
package report

import (
	"fmt"
	"slices"
	"strings"
)

// Kind identifies a report flavor.
type Kind string

const (
	KindTTC       Kind = "ttc"
	KindClinician Kind = "clinician"
	KindTechnical Kind = "technical"
)

// Kinds returns every supported kind in display order.
func Kinds() []Kind {
	return []Kind{KindTTC, KindClinician, KindTechnical}
}

// ParseKind accepts a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Kinds(), k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown report kind %q (want one of %s)", s, strings.Join(KindNames(), ", "))
}

// KindNames returns the names of Kinds as strings.
func KindNames() []string {
	kinds := Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

// ParseKinds parses a request selector. "both" expands to the two personal
// reports.
func ParseKinds(s string) ([]Kind, error) {
	if strings.EqualFold(strings.TrimSpace(s), "both") {
		return []Kind{KindTTC, KindClinician}, nil
	}
	k, err := ParseKind(s)
	if err != nil {
		return nil, err
	}
	return []Kind{k}, nil
}

// Personal reports whether the kind needs a user context.
func (k Kind) Personal() bool {
	return k == KindTTC || k == KindClinician
}
