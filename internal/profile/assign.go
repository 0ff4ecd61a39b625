package profile

import (
	"errors"
	"fmt"

	"github.com/HendryAvila/cyclesense/internal/artifacts"
	"github.com/HendryAvila/cyclesense/internal/cycle"
)

// ErrMissingFeature is returned by New when a classifier declares a feature
// the pipeline does not produce.
var ErrMissingFeature = errors.New("classifier schema references unknown feature")

// Assignment is the result of profiling one user.
type Assignment struct {
	RawID           int     `json:"raw_group_id"`
	RawName         string  `json:"raw_group_name"`
	VariabilityID   int     `json:"variability_group_id"`
	VariabilityName string  `json:"variability_group_name"`
	Combined        string  `json:"combined_name"`
	Logical         Logical `json:"logical_name"`
}

// Combine joins the two group names into the combined cluster label.
func Combine(rawName, variabilityName string) string {
	return rawName + " + " + variabilityName
}

// LogicalLookup resolves combined labels to logical profile names.
// *artifacts.Bundle implements it.
type LogicalLookup interface {
	LogicalName(combined string) (string, bool)
}

// Normalize maps a combined label to its logical profile, passing unmapped
// labels through unchanged.
func Normalize(combined string, lookup LogicalLookup) Logical {
	if lookup == nil {
		return Logical(combined)
	}
	if name, ok := lookup.LogicalName(combined); ok {
		return Logical(name)
	}
	return Logical(combined)
}

// Assigner runs the two-stage classification. It is safe for concurrent use:
// it only reads the bundle it was built from.
type Assigner struct {
	bundle *artifacts.Bundle
}

// New checks both classifier schemas against the features the pipeline
// produces and returns an Assigner. A schema mismatch is a configuration
// error and must stop startup.
func New(b *artifacts.Bundle) (*Assigner, error) {
	if b == nil || b.Raw.Classifier == nil || b.Variability.Classifier == nil {
		return nil, errors.New("profile: bundle is missing a classifier")
	}

	probe := cycle.NewFeatureVector(cycle.Records{})
	if err := checkSchema("raw", b.Raw.Classifier, probe); err != nil {
		return nil, err
	}
	if err := checkSchema("variability", b.Variability.Classifier, cycle.Summarize(probe)); err != nil {
		return nil, err
	}
	return &Assigner{bundle: b}, nil
}

func checkSchema(model string, clf artifacts.Classifier, available cycle.Vector) error {
	features := clf.Features()
	if len(features) == 0 {
		return fmt.Errorf("profile: %s classifier declares no features", model)
	}
	for _, f := range features {
		if _, ok := available.Value(f); !ok {
			return fmt.Errorf("profile: %s classifier: %w: %q", model, ErrMissingFeature, f)
		}
	}
	return nil
}

// Assign profiles the given cycles. The same records always produce the
// same Assignment.
func (a *Assigner) Assign(records cycle.Records) (Assignment, error) {
	features := cycle.NewFeatureVector(records)

	rawID, rawName, err := classify(a.bundle.Raw, features)
	if err != nil {
		return Assignment{}, fmt.Errorf("profile: raw model: %w", err)
	}

	varID, varName, err := classify(a.bundle.Variability, cycle.Summarize(features))
	if err != nil {
		return Assignment{}, fmt.Errorf("profile: variability model: %w", err)
	}

	combined := Combine(rawName, varName)
	return Assignment{
		RawID:           rawID,
		RawName:         rawName,
		VariabilityID:   varID,
		VariabilityName: varName,
		Combined:        combined,
		Logical:         Normalize(combined, a.bundle),
	}, nil
}

func classify(m artifacts.Model, v cycle.Vector) (int, string, error) {
	x, err := v.Select(m.Classifier.Features())
	if err != nil {
		return 0, "", err
	}
	id, err := m.Classifier.Predict(x)
	if err != nil {
		return 0, "", err
	}
	name, ok := m.Names.Name(id)
	if !ok {
		return 0, "", fmt.Errorf("cluster %d has no name", id)
	}
	return id, name, nil
}
