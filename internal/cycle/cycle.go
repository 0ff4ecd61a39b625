// Package cycle models the three recorded menstrual cycles a profile is
// built from and derives the named feature vectors the cluster classifiers
// consume.
//
// Feature names follow the column naming of the training data:
// "<Family>_cycle<N>" for per-cycle values and "<Family>_<stat>" for the
// variability summary.
package cycle

import (
	"errors"
	"fmt"
)

// Count is the number of cycles a user profile is built from.
const Count = 3

// Feature families recorded (or derived) for every cycle.
const (
	FamilyCycleLength  = "LengthofCycle"
	FamilyMensesLength = "LengthofMenses"
	FamilyOvulationDay = "EstimatedDayofOvulation"
	FamilyLutealPhase  = "LengthofLutealPhase"
)

// SummaryFamilies is the order in which the variability summary is built.
var SummaryFamilies = []string{
	FamilyCycleLength,
	FamilyOvulationDay,
	FamilyLutealPhase,
	FamilyMensesLength,
}

// ErrMissingFeature is returned when a requested feature name is not part
// of a vector.
var ErrMissingFeature = errors.New("feature not present in vector")

// Record is one recorded cycle, measured in days.
type Record struct {
	Length       float64 `json:"length" yaml:"length"`
	MensesLength float64 `json:"menses_length" yaml:"menses_length"`
	OvulationDay float64 `json:"ovulation_day" yaml:"ovulation_day"`
}

// LutealPhase is the part of the cycle left after menses and ovulation.
func (r Record) LutealPhase() float64 {
	return r.Length - r.MensesLength - r.OvulationDay
}

// Records holds exactly Count cycles, oldest first.
type Records [Count]Record

// FeatureKey returns the per-cycle feature name, e.g. "LengthofCycle_cycle2".
// cycleIndex is 1-based.
func FeatureKey(family string, cycleIndex int) string {
	return fmt.Sprintf("%s_cycle%d", family, cycleIndex)
}

// Vector is a read-only set of named feature values. The zero value is an
// empty vector.
type Vector struct {
	values map[string]float64
	names  []string
}

func newVector(capacity int) *Vector {
	return &Vector{
		values: make(map[string]float64, capacity),
		names:  make([]string, 0, capacity),
	}
}

func (v *Vector) set(name string, value float64) {
	if _, ok := v.values[name]; !ok {
		v.names = append(v.names, name)
	}
	v.values[name] = value
}

// Value returns the named feature and whether it exists.
func (v Vector) Value(name string) (float64, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Len returns the number of features in the vector.
func (v Vector) Len() int { return len(v.names) }

// Names returns the feature names in insertion order.
func (v Vector) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Map returns a copy of the vector as a plain map.
func (v Vector) Map() map[string]float64 {
	out := make(map[string]float64, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}

// Select returns the values for names, in the order given. It fails with
// ErrMissingFeature on the first name the vector does not carry.
func (v Vector) Select(names []string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		val, ok := v.values[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingFeature, name)
		}
		out[i] = val
	}
	return out, nil
}

// NewFeatureVector flattens the records into the 12 per-cycle features,
// deriving the luteal phase of each cycle.
func NewFeatureVector(records Records) Vector {
	v := newVector(4 * Count)
	for i, r := range records {
		n := i + 1
		v.set(FeatureKey(FamilyCycleLength, n), r.Length)
		v.set(FeatureKey(FamilyMensesLength, n), r.MensesLength)
		v.set(FeatureKey(FamilyOvulationDay, n), r.OvulationDay)
		v.set(FeatureKey(FamilyLutealPhase, n), r.LutealPhase())
	}
	return *v
}
