package artifacts

import "fmt"

// RateScale declares how complication rates are stored.
type RateScale string

const (
	// RateAuto guesses per value: anything above 1 is a percentage.
	RateAuto     RateScale = ""
	RateFraction RateScale = "fraction"
	RatePercent  RateScale = "percent"
)

// Valid reports whether the scale is one of the known values.
func (s RateScale) Valid() bool {
	switch s {
	case RateAuto, "auto", RateFraction, RatePercent:
		return true
	}
	return false
}

// NormalizeRate converts a stored complication rate to a 0–1 fraction.
func NormalizeRate(v float64, scale RateScale) float64 {
	switch scale {
	case RatePercent:
		return v / 100
	case RateFraction:
		return v
	}
	if v > 1 {
		return v / 100
	}
	return v
}

// ClusterStats holds the training-set averages of one logical profile.
// Nil fields are statistics the artifact does not carry.
type ClusterStats struct {
	AgeMean          *float64 `yaml:"age_mean,omitempty" json:"age_mean,omitempty"`
	BMIMean          *float64 `yaml:"bmi_mean,omitempty" json:"bmi_mean,omitempty"`
	PregnancyMean    *float64 `yaml:"pregnancy_mean,omitempty" json:"pregnancy_mean,omitempty"`
	ComplicationRate *float64 `yaml:"complication_rate,omitempty" json:"complication_rate,omitempty"`
}

// StatsIndex is the read-only lookup of cluster statistics by logical
// profile name. Complication rates are normalized to fractions when the
// index is built, so consumers never see the stored scale.
type StatsIndex struct {
	rows map[string]ClusterStats
}

// NewStatsIndex builds the lookup, normalizing complication rates.
func NewStatsIndex(rows map[string]ClusterStats, scale RateScale) (*StatsIndex, error) {
	if !scale.Valid() {
		return nil, fmt.Errorf("unknown rate_scale %q (want fraction, percent or empty)", scale)
	}
	idx := &StatsIndex{rows: make(map[string]ClusterStats, len(rows))}
	for name, row := range rows {
		out := ClusterStats{
			AgeMean:       copyFloat(row.AgeMean),
			BMIMean:       copyFloat(row.BMIMean),
			PregnancyMean: copyFloat(row.PregnancyMean),
		}
		if row.ComplicationRate != nil {
			r := NormalizeRate(*row.ComplicationRate, scale)
			out.ComplicationRate = &r
		}
		idx.rows[name] = out
	}
	return idx, nil
}

// Lookup returns a copy of the statistics for a logical profile.
func (s *StatsIndex) Lookup(logical string) (ClusterStats, bool) {
	if s == nil {
		return ClusterStats{}, false
	}
	row, ok := s.rows[logical]
	if !ok {
		return ClusterStats{}, false
	}
	return ClusterStats{
		AgeMean:          copyFloat(row.AgeMean),
		BMIMean:          copyFloat(row.BMIMean),
		PregnancyMean:    copyFloat(row.PregnancyMean),
		ComplicationRate: copyFloat(row.ComplicationRate),
	}, true
}

// PregnancyMean returns the mean pregnancy count of a logical profile, if
// the artifact carries one.
func (s *StatsIndex) PregnancyMean(logical string) (float64, bool) {
	row, ok := s.Lookup(logical)
	if !ok || row.PregnancyMean == nil {
		return 0, false
	}
	return *row.PregnancyMean, true
}

// Len returns the number of profiles with statistics.
func (s *StatsIndex) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
