package cycle

import "math"

// Statistic suffixes of the variability summary.
const (
	StatMean = "mean"
	StatStd  = "std"
	StatCV   = "cv"
)

// SummaryKey returns the variability feature name, e.g. "LengthofCycle_cv".
func SummaryKey(family, stat string) string {
	return family + "_" + stat
}

// Summarize derives the variability summary of a per-cycle feature vector:
// for each family in SummaryFamilies the mean, the population standard
// deviation and the coefficient of variation (std/mean, or 0 when the mean
// is not positive).
//
// Values are gathered from every "<Family>_cycle<N>" key present, so a
// family missing from v yields zeros rather than an error.
func Summarize(v Vector) Vector {
	out := newVector(3 * len(SummaryFamilies))
	for _, family := range SummaryFamilies {
		vals := familyValues(v, family)
		m := mean(vals)
		sd := populationStd(vals, m)
		cv := 0.0
		if m > 0 {
			cv = sd / m
		}
		out.set(SummaryKey(family, StatMean), m)
		out.set(SummaryKey(family, StatStd), sd)
		out.set(SummaryKey(family, StatCV), cv)
	}
	return *out
}

func familyValues(v Vector, family string) []float64 {
	vals := make([]float64, 0, Count)
	for n := 1; n <= Count; n++ {
		if val, ok := v.Value(FeatureKey(family, n)); ok {
			vals = append(vals, val)
		}
	}
	return vals
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range vals {
		sum += x
	}
	return sum / float64(len(vals))
}

// populationStd is the ddof=0 standard deviation around m.
func populationStd(vals []float64, m float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	ss := 0.0
	for _, x := range vals {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)))
}
