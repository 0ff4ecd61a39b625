// Package artifacts holds the read-only, pre-trained artifacts the profile
// pipeline runs against: the two cluster classifiers, their id→name maps,
// the combined→logical profile map, per-profile cluster statistics and the
// evaluation metrics of both models.
//
// Artifacts are described by a serializable Spec (imported from YAML and
// persisted by the store) and turned into an immutable Bundle by Build.
// Build validates everything the request path relies on, so a Bundle that
// exists is safe to serve from.
package artifacts

import (
	"fmt"
	"math"
	"sort"
)

// Classifier maps a feature vector to a cluster id. Features declares the
// names, in order, of the values Predict expects.
type Classifier interface {
	Features() []string
	Predict(x []float64) (int, error)
}

// CentroidClassifier assigns the id of the nearest centroid (squared
// Euclidean distance) after optional standard scaling. This is how a fitted
// scaler+KMeans pipeline predicts.
type CentroidClassifier struct {
	features  []string
	mean      []float64
	scale     []float64
	ids       []int
	centroids [][]float64
}

// NewCentroidClassifier validates a model spec and builds its classifier.
func NewCentroidClassifier(spec ModelSpec) (*CentroidClassifier, error) {
	if len(spec.Features) == 0 {
		return nil, fmt.Errorf("no feature schema declared")
	}
	seen := make(map[string]bool, len(spec.Features))
	for _, f := range spec.Features {
		if f == "" {
			return nil, fmt.Errorf("empty feature name in schema")
		}
		if seen[f] {
			return nil, fmt.Errorf("duplicate feature %q in schema", f)
		}
		seen[f] = true
	}
	width := len(spec.Features)

	c := &CentroidClassifier{features: append([]string(nil), spec.Features...)}

	if spec.Scaler != nil {
		if len(spec.Scaler.Mean) != width || len(spec.Scaler.Scale) != width {
			return nil, fmt.Errorf("scaler has %d means and %d scales, want %d",
				len(spec.Scaler.Mean), len(spec.Scaler.Scale), width)
		}
		for i, s := range spec.Scaler.Scale {
			if s == 0 || math.IsNaN(s) {
				return nil, fmt.Errorf("scaler scale for %q must be non-zero", spec.Features[i])
			}
		}
		c.mean = append([]float64(nil), spec.Scaler.Mean...)
		c.scale = append([]float64(nil), spec.Scaler.Scale...)
	}

	if len(spec.Centroids) == 0 {
		return nil, fmt.Errorf("no centroids declared")
	}
	for id := range spec.Centroids {
		c.ids = append(c.ids, id)
	}
	sort.Ints(c.ids)
	for _, id := range c.ids {
		centroid := spec.Centroids[id]
		if len(centroid) != width {
			return nil, fmt.Errorf("centroid %d has %d values, want %d", id, len(centroid), width)
		}
		c.centroids = append(c.centroids, append([]float64(nil), centroid...))
	}
	return c, nil
}

// Features returns a copy of the declared feature schema.
func (c *CentroidClassifier) Features() []string {
	return append([]string(nil), c.features...)
}

// Predict returns the id of the closest centroid. Ties resolve to the
// lowest id.
func (c *CentroidClassifier) Predict(x []float64) (int, error) {
	if len(x) != len(c.features) {
		return 0, fmt.Errorf("got %d features, want %d", len(x), len(c.features))
	}
	z := x
	if c.scale != nil {
		z = make([]float64, len(x))
		for i := range x {
			z[i] = (x[i] - c.mean[i]) / c.scale[i]
		}
	}

	best, bestDist := c.ids[0], math.Inf(1)
	for i, centroid := range c.centroids {
		d := 0.0
		for j := range z {
			diff := z[j] - centroid[j]
			d += diff * diff
		}
		if d < bestDist {
			best, bestDist = c.ids[i], d
		}
	}
	return best, nil
}
