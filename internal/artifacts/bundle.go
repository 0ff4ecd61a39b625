package artifacts

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Model names used as keys in storage and reports.
const (
	ModelRaw         = "raw"
	ModelVariability = "variability"
)

// Spec is the serializable form of a complete artifact bundle.
type Spec struct {
	Raw             ModelSpec               `yaml:"raw" json:"raw"`
	Variability     ModelSpec               `yaml:"variability" json:"variability"`
	LogicalMap      map[string]string       `yaml:"logical_map" json:"logical_map"`
	ClusterStats    map[string]ClusterStats `yaml:"cluster_stats" json:"cluster_stats"`
	RateScale       RateScale               `yaml:"rate_scale,omitempty" json:"rate_scale,omitempty"`
	DatasetOverview string                  `yaml:"dataset_overview,omitempty" json:"dataset_overview,omitempty"`
}

// ModelSpec describes one fitted clustering model.
type ModelSpec struct {
	Features   []string          `yaml:"features" json:"features"`
	Scaler     *ScalerSpec       `yaml:"scaler,omitempty" json:"scaler,omitempty"`
	Centroids  map[int][]float64 `yaml:"centroids" json:"centroids"`
	Names      map[int]string    `yaml:"names" json:"names"`
	Evaluation Evaluation        `yaml:"evaluation" json:"evaluation"`
}

// ScalerSpec is a fitted standard scaler: z = (x - mean) / scale.
type ScalerSpec struct {
	Mean  []float64 `yaml:"mean" json:"mean"`
	Scale []float64 `yaml:"scale" json:"scale"`
}

// Evaluation holds the clustering-quality metrics recorded at training time.
type Evaluation struct {
	Silhouette       float64         `yaml:"silhouette" json:"silhouette"`
	CalinskiHarabasz float64         `yaml:"calinski_harabasz" json:"calinski_harabasz"`
	DaviesBouldin    float64         `yaml:"davies_bouldin" json:"davies_bouldin"`
	SizesPercent     map[int]float64 `yaml:"sizes_percent" json:"sizes_percent"`
}

// ParseYAML decodes a bundle spec. Unknown keys are rejected so that a typo
// in an artifact file fails loudly instead of silently dropping data.
func ParseYAML(data []byte) (*Spec, error) {
	var spec Spec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing artifact bundle: %w", err)
	}
	return &spec, nil
}

// NameMap maps cluster ids to semantic names.
type NameMap map[int]string

// Name returns the semantic name of a cluster id.
func (m NameMap) Name(id int) (string, bool) {
	name, ok := m[id]
	return name, ok
}

// IDs returns the cluster ids in ascending order.
func (m NameMap) IDs() []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Model is a ready-to-use clustering model.
type Model struct {
	Classifier Classifier
	Names      NameMap
	Evaluation Evaluation
}

// Bundle is the validated, immutable set of artifacts shared by every
// request. Nothing on the request path writes to it.
type Bundle struct {
	Raw             Model
	Variability     Model
	LogicalMap      map[string]string
	Stats           *StatsIndex
	DatasetOverview string
}

// LogicalName returns the logical profile mapped to a combined label.
func (b *Bundle) LogicalName(combined string) (string, bool) {
	name, ok := b.LogicalMap[combined]
	return name, ok
}

// Build validates a spec and assembles the Bundle. Any error here is a
// configuration error: the process must not serve requests with it.
func Build(spec *Spec) (*Bundle, error) {
	if spec == nil {
		return nil, errors.New("artifacts: nil spec")
	}
	raw, err := buildModel(spec.Raw)
	if err != nil {
		return nil, fmt.Errorf("artifacts: raw model: %w", err)
	}
	variability, err := buildModel(spec.Variability)
	if err != nil {
		return nil, fmt.Errorf("artifacts: variability model: %w", err)
	}
	stats, err := NewStatsIndex(spec.ClusterStats, spec.RateScale)
	if err != nil {
		return nil, fmt.Errorf("artifacts: cluster stats: %w", err)
	}

	logical := make(map[string]string, len(spec.LogicalMap))
	for k, v := range spec.LogicalMap {
		logical[k] = v
	}

	return &Bundle{
		Raw:             raw,
		Variability:     variability,
		LogicalMap:      logical,
		Stats:           stats,
		DatasetOverview: spec.DatasetOverview,
	}, nil
}

func buildModel(spec ModelSpec) (Model, error) {
	clf, err := NewCentroidClassifier(spec)
	if err != nil {
		return Model{}, err
	}
	// Every id the classifier can emit must have a name.
	for id := range spec.Centroids {
		if _, ok := spec.Names[id]; !ok {
			return Model{}, fmt.Errorf("centroid %d has no name", id)
		}
	}

	names := make(NameMap, len(spec.Names))
	for id, name := range spec.Names {
		names[id] = name
	}
	eval := spec.Evaluation
	eval.SizesPercent = make(map[int]float64, len(spec.Evaluation.SizesPercent))
	for id, pct := range spec.Evaluation.SizesPercent {
		eval.SizesPercent[id] = pct
	}

	return Model{Classifier: clf, Names: names, Evaluation: eval}, nil
}
