package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/HendryAvila/cyclesense/internal/artifacts"
	"github.com/HendryAvila/cyclesense/internal/profile"
)

const (
	metaRateScale       = "rate_scale"
	metaDatasetOverview = "dataset_overview"
	metaImportedAt      = "imported_at"
	metaSource          = "source"
)

// ImportResult summarizes an artifact import.
type ImportResult struct {
	Models       int    `json:"models"`
	Clusters     int    `json:"clusters"`
	LogicalNames int    `json:"logical_names"`
	StatsRows    int    `json:"stats_rows"`
	Source       string `json:"source"`
}

// ImportInfo describes the artifacts currently in the store.
type ImportInfo struct {
	Source     string `json:"source"`
	ImportedAt string `json:"imported_at"`
}

// ImportSpec replaces the stored artifacts with spec. The spec is built
// and its classifier schemas are checked against the features the pipeline
// produces before anything is written, so a bundle that could not be served
// never replaces the stored one. source is recorded for display only.
func (s *Store) ImportSpec(spec *artifacts.Spec, source string) (*ImportResult, error) {
	b, err := artifacts.Build(spec)
	if err != nil {
		return nil, fmt.Errorf("store: import: %w", err)
	}
	if _, err := profile.New(b); err != nil {
		return nil, fmt.Errorf("store: import: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: import: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"clusters", "models", "logical_map", "cluster_stats", "meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return nil, fmt.Errorf("store: import: clear %s: %w", table, err)
		}
	}

	result := &ImportResult{Source: source}
	models := []struct {
		name string
		spec artifacts.ModelSpec
	}{
		{artifacts.ModelRaw, spec.Raw},
		{artifacts.ModelVariability, spec.Variability},
	}
	for _, m := range models {
		n, err := insertModel(tx, m.name, m.spec)
		if err != nil {
			return nil, fmt.Errorf("store: import %s model: %w", m.name, err)
		}
		result.Models++
		result.Clusters += n
	}

	for combined, logical := range spec.LogicalMap {
		if _, err := tx.Exec(
			`INSERT INTO logical_map (combined, logical) VALUES (?, ?)`,
			combined, logical,
		); err != nil {
			return nil, fmt.Errorf("store: import logical map %q: %w", combined, err)
		}
		result.LogicalNames++
	}

	for logical, st := range spec.ClusterStats {
		if _, err := tx.Exec(
			`INSERT INTO cluster_stats (logical, age_mean, bmi_mean, pregnancy_mean, complication_rate)
			 VALUES (?, ?, ?, ?, ?)`,
			logical, st.AgeMean, st.BMIMean, st.PregnancyMean, st.ComplicationRate,
		); err != nil {
			return nil, fmt.Errorf("store: import cluster stats %q: %w", logical, err)
		}
		result.StatsRows++
	}

	meta := map[string]string{
		metaRateScale:       string(spec.RateScale),
		metaDatasetOverview: spec.DatasetOverview,
		metaImportedAt:      Now(),
		metaSource:          source,
	}
	for k, v := range meta {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return nil, fmt.Errorf("store: import meta %q: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: import: commit: %w", err)
	}
	return result, nil
}

func insertModel(tx *sql.Tx, name string, spec artifacts.ModelSpec) (int, error) {
	features, err := json.Marshal(spec.Features)
	if err != nil {
		return 0, err
	}
	var mean, scale []byte
	if spec.Scaler != nil {
		if mean, err = json.Marshal(spec.Scaler.Mean); err != nil {
			return 0, err
		}
		if scale, err = json.Marshal(spec.Scaler.Scale); err != nil {
			return 0, err
		}
	}
	if _, err := tx.Exec(
		`INSERT INTO models (name, features, scaler_mean, scaler_scale, silhouette, calinski_harabasz, davies_bouldin)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name, string(features), nullableBytes(mean), nullableBytes(scale),
		spec.Evaluation.Silhouette, spec.Evaluation.CalinskiHarabasz, spec.Evaluation.DaviesBouldin,
	); err != nil {
		return 0, err
	}

	// A cluster row exists for every id mentioned by centroids, names or sizes.
	ids := map[int]struct{}{}
	for id := range spec.Centroids {
		ids[id] = struct{}{}
	}
	for id := range spec.Names {
		ids[id] = struct{}{}
	}
	for id := range spec.Evaluation.SizesPercent {
		ids[id] = struct{}{}
	}

	for id := range ids {
		var centroid any
		if c, ok := spec.Centroids[id]; ok {
			data, err := json.Marshal(c)
			if err != nil {
				return 0, err
			}
			centroid = string(data)
		}
		var clusterName any
		if n, ok := spec.Names[id]; ok {
			clusterName = n
		}
		var size any
		if pct, ok := spec.Evaluation.SizesPercent[id]; ok {
			size = pct
		}
		if _, err := tx.Exec(
			`INSERT INTO clusters (model, cluster_id, name, centroid, size_percent) VALUES (?, ?, ?, ?, ?)`,
			name, id, clusterName, centroid, size,
		); err != nil {
			return 0, fmt.Errorf("cluster %d: %w", id, err)
		}
	}
	return len(ids), nil
}

// LoadSpec reads the stored artifacts back into a Spec.
func (s *Store) LoadSpec() (*artifacts.Spec, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM models`).Scan(&count); err != nil {
		return nil, fmt.Errorf("store: count models: %w", err)
	}
	if count == 0 {
		return nil, ErrNoArtifacts
	}

	spec := &artifacts.Spec{}
	var err error
	if spec.Raw, err = s.loadModel(artifacts.ModelRaw); err != nil {
		return nil, err
	}
	if spec.Variability, err = s.loadModel(artifacts.ModelVariability); err != nil {
		return nil, err
	}
	if spec.LogicalMap, err = s.loadLogicalMap(); err != nil {
		return nil, err
	}
	if spec.ClusterStats, err = s.loadClusterStats(); err != nil {
		return nil, err
	}

	meta, err := s.loadMeta()
	if err != nil {
		return nil, err
	}
	spec.RateScale = artifacts.RateScale(meta[metaRateScale])
	spec.DatasetOverview = meta[metaDatasetOverview]
	return spec, nil
}

// LoadBundle reads and validates the stored artifacts.
func (s *Store) LoadBundle() (*artifacts.Bundle, error) {
	spec, err := s.LoadSpec()
	if err != nil {
		return nil, err
	}
	b, err := artifacts.Build(spec)
	if err != nil {
		return nil, fmt.Errorf("store: stored artifacts are invalid: %w", err)
	}
	return b, nil
}

// Info returns where the stored artifacts came from, or ErrNoArtifacts.
func (s *Store) Info() (*ImportInfo, error) {
	meta, err := s.loadMeta()
	if err != nil {
		return nil, err
	}
	at, ok := meta[metaImportedAt]
	if !ok {
		return nil, ErrNoArtifacts
	}
	return &ImportInfo{Source: meta[metaSource], ImportedAt: at}, nil
}

func (s *Store) loadModel(name string) (artifacts.ModelSpec, error) {
	var (
		features    string
		mean, scale sql.NullString
		m           artifacts.ModelSpec
	)
	err := s.db.QueryRow(
		`SELECT features, scaler_mean, scaler_scale, silhouette, calinski_harabasz, davies_bouldin
		 FROM models WHERE name = ?`, name,
	).Scan(&features, &mean, &scale,
		&m.Evaluation.Silhouette, &m.Evaluation.CalinskiHarabasz, &m.Evaluation.DaviesBouldin)
	if errors.Is(err, sql.ErrNoRows) {
		return m, fmt.Errorf("store: %s model missing: %w", name, ErrNoArtifacts)
	}
	if err != nil {
		return m, fmt.Errorf("store: load %s model: %w", name, err)
	}

	if err := json.Unmarshal([]byte(features), &m.Features); err != nil {
		return m, fmt.Errorf("store: %s model features: %w", name, err)
	}
	if mean.Valid && scale.Valid {
		m.Scaler = &artifacts.ScalerSpec{}
		if err := json.Unmarshal([]byte(mean.String), &m.Scaler.Mean); err != nil {
			return m, fmt.Errorf("store: %s scaler mean: %w", name, err)
		}
		if err := json.Unmarshal([]byte(scale.String), &m.Scaler.Scale); err != nil {
			return m, fmt.Errorf("store: %s scaler scale: %w", name, err)
		}
	}

	rows, err := s.db.Query(
		`SELECT cluster_id, name, centroid, size_percent FROM clusters WHERE model = ? ORDER BY cluster_id`, name,
	)
	if err != nil {
		return m, fmt.Errorf("store: load %s clusters: %w", name, err)
	}
	defer func() { _ = rows.Close() }()

	m.Centroids = map[int][]float64{}
	m.Names = map[int]string{}
	m.Evaluation.SizesPercent = map[int]float64{}
	for rows.Next() {
		var (
			id       int
			cname    sql.NullString
			centroid sql.NullString
			size     sql.NullFloat64
		)
		if err := rows.Scan(&id, &cname, &centroid, &size); err != nil {
			return m, fmt.Errorf("store: scan %s cluster: %w", name, err)
		}
		if cname.Valid {
			m.Names[id] = cname.String
		}
		if centroid.Valid {
			var c []float64
			if err := json.Unmarshal([]byte(centroid.String), &c); err != nil {
				return m, fmt.Errorf("store: %s centroid %d: %w", name, id, err)
			}
			m.Centroids[id] = c
		}
		if size.Valid {
			m.Evaluation.SizesPercent[id] = size.Float64
		}
	}
	return m, rows.Err()
}

func (s *Store) loadLogicalMap() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT combined, logical FROM logical_map`)
	if err != nil {
		return nil, fmt.Errorf("store: load logical map: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := map[string]string{}
	for rows.Next() {
		var combined, logical string
		if err := rows.Scan(&combined, &logical); err != nil {
			return nil, fmt.Errorf("store: scan logical map: %w", err)
		}
		out[combined] = logical
	}
	return out, rows.Err()
}

func (s *Store) loadClusterStats() (map[string]artifacts.ClusterStats, error) {
	rows, err := s.db.Query(
		`SELECT logical, age_mean, bmi_mean, pregnancy_mean, complication_rate FROM cluster_stats`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: load cluster stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := map[string]artifacts.ClusterStats{}
	for rows.Next() {
		var (
			logical                  string
			age, bmi, preg, compRate sql.NullFloat64
		)
		if err := rows.Scan(&logical, &age, &bmi, &preg, &compRate); err != nil {
			return nil, fmt.Errorf("store: scan cluster stats: %w", err)
		}
		out[logical] = artifacts.ClusterStats{
			AgeMean:          nullableFloat(age),
			BMIMean:          nullableFloat(bmi),
			PregnancyMean:    nullableFloat(preg),
			ComplicationRate: nullableFloat(compRate),
		}
	}
	return out, rows.Err()
}

func (s *Store) loadMeta() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM meta`)
	if err != nil {
		return nil, fmt.Errorf("store: load meta: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("store: scan meta: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

func nullableBytes(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
