package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ReportRecord is one rendered report kept in the history log.
type ReportRecord struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Name      string `json:"name,omitempty"`
	Logical   string `json:"logical,omitempty"`
	Combined  string `json:"combined,omitempty"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// SaveReport appends a report to the history and returns its id. ID and
// CreatedAt are assigned here when empty.
func (s *Store) SaveReport(r ReportRecord) (string, error) {
	if r.Kind == "" {
		return "", errors.New("store: report kind is required")
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt == "" {
		r.CreatedAt = Now()
	}
	if _, err := s.db.Exec(
		`INSERT INTO reports (id, kind, name, logical, combined, body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Kind, r.Name, r.Logical, r.Combined, r.Body, r.CreatedAt,
	); err != nil {
		return "", fmt.Errorf("store: save report: %w", err)
	}
	return r.ID, nil
}

// HistoryFilter narrows RecentReports.
type HistoryFilter struct {
	Kind  string
	Name  string
	Limit int
}

// RecentReports returns the newest reports first.
func (s *Store) RecentReports(f HistoryFilter) ([]ReportRecord, error) {
	if f.Limit <= 0 {
		f.Limit = 10
	}

	query := `SELECT id, kind, name, logical, combined, body, created_at FROM reports WHERE 1=1`
	args := []any{}
	if f.Kind != "" {
		query += " AND kind = ?"
		args = append(args, f.Kind)
	}
	if f.Name != "" {
		query += " AND name = ? COLLATE NOCASE"
		args = append(args, f.Name)
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, f.Limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: recent reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []ReportRecord
	for rows.Next() {
		var r ReportRecord
		if err := rows.Scan(&r.ID, &r.Kind, &r.Name, &r.Logical, &r.Combined, &r.Body, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan report: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// GetReport returns one report by id, or ErrReportNotFound.
func (s *Store) GetReport(id string) (*ReportRecord, error) {
	var r ReportRecord
	err := s.db.QueryRow(
		`SELECT id, kind, name, logical, combined, body, created_at FROM reports WHERE id = ?`, id,
	).Scan(&r.ID, &r.Kind, &r.Name, &r.Logical, &r.Combined, &r.Body, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get report: %w", err)
	}
	return &r, nil
}

// PruneReports keeps the newest keep reports and deletes the rest. It
// returns the number of rows removed.
func (s *Store) PruneReports(keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.Exec(
		`DELETE FROM reports WHERE id NOT IN (
			SELECT id FROM reports ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("store: prune reports: %w", err)
	}
	return res.RowsAffected()
}
