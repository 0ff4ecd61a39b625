package tools

import (
	"github.com/HendryAvila/cyclesense/internal/logging"
	"github.com/HendryAvila/cyclesense/internal/report"
	"github.com/HendryAvila/cyclesense/internal/store"
)

// ReportObserver is notified after a report has been rendered.
// It's an optional dependency: tools work fine with a nil observer.
type ReportObserver interface {
	OnReport(kind report.Kind, c *report.Context, text string)
}

// HistoryRecorder appends rendered reports to the store's history log and
// keeps it within limit.
type HistoryRecorder struct {
	store *store.Store
	limit int
}

// NewHistoryRecorder creates a recorder. Returns nil if store is nil, so the
// result can be handed straight to SetObserver.
func NewHistoryRecorder(s *store.Store, limit int) *HistoryRecorder {
	if s == nil {
		return nil
	}
	return &HistoryRecorder{store: s, limit: limit}
}

// OnReport saves the report. Failures are logged and swallowed: a report
// that rendered is delivered even if history cannot be written.
func (h *HistoryRecorder) OnReport(kind report.Kind, c *report.Context, text string) {
	rec := store.ReportRecord{Kind: string(kind), Body: text}
	if c != nil {
		rec.Name = c.Name
		rec.Logical = string(c.Assignment.Logical)
		rec.Combined = c.Assignment.Combined
	}

	id, err := h.store.SaveReport(rec)
	if err != nil {
		logging.Warn("report history save failed", "kind", kind, "err", err)
		return
	}
	logging.Debug("report saved to history", "id", id, "kind", kind)

	if h.limit > 0 {
		if n, err := h.store.PruneReports(h.limit); err != nil {
			logging.Warn("report history prune failed", "err", err)
		} else if n > 0 {
			logging.Debug("report history pruned", "removed", n)
		}
	}
}
