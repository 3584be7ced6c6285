package service

import (
	"context"
	"log/slog"

	"github.com/petrossemanhica07/app-poupanca/internal/models"
	"github.com/petrossemanhica07/app-poupanca/internal/storage"
)

// ReportService serves the read-only aggregations. Every call re-scans the
// relevant tables; there is no caching.
type ReportService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewReportService creates a new ReportService with the given storage backend.
func NewReportService(store storage.Store, logger *slog.Logger) *ReportService {
	return &ReportService{store: store, logger: logger}
}

// Overview computes the system-wide KPIs for the admin dashboard.
func (s *ReportService) Overview(ctx context.Context) (*models.Overview, error) {
	ov, err := s.store.Overview(ctx)
	if err != nil {
		s.logger.Error("Overview failed", "error", err)
		return nil, err
	}
	return ov, nil
}

// GroupReport computes one group's balance and contribution ranking.
func (s *ReportService) GroupReport(ctx context.Context, groupID int64) (*models.GroupReport, error) {
	report, err := s.store.GroupReport(ctx, groupID)
	if err != nil {
		s.logger.Error("GroupReport failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return report, nil
}

// Reconciliation verifies every stored balance against the value derived
// from transaction history and logs any drift.
func (s *ReportService) Reconciliation(ctx context.Context) ([]models.ReconciliationRow, error) {
	rows, err := s.store.Reconciliation(ctx)
	if err != nil {
		s.logger.Error("Reconciliation failed", "error", err)
		return nil, err
	}
	for _, r := range rows {
		if r.Drift != 0 {
			s.logger.Warn("Balance drift detected",
				"scope", r.Scope, "ref_id", r.RefID, "stored", r.Stored, "derived", r.Derived)
		}
	}
	return rows, nil
}
