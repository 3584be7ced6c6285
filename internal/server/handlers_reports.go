package server

import (
	"net/http"

	"github.com/petrossemanhica07/app-poupanca/internal/models"
)

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.reportSvc.Overview(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if ov.Latest == nil {
		ov.Latest = []models.OverviewTransaction{}
	}
	writeJSON(w, http.StatusOK, ov)
}

func (s *Server) handleGroupReport(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid group id")
		return
	}

	report, err := s.reportSvc.GroupReport(r.Context(), groupID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if report.Contributions == nil {
		report.Contributions = []models.MemberContribution{}
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReconciliation(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reportSvc.Reconciliation(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if rows == nil {
		rows = []models.ReconciliationRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}
