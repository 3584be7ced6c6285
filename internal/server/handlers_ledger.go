package server

import (
	"net/http"

	"github.com/petrossemanhica07/app-poupanca/internal/middleware"
	"github.com/petrossemanhica07/app-poupanca/internal/models"
	"github.com/petrossemanhica07/app-poupanca/internal/service"
)

type recordTransactionRequest struct {
	MeetingID int64                  `json:"meeting_id"`
	MemberID  int64                  `json:"member_id"`
	Type      models.TransactionType `json:"tipo"`
	Amount    float64                `json:"valor"`
	Penalty   float64                `json:"multa"`
	Notes     string                 `json:"notas"`
}

func (s *Server) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req recordTransactionRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}

	actor := middleware.GetClaims(r.Context())
	id, err := s.ledgerSvc.Record(r.Context(), actor.UserID, service.RecordInput{
		MeetingID: req.MeetingID,
		MemberID:  req.MemberID,
		Type:      req.Type,
		Amount:    req.Amount,
		Penalty:   req.Penalty,
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleGroupBalance(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid group id")
		return
	}

	saldo, err := s.ledgerSvc.GroupBalance(r.Context(), groupID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"saldo": saldo})
}

func (s *Server) handleMemberBalance(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid member id")
		return
	}

	saldo, err := s.ledgerSvc.MemberBalance(r.Context(), memberID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"saldo": saldo})
}
