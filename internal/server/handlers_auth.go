package server

import (
	"net/http"

	"github.com/petrossemanhica07/app-poupanca/internal/auth"
	"github.com/petrossemanhica07/app-poupanca/internal/middleware"
	"github.com/petrossemanhica07/app-poupanca/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}

	token, user, err := s.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"user": claims})
}

// memberClaims returns the caller's claims when they hold the member role,
// writing a 403 otherwise.
func memberClaims(w http.ResponseWriter, r *http.Request) *auth.Claims {
	claims := middleware.GetClaims(r.Context())
	if claims == nil || claims.Role != models.RoleMember {
		writeErr(w, http.StatusForbidden, "members only")
		return nil
	}
	return claims
}

func (s *Server) handleMyBalance(w http.ResponseWriter, r *http.Request) {
	claims := memberClaims(w, r)
	if claims == nil {
		return
	}

	saldo, err := s.ledgerSvc.MemberBalance(r.Context(), claims.MemberID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"saldo": saldo})
}

func (s *Server) handleMyTransactions(w http.ResponseWriter, r *http.Request) {
	claims := memberClaims(w, r)
	if claims == nil {
		return
	}

	txns, err := s.ledgerSvc.MemberTransactions(r.Context(), claims.MemberID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if txns == nil {
		txns = []models.MemberTransaction{}
	}
	writeJSON(w, http.StatusOK, txns)
}
