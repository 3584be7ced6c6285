package server

import (
	"encoding/json"
	"net/http"

	"github.com/petrossemanhica07/app-poupanca/internal/middleware"
	"github.com/petrossemanhica07/app-poupanca/internal/models"
)

type createGroupRequest struct {
	Name     string `json:"nome"`
	Currency string `json:"moeda"`
	// Rules accepts any JSON shape; it is stored serialized as-is.
	Rules json.RawMessage `json:"regras"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}

	actor := middleware.GetClaims(r.Context())
	id, err := s.groupSvc.CreateGroup(r.Context(), actor.UserID, req.Name, req.Currency, string(req.Rules))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groupSvc.ListGroups(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if groups == nil {
		groups = []models.Group{}
	}
	writeJSON(w, http.StatusOK, groups)
}

type addMemberRequest struct {
	Name     string `json:"nome"`
	Phone    string `json:"telefone"`
	Document string `json:"documento"`
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var req addMemberRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}

	actor := middleware.GetClaims(r.Context())
	id, err := s.groupSvc.AddMember(r.Context(), actor.UserID, groupID, req.Name, req.Phone, req.Document)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid group id")
		return
	}

	members, err := s.groupSvc.ListMembers(r.Context(), groupID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if members == nil {
		members = []models.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

type openMeetingRequest struct {
	Date     string `json:"data"`
	Location string `json:"local"`
	Notes    string `json:"notas"`
}

func (s *Server) handleOpenMeeting(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var req openMeetingRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}

	actor := middleware.GetClaims(r.Context())
	id, err := s.groupSvc.OpenMeeting(r.Context(), actor.UserID, groupID, req.Date, req.Location, req.Notes)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleListMeetings(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid group id")
		return
	}

	meetings, err := s.groupSvc.ListMeetings(r.Context(), groupID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if meetings == nil {
		meetings = []models.Meeting{}
	}
	writeJSON(w, http.StatusOK, meetings)
}

func (s *Server) handleCloseMeeting(w http.ResponseWriter, r *http.Request) {
	meetingID, err := pathID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid meeting id")
		return
	}

	actor := middleware.GetClaims(r.Context())
	if err := s.groupSvc.CloseMeeting(r.Context(), actor.UserID, meetingID); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
