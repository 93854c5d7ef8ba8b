package httpapi

import (
	"net/http"

	"karrirconnect-backend/internal/service"
)

type sendInvitationRequest struct {
	CandidateID int32  `json:"candidate_id"`
	JobID       *int32 `json:"job_id,omitempty"`
	Message     string `json:"message"`
}

func (s *Server) handleSendInvitation(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireCompany(w, r)
	if !ok {
		return
	}

	var req sendInvitationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cmd := service.SendInvitationCommand{
		CompanyID:   claims.CompanyID,
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
		ActorID:     claims.UserID,
		Message:     req.Message,
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	inv, err := s.invitations.SendInvitation(r.Context(), cmd)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (s *Server) handleListInvitations(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireCompany(w, r)
	if !ok {
		return
	}

	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 50)
	invs, total, err := s.invitations.ListInvitations(r.Context(), claims.CompanyID, page, pageSize)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"invitations": invs,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
	})
}

type respondInvitationRequest struct {
	Accept bool `json:"accept"`
}

// handleRespondInvitation is the candidate-facing side; any authenticated
// user may respond to an invitation addressed to them.
func (s *Server) handleRespondInvitation(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	if claims == nil {
		writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing credentials")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid invitation id")
		return
	}

	var req respondInvitationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inv, err := s.invitations.RespondInvitation(r.Context(), id, claims.UserID, req.Accept)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}
