package httpapi

import (
	"net/http"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/service"
)

type publishListingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

func (s *Server) handlePublishListing(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireCompany(w, r)
	if !ok {
		return
	}

	var req publishListingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cmd := service.PublishListingCommand{
		CompanyID:   claims.CompanyID,
		ActorID:     claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	listing, err := s.jobs.PublishListing(r.Context(), cmd)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, listing)
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireCompany(w, r); !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid listing id")
		return
	}

	listing, err := s.jobs.GetListing(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireCompany(w, r)
	if !ok {
		return
	}

	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 50)
	listings, total, err := s.jobs.ListListings(r.Context(), claims.CompanyID, page, pageSize)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"listings":  listings,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (s *Server) handleCloseListing(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireCompany(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid listing id")
		return
	}

	if err := s.jobs.CloseListing(r.Context(), claims.CompanyID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":     id,
		"status": domain.ListingStatusClosed,
	})
}
