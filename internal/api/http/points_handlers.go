package httpapi

import (
	"net/http"

	"karrirconnect-backend/internal/domain"
	"karrirconnect-backend/internal/repository"
)

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireCompany(w, r)
	if !ok {
		return
	}

	balance, err := s.ledger.GetBalance(r.Context(), claims.CompanyID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"company_id": claims.CompanyID,
		"balance":    balance,
	})
}

func (s *Server) handleCanPublish(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireCompany(w, r)
	if !ok {
		return
	}

	canPublish, err := s.ledger.CanPublishListing(r.Context(), claims.CompanyID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"can_publish": canPublish})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireCompany(w, r)
	if !ok {
		return
	}

	filter := repository.TransactionFilter{
		Kind:     domain.TransactionKind(r.URL.Query().Get("kind")),
		Status:   domain.TransactionStatus(r.URL.Query().Get("status")),
		Page:     queryInt32(r, "page", 1),
		PageSize: queryInt32(r, "page_size", 50),
	}

	txs, total, err := s.ledger.GetTransactions(r.Context(), claims.CompanyID, filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": txs,
		"total":        total,
		"page":         filter.Page,
		"page_size":    filter.PageSize,
	})
}
