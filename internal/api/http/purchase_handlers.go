package httpapi

import (
	"net/http"

	"karrirconnect-backend/internal/security"
	"karrirconnect-backend/internal/service"
)

func (s *Server) handleListPackages(w http.ResponseWriter, r *http.Request) {
	offers, err := s.purchases.ListPackages(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"packages": offers})
}

type purchaseRequest struct {
	PackageID int32 `json:"package_id"`
}

func (s *Server) handlePurchasePackage(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireCompany(w, r)
	if !ok {
		return
	}

	var req purchaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cmd := service.PurchaseCommand{
		CompanyID: claims.CompanyID,
		PackageID: req.PackageID,
		ActorID:   claims.UserID,
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	purchase, err := s.purchases.PurchasePackage(r.Context(), cmd)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, purchase)
}

type paymentCallbackRequest struct {
	TransactionID int32  `json:"transaction_id"`
	PaymentRef    string `json:"payment_ref"`
	Success       bool   `json:"success"`
}

// handlePaymentCallback settles a purchase from the payment gateway. The
// gateway authenticates with a shared secret header rather than a JWT.
func (s *Server) handlePaymentCallback(w http.ResponseWriter, r *http.Request) {
	secret := r.Header.Get("X-Webhook-Secret")
	if !security.VerifyWebhookSecret(s.webhookSecretHash, secret) {
		writeError(w, r, http.StatusUnauthorized, "unauthorized", "invalid webhook secret")
		return
	}

	var req paymentCallbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TransactionID <= 0 || req.PaymentRef == "" {
		writeError(w, r, http.StatusBadRequest, "bad_request", "transaction_id and payment_ref are required")
		return
	}

	if err := s.purchases.ConfirmPurchase(r.Context(), req.TransactionID, req.PaymentRef, req.Success); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "acknowledged"})
}
