package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"karrirconnect-backend/internal/security"
	"karrirconnect-backend/internal/service"
)

// Server wires the points API onto a gorilla/mux router.
type Server struct {
	ledger            service.LedgerService
	jobs              service.JobService
	invitations       service.InvitationService
	purchases         service.PurchaseService
	notifications     service.NotificationService
	tokens            security.TokenManager
	webhookSecretHash string
}

func NewServer(
	ledger service.LedgerService,
	jobs service.JobService,
	invitations service.InvitationService,
	purchases service.PurchaseService,
	notifications service.NotificationService,
	tokens security.TokenManager,
	webhookSecretHash string,
) *Server {
	return &Server{
		ledger:            ledger,
		jobs:              jobs,
		invitations:       invitations,
		purchases:         purchases,
		notifications:     notifications,
		tokens:            tokens,
		webhookSecretHash: webhookSecretHash,
	}
}

func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID, logRequests)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public catalog and the payment gateway callback; the callback carries
	// its own shared-secret check instead of a bearer token.
	api.HandleFunc("/packages", s.handleListPackages).Methods(http.MethodGet)
	api.HandleFunc("/payments/callback", s.handlePaymentCallback).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.authenticate)

	authed.HandleFunc("/purchases", s.handlePurchasePackage).Methods(http.MethodPost)

	authed.HandleFunc("/points/balance", s.handleGetBalance).Methods(http.MethodGet)
	authed.HandleFunc("/points/transactions", s.handleListTransactions).Methods(http.MethodGet)
	authed.HandleFunc("/points/can-publish", s.handleCanPublish).Methods(http.MethodGet)

	authed.HandleFunc("/jobs", s.handlePublishListing).Methods(http.MethodPost)
	authed.HandleFunc("/jobs", s.handleListListings).Methods(http.MethodGet)
	authed.HandleFunc("/jobs/{id:[0-9]+}", s.handleGetListing).Methods(http.MethodGet)
	authed.HandleFunc("/jobs/{id:[0-9]+}/close", s.handleCloseListing).Methods(http.MethodPost)

	authed.HandleFunc("/invitations", s.handleSendInvitation).Methods(http.MethodPost)
	authed.HandleFunc("/invitations", s.handleListInvitations).Methods(http.MethodGet)
	authed.HandleFunc("/invitations/{id:[0-9]+}/respond", s.handleRespondInvitation).Methods(http.MethodPost)

	authed.HandleFunc("/notifications", s.handleListNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", s.handleMarkNotificationRead).Methods(http.MethodPost)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
