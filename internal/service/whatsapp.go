package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"karrirconnect-backend/internal/logger"
)

// whatsappService posts messages to a WhatsApp business gateway over plain
// HTTP JSON. The gateway contract is a single POST endpoint with a bearer
// token, so no vendor SDK is involved.
type whatsappService struct {
	gatewayURL string
	token      string
	httpClient *http.Client
}

func NewWhatsAppService(gatewayURL, token string) MessageService {
	return &whatsappService{
		gatewayURL: gatewayURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *whatsappService) SendMessage(ctx context.Context, phoneNumber, message string) error {
	logger.ExternalServiceCall("whatsapp", "send", "phone", phoneNumber)

	payload, err := json.Marshal(map[string]string{
		"phone":   phoneNumber,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("whatsapp", "send", err, "phone", phoneNumber)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err = fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}
	logger.ExternalServiceResult("whatsapp", "send", err, "phone", phoneNumber)
	return err
}
