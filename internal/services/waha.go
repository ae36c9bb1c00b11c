package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// WahaService sends WhatsApp messages through a WAHA gateway
type WahaService struct {
	baseURL     string
	apiKey      string
	session     string
	countryCode string
	client      *http.Client
}

// NewWahaService reads WAHA_BASE_URL, WAHA_API_KEY, WAHA_SESSION and WHATSAPP_COUNTRY_CODE
func NewWahaService() *WahaService {
	return &WahaService{
		baseURL:     strings.TrimRight(os.Getenv("WAHA_BASE_URL"), "/"),
		apiKey:      os.Getenv("WAHA_API_KEY"),
		session:     envOr("WAHA_SESSION", "default"),
		countryCode: envOr("WHATSAPP_COUNTRY_CODE", "1"),
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether a gateway URL is set
func (s *WahaService) Configured() bool {
	return s.baseURL != ""
}

func (s *WahaService) makeRequest(ctx context.Context, endpoint string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-Api-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// NormalizeChatID turns a phone number or group ID into a WAHA chat ID.
// Numbers with a leading trunk 0 get countryCode instead.
func NormalizeChatID(chatID, countryCode string) string {
	chatID = strings.TrimSpace(chatID)

	if strings.HasSuffix(chatID, "@g.us") {
		return chatID
	}

	chatID = strings.TrimSuffix(chatID, "@c.us")
	chatID = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, chatID)

	if strings.HasPrefix(chatID, "0") {
		chatID = countryCode + strings.TrimPrefix(chatID, "0")
	}

	return chatID + "@c.us"
}

// SendText sends a text message to a phone number or group
func (s *WahaService) SendText(ctx context.Context, chatID, text string) error {
	if !s.Configured() {
		return fmt.Errorf("WhatsApp gateway not configured")
	}
	return s.makeRequest(ctx, "/api/sendText", map[string]string{
		"chatId":  NormalizeChatID(chatID, s.countryCode),
		"text":    text,
		"session": s.session,
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
