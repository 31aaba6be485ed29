package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

// Credentials holds the brokerage login parameters. Read from the
// environment at startup, never logged.
type Credentials struct {
	UserID     string
	APIKey     string
	Password   string
	TOTPSecret string
}

// Session exchanges credentials for an authenticated token shared by the
// data fetcher and the order transport. It is injected explicitly into both
// rather than held as global state.
type Session struct {
	BaseURL string
	Client  *http.Client

	mu    sync.RWMutex
	token string
}

// NewSession creates an unauthenticated session against the brokerage API.
func NewSession(baseURL string, timeout time.Duration) *Session {
	return &Session{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

type loginResponse struct {
	Status    string `json:"stat"`
	SessionID string `json:"sessionID"`
	Message   string `json:"emsg"`
}

// Login authenticates and stores the session token.
func (s *Session) Login(ctx context.Context, creds Credentials) error {
	payload := map[string]string{
		"userId":   creds.UserID,
		"apiKey":   creds.APIKey,
		"password": creds.Password,
		"twoFA":    creds.TOTPSecret,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/session/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("session login: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("session login read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("session login: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var lr loginResponse
	if err := json.Unmarshal(respBody, &lr); err != nil {
		return fmt.Errorf("session login decode: %w", err)
	}
	if lr.Status != "Ok" || lr.SessionID == "" {
		return fmt.Errorf("session login refused: %s", lr.Message)
	}

	s.mu.Lock()
	s.token = lr.SessionID
	s.mu.Unlock()
	log.Printf("[INFO] broker session established for user %s", creds.UserID)
	return nil
}

// Token returns the current session token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
