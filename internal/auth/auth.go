package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spendwise/spendwise-go/internal/types"
)

const (
	signinEndpoint = "/auth/signin"
	signupEndpoint = "/auth/signup"
)

// Service handles authentication against the SpendWise API.
// It owns the session object; nothing else in the client reaches
// into shared storage for credentials.
type Service struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	session    *types.Session
	logger     types.Logger
}

// SignupParams describes a new account
type SignupParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Currency string `json:"currency,omitempty"`
}

// NewService creates a new auth service
func NewService(baseURL string, httpClient *http.Client, logger types.Logger) *Service {
	headers := map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
		"User-Agent":   types.UserAgent,
		"device-uuid":  uuid.New().String(),
	}

	return &Service{
		baseURL:    baseURL,
		httpClient: httpClient,
		headers:    headers,
		logger:     logger,
	}
}

// SignIn exchanges credentials for a session
func (s *Service) SignIn(ctx context.Context, email, password string) error {
	reqBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return errors.Wrap(err, "failed to marshal signin request")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+signinEndpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to create signin request")
	}

	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	if s.logger != nil {
		s.logger.Debug("Signin request", "email", email)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "signin request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read signin response")
	}

	if s.logger != nil {
		s.logger.Debug("Signin response", "status", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized {
			return types.ErrLoginFailed
		}
		return &types.Error{
			Code:       "SIGNIN_FAILED",
			Message:    fmt.Sprintf("signin failed with status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	var signinResp signinResponse
	if err := json.Unmarshal(respBody, &signinResp); err != nil {
		return errors.Wrap(err, "failed to parse signin response")
	}

	if signinResp.Token == "" {
		return errors.New("no token in signin response")
	}

	s.session = &types.Session{
		Token:    signinResp.Token,
		UserID:   signinResp.ID,
		Email:    signinResp.Email,
		Name:     signinResp.Name,
		Currency: signinResp.Currency,
		SavedAt:  time.Now(),
	}

	if s.logger != nil {
		s.logger.Info("Signin successful", "email", email)
	}

	return nil
}

// SignUp creates a new account. The server seeds the default category
// palette; a fresh signin is still required to obtain a session.
func (s *Service) SignUp(ctx context.Context, params *SignupParams) error {
	body, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "failed to marshal signup request")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+signupEndpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to create signup request")
	}

	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	if s.logger != nil {
		s.logger.Debug("Signup request", "email", params.Email)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "signup request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read signup response")
	}

	if resp.StatusCode != http.StatusOK {
		var msgResp struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(respBody, &msgResp)

		msg := msgResp.Message
		if msg == "" {
			msg = fmt.Sprintf("signup failed with status %d", resp.StatusCode)
		}
		return &types.Error{
			Code:       "SIGNUP_FAILED",
			Message:    msg,
			StatusCode: resp.StatusCode,
		}
	}

	if s.logger != nil {
		s.logger.Info("Signup successful", "email", params.Email)
	}

	return nil
}

// GetSession returns the current session
func (s *Service) GetSession() (*types.Session, error) {
	if s.session == nil {
		return nil, types.ErrNotAuthenticated
	}
	return s.session, nil
}

// SetSession sets the current session
func (s *Service) SetSession(session *types.Session) {
	s.session = session
}

// ClearSession drops the current session
func (s *Service) ClearSession() {
	s.session = nil
}

// SaveSession saves session to file
func (s *Service) SaveSession(path string) error {
	if s.session == nil {
		return types.ErrNotAuthenticated
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrap(err, "failed to create session directory")
	}

	data, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write session file")
	}

	if s.logger != nil {
		s.logger.Info("Session saved", "path", path)
	}

	return nil
}

// LoadSession loads session from file
func (s *Service) LoadSession(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.ErrNotAuthenticated
		}
		return errors.Wrap(err, "failed to read session file")
	}

	var session types.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return errors.Wrap(err, "failed to unmarshal session")
	}

	if session.Token == "" {
		return types.ErrNotAuthenticated
	}

	s.session = &session

	if s.logger != nil {
		s.logger.Info("Session loaded", "path", path, "email", session.Email)
	}

	return nil
}

// ClearSessionFile removes the persisted session, if any
func (s *Service) ClearSessionFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove session file")
	}
	return nil
}

// signinResponse represents the signin API response
type signinResponse struct {
	Token    string `json:"token"`
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}
