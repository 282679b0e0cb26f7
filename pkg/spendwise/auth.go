package spendwise

import (
	"context"

	"github.com/spendwise/spendwise-go/internal/auth"
	internalTypes "github.com/spendwise/spendwise-go/internal/types"
)

// authService implements the AuthService interface
type authService struct {
	client  *Client
	service *auth.Service
}

// newAuthService creates a new auth service
func newAuthService(client *Client) *authService {
	return &authService{
		client: client,
		service: auth.NewService(
			client.baseURL,
			client.httpClient,
			client.options.Logger,
		),
	}
}

// convertSession converts internal types.Session to spendwise.Session
func (a *authService) convertSession(s *internalTypes.Session) *Session {
	if s == nil {
		return nil
	}
	return &Session{
		Token:    s.Token,
		UserID:   s.UserID,
		Email:    s.Email,
		Name:     s.Name,
		Currency: s.Currency,
		SavedAt:  s.SavedAt,
	}
}

// adoptSession propagates the service's session to the client and transport
func (a *authService) adoptSession() (*Session, error) {
	session, err := a.service.GetSession()
	if err != nil {
		return nil, err
	}

	a.client.session = a.convertSession(session)
	a.client.transport.SetSession(session)
	a.client.rearmInvalidation()
	return a.client.session, nil
}

// clearSession drops the service's credential so a torn-down session
// cannot be read back or re-persisted
func (a *authService) clearSession() {
	a.service.ClearSession()
}

// SignIn exchanges credentials for a session
func (a *authService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if err := a.service.SignIn(ctx, email, password); err != nil {
		return nil, err
	}

	session, err := a.adoptSession()
	if err != nil {
		return nil, err
	}

	// Save session if configured
	if a.client.options.SessionFile != "" {
		_ = a.service.SaveSession(a.client.options.SessionFile)
	}

	return session, nil
}

// SignUp creates a new account
func (a *authService) SignUp(ctx context.Context, params *SignupParams) error {
	return a.service.SignUp(ctx, &auth.SignupParams{
		Name:     params.Name,
		Email:    params.Email,
		Password: params.Password,
		Currency: params.Currency,
	})
}

// Session returns the current session
func (a *authService) Session() (*Session, error) {
	session, err := a.service.GetSession()
	if err != nil {
		return nil, err
	}
	return a.convertSession(session), nil
}

// SaveSession saves session to file
func (a *authService) SaveSession(path string) error {
	return a.service.SaveSession(path)
}

// LoadSession loads session from file
func (a *authService) LoadSession(path string) error {
	if err := a.service.LoadSession(path); err != nil {
		return err
	}

	_, err := a.adoptSession()
	return err
}
