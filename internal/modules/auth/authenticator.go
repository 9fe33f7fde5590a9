package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwtsvc "berrystore/internal/pkg/jwt"
)

// Identity is the resolved caller of an authenticated request.
type Identity struct {
	UserID string
	Role   string
}

// Authenticator resolves request credentials to an identity. Three
// interchangeable strategies exist (JWT bearer, Basic+bcrypt, remote
// token verification); which one the server uses is configuration, not
// endpoint logic.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) (*Identity, error)
}

/* ---------- JWT bearer ---------- */

type jwtAuthenticator struct {
	jwt   *jwtsvc.Service
	users UserRepository
}

func NewJWTAuthenticator(jwt *jwtsvc.Service, users UserRepository) Authenticator {
	return &jwtAuthenticator{jwt: jwt, users: users}
}

func (a *jwtAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*Identity, error) {
	token, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	claims, err := a.jwt.ValidateToken(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	// A token signed for a since-deleted account is no longer valid.
	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	return &Identity{UserID: user.ID, Role: string(user.Role)}, nil
}

/* ---------- Basic + bcrypt ---------- */

type basicAuthenticator struct {
	service *Service
}

func NewBasicAuthenticator(service *Service) Authenticator {
	return &basicAuthenticator{service: service}
}

func (a *basicAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*Identity, error) {
	email, password, ok := r.BasicAuth()
	if !ok {
		return nil, ErrNoCredentials
	}

	user, _, err := a.service.Login(ctx, LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return &Identity{UserID: user.ID, Role: string(user.Role)}, nil
}

/* ---------- Remote token verification ---------- */

type remoteAuthenticator struct {
	verifyURL string
	client    *http.Client
}

// NewRemoteAuthenticator delegates token checks to an external identity
// provider. The provider answers 200 with {"user_id", "role"} for a
// valid token.
func NewRemoteAuthenticator(verifyURL string) Authenticator {
	return &remoteAuthenticator{
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (a *remoteAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*Identity, error) {
	token, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	body, _ := json.Marshal(map[string]string{"token": token})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.verifyURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrTokenInvalid
	default:
		return nil, fmt.Errorf("%w: verifier returned %d", ErrVerifierUnavailable, resp.StatusCode)
	}

	var out struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.UserID == "" {
		return nil, fmt.Errorf("%w: bad verifier response", ErrVerifierUnavailable)
	}

	return &Identity{UserID: out.UserID, Role: out.Role}, nil
}

func bearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", ErrNoCredentials
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if token == "" {
		return "", ErrNoCredentials
	}
	return token, nil
}
