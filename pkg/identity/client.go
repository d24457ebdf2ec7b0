package identity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The identity provider keeps the login credential that mirrors each user
// row. Deleting a user from the store must also revoke that credential, so
// admins call the provider's account-admin API with a short-lived service
// token.

var (
	ErrAccountNotFound = errors.New("identity: account not found")
	ErrUnauthorized    = errors.New("identity: service token rejected")
)

// Config holds identity-provider connection settings
type Config struct {
	BaseURL     string
	ServiceID   string
	ServiceKey  string
	TokenTTL    time.Duration
	HTTPTimeout time.Duration
}

// Client calls the identity provider's admin API
type Client struct {
	baseURL    string
	serviceID  string
	serviceKey []byte
	tokenTTL   time.Duration
	httpClient *http.Client
}

// NewClient creates an identity-provider client
func NewClient(cfg Config) *Client {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		serviceID:  cfg.ServiceID,
		serviceKey: []byte(cfg.ServiceKey),
		tokenTTL:   ttl,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// serviceToken signs a short-lived HS256 token identifying this backend
func (c *Client) serviceToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    c.serviceID,
		Subject:   "account-admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.serviceKey)
}

// DeleteAccount removes the credential record for the given email.
// Returns ErrAccountNotFound when the provider has no matching account.
func (c *Client) DeleteAccount(ctx context.Context, email string) error {
	token, err := c.serviceToken()
	if err != nil {
		return fmt.Errorf("sign service token: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/accounts?email=%s", c.baseURL, url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrAccountNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("identity provider returned %d: %s", resp.StatusCode, body)
	}
}
