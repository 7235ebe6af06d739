package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lawfirm-site/internal/common/errors"
)

// KeycloakClient talks to the realm's OpenID Connect endpoints on behalf of
// the admin panel.
type KeycloakClient struct {
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
	adminClaim   string
	httpClient   *http.Client
}

type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int    `json:"expires_in"`
	RefreshExpiresIn int    `json:"refresh_expires_in"`
	TokenType        string `json:"token_type"`
	RefreshToken     string `json:"refresh_token"`
	Scope            string `json:"scope"`
}

// TokenInfo is the introspection result. IsAdmin is derived from the
// configured boolean claim.
type TokenInfo struct {
	Active   bool   `json:"active"`
	Sub      string `json:"sub,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	ClientID string `json:"client_id,omitempty"`
	Exp      int64  `json:"exp,omitempty"`
	IsAdmin  bool   `json:"-"`
}

func NewKeycloakClient(baseURL, realm, clientID, clientSecret, adminClaim string) *KeycloakClient {
	if adminClaim == "" {
		adminClaim = "is_admin"
	}
	return &KeycloakClient{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		realm:        realm,
		clientID:     clientID,
		clientSecret: clientSecret,
		adminClaim:   adminClaim,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (k *KeycloakClient) endpoint(path string) string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/%s", k.baseURL, k.realm, path)
}

func (k *KeycloakClient) postForm(ctx context.Context, path string, data url.Values) (*http.Response, error) {
	data.Set("client_id", k.clientID)
	if k.clientSecret != "" {
		data.Set("client_secret", k.clientSecret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.endpoint(path), strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewAuthProviderError(err)
	}
	return resp, nil
}

// PasswordLogin exchanges an editor's credentials for tokens.
func (k *KeycloakClient) PasswordLogin(ctx context.Context, username, password string) (*TokenResponse, error) {
	resp, err := k.postForm(ctx, "token", url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
		"scope":      {"openid"},
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		return nil, errors.NewInvalidCredentialsError()
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, k.statusError("token", resp.StatusCode, body)
	}

	var tokens TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, errors.NewAuthProviderError(fmt.Errorf("decode token response: %w", err))
	}
	return &tokens, nil
}

// ValidateToken introspects an access token. An inactive token is an
// unauthenticated error.
func (k *KeycloakClient) ValidateToken(ctx context.Context, token string) (*TokenInfo, error) {
	resp, err := k.postForm(ctx, "token/introspect", url.Values{
		"token":           {token},
		"token_type_hint": {"access_token"},
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewAuthProviderError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, k.statusError("introspect", resp.StatusCode, body)
	}

	var info TokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, errors.NewAuthProviderError(fmt.Errorf("decode introspection: %w", err))
	}
	if !info.Active {
		return nil, errors.NewUnauthenticatedError("token is not active")
	}

	var claims map[string]interface{}
	if err := json.Unmarshal(body, &claims); err == nil {
		info.IsAdmin = claimIsTrue(claims[k.adminClaim])
	}
	return &info, nil
}

// claimIsTrue accepts only a literal boolean true, or the string "true"
// for mappers that stringify user attributes.
func claimIsTrue(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "true"
	default:
		return false
	}
}

// Logout ends the provider-side session behind refreshToken.
func (k *KeycloakClient) Logout(ctx context.Context, refreshToken string) error {
	resp, err := k.postForm(ctx, "logout", url.Values{"refresh_token": {refreshToken}})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return k.statusError("logout", resp.StatusCode, body)
	}
	return nil
}

func (k *KeycloakClient) statusError(op string, status int, body []byte) error {
	err := fmt.Errorf("keycloak %s returned %d: %s", op, status, strings.TrimSpace(string(body)))
	stdErr := errors.NewAuthProviderError(err)
	stdErr.Retryable = isTransientHTTPError(status)
	return stdErr.WithMetadata("status", status)
}

func isTransientHTTPError(statusCode int) bool {
	switch statusCode {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
