package shopify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/pkg/errors"
)

// SignedMessage rebuilds the string Shopify signed for an OAuth callback:
// every parameter except hmac, sorted by key, as key=value joined with '&'.
// Values are not URL-encoded. A repeated key contributes its values joined by ','.
func SignedMessage(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "hmac" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strings.Join(params[k], ","))
	}
	return strings.Join(parts, "&")
}

// Sign returns the lowercase hex HMAC-SHA256 of message
func Sign(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMAC checks the hmac parameter of an OAuth callback.
// The received value must equal the computed digest byte for byte.
func VerifyHMAC(secret string, params url.Values) error {
	received := params.Get("hmac")
	if secret == "" || received == "" {
		return &errors.ConfigurationError{Message: "HMAC missing or secret not set"}
	}

	expected := Sign(secret, SignedMessage(params))
	// constant-time compare
	if !hmac.Equal([]byte(expected), []byte(received)) {
		return &errors.SignatureError{}
	}
	return nil
}

// AuthorizeURL builds the URL the merchant is sent to for approving the install
func AuthorizeURL(shop, clientID, scopes, redirectURI string) string {
	return fmt.Sprintf(
		"https://%s/admin/oauth/authorize?client_id=%s&scope=%s&redirect_uri=%s",
		shop,
		url.QueryEscape(clientID),
		url.QueryEscape(scopes),
		url.QueryEscape(redirectURI),
	)
}

// OAuthClient exchanges authorization codes for offline access tokens
type OAuthClient struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewOAuthClient creates a token exchange client. A nil httpClient gets a 30s default.
func NewOAuthClient(cfg config.ShopifyConfig, httpClient *http.Client, logger *zap.Logger) *OAuthClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OAuthClient{
		clientID:     cfg.APIKey,
		clientSecret: cfg.APISecret,
		httpClient:   httpClient,
		logger:       logger,
	}
}

type accessTokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}

// ExchangeCode trades a one-time authorization code for the shop's access token
func (c *OAuthClient) ExchangeCode(ctx context.Context, shop, code string) (string, error) {
	b, err := json.Marshal(accessTokenRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Code:         code,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s/admin/oauth/access_token", shop)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute token request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Token exchange rejected",
			zap.String("shop", shop),
			zap.Int("status", resp.StatusCode),
		)
		return "", &errors.OAuthExchangeError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out accessTokenResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to unmarshal token response: %w", err)
	}
	if out.AccessToken == "" {
		return "", &errors.OAuthExchangeError{StatusCode: resp.StatusCode, Body: "response carried no access_token"}
	}

	c.logger.Info("Access token granted", zap.String("shop", shop), zap.String("scope", out.Scope))
	return out.AccessToken, nil
}
