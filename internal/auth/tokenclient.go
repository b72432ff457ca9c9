// Package auth is the boundary to the external credential authority.
package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudward/console-gate/internal/core/domain"
)

// TokenClient authenticates against the cloud controller's token
// service. One blocking HTTP exchange per call, no retries. A failed
// login is reported to the browser and the user tries again.
type TokenClient struct {
	endpoint string
	duration time.Duration
	client   *http.Client
}

// tokenResponse is the narrow wire contract with the token service.
type tokenResponse struct {
	SessionToken string `json:"session_token"`
	AccessKey    string `json:"access_key"`
	SecretKey    string `json:"secret_key"`
}

// NewTokenClient creates a client for the token service on the given
// controller host and port. The issued credentials are requested to
// outlive the console's idle timeout by a minute so a session never
// holds credentials that expired before it did.
func NewTokenClient(clcHost string, clcPort int, sessionTimeout time.Duration) *TokenClient {
	return &TokenClient{
		endpoint: fmt.Sprintf("https://%s:%d/services/Tokens", clcHost, clcPort),
		duration: sessionTimeout + time.Minute,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Authenticate exchanges the principal's password for session
// credentials. The authority rejecting the credentials surfaces as
// ErrRejected; transport failures are wrapped separately so the caller
// can tell them apart in logs, though both end up as 401 to the
// browser.
func (c *TokenClient) Authenticate(ctx context.Context, account, username, password string) (Credentials, error) {
	q := url.Values{}
	q.Set("Action", "GetSessionToken")
	q.Set("DurationSeconds", strconv.Itoa(int(c.duration.Seconds())))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return Credentials{}, domain.ErrInternal.WithCause(err)
	}
	basic := base64.StdEncoding.EncodeToString([]byte(account + ":" + username + ":" + password))
	req.Header.Set("Authorization", "Basic "+basic)

	resp, err := c.client.Do(req)
	if err != nil {
		return Credentials{}, ErrRejected.WithCause(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return Credentials{}, ErrRejected
	default:
		return Credentials{}, ErrRejected.WithDetails("token service returned " + resp.Status)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return Credentials{}, ErrRejected.WithCause(err)
	}
	if tr.SessionToken == "" || tr.AccessKey == "" || tr.SecretKey == "" {
		return Credentials{}, ErrRejected.WithDetails("token service returned incomplete credentials")
	}

	return Credentials{
		SessionToken: tr.SessionToken,
		AccessKey:    tr.AccessKey,
		SecretKey:    tr.SecretKey,
	}, nil
}
