// Package googleauth signs users in with Google, either by exchanging an
// OAuth authorization code or by checking an ID token from the one-tap
// widget.
package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	userinfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
	tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
)

var (
	ErrClientIDRequired = errors.New("googleauth: client id is required")
	ErrEmailUnverified  = errors.New("googleauth: email is not verified by google")
	ErrAudienceMismatch = errors.New("googleauth: token audience mismatch")
)

// Profile is the subset of the Google account the platform needs.
type Profile struct {
	Subject   string
	Email     string
	FullName  string
	AvatarURL string
}

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Timeout      time.Duration
}

type Client struct {
	oauth  *oauth2.Config
	client *http.Client

	// overridable in tests
	userinfoURL  string
	tokenInfoURL string
}

func New(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, ErrClientIDRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		client:       &http.Client{Timeout: timeout},
		userinfoURL:  userinfoURL,
		tokenInfoURL: tokenInfoURL,
	}, nil
}

type userinfoResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// ExchangeCode trades an authorization code for tokens and fetches the
// user's profile.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Profile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)

	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("googleauth: exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userinfoURL, nil)
	if err != nil {
		return nil, err
	}
	tok.SetAuthHeader(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("googleauth: fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("googleauth: userinfo status %d: %s", resp.StatusCode, body)
	}

	var info userinfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("googleauth: decode userinfo: %w", err)
	}
	if !info.VerifiedEmail {
		return nil, ErrEmailUnverified
	}

	return &Profile{
		Subject:   info.ID,
		Email:     info.Email,
		FullName:  info.Name,
		AvatarURL: info.Picture,
	}, nil
}

type tokenInfoResponse struct {
	Subject       string `json:"sub"`
	Audience      string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// VerifyIDToken checks an ID token against Google's tokeninfo endpoint
// and returns the profile it asserts.
func (c *Client) VerifyIDToken(ctx context.Context, idToken string) (*Profile, error) {
	u := c.tokenInfoURL + "?id_token=" + url.QueryEscape(idToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("googleauth: verify id token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("googleauth: tokeninfo status %d: %s", resp.StatusCode, body)
	}

	var info tokenInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("googleauth: decode tokeninfo: %w", err)
	}
	if info.Audience != c.oauth.ClientID {
		return nil, ErrAudienceMismatch
	}
	if info.EmailVerified != "true" {
		return nil, ErrEmailUnverified
	}

	return &Profile{
		Subject:   info.Subject,
		Email:     info.Email,
		FullName:  info.Name,
		AvatarURL: info.Picture,
	}, nil
}
