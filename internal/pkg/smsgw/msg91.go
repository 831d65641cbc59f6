package smsgw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMSG91AuthKeyRequired is returned when the auth key is missing.
	ErrMSG91AuthKeyRequired = errors.New("msg91 auth key is required")
	// ErrMSG91TemplateRequired is returned when the template ID is missing.
	ErrMSG91TemplateRequired = errors.New("msg91 template id is required")
)

// MSG91 is an SMS implementation backed by the MSG91 OTP API.
type MSG91 struct {
	baseURL    string
	authKey    string
	templateID string
	client     *http.Client
}

// MSG91Config configures the MSG91 implementation.
type MSG91Config struct {
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string
	// AuthKey is the MSG91 account authentication key.
	AuthKey string
	// TemplateID is the DLT-approved OTP template.
	TemplateID string
	// Timeout bounds each API call; defaults to 10s.
	Timeout time.Duration
}

// NewMSG91 constructs an MSG91 SMS sender.
func NewMSG91(cfg MSG91Config) (*MSG91, error) {
	if cfg.AuthKey == "" {
		return nil, ErrMSG91AuthKeyRequired
	}
	if cfg.TemplateID == "" {
		return nil, ErrMSG91TemplateRequired
	}

	base := cfg.BaseURL
	if base == "" {
		base = "https://api.msg91.com/api/v5/otp"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &MSG91{
		baseURL:    strings.TrimRight(base, "/"),
		authKey:    cfg.AuthKey,
		templateID: cfg.TemplateID,
		client:     &http.Client{Timeout: timeout},
	}, nil
}

// SendOTP calls the MSG91 OTP endpoint and treats any non-success
// response type as a delivery failure.
func (m *MSG91) SendOTP(ctx context.Context, msg OTPMessage) error {
	cc := msg.CountryCode
	if cc == "" {
		cc = "91"
	}

	q := url.Values{}
	q.Set("template_id", m.templateID)
	q.Set("mobile", cc+msg.Mobile)
	q.Set("otp", msg.Code)
	if msg.ExpiryMinutes > 0 {
		q.Set("otp_expiry", strconv.Itoa(msg.ExpiryMinutes))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("authkey", m.authKey)
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var out struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("msg91: decode response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("msg91: unexpected status %d: %s", resp.StatusCode, out.Message)
	}
	if !strings.EqualFold(out.Type, "success") {
		return fmt.Errorf("msg91: send rejected: %s", out.Message)
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (m *MSG91) Close() error {
	m.client.CloseIdleConnections()
	return nil
}
