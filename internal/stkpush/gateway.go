package stkpush

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

// PushResponse is the synchronous acknowledgement from the gateway.
// ResponseCode "0" means the prompt was queued to the customer's handset.
type PushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// Gateway initiates a push prompt against the mobile-money provider. The
// raw response body is returned alongside the parsed form so the service
// can persist it verbatim.
type Gateway interface {
	Push(ctx context.Context, phone string, amount int64, reference string) (PushResponse, []byte, error)
}

// DarajaConfig carries the credentials for the Safaricom Daraja API.
type DarajaConfig struct {
	ConsumerKey    string
	ConsumerSecret string
	Shortcode      string
	Passkey        string
	// Env is the API host prefix: "sandbox" or "api".
	Env         string
	CallbackURL string
}

// DarajaGateway talks to the Safaricom Daraja STK push API.
type DarajaGateway struct {
	cfg        DarajaConfig
	httpClient *http.Client
	now        func() time.Time
}

// NewDarajaGateway constructs a gateway client.
func NewDarajaGateway(cfg DarajaConfig) *DarajaGateway {
	return &DarajaGateway{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (g *DarajaGateway) fetchToken(ctx context.Context) (string, error) {
	url := fmt.Sprintf("https://%s.safaricom.co.ke/oauth/v1/generate?grant_type=client_credentials", g.cfg.Env)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(g.cfg.ConsumerKey, g.cfg.ConsumerSecret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: no access token in response", httpx.ErrUpstream)
	}
	return token.AccessToken, nil
}

// Push fetches an access token and posts the STK push request.
func (g *DarajaGateway) Push(ctx context.Context, phone string, amount int64, reference string) (PushResponse, []byte, error) {
	token, err := g.fetchToken(ctx)
	if err != nil {
		return PushResponse{}, nil, fmt.Errorf("%w: fetch token: %v", httpx.ErrUpstream, err)
	}

	timestamp := g.now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString([]byte(g.cfg.Shortcode + g.cfg.Passkey + timestamp))

	payload := map[string]any{
		"BusinessShortCode": g.cfg.Shortcode,
		"Password":          password,
		"Timestamp":         timestamp,
		"TransactionType":   "CustomerPayBillOnline",
		"Amount":            amount,
		"PartyA":            phone,
		"PartyB":            g.cfg.Shortcode,
		"PhoneNumber":       phone,
		"CallBackURL":       g.cfg.CallbackURL,
		"AccountReference":  reference,
		"TransactionDesc":   "Hardware Payment",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return PushResponse{}, nil, err
	}

	url := fmt.Sprintf("https://%s.safaricom.co.ke/mpesa/stkpush/v1/processrequest", g.cfg.Env)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return PushResponse{}, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return PushResponse{}, nil, fmt.Errorf("%w: push request: %v", httpx.ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return PushResponse{}, nil, fmt.Errorf("%w: read push response: %v", httpx.ErrUpstream, err)
	}
	var parsed PushResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return PushResponse{}, raw, fmt.Errorf("%w: decode push response: %v", httpx.ErrUpstream, err)
	}
	return parsed, raw, nil
}
