package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/bibbank/loan-origination/internal/domain/model"
)

// ---------------------------------------------------------------------------
// CRM identity adapter
// ---------------------------------------------------------------------------

// CRMConfig holds configuration for the CRM KYC lookup.
type CRMConfig struct {
	// BaseURL is the CRM API root, e.g. https://crm.internal/api.
	BaseURL string
	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// InitialBackoff is the first retry delay; later delays grow exponentially.
	InitialBackoff time.Duration
}

// DefaultCRMConfig returns development defaults.
func DefaultCRMConfig() CRMConfig {
	return CRMConfig{
		BaseURL:        "http://localhost:8099",
		Timeout:        5 * time.Second,
		MaxRetries:     3,
		InitialBackoff: 200 * time.Millisecond,
	}
}

// KYCRecord is the CRM's view of a customer's identity verification.
type KYCRecord struct {
	CustomerID      string `json:"customer_id"`
	PhoneVerified   bool   `json:"phone_verified"`
	AddressVerified bool   `json:"address_verified"`
	PANVerified     bool   `json:"pan_verified"`
	AadhaarVerified bool   `json:"aadhar_verified"`
	KYCStatus       string `json:"kyc_status"`
}

// KYCTransport fetches a KYC record. Implementations return
// model.ErrCustomerNotFound for unknown customers; every other error is
// treated as transient.
type KYCTransport interface {
	FetchKYC(ctx context.Context, customerID string) (KYCRecord, error)
}

// CRMIdentityClient implements port.IdentityVerifier against the CRM,
// retrying transient failures with exponential backoff.
type CRMIdentityClient struct {
	config    CRMConfig
	transport KYCTransport
	logger    *slog.Logger
}

// NewCRMIdentityClient creates the adapter. A nil transport uses HTTP.
func NewCRMIdentityClient(config CRMConfig, transport KYCTransport, logger *slog.Logger) *CRMIdentityClient {
	if transport == nil {
		transport = NewHTTPKYCTransport(config.BaseURL, &http.Client{Timeout: config.Timeout})
	}
	return &CRMIdentityClient{config: config, transport: transport, logger: logger}
}

// Check returns the identity checks for customerID. PAN is the primary and
// Aadhaar the secondary identity document. Exhausted retries surface as
// model.UpstreamUnavailable.
func (c *CRMIdentityClient) Check(ctx context.Context, customerID string) (model.IdentityChecks, error) {
	if customerID == "" {
		return model.IdentityChecks{}, model.NewValidationError("customer_id", "is required")
	}

	op := func() (KYCRecord, error) {
		rec, err := c.transport.FetchKYC(ctx, customerID)
		if errors.Is(err, model.ErrCustomerNotFound) {
			return KYCRecord{}, backoff.Permanent(err)
		}
		return rec, err
	}
	notify := func(err error, wait time.Duration) {
		c.logger.WarnContext(ctx, "crm kyc lookup failed, retrying",
			slog.String("customer_id", customerID),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()),
		)
	}

	rec, err := backoff.RetryNotifyWithData(op, c.policy(ctx), notify)
	if err != nil {
		if errors.Is(err, model.ErrCustomerNotFound) {
			return model.IdentityChecks{}, err
		}
		return model.IdentityChecks{}, &model.UpstreamUnavailable{Service: "crm", Err: err}
	}

	return model.IdentityChecks{
		PhoneVerified:       rec.PhoneVerified,
		AddressVerified:     rec.AddressVerified,
		PrimaryIDVerified:   rec.PANVerified,
		SecondaryIDVerified: rec.AadhaarVerified,
	}, nil
}

func (c *CRMIdentityClient) policy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	if c.config.InitialBackoff > 0 {
		exp.InitialInterval = c.config.InitialBackoff
	}
	retries := c.config.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

// ---------------------------------------------------------------------------
// HTTP transport
// ---------------------------------------------------------------------------

// HTTPKYCTransport reads GET {base}/customers/{id}/kyc.
type HTTPKYCTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPKYCTransport creates the transport.
func NewHTTPKYCTransport(baseURL string, client *http.Client) *HTTPKYCTransport {
	return &HTTPKYCTransport{baseURL: baseURL, client: client}
}

// FetchKYC performs one request.
func (t *HTTPKYCTransport) FetchKYC(ctx context.Context, customerID string) (KYCRecord, error) {
	endpoint, err := url.JoinPath(t.baseURL, "customers", customerID, "kyc")
	if err != nil {
		return KYCRecord{}, backoff.Permanent(fmt.Errorf("build crm url: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return KYCRecord{}, backoff.Permanent(fmt.Errorf("build crm request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return KYCRecord{}, fmt.Errorf("crm request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return KYCRecord{}, fmt.Errorf("customer %q: %w", customerID, model.ErrCustomerNotFound)
	case resp.StatusCode != http.StatusOK:
		return KYCRecord{}, fmt.Errorf("crm responded %d", resp.StatusCode)
	}

	var rec KYCRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return KYCRecord{}, fmt.Errorf("decode crm response: %w", err)
	}
	return rec, nil
}
