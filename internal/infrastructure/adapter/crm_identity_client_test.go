package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loan-origination/internal/domain/model"
)

type mockKYCTransport struct {
	calls     int
	fetchFunc func(call int, customerID string) (KYCRecord, error)
}

func (m *mockKYCTransport) FetchKYC(_ context.Context, customerID string) (KYCRecord, error) {
	m.calls++
	return m.fetchFunc(m.calls, customerID)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastCRMConfig(retries int) CRMConfig {
	return CRMConfig{MaxRetries: retries, InitialBackoff: time.Millisecond}
}

func TestCRMIdentityClient_Check(t *testing.T) {
	t.Run("maps pan and aadhaar onto primary and secondary id", func(t *testing.T) {
		transport := &mockKYCTransport{fetchFunc: func(int, string) (KYCRecord, error) {
			return KYCRecord{PhoneVerified: true, AddressVerified: true, PANVerified: true, AadhaarVerified: false}, nil
		}}
		client := NewCRMIdentityClient(fastCRMConfig(2), transport, quietLogger())

		checks, err := client.Check(context.Background(), "CUST001")

		require.NoError(t, err)
		assert.True(t, checks.PrimaryIDVerified)
		assert.False(t, checks.SecondaryIDVerified)
		assert.Equal(t, 1, transport.calls)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		transport := &mockKYCTransport{fetchFunc: func(call int, _ string) (KYCRecord, error) {
			if call < 3 {
				return KYCRecord{}, errors.New("connection reset")
			}
			return KYCRecord{PhoneVerified: true, AddressVerified: true, PANVerified: true, AadhaarVerified: true}, nil
		}}
		client := NewCRMIdentityClient(fastCRMConfig(3), transport, quietLogger())

		checks, err := client.Check(context.Background(), "CUST001")

		require.NoError(t, err)
		assert.True(t, checks.Passed())
		assert.Equal(t, 3, transport.calls)
	})

	t.Run("exhausted retries are upstream unavailable", func(t *testing.T) {
		transport := &mockKYCTransport{fetchFunc: func(int, string) (KYCRecord, error) {
			return KYCRecord{}, errors.New("timeout")
		}}
		client := NewCRMIdentityClient(fastCRMConfig(2), transport, quietLogger())

		_, err := client.Check(context.Background(), "CUST001")

		require.ErrorIs(t, err, model.ErrUpstreamUnavailable)
		assert.Equal(t, 3, transport.calls)
	})

	t.Run("unknown customer is not retried", func(t *testing.T) {
		transport := &mockKYCTransport{fetchFunc: func(_ int, id string) (KYCRecord, error) {
			return KYCRecord{}, fmt.Errorf("customer %q: %w", id, model.ErrCustomerNotFound)
		}}
		client := NewCRMIdentityClient(fastCRMConfig(5), transport, quietLogger())

		_, err := client.Check(context.Background(), "CUST404")

		require.ErrorIs(t, err, model.ErrCustomerNotFound)
		assert.NotErrorIs(t, err, model.ErrUpstreamUnavailable)
		assert.Equal(t, 1, transport.calls)
	})

	t.Run("customer id is required", func(t *testing.T) {
		client := NewCRMIdentityClient(fastCRMConfig(0), &mockKYCTransport{}, quietLogger())

		_, err := client.Check(context.Background(), "")

		require.ErrorIs(t, err, model.ErrValidation)
	})
}

func TestHTTPKYCTransport_FetchKYC(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/customers/CUST001/kyc":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"customer_id":"CUST001","phone_verified":true,"address_verified":true,"pan_verified":true,"aadhar_verified":true,"kyc_status":"COMPLETED"}`)
		case "/customers/BROKEN/kyc":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	transport := NewHTTPKYCTransport(srv.URL, srv.Client())
	ctx := context.Background()

	rec, err := transport.FetchKYC(ctx, "CUST001")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", rec.KYCStatus)
	assert.True(t, rec.AadhaarVerified)

	_, err = transport.FetchKYC(ctx, "CUST404")
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)

	_, err = transport.FetchKYC(ctx, "BROKEN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
