package auth

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestJWTService(t *testing.T, secret string, expiration time.Duration) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     secret,
		Issuer:     "origination-test",
		Expiration: expiration,
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t, "test-secret-key-for-unit-tests", 15*time.Minute)

	tokenString, err := svc.GenerateToken("user-42", "CUST001", []string{RoleCustomer})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := svc.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.CustomerID != "CUST001" {
		t.Errorf("CustomerID = %q, want CUST001", claims.CustomerID)
	}
	if claims.Subject != "user-42" {
		t.Errorf("Subject = %q, want user-42", claims.Subject)
	}
	if claims.Issuer != "origination-test" {
		t.Errorf("Issuer = %q, want origination-test", claims.Issuer)
	}
}

func TestGenerateAndValidateToken_RSA(t *testing.T) {
	privPEM, pubPEM, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	issuer, err := NewJWTService(JWTConfig{PrivateKeyPEM: string(privPEM), Issuer: "origination-test", Expiration: time.Minute})
	if err != nil {
		t.Fatalf("NewJWTService(private) error = %v", err)
	}
	validator, err := NewJWTService(JWTConfig{PublicKeyPEM: string(pubPEM), Issuer: "origination-test"})
	if err != nil {
		t.Fatalf("NewJWTService(public) error = %v", err)
	}

	token, err := issuer.GenerateToken("officer-1", "", []string{RoleOperator})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	claims, err := validator.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if !claims.HasRole(RoleOperator) {
		t.Errorf("Roles = %v, want operator", claims.Roles)
	}

	if _, err := validator.GenerateToken("x", "", nil); err == nil {
		t.Error("validation-only service must not issue tokens")
	}
}

func TestNewJWTService_RequiresKeyMaterial(t *testing.T) {
	if _, err := NewJWTService(JWTConfig{}); err == nil {
		t.Fatal("expected error without key material")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(t, "test-secret-key-for-unit-tests", -1*time.Hour)

	tokenString, err := svc.GenerateToken("user-42", "CUST001", []string{RoleCustomer})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := svc.ValidateToken(tokenString); err == nil {
		t.Fatal("ValidateToken() expected error for expired token, got nil")
	}
}

func TestValidateToken_InvalidSignature(t *testing.T) {
	svc1 := newTestJWTService(t, "secret-one", 15*time.Minute)
	svc2 := newTestJWTService(t, "secret-two", 15*time.Minute)

	tokenString, err := svc1.GenerateToken("user-42", "CUST001", []string{RoleCustomer})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := svc2.ValidateToken(tokenString); err == nil {
		t.Fatal("ValidateToken() expected error for invalid signature, got nil")
	}
}

func TestCanActFor(t *testing.T) {
	tests := []struct {
		name     string
		claims   Claims
		customer string
		want     bool
	}{
		{"own customer", Claims{CustomerID: "CUST001", Roles: []string{RoleCustomer}}, "CUST001", true},
		{"other customer", Claims{CustomerID: "CUST001", Roles: []string{RoleCustomer}}, "CUST002", false},
		{"customer role missing", Claims{CustomerID: "CUST001"}, "CUST001", false},
		{"operator", Claims{Roles: []string{RoleOperator}}, "CUST009", true},
		{"empty scope", Claims{Roles: []string{RoleCustomer}}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.claims.CanActFor(tt.customer); got != tt.want {
				t.Errorf("CanActFor(%q) = %v, want %v", tt.customer, got, tt.want)
			}
		})
	}
}

func TestAuthorizeCustomer(t *testing.T) {
	if err := AuthorizeCustomer(context.Background(), "CUST001"); status.Code(err) != codes.Unauthenticated {
		t.Errorf("no claims: code = %v, want Unauthenticated", status.Code(err))
	}

	ctx := ContextWithClaims(context.Background(), &Claims{CustomerID: "CUST001", Roles: []string{RoleCustomer}})
	if err := AuthorizeCustomer(ctx, "CUST001"); err != nil {
		t.Errorf("own customer: unexpected error %v", err)
	}
	if err := AuthorizeCustomer(ctx, "CUST002"); status.Code(err) != codes.PermissionDenied {
		t.Errorf("other customer: code = %v, want PermissionDenied", status.Code(err))
	}
}

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := newTestJWTService(t, "interceptor-secret", time.Minute)
	token, err := svc.GenerateToken("user-7", "CUST007", []string{RoleCustomer})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	interceptor := UnaryAuthInterceptor(svc, []string{"/grpc.health.v1.Health/Check"})
	var seen *Claims
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen, _ = ClaimsFromContext(ctx)
		return "ok", nil
	}

	// skipped method
	if _, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, handler); err != nil {
		t.Fatalf("skipped method: unexpected error %v", err)
	}

	info := &grpc.UnaryServerInfo{FullMethod: "/bib.origination.v1.OriginationService/GetApplication"}
	if _, err := interceptor(context.Background(), nil, info, handler); status.Code(err) != codes.Unauthenticated {
		t.Errorf("missing metadata: code = %v, want Unauthenticated", status.Code(err))
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
	if _, err := interceptor(ctx, nil, info, handler); err != nil {
		t.Fatalf("valid token: unexpected error %v", err)
	}
	if seen == nil || seen.CustomerID != "CUST007" {
		t.Errorf("claims not attached to context: %+v", seen)
	}

	bad := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer nope"))
	if _, err := interceptor(bad, nil, info, handler); status.Code(err) != codes.Unauthenticated {
		t.Errorf("bad token: code = %v, want Unauthenticated", status.Code(err))
	}
}

func TestValidateToken_IssuerAndAlgorithm(t *testing.T) {
	secret := "shared-secret"
	other, err := NewJWTService(JWTConfig{Secret: secret, Issuer: "someone-else", Expiration: time.Minute})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	token, err := other.GenerateToken("user-1", "CUST001", []string{RoleCustomer})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	svc := newTestJWTService(t, secret, time.Minute)
	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("ValidateToken() accepted a token from another issuer")
	}

	privPEM, _, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	rsaSvc, err := NewJWTService(JWTConfig{PrivateKeyPEM: string(privPEM), Expiration: time.Minute})
	if err != nil {
		t.Fatalf("NewJWTService(private) error = %v", err)
	}
	rsaToken, err := rsaSvc.GenerateToken("user-1", "CUST001", []string{RoleCustomer})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := svc.ValidateToken(rsaToken); err == nil {
		t.Fatal("ValidateToken() accepted an RS256 token on an HS256 service")
	}
}
