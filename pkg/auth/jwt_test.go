package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "hub-test",
		Expiration: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()
	tenantID := uuid.New()
	roles := []string{RoleAdmin, RoleUnderwriter}

	tokenString, err := svc.GenerateToken(userID, tenantID, roles)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if tokenString == "" {
		t.Fatal("GenerateToken() returned empty token")
	}

	claims, err := svc.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.TenantID != tenantID {
		t.Errorf("TenantID = %v, want %v", claims.TenantID, tenantID)
	}
	if len(claims.Roles) != 2 {
		t.Fatalf("Roles length = %d, want 2", len(claims.Roles))
	}
	if claims.Roles[0] != RoleAdmin || claims.Roles[1] != RoleUnderwriter {
		t.Errorf("Roles = %v, want [%s, %s]", claims.Roles, RoleAdmin, RoleUnderwriter)
	}
	if claims.Issuer != "hub-test" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "hub-test")
	}
	if claims.Subject != userID.String() {
		t.Errorf("Subject = %q, want %q", claims.Subject, userID.String())
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "hub-test",
		Expiration: -1 * time.Hour, // already expired
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	tokenString, err := svc.GenerateToken(uuid.New(), uuid.New(), []string{RoleBroker})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	_, err = svc.ValidateToken(tokenString)
	if err == nil {
		t.Fatal("ValidateToken() expected error for expired token, got nil")
	}
}

func TestValidateToken_InvalidSignature(t *testing.T) {
	mint := func(secret string) *JWTService {
		svc, err := NewJWTService(JWTConfig{
			Secret:     secret,
			Issuer:     "hub-test",
			Expiration: 15 * time.Minute,
		})
		if err != nil {
			t.Fatalf("NewJWTService() error = %v", err)
		}
		return svc
	}

	tokenString, err := mint("secret-one").GenerateToken(uuid.New(), uuid.New(), []string{RoleBroker})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	_, err = mint("secret-two").ValidateToken(tokenString)
	if err == nil {
		t.Fatal("ValidateToken() expected error for invalid signature, got nil")
	}
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	issue, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "some-other-gateway",
		Expiration: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	tokenString, err := issue.GenerateToken(uuid.New(), uuid.New(), []string{RoleUnderwriter})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	_, err = newTestJWTService(t).ValidateToken(tokenString)
	if err == nil {
		t.Fatal("ValidateToken() expected error for wrong issuer, got nil")
	}
}

func TestNewJWTService_NoKeyMaterial(t *testing.T) {
	_, err := NewJWTService(JWTConfig{Issuer: "hub-test"})
	if err == nil {
		t.Fatal("NewJWTService() expected error without key material, got nil")
	}
}

func TestHasRole(t *testing.T) {
	claims := Claims{
		Roles: []string{RoleAdmin, RoleProcessor},
	}

	if !claims.HasRole(RoleAdmin) {
		t.Error("HasRole(RoleAdmin) = false, want true")
	}
	if !claims.HasRole(RoleProcessor) {
		t.Error("HasRole(RoleProcessor) = false, want true")
	}
	if claims.HasRole(RoleBroker) {
		t.Error("HasRole(RoleBroker) = true, want false")
	}
	if claims.HasRole("nonexistent") {
		t.Error("HasRole(nonexistent) = true, want false")
	}
}

func TestClaimsFromContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := ClaimsFromContext(ctx); ok {
		t.Error("ClaimsFromContext() ok = true for empty context, want false")
	}

	expected := &Claims{
		UserID: uuid.New(),
		Roles:  []string{RoleUnderwriter},
	}
	ctx = ContextWithClaims(ctx, expected)
	got, ok := ClaimsFromContext(ctx)
	if !ok {
		t.Fatal("ClaimsFromContext() ok = false, want true")
	}
	if got.UserID != expected.UserID {
		t.Errorf("ClaimsFromContext().UserID = %v, want %v", got.UserID, expected.UserID)
	}
	if len(got.Roles) != 1 || got.Roles[0] != RoleUnderwriter {
		t.Errorf("ClaimsFromContext().Roles = %v, want [%s]", got.Roles, RoleUnderwriter)
	}
}
